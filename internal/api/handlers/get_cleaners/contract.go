package get_cleaners

import (
	"context"

	"github.com/m04kA/SMC-CleaningBooking/internal/service/catalog/models"
)

type CatalogService interface {
	GetCleaners(ctx context.Context) (*models.CleanersResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
