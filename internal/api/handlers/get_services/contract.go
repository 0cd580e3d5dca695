package get_services

import (
	"context"

	"github.com/m04kA/SMC-CleaningBooking/internal/service/catalog/models"
)

type CatalogService interface {
	GetServices(ctx context.Context) *models.ServicesResponse
}
