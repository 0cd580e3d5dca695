package get_service_areas

import (
	"context"

	"github.com/m04kA/SMC-CleaningBooking/internal/service/catalog/models"
)

type CatalogService interface {
	GetServiceAreas(ctx context.Context) *models.AreasResponse
}
