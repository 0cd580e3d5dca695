package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/catalog/models"
)

// Service сервис каталога: услуги, клинеры, города
type Service struct {
	cleanerRepo CleanerRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(cleanerRepo CleanerRepository, logger Logger) *Service {
	return &Service{
		cleanerRepo: cleanerRepo,
		logger:      logger,
	}
}

// GetServices возвращает пакеты услуг
func (s *Service) GetServices(_ context.Context) *models.ServicesResponse {
	return models.FromDomainPackages(domain.ServicePackages)
}

// GetServiceAreas возвращает список обслуживаемых городов
func (s *Service) GetServiceAreas(_ context.Context) *models.AreasResponse {
	areas := make([]string, len(domain.ServiceAreas))
	copy(areas, domain.ServiceAreas)
	return &models.AreasResponse{Areas: areas}
}

// GetCleaners возвращает доступных клинеров, лучшие по рейтингу первыми
func (s *Service) GetCleaners(ctx context.Context) (*models.CleanersResponse, error) {
	cleaners, err := s.cleanerRepo.ListAvailable(ctx)
	if err != nil {
		s.logger.Error("GetCleaners: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCleaners - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCleaners: fetched %d cleaners", len(cleaners))
	return models.FromDomainCleaners(cleaners), nil
}
