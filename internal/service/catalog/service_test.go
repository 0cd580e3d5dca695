package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

type fakeCleaners struct {
	cleaners []*domain.Cleaner
	err      error
}

func (f fakeCleaners) ListAvailable(_ context.Context) ([]*domain.Cleaner, error) {
	return f.cleaners, f.err
}

func TestGetServices(t *testing.T) {
	svc := NewService(fakeCleaners{}, logger.NewNop())

	resp := svc.GetServices(context.Background())

	require.Len(t, resp.Services, 4)
	assert.Equal(t, 40.0, resp.Services["regular_cleaning"].BasePrice)
	assert.Equal(t, 45.0, resp.Services["deep_cleaning"].BasePrice)
	assert.Equal(t, 70.0, resp.Services["move_in_out"].BasePrice)
	assert.Equal(t, 70.0, resp.Services["janitorial_cleaning"].BasePrice)
}

func TestGetServiceAreas_ReturnsCopy(t *testing.T) {
	svc := NewService(fakeCleaners{}, logger.NewNop())

	resp := svc.GetServiceAreas(context.Background())
	resp.Areas[0] = "Nowhere"

	assert.Equal(t, "Tempe", domain.ServiceAreas[0])
	assert.Len(t, resp.Areas, 8)
}

func TestGetCleaners(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := NewService(fakeCleaners{cleaners: []*domain.Cleaner{
			{ID: "c1", Name: "Ana", Rating: 4.9, Available: true},
		}}, logger.NewNop())

		resp, err := svc.GetCleaners(context.Background())

		require.NoError(t, err)
		require.Len(t, resp.Cleaners, 1)
		assert.Equal(t, "c1", resp.Cleaners[0].ID)
		assert.NotNil(t, resp.Cleaners[0].Specialties)
	})

	t.Run("repository error", func(t *testing.T) {
		svc := NewService(fakeCleaners{err: errors.New("db down")}, logger.NewNop())

		_, err := svc.GetCleaners(context.Background())

		assert.ErrorIs(t, err, ErrInternal)
	})
}
