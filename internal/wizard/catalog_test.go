package wizard

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/backend"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

func TestLoadCatalog(t *testing.T) {
	catalog := LoadCatalog(context.Background(), newFakeAPI(), logger.NewNop())

	require.Len(t, catalog.Services, 4)
	assert.Equal(t, "regular_cleaning", catalog.Services[0].Key)
	assert.Equal(t, domain.ServiceDeepCleaning, catalog.Services[1].Kind)
	assert.Len(t, catalog.Cleaners, 2)
	assert.Equal(t, []string{"Tempe", "Mesa"}, catalog.Areas)
	assert.Empty(t, catalog.Failed)
}

func TestLoadCatalog_CleanersServerError(t *testing.T) {
	api := newFakeAPI()
	api.cleanersErr = &backend.APIError{StatusCode: http.StatusInternalServerError, Detail: "Internal server error"}

	var catalog *Catalog
	require.NotPanics(t, func() {
		catalog = LoadCatalog(context.Background(), api, logger.NewNop())
	})

	assert.NotNil(t, catalog.Cleaners)
	assert.Empty(t, catalog.Cleaners)
	assert.Len(t, catalog.Services, 4)
	assert.Len(t, catalog.Areas, 2)
	assert.Equal(t, []CatalogPart{PartCleaners}, catalog.FailedParts())
}

func TestLoadCatalog_AllFail(t *testing.T) {
	api := newFakeAPI()
	api.servicesErr = backend.ErrInternal
	api.cleanersErr = backend.ErrInternal
	api.areasErr = backend.ErrInvalidResponse

	catalog := LoadCatalog(context.Background(), api, logger.NewNop())

	assert.Empty(t, catalog.Services)
	assert.Empty(t, catalog.Cleaners)
	assert.Empty(t, catalog.Areas)
	assert.Equal(t, []CatalogPart{PartServices, PartCleaners, PartAreas}, catalog.FailedParts())
}

func TestLoadCatalog_UnknownServiceKindKept(t *testing.T) {
	api := newFakeAPI()
	api.services["window_washing"] = backend.ServiceEntry{Name: "Window Washing", BasePrice: 30}

	catalog := LoadCatalog(context.Background(), api, logger.NewNop())

	require.Len(t, catalog.Services, 5)
	last := catalog.Services[4]
	assert.Equal(t, "window_washing", last.Key)
	assert.Equal(t, domain.ServiceUnknown, last.Kind)
	assert.Equal(t, 90.0, last.TotalFor(3))
}

func TestWizard_ReloadCatalogRetriesFailedParts(t *testing.T) {
	api := newFakeAPI()
	api.cleanersErr = backend.ErrInternal
	w, _, _ := newTestWizard(t, api, nil)

	require.NoError(t, w.SelectService("deep_cleaning"))
	require.NoError(t, w.Next())
	assert.ErrorIs(t, w.SelectCleaner("c1"), ErrUnknownOption)

	api.mu.Lock()
	api.cleanersErr = nil
	api.mu.Unlock()

	catalog := w.ReloadCatalog(context.Background())
	assert.Len(t, catalog.Cleaners, 2)
	assert.Empty(t, catalog.Failed)
	assert.Equal(t, 1, api.servicesCalls)
	assert.Equal(t, 2, api.cleanersCalls)
	assert.Equal(t, 1, api.areasCalls)

	require.NoError(t, w.SelectCleaner("c1"))

	// нечего перезагружать
	w.ReloadCatalog(context.Background())
	assert.Equal(t, 2, api.cleanersCalls)
}

func TestWizard_LoadCatalogDuringReloadIsNotLost(t *testing.T) {
	api := newFakeAPI()
	api.cleanersErr = backend.ErrInternal
	w, _, _ := newTestWizard(t, api, nil)

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	api.mu.Lock()
	api.cleanersErr = nil
	api.cleanersStarted = started
	api.cleanersRelease = release
	api.mu.Unlock()

	reloaded := make(chan struct{})
	go func() {
		w.ReloadCatalog(context.Background())
		close(reloaded)
	}()
	<-started

	// полная загрузка видит обновлённый каталог услуг
	api.mu.Lock()
	services := make(map[string]backend.ServiceEntry, len(api.services)+1)
	for k, v := range api.services {
		services[k] = v
	}
	services["window_washing"] = backend.ServiceEntry{Name: "Window Washing", BasePrice: 30}
	api.services = services
	api.mu.Unlock()

	loaded := make(chan struct{})
	go func() {
		w.LoadCatalog(context.Background())
		close(loaded)
	}()

	assert.Never(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return api.servicesCalls > 1
	}, 50*time.Millisecond, 5*time.Millisecond, "load waits for the running reload")

	close(release)
	<-reloaded
	<-loaded

	catalog := w.Catalog()
	assert.Len(t, catalog.Services, 5)
	assert.Len(t, catalog.Cleaners, 2)
	assert.Empty(t, catalog.Failed)
	assert.Equal(t, 2, api.servicesCalls)
}
