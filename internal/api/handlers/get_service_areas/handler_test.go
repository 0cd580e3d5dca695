package get_service_areas

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CleaningBooking/internal/service/catalog"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

func TestHandle_ServesAreas(t *testing.T) {
	svc := catalog.NewService(nil, logger.NewNop())
	rec := httptest.NewRecorder()

	NewHandler(svc).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/service-areas", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t,
		`{"areas":["Tempe","Chandler","Gilbert","Mesa","Phoenix","Glendale","Scottsdale","Avondale"]}`,
		rec.Body.String())
}
