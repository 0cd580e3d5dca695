package get_services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBooking/internal/service/catalog"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

func TestHandle_ServesCatalogKeyedByServiceType(t *testing.T) {
	svc := catalog.NewService(nil, logger.NewNop())
	rec := httptest.NewRecorder()

	NewHandler(svc).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.ServicesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Deep Cleaning", body.Services["deep_cleaning"].Name)
	assert.Equal(t, 45.0, body.Services["deep_cleaning"].BasePrice)
}
