package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CleaningBooking/internal/service/bookings"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

type stubService struct{}

func (stubService) GetByID(_ context.Context, id string) (*models.BookingResponse, error) {
	switch id {
	case "b1":
		return &models.BookingResponse{ID: "b1", Status: "confirmed", PaymentStatus: "paid"}, nil
	case "boom":
		return nil, bookings.ErrInternal
	default:
		return nil, bookings.ErrBookingNotFound
	}
}

func serve(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := mux.NewRouter()
	router.HandleFunc("/api/bookings/{bookingId}", NewHandler(stubService{}, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(t, "/api/bookings/b1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"payment_status":"paid"`)

	rec = serve(t, "/api/bookings/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Booking not found"}`, rec.Body.String())

	rec = serve(t, "/api/bookings/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
