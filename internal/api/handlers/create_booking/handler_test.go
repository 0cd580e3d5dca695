package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/auth/models"
	createBooking "github.com/m04kA/SMC-CleaningBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

const validBody = `{
	"service_type": "deep_cleaning",
	"cleaner_id": "c1",
	"date": "2030-06-04",
	"time": "10:00 AM",
	"hours": 3,
	"location": "Tempe",
	"address": "1 Main St",
	"customer_name": "Jane Doe",
	"customer_email": "jane@example.com",
	"customer_phone": "555-0100"
}`

func TestHandle_Success(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{BookingID: "b1", TotalAmount: 135}}
	h := NewHandler(uc, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validBody))
	req.Header.Set(HeaderIdempotencyKey, "key-1")
	req = req.WithContext(middleware.WithClaims(req.Context(), &models.Claims{UserID: "u1"}))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"booking_id":"b1","total_amount":135,"message":"Booking created successfully"}`, rec.Body.String())
	require.NotNil(t, uc.got)
	assert.Equal(t, "key-1", uc.got.RequestToken)
	require.NotNil(t, uc.got.CustomerUserID)
	assert.Equal(t, "u1", *uc.got.CustomerUserID)
	assert.Equal(t, "10:00 AM", uc.got.TimeSlot)
	assert.Empty(t, rec.Header().Get(HeaderReplayed))
}

func TestHandle_ReplayedSetsHeader(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{BookingID: "b1", TotalAmount: 135, Replayed: true}}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validBody)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Header().Get(HeaderReplayed))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"malformed body", `{`, nil, http.StatusBadRequest, msgInvalidRequestBody},
		{"bad date", strings.Replace(validBody, "2030-06-04", "06/04/2030", 1), nil, http.StatusBadRequest, msgInvalidDate},
		{"unknown service", validBody, createBooking.ErrInvalidServiceType, http.StatusBadRequest, msgInvalidServiceType},
		{"sunday", validBody, createBooking.ErrExcludedWeekday, http.StatusBadRequest, msgExcludedWeekday},
		{"missing fields", validBody, fmt.Errorf("%w: address is required", createBooking.ErrInvalidInput), http.StatusBadRequest, msgMissingFields},
		{"in progress", validBody, createBooking.ErrRequestInProgress, http.StatusConflict, msgRequestInProgress},
		{"internal", validBody, createBooking.ErrInternal, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()

			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"detail":%q}`, tt.wantDetail), rec.Body.String())
		})
	}
}
