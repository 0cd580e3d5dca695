package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	getAvailableSlots "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

type stubUseCase struct {
	resp *getAvailableSlots.Response
	err  error
}

func (s stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	if s.resp != nil {
		s.resp.Date = req.Date
	}
	return s.resp, s.err
}

func TestHandle(t *testing.T) {
	open := &getAvailableSlots.Response{Open: true, Slots: []getAvailableSlots.Slot{
		{Label: "8:00 AM", StartTime: time.Date(2030, 6, 4, 8, 0, 0, 0, time.UTC)},
		{Label: "9:00 AM", StartTime: time.Date(2030, 6, 4, 9, 0, 0, 0, time.UTC)},
	}}

	tests := []struct {
		name       string
		query      string
		uc         stubUseCase
		wantStatus int
		wantBody   string
	}{
		{"open day", "?date=2030-06-04", stubUseCase{resp: open}, http.StatusOK,
			`{"date":"2030-06-04","available":true,"time_slots":["8:00 AM","9:00 AM"]}`},
		{"closed day", "?date=2030-06-02", stubUseCase{resp: &getAvailableSlots.Response{}}, http.StatusOK,
			`{"date":"2030-06-02","available":false,"time_slots":[]}`},
		{"missing date", "", stubUseCase{}, http.StatusBadRequest, `{"detail":"date is required"}`},
		{"bad date", "?date=tomorrow", stubUseCase{}, http.StatusBadRequest, `{"detail":"Invalid date format, expected YYYY-MM-DD"}`},
		{"past date", "?date=2001-01-01", stubUseCase{err: getAvailableSlots.ErrInvalidDate}, http.StatusBadRequest, `{"detail":"Date cannot be in the past"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.uc, logger.NewNop())
			rec := httptest.NewRecorder()

			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/time-slots"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
