package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/bookings"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/bookings/models"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgInvalidStatus    = "Invalid booking status"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/customer/bookings
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	req := &models.GetCustomerBookingsRequest{
		UserID: claims.UserID,
		Email:  claims.Email,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetCustomerBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /customer/bookings - Failed to get bookings: user_id=%s, error=%v", claims.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /customer/bookings - user_id=%s, count=%d", claims.UserID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
