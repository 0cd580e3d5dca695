package create_checkout_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	createCheckout "github.com/m04kA/SMC-CleaningBooking/internal/usecase/create_checkout_session"
)

const (
	msgInvalidRequestBody    = "Invalid request body"
	msgInvalidInput          = "booking_id and an absolute origin_url are required"
	msgBookingNotFound       = "Booking not found"
	msgAlreadyPaid           = "Booking already paid"
	msgBookingCancelled      = "Booking cancelled"
	msgProviderNotConfigured = "Payment provider not configured"
	msgProviderError         = "Payment provider is unavailable, please try again"
)

type Handler struct {
	useCase CreateCheckoutSessionUseCase
	logger  Logger
}

func NewHandler(useCase CreateCheckoutSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/checkout/session
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckoutSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /checkout/session - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createCheckout.Request{
		BookingID: req.BookingID,
		OriginURL: req.OriginURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, createCheckout.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, createCheckout.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, createCheckout.ErrAlreadyPaid):
			handlers.RespondBadRequest(w, msgAlreadyPaid)
		case errors.Is(err, createCheckout.ErrBookingCancelled):
			handlers.RespondConflict(w, msgBookingCancelled)
		case errors.Is(err, createCheckout.ErrProviderNotConfigured):
			handlers.RespondError(w, http.StatusInternalServerError, msgProviderNotConfigured)
		case errors.Is(err, createCheckout.ErrProvider):
			handlers.RespondError(w, http.StatusBadGateway, msgProviderError)
		default:
			h.logger.Error("POST /checkout/session - Failed to create session: booking_id=%s, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /checkout/session - Session created: booking_id=%s, session_id=%s", req.BookingID, result.SessionID)
	handlers.RespondJSON(w, http.StatusOK, CreateCheckoutSessionResponse{
		URL:       result.URL,
		SessionID: result.SessionID,
	})
}
