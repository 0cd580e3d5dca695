package get_checkout_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	getCheckoutStatus "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_checkout_status"
)

const (
	msgSessionNotFound       = "Payment session not found"
	msgInvalidSessionID      = "Invalid session id"
	msgProviderNotConfigured = "Payment provider not configured"
	msgProviderError         = "Payment provider is unavailable, please try again"
)

type Handler struct {
	useCase GetCheckoutStatusUseCase
	logger  Logger
}

func NewHandler(useCase GetCheckoutStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/checkout/status/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.useCase.Execute(r.Context(), &getCheckoutStatus.Request{SessionID: sessionID})
	if err != nil {
		switch {
		case errors.Is(err, getCheckoutStatus.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSessionID)
		case errors.Is(err, getCheckoutStatus.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgSessionNotFound)
		case errors.Is(err, getCheckoutStatus.ErrProviderNotConfigured):
			handlers.RespondError(w, http.StatusInternalServerError, msgProviderNotConfigured)
		case errors.Is(err, getCheckoutStatus.ErrProvider):
			handlers.RespondError(w, http.StatusBadGateway, msgProviderError)
		default:
			h.logger.Error("GET /checkout/status/{id} - Failed to get status: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
