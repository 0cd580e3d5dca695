package stripe_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	getCheckoutStatus "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_checkout_status"
)

const (
	// HeaderSignature заголовок с подписью события
	HeaderSignature = "Stripe-Signature"

	// Stripe ограничивает события 64 КБ
	maxPayloadBytes = 65536
)

const (
	msgInvalidPayload        = "Invalid webhook payload"
	msgInvalidWebhook        = "Invalid webhook signature"
	msgProviderNotConfigured = "Payment provider not configured"
)

type Handler struct {
	useCase WebhookUseCase
	logger  Logger
}

func NewHandler(useCase WebhookUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

type webhookResponse struct {
	Status string `json:"status"`
}

// Handle POST /api/webhook/stripe
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes+1))
	if err != nil || len(payload) > maxPayloadBytes {
		h.logger.Warn("POST /webhook/stripe - Failed to read payload: size=%d, error=%v", len(payload), err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	err = h.useCase.HandleWebhook(r.Context(), &getCheckoutStatus.WebhookRequest{
		Payload:   payload,
		Signature: r.Header.Get(HeaderSignature),
	})
	if err != nil {
		switch {
		case errors.Is(err, getCheckoutStatus.ErrInvalidWebhook):
			handlers.RespondBadRequest(w, msgInvalidWebhook)
		case errors.Is(err, getCheckoutStatus.ErrProviderNotConfigured):
			handlers.RespondError(w, http.StatusInternalServerError, msgProviderNotConfigured)
		default:
			h.logger.Error("POST /webhook/stripe - Failed to process event: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, webhookResponse{Status: "success"})
}
