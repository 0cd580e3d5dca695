package stripe_webhook

import (
	"context"

	getCheckoutStatus "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_checkout_status"
)

type WebhookUseCase interface {
	HandleWebhook(ctx context.Context, req *getCheckoutStatus.WebhookRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
