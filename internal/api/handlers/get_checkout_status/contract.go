package get_checkout_status

import (
	"context"

	getCheckoutStatus "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_checkout_status"
)

type GetCheckoutStatusUseCase interface {
	Execute(ctx context.Context, req *getCheckoutStatus.Request) (*getCheckoutStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
