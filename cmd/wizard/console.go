package main

import (
	"context"
	"fmt"
	"io"

	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/backend"
)

// consoleRedirector в терминале переход на оплату - это ссылка, которую открывает пользователь
type consoleRedirector struct {
	out io.Writer
}

func (r consoleRedirector) Redirect(_ context.Context, url string) error {
	_, err := fmt.Fprintf(r.out, "Open this link to pay:\n  %s\n", url)
	return err
}

type consoleNotifier struct {
	out io.Writer
}

func (n consoleNotifier) Notify(_ context.Context, b *backend.Booking) error {
	_, err := fmt.Fprintf(n.out, "Booking %s confirmed: %s with %s on %s at %s, total $%.2f\n",
		b.ID, b.ServiceType, b.CleanerName, b.Date, b.Time, b.TotalAmount)
	return err
}
