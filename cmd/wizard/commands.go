package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/backend"
	"github.com/m04kA/SMC-CleaningBooking/internal/wizard"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func (a *app) newWizard() *wizard.Wizard {
	return wizard.NewWizard(
		a.client,
		consoleRedirector{out: a.out},
		consoleNotifier{out: a.out},
		wizard.TimerSleeper{},
		wizard.Config{
			OriginURL:    a.cfg.Wizard.OriginURL,
			PollInterval: a.cfg.Wizard.PollIntervalDuration(),
			PollAttempts: a.cfg.Wizard.PollAttempts,
		},
		a.log,
	)
}

// loadCatalog загружает каталог и один раз повторяет то, что не загрузилось
func (a *app) loadCatalog(ctx context.Context, w *wizard.Wizard) *wizard.Catalog {
	catalog := w.LoadCatalog(ctx)
	if len(catalog.Failed) > 0 {
		catalog = w.ReloadCatalog(ctx)
	}
	for _, part := range catalog.FailedParts() {
		fmt.Fprintf(a.out, "Could not load %s: %s\n", part, backend.Detail(catalog.Failed[part]))
	}
	return catalog
}

func (a *app) catalog(ctx context.Context) error {
	catalog := a.loadCatalog(ctx, a.newWizard())

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SERVICE\tNAME\tPRICE/HR")
	for _, s := range catalog.Services {
		fmt.Fprintf(tw, "%s\t%s\t$%.2f\n", s.Key, s.Name, s.BasePrice)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "CLEANER\tNAME\tRATING\tAVAILABLE")
	for _, c := range catalog.Cleaners {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%t\n", c.ID, c.Name, c.Rating, c.Available)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nService areas: %s\n", strings.Join(catalog.Areas, ", "))
	fmt.Fprintf(a.out, "Time slots: %s\n", strings.Join(domain.TimeSlots, ", "))
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := newFlagSet("book")
	service := fs.String("service", "", "service key, e.g. deep_cleaning")
	cleaner := fs.String("cleaner", "", "cleaner id")
	date := fs.String("date", "", "date, YYYY-MM-DD")
	slot := fs.String("time", "", `time slot, e.g. "10:00 AM"`)
	hours := fs.Int("hours", domain.DefaultHours, "hours, 1-8")
	area := fs.String("area", "", "service area (city)")
	name := fs.String("name", "", "customer name")
	email := fs.String("email", "", "customer email")
	phone := fs.String("phone", "", "customer phone")
	address := fs.String("address", "", "street address")
	instructions := fs.String("instructions", "", "special instructions")
	wait := fs.Bool("wait", false, "poll the payment status after printing the payment link")
	if err := fs.Parse(args); err != nil {
		return err
	}

	w := a.newWizard()
	a.loadCatalog(ctx, w)

	if user, ok := a.session.User(); ok {
		if err := w.PrefillCustomer(user); err != nil {
			return err
		}
	}

	// Шаг 1: услуга
	if err := w.SelectService(*service); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if err := w.Next(); err != nil {
		return err
	}

	// Шаг 2: исполнитель
	if err := w.SelectCleaner(*cleaner); err != nil {
		return fmt.Errorf("cleaner: %w", err)
	}
	if err := w.Next(); err != nil {
		return err
	}

	// Шаг 3: дата, время и контакты
	day, err := time.Parse(domain.DateFormat, *date)
	if err != nil {
		return fmt.Errorf("date: expected YYYY-MM-DD: %w", err)
	}
	if err := w.SetDate(day); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if err := w.SetTimeSlot(*slot); err != nil {
		return fmt.Errorf("time: %w", err)
	}
	if err := w.SetHours(*hours); err != nil {
		return fmt.Errorf("hours: %w", err)
	}
	if err := w.SetArea(*area); err != nil {
		return fmt.Errorf("area: %w", err)
	}

	customer := w.Draft().Customer
	overrideIfSet(&customer.Name, *name)
	overrideIfSet(&customer.Email, *email)
	overrideIfSet(&customer.Phone, *phone)
	overrideIfSet(&customer.Address, *address)
	overrideIfSet(&customer.Instructions, *instructions)
	if err := w.SetCustomer(customer); err != nil {
		return err
	}

	if err := w.Next(); err != nil {
		if errors.Is(err, wizard.ErrStepIncomplete) {
			a.printChecklist(w)
		}
		return err
	}

	// Шаг 4: проверка и оплата
	a.printReview(w)
	if err := w.Pay(ctx); err != nil {
		if s, ok := w.Submission(); ok {
			fmt.Fprintf(a.out, "Booking %s was created but is not paid yet.\n", s.BookingID)
		}
		return err
	}

	if !*wait {
		fmt.Fprintln(a.out, "After paying, run: wizard resume -return-url '<the URL you were sent back to>'")
		return nil
	}
	return a.await(ctx, w)
}

func (a *app) resume(ctx context.Context, args []string) error {
	fs := newFlagSet("resume")
	returnURL := fs.String("return-url", "", "URL the payment provider redirected back to")
	if err := fs.Parse(args); err != nil {
		return err
	}

	w := a.newWizard()
	kind, err := w.ResumeFromURL(*returnURL)
	if err != nil {
		return err
	}

	switch kind {
	case wizard.ReturnCancelled:
		fmt.Fprintln(a.out, "Payment was cancelled. Your booking is kept unpaid; run book again to retry.")
		return nil
	case wizard.ReturnNone:
		return errors.New("return URL has no session_id and booking_id")
	}

	return a.await(ctx, w)
}

// await опрашивает статус оплаты; Ctrl+C останавливает опрос явно
func (a *app) await(ctx context.Context, w *wizard.Wizard) error {
	fmt.Fprintln(a.out, "Checking payment status...")

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			w.CancelPolling()
		case <-stop:
		}
	}()

	result, err := w.AwaitPayment(ctx)
	if err != nil {
		return err
	}

	if result.Outcome == wizard.OutcomeCancelled {
		fmt.Fprintf(a.out, "Stopped checking. Resume later with session %s.\n", w.SessionID())
		return exitCode(130)
	}

	step := w.Step()
	fmt.Fprintln(a.out, step.Message())
	if step == wizard.StepPollError && w.LastError() != "" {
		fmt.Fprintf(a.out, "Details: %s\n", w.LastError())
	}
	if step != wizard.StepConfirmed {
		return exitCode(3)
	}
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", envOr("WIZARD_PASSWORD", ""), "password (or WIZARD_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", user.FullName(), user.Email)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	email := fs.String("email", "", "account email")
	password := fs.String("password", envOr("WIZARD_PASSWORD", ""), "password, at least 8 characters (or WIZARD_PASSWORD)")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	phone := fs.String("phone", "", "phone (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := backend.RegisterRequest{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
		Role:      string(domain.RoleCustomer),
	}
	if *phone != "" {
		req.Phone = phone
	}

	user, err := a.session.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered and signed in as %s (%s)\n", user.FullName(), user.Email)
	return nil
}

func (a *app) logout() error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *app) bookings(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		return errors.New("not signed in, run: wizard login -email <email>")
	}

	list, err := a.client.GetCustomerBookings(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No bookings yet.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSERVICE\tDATE\tTIME\tTOTAL\tSTATUS\tPAYMENT")
	for _, b := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t$%.2f\t%s\t%s\n",
			b.ID, b.ServiceType, b.Date, b.Time, b.TotalAmount, b.Status, b.PaymentStatus)
	}
	return tw.Flush()
}

func (a *app) cancel(ctx context.Context, args []string) error {
	fs := newFlagSet("cancel")
	bookingID := fs.String("booking", "", "id of an unpaid booking")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !a.session.IsAuthenticated() {
		return errors.New("not signed in, run: wizard login -email <email>")
	}

	booking, err := a.client.CancelBooking(ctx, *bookingID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Booking %s is %s.\n", booking.ID, booking.Status)
	return nil
}

func (a *app) printChecklist(w *wizard.Wizard) {
	fmt.Fprintln(a.out, "Please complete the booking:")
	for _, item := range w.Checklist() {
		mark := " "
		if item.Done {
			mark = "x"
		}
		fmt.Fprintf(a.out, "  [%s] %s\n", mark, item.Label)
	}
}

func (a *app) printReview(w *wizard.Wizard) {
	d := w.Draft()
	catalog := w.Catalog()

	service, _ := catalog.Service(d.ServiceKey)
	cleaner, _ := catalog.Cleaner(d.CleanerID)
	total, _ := w.Total()

	fmt.Fprintln(a.out, "Review your booking:")
	fmt.Fprintf(a.out, "  Service:  %s\n", service.Name)
	fmt.Fprintf(a.out, "  Cleaner:  %s\n", cleaner.Name)
	fmt.Fprintf(a.out, "  When:     %s at %s, %d h\n", d.Date.Format(domain.DateFormat), d.TimeSlot, d.Hours)
	fmt.Fprintf(a.out, "  Where:    %s, %s\n", d.Customer.Address, d.Area)
	fmt.Fprintf(a.out, "  Customer: %s <%s>, %s\n", d.Customer.Name, d.Customer.Email, d.Customer.Phone)
	fmt.Fprintf(a.out, "  Total:    $%.2f\n", total)
}

func overrideIfSet(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}
