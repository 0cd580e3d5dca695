package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/backend"
)

// Среда, 14 октября 2026
var testNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeAPI struct {
	mu sync.Mutex

	services    map[string]backend.ServiceEntry
	servicesErr error
	cleaners    []backend.Cleaner
	cleanersErr error
	// одноразовая блокировка следующего GetCleaners
	cleanersStarted chan struct{}
	cleanersRelease chan struct{}
	areas       []string
	areasErr    error

	createErr     error
	createStarted chan struct{}
	createRelease chan struct{}
	sessionErr    error
	bookingErr    error

	statuses    []*backend.CheckoutStatus
	statusErrAt int // номер попытки (с 1), на которой вернуть statusErr
	statusErr   error

	servicesCalls int
	cleanersCalls int
	areasCalls    int
	createCalls   int
	tokens        []string
	sessionCalls  int
	statusCalls   int
	bookingCalls  int
	bookingIDs    []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		services: map[string]backend.ServiceEntry{
			"deep_cleaning":       {Name: "Deep Cleaning", BasePrice: 45},
			"regular_cleaning":    {Name: "Regular Cleaning", BasePrice: 40},
			"move_in_out":         {Name: "Move In/Out Cleaning", BasePrice: 70},
			"janitorial_cleaning": {Name: "Janitorial Cleaning", BasePrice: 70},
		},
		cleaners: []backend.Cleaner{
			{ID: "c1", Name: "Ana Garcia", Rating: 4.9, Available: true},
			{ID: "c2", Name: "Busy Bob", Rating: 4.1, Available: false},
		},
		areas: []string{"Tempe", "Mesa"},
	}
}

func (f *fakeAPI) GetServices(context.Context) (map[string]backend.ServiceEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.servicesCalls++
	if f.servicesErr != nil {
		return nil, f.servicesErr
	}
	return f.services, nil
}

func (f *fakeAPI) GetCleaners(context.Context) ([]backend.Cleaner, error) {
	f.mu.Lock()
	f.cleanersCalls++
	started, release := f.cleanersStarted, f.cleanersRelease
	f.cleanersStarted, f.cleanersRelease = nil, nil
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cleanersErr != nil {
		return nil, f.cleanersErr
	}
	return f.cleaners, nil
}

func (f *fakeAPI) GetServiceAreas(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.areasCalls++
	if f.areasErr != nil {
		return nil, f.areasErr
	}
	return f.areas, nil
}

func (f *fakeAPI) CreateBooking(_ context.Context, req backend.CreateBookingRequest, token string) (*backend.CreateBookingResponse, error) {
	f.mu.Lock()
	f.createCalls++
	f.tokens = append(f.tokens, token)
	started, release := f.createStarted, f.createRelease
	createErr := f.createErr
	n := f.createCalls
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if createErr != nil {
		return nil, createErr
	}

	price := f.services[req.ServiceType].BasePrice
	return &backend.CreateBookingResponse{
		BookingID:   "booking-" + string(rune('0'+n)),
		TotalAmount: float64(req.Hours) * price,
	}, nil
}

func (f *fakeAPI) CreateCheckoutSession(_ context.Context, bookingID, _ string) (*backend.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionCalls++
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	return &backend.CheckoutSession{URL: "https://pay.example/cs_" + bookingID, SessionID: "cs_" + bookingID}, nil
}

func (f *fakeAPI) GetCheckoutStatus(context.Context, string) (*backend.CheckoutStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErrAt != 0 && f.statusCalls == f.statusErrAt {
		return nil, f.statusErr
	}
	if len(f.statuses) == 0 {
		return pending(), nil
	}
	idx := f.statusCalls - 1
	if idx >= len(f.statuses) {
		idx = len(f.statuses) - 1
	}
	s := *f.statuses[idx]
	return &s, nil
}

func (f *fakeAPI) GetBooking(_ context.Context, bookingID string) (*backend.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookingCalls++
	f.bookingIDs = append(f.bookingIDs, bookingID)
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	return &backend.Booking{ID: bookingID, Status: "confirmed", PaymentStatus: "paid"}, nil
}

func pending() *backend.CheckoutStatus {
	return &backend.CheckoutStatus{Status: "open", PaymentStatus: "unpaid"}
}

func paid() *backend.CheckoutStatus {
	return &backend.CheckoutStatus{Status: "complete", PaymentStatus: "paid"}
}

func expired() *backend.CheckoutStatus {
	return &backend.CheckoutStatus{Status: "expired", PaymentStatus: "unpaid"}
}

type recordingSleeper struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.waits = append(s.waits, d)
	s.mu.Unlock()
	return ctx.Err()
}

func (s *recordingSleeper) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.waits)
}

// blockingSleeper сигналит о входе и ждёт отмены контекста
type blockingSleeper struct {
	entered chan struct{}
}

func (s blockingSleeper) Sleep(ctx context.Context, _ time.Duration) error {
	s.entered <- struct{}{}
	<-ctx.Done()
	return ctx.Err()
}

type fakeRedirector struct {
	urls []string
	err  error
}

func (r *fakeRedirector) Redirect(_ context.Context, url string) error {
	if r.err != nil {
		return r.err
	}
	r.urls = append(r.urls, url)
	return nil
}

type fakeNotifier struct {
	bookings []*backend.Booking
}

func (n *fakeNotifier) Notify(_ context.Context, b *backend.Booking) error {
	n.bookings = append(n.bookings, b)
	return nil
}
