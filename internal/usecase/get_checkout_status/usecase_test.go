package get_checkout_status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	paymentRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/payment"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

type fakePayments struct {
	txs     map[string]*domain.PaymentTransaction
	updates int
}

func (f *fakePayments) GetBySessionID(_ context.Context, id string) (*domain.PaymentTransaction, error) {
	tx, ok := f.txs[id]
	if !ok {
		return nil, paymentRepo.ErrTransactionNotFound
	}
	cp := *tx
	return &cp, nil
}

func (f *fakePayments) UpdateStatus(_ context.Context, id string, status domain.TransactionStatus, ps domain.PaymentStatus, _ time.Time) error {
	f.updates++
	f.txs[id].Status = status
	f.txs[id].PaymentStatus = ps
	return nil
}

type fakeBookings struct {
	paid      map[string]bool
	markCalls int
}

func (f *fakeBookings) MarkPaid(_ context.Context, id string, _ time.Time) (bool, error) {
	f.markCalls++
	if f.paid[id] {
		return false, nil
	}
	f.paid[id] = true
	return true, nil
}

type fakeProvider struct {
	status *domain.CheckoutStatus
	event  *domain.WebhookEvent
	err    error
}

func (f *fakeProvider) GetCheckoutStatus(_ context.Context, _ string) (*domain.CheckoutStatus, error) {
	return f.status, f.err
}

func (f *fakeProvider) ParseWebhook(_ []byte, _ string) (*domain.WebhookEvent, error) {
	return f.event, f.err
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type countingMetrics struct{ resolved []string }

func (m *countingMetrics) IncPaymentResolved(s string) { m.resolved = append(m.resolved, s) }

func newFixture(provider PaymentProvider) (*UseCase, *fakePayments, *fakeBookings, *countingMetrics) {
	payments := &fakePayments{txs: map[string]*domain.PaymentTransaction{
		"cs_1": {SessionID: "cs_1", BookingID: "b1", Status: domain.TransactionInitiated, PaymentStatus: domain.PaymentPending},
	}}
	bookings := &fakeBookings{paid: map[string]bool{}}
	m := &countingMetrics{}
	uc := NewUseCase(payments, bookings, provider, inlineTx{}, m, logger.NewNop())
	return uc, payments, bookings, m
}

func TestExecute_PaidConfirmsBookingOnce(t *testing.T) {
	provider := &fakeProvider{status: &domain.CheckoutStatus{
		SessionID: "cs_1", Status: domain.TransactionComplete, PaymentStatus: domain.PaymentPaid,
		AmountTotal: 13500, Currency: "usd",
	}}
	uc, payments, bookings, m := newFixture(provider)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "cs_1"})
	require.NoError(t, err)
	assert.Equal(t, "complete", resp.Status)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, int64(13500), resp.AmountTotal)
	assert.Equal(t, "b1", resp.BookingID)

	_, err = uc.Execute(context.Background(), &Request{SessionID: "cs_1"})
	require.NoError(t, err)

	assert.Equal(t, 2, payments.updates)
	assert.Equal(t, 2, bookings.markCalls)
	assert.Equal(t, []string{"paid"}, m.resolved)
}

func TestExecute_PendingDoesNotTouchBooking(t *testing.T) {
	provider := &fakeProvider{status: &domain.CheckoutStatus{
		SessionID: "cs_1", Status: domain.TransactionOpen, PaymentStatus: domain.PaymentUnpaid,
	}}
	uc, payments, bookings, _ := newFixture(provider)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "cs_1"})

	require.NoError(t, err)
	assert.Equal(t, "unpaid", resp.PaymentStatus)
	assert.Equal(t, domain.TransactionOpen, payments.txs["cs_1"].Status)
	assert.Zero(t, bookings.markCalls)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("unknown session", func(t *testing.T) {
		uc, _, _, _ := newFixture(&fakeProvider{})
		_, err := uc.Execute(context.Background(), &Request{SessionID: "cs_missing"})
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("empty session", func(t *testing.T) {
		uc, _, _, _ := newFixture(&fakeProvider{})
		_, err := uc.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("provider failure", func(t *testing.T) {
		uc, _, _, _ := newFixture(&fakeProvider{err: errors.New("timeout")})
		_, err := uc.Execute(context.Background(), &Request{SessionID: "cs_1"})
		assert.ErrorIs(t, err, ErrProvider)
	})

	t.Run("no provider", func(t *testing.T) {
		uc, _, _, _ := newFixture(nil)
		_, err := uc.Execute(context.Background(), &Request{SessionID: "cs_1"})
		assert.ErrorIs(t, err, ErrProviderNotConfigured)
	})
}

func TestHandleWebhook(t *testing.T) {
	t.Run("completed event marks booking paid", func(t *testing.T) {
		uc, payments, bookings, m := newFixture(&fakeProvider{event: &domain.WebhookEvent{
			Type: domain.EventCheckoutCompleted, SessionID: "cs_1", PaymentStatus: domain.PaymentPaid,
		}})

		err := uc.HandleWebhook(context.Background(), &WebhookRequest{Payload: []byte("{}"), Signature: "sig"})

		require.NoError(t, err)
		assert.Equal(t, domain.TransactionComplete, payments.txs["cs_1"].Status)
		assert.True(t, bookings.paid["b1"])
		assert.Equal(t, []string{"paid"}, m.resolved)
	})

	t.Run("other event ignored", func(t *testing.T) {
		uc, payments, _, _ := newFixture(&fakeProvider{event: &domain.WebhookEvent{Type: "checkout.session.expired", SessionID: "cs_1"}})

		require.NoError(t, uc.HandleWebhook(context.Background(), &WebhookRequest{}))
		assert.Zero(t, payments.updates)
	})

	t.Run("unknown session skipped", func(t *testing.T) {
		uc, payments, _, _ := newFixture(&fakeProvider{event: &domain.WebhookEvent{
			Type: domain.EventCheckoutCompleted, SessionID: "cs_other", PaymentStatus: domain.PaymentPaid,
		}})

		require.NoError(t, uc.HandleWebhook(context.Background(), &WebhookRequest{}))
		assert.Zero(t, payments.updates)
	})

	t.Run("bad signature", func(t *testing.T) {
		uc, _, _, _ := newFixture(&fakeProvider{err: errors.New("signature mismatch")})

		err := uc.HandleWebhook(context.Background(), &WebhookRequest{})
		assert.ErrorIs(t, err, ErrInvalidWebhook)
	})
}
