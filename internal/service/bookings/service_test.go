package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
	"github.com/m04kA/SMC-CleaningBooking/pkg/ptr"
)

type fakeRepo struct {
	booking    *domain.Booking
	list       []*domain.Booking
	err        error
	lastFilter domain.BookingsFilter

	cancelled   bool
	cancelErr   error
	cancelCalls int
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.list, f.err
}

func (f *fakeRepo) Cancel(_ context.Context, _ string) (bool, error) {
	f.cancelCalls++
	return f.cancelled, f.cancelErr
}

func sampleBooking() *domain.Booking {
	confirmed := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:            "b1",
		ServiceType:   "deep_cleaning",
		Date:          time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot:      "10:00 AM",
		Hours:         3,
		TotalAmount:   135,
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPaid,
		ConfirmedAt:   &confirmed,
	}
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := NewService(&fakeRepo{booking: sampleBooking()}, logger.NewNop())

		resp, err := svc.GetByID(context.Background(), "b1")

		require.NoError(t, err)
		assert.Equal(t, "2025-10-15", resp.Date)
		assert.Equal(t, "10:00 AM", resp.Time)
		assert.Equal(t, "paid", resp.PaymentStatus)
		require.NotNil(t, resp.ConfirmedAt)
		assert.Equal(t, "2025-10-14T12:00:00Z", *resp.ConfirmedAt)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, logger.NewNop())

		_, err := svc.GetByID(context.Background(), "missing")

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("repository error", func(t *testing.T) {
		svc := NewService(&fakeRepo{err: errors.New("db down")}, logger.NewNop())

		_, err := svc.GetByID(context.Background(), "b1")

		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestGetCustomerBookings(t *testing.T) {
	t.Run("filter by user and email", func(t *testing.T) {
		repo := &fakeRepo{list: []*domain.Booking{sampleBooking()}}
		svc := NewService(repo, logger.NewNop())

		resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
			UserID: "u1", Email: "Jane@Example.com", Status: ptr.Ptr("confirmed"),
		})

		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
		assert.Equal(t, "u1", repo.lastFilter.CustomerUserID)
		assert.Equal(t, "jane@example.com", repo.lastFilter.CustomerEmail)
		require.NotNil(t, repo.lastFilter.Status)
		assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, logger.NewNop())

		resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{UserID: "u1"})

		require.NoError(t, err)
		assert.NotNil(t, resp.Bookings)
		assert.Empty(t, resp.Bookings)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, logger.NewNop())

		_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
			UserID: "u1", Status: ptr.Ptr("weird"),
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func pendingBooking() *domain.Booking {
	b := sampleBooking()
	b.Status = domain.StatusPendingPayment
	b.PaymentStatus = domain.PaymentPending
	b.ConfirmedAt = nil
	b.CustomerUserID = ptr.Ptr("u1")
	b.CustomerEmail = "jane@example.com"
	return b
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name      string
		booking   *domain.Booking
		req       models.CancelBookingRequest
		cancelled bool
		wantErr   error
		wantCalls int
	}{
		{
			name:      "owner by user id",
			booking:   pendingBooking(),
			req:       models.CancelBookingRequest{BookingID: "b1", UserID: "u1"},
			cancelled: true,
			wantCalls: 1,
		},
		{
			name:      "owner by email",
			booking:   pendingBooking(),
			req:       models.CancelBookingRequest{BookingID: "b1", UserID: "u2", Email: "JANE@example.com"},
			cancelled: true,
			wantCalls: 1,
		},
		{
			name:    "other customer",
			booking: pendingBooking(),
			req:     models.CancelBookingRequest{BookingID: "b1", UserID: "u2", Email: "bob@example.com"},
			wantErr: ErrAccessDenied,
		},
		{
			name: "already paid",
			booking: func() *domain.Booking {
				b := sampleBooking()
				b.CustomerUserID = ptr.Ptr("u1")
				return b
			}(),
			req:     models.CancelBookingRequest{BookingID: "b1", UserID: "u1"},
			wantErr: ErrCannotCancel,
		},
		{
			name:      "paid concurrently",
			booking:   pendingBooking(),
			req:       models.CancelBookingRequest{BookingID: "b1", UserID: "u1"},
			cancelled: false,
			wantErr:   ErrCannotCancel,
			wantCalls: 1,
		},
		{
			name:    "not found",
			booking: pendingBooking(),
			req:     models.CancelBookingRequest{BookingID: "missing", UserID: "u1"},
			wantErr: ErrBookingNotFound,
		},
		{
			name:    "empty id",
			booking: pendingBooking(),
			req:     models.CancelBookingRequest{UserID: "u1"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{booking: tt.booking, cancelled: tt.cancelled}
			svc := NewService(repo, logger.NewNop())

			resp, err := svc.Cancel(context.Background(), &tt.req)

			assert.Equal(t, tt.wantCalls, repo.cancelCalls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "cancelled", resp.Status)
		})
	}
}
