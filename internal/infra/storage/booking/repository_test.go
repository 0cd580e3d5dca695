package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/pkg/ptr"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:            "b1",
		ServiceType:   "deep_cleaning",
		CleanerID:     "c1",
		CleanerName:   "Ana Garcia",
		Date:          time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC),
		TimeSlot:      "10:00 AM",
		Hours:         3,
		Location:      "Tempe",
		Address:       "1 Main St",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		CustomerPhone: "555-0100",
		TotalAmount:   135,
		Status:        domain.StatusPendingPayment,
		PaymentStatus: domain.PaymentPending,
		RequestToken:  ptr.Ptr("token-1"),
	}
}

func bookingRow(b *domain.Booking) *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns).AddRow(
		b.ID, b.ServiceType, b.CleanerID, b.CleanerName, b.Date, b.TimeSlot, b.Hours,
		b.Location, b.Address, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.SpecialInstructions, b.TotalAmount, string(b.Status), string(b.PaymentStatus),
		nil, "token-1", time.Now(), nil,
	)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	created := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO bookings \(id,service_type`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	booking, err := repo.Create(context.Background(), testBooking())

	require.NoError(t, err)
	assert.Equal(t, created, booking.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateToken(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: "bookings_request_token_key"})

	_, err := repo.Create(context.Background(), testBooking())

	assert.ErrorIs(t, err, ErrDuplicateRequestToken)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	expected := testBooking()

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1`).
		WithArgs("b1").
		WillReturnRows(bookingRow(expected))

	booking, err := repo.GetByID(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, "b1", booking.ID)
	assert.Equal(t, 135.0, booking.TotalAmount)
	assert.Equal(t, domain.StatusPendingPayment, booking.Status)
	assert.Nil(t, booking.CustomerUserID)
	require.NotNil(t, booking.RequestToken)
	assert.Equal(t, "token-1", *booking.RequestToken)
	assert.Nil(t, booking.ConfirmedAt)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT .+ FROM bookings`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetByRequestToken(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE request_token = \$1`).
		WithArgs("token-1").
		WillReturnRows(bookingRow(testBooking()))

	booking, err := repo.GetByRequestToken(context.Background(), "token-1")

	require.NoError(t, err)
	assert.Equal(t, "b1", booking.ID)
}

func TestRepository_List(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE \(customer_user_id = \$1 OR customer_email = \$2\) ORDER BY booking_date DESC, created_at DESC`).
		WithArgs("u1", "jane@example.com").
		WillReturnRows(bookingRow(testBooking()))

	bookings, err := repo.List(context.Background(), domain.BookingsFilter{
		CustomerUserID: "u1",
		CustomerEmail:  "jane@example.com",
	})

	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_EmptyFilter(t *testing.T) {
	repo, mock := newMock(t)

	bookings, err := repo.List(context.Background(), domain.BookingsFilter{})

	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkPaid(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "first transition", affected: 1, want: true},
		{name: "already paid", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMock(t)

			mock.ExpectExec(`UPDATE bookings SET payment_status = \$1, status = \$2, confirmed_at = \$3 WHERE id = \$4 AND payment_status <> \$5`).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			changed, err := repo.MarkPaid(context.Background(), "b1", time.Now())

			require.NoError(t, err)
			assert.Equal(t, tt.want, changed)
		})
	}
}

func TestRepository_Cancel(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "pending booking", affected: 1, want: true},
		{name: "paid or already cancelled", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMock(t)

			mock.ExpectExec(`UPDATE bookings SET status = \$1 WHERE id = \$2 AND status = \$3 AND payment_status <> \$4`).
				WithArgs("cancelled", "b1", "pending_payment", "paid").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			changed, err := repo.Cancel(context.Background(), "b1")

			require.NoError(t, err)
			assert.Equal(t, tt.want, changed)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
