package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningBooking/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"service_type",
	"cleaner_id",
	"cleaner_name",
	"booking_date",
	"time_slot",
	"hours",
	"location",
	"address",
	"customer_name",
	"customer_email",
	"customer_phone",
	"special_instructions",
	"total_amount",
	"status",
	"payment_status",
	"customer_user_id",
	"request_token",
	"created_at",
	"confirmed_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// ID генерирует вызывающая сторона. Если в контексте есть транзакция, запрос выполняется в ней.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"service_type",
			"cleaner_id",
			"cleaner_name",
			"booking_date",
			"time_slot",
			"hours",
			"location",
			"address",
			"customer_name",
			"customer_email",
			"customer_phone",
			"special_instructions",
			"total_amount",
			"status",
			"payment_status",
			"customer_user_id",
			"request_token",
		).
		Values(
			booking.ID,
			booking.ServiceType,
			booking.CleanerID,
			booking.CleanerName,
			booking.Date,
			booking.TimeSlot,
			booking.Hours,
			booking.Location,
			booking.Address,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.SpecialInstructions,
			booking.TotalAmount,
			booking.Status,
			booking.PaymentStatus,
			booking.CustomerUserID,
			booking.RequestToken,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == "bookings_request_token_key" {
			return nil, ErrDuplicateRequestToken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByRequestToken получает бронирование по Idempotency-Key запроса, которым оно было создано
func (r *Repository) GetByRequestToken(ctx context.Context, token string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByRequestToken", squirrel.Eq{"request_token": token})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return booking, nil
}

// List получает бронирования клиента: по владельцу или по email, если бронирование делалось без входа
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	owner := squirrel.Or{}
	if filter.CustomerUserID != "" {
		owner = append(owner, squirrel.Eq{"customer_user_id": filter.CustomerUserID})
	}
	if filter.CustomerEmail != "" {
		owner = append(owner, squirrel.Eq{"customer_email": filter.CustomerEmail})
	}
	if len(owner) == 0 {
		return []*domain.Booking{}, nil
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(owner).
		OrderBy("booking_date DESC", "created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// MarkPaid переводит бронирование в confirmed/paid
// Возвращает false, если бронирование уже было оплачено ранее
func (r *Repository) MarkPaid(ctx context.Context, id string, confirmedAt time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", domain.PaymentPaid).
		Set("status", domain.StatusConfirmed).
		Set("confirmed_at", confirmedAt).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"payment_status": domain.PaymentPaid}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkPaid - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking        domain.Booking
		customerUserID sql.NullString
		requestToken   sql.NullString
		confirmedAt    sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.ServiceType,
		&booking.CleanerID,
		&booking.CleanerName,
		&booking.Date,
		&booking.TimeSlot,
		&booking.Hours,
		&booking.Location,
		&booking.Address,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.SpecialInstructions,
		&booking.TotalAmount,
		&booking.Status,
		&booking.PaymentStatus,
		&customerUserID,
		&requestToken,
		&booking.CreatedAt,
		&confirmedAt,
	)
	if err != nil {
		return nil, err
	}

	if customerUserID.Valid {
		booking.CustomerUserID = &customerUserID.String
	}
	if requestToken.Valid {
		booking.RequestToken = &requestToken.String
	}
	if confirmedAt.Valid {
		booking.ConfirmedAt = &confirmedAt.Time
	}

	return &booking, nil
}

// Cancel переводит неоплаченное бронирование в cancelled
// Возвращает false, если бронирование уже оплачено или не ожидает оплаты
func (r *Repository) Cancel(ctx context.Context, id string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPendingPayment}).
		Where(squirrel.NotEq{"payment_status": domain.PaymentPaid}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}
