package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningBooking/pkg/psqlbuilder"
)

// Repository репозиторий платёжных транзакций
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория транзакций
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет транзакцию новой checkout-сессии
func (r *Repository) Create(ctx context.Context, tx *domain.PaymentTransaction) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_transactions").
		Columns(
			"id",
			"session_id",
			"booking_id",
			"amount",
			"currency",
			"payment_status",
			"status",
			"customer_email",
			"created_at",
			"updated_at",
		).
		Values(
			tx.ID,
			tx.SessionID,
			tx.BookingID,
			tx.Amount,
			tx.Currency,
			tx.PaymentStatus,
			tx.Status,
			tx.CustomerEmail,
			tx.CreatedAt,
			tx.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetBySessionID получает транзакцию по ID сессии провайдера
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetBySessionID(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"session_id",
		"booking_id",
		"amount",
		"currency",
		"payment_status",
		"status",
		"customer_email",
		"created_at",
		"updated_at",
	).
		From("payment_transactions").
		Where(squirrel.Eq{"session_id": sessionID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySessionID - build select query: %v", ErrBuildQuery, err)
	}

	var tx domain.PaymentTransaction
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tx.ID,
		&tx.SessionID,
		&tx.BookingID,
		&tx.Amount,
		&tx.Currency,
		&tx.PaymentStatus,
		&tx.Status,
		&tx.CustomerEmail,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySessionID - scan transaction: %v", ErrScanRow, err)
	}

	return &tx, nil
}

// UpdateStatus сохраняет состояние сессии, полученное от провайдера
func (r *Repository) UpdateStatus(
	ctx context.Context,
	sessionID string,
	status domain.TransactionStatus,
	paymentStatus domain.PaymentStatus,
	updatedAt time.Time,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payment_transactions").
		Set("status", status).
		Set("payment_status", paymentStatus).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}
