package cleaner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningBooking/pkg/psqlbuilder"
)

var cleanerColumns = []string{
	"id",
	"name",
	"rating",
	"experience_years",
	"specialties",
	"avatar_url",
	"available",
}

// Repository репозиторий исполнителей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория исполнителей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListAvailable возвращает исполнителей, принимающих заказы, по убыванию рейтинга
func (r *Repository) ListAvailable(ctx context.Context) ([]*domain.Cleaner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cleanerColumns...).
		From("cleaners").
		Where(squirrel.Eq{"available": true}).
		OrderBy("rating DESC", "name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	cleaners := make([]*domain.Cleaner, 0)
	for rows.Next() {
		c, err := scanCleaner(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAvailable - scan row: %v", ErrScanRow, err)
		}
		cleaners = append(cleaners, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - rows error: %v", ErrScanRow, err)
	}

	return cleaners, nil
}

// GetByID получает исполнителя по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Cleaner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cleanerColumns...).
		From("cleaners").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCleaner(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCleanerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan cleaner: %v", ErrScanRow, err)
	}

	return c, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCleaner(row rowScanner) (*domain.Cleaner, error) {
	var c domain.Cleaner
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Rating,
		&c.ExperienceYears,
		pq.Array(&c.Specialties),
		&c.AvatarURL,
		&c.Available,
	)
	if err != nil {
		return nil, err
	}
	if c.Specialties == nil {
		c.Specialties = []string{}
	}
	return &c, nil
}
