package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

func TestRepository_Create_LowercasesEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u1", "jane@example.com", "hash", "Jane", "Doe", nil, "customer", true).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	u, err := NewRepository(db).Create(context.Background(), &domain.User{
		ID:           "u1",
		Email:        "Jane@Example.com",
		PasswordHash: "hash",
		FirstName:    "Jane",
		LastName:     "Doe",
		Role:         domain.RoleCustomer,
		IsActive:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_EmailTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(&pq.Error{Code: uniqueViolation})

	_, err = NewRepository(db).Create(context.Background(), &domain.User{ID: "u1", Email: "jane@example.com"})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u1", "jane@example.com", "hash", "Jane", "Doe", "555-0100", "customer", true, time.Now()))

	u, err := NewRepository(db).GetByEmail(context.Background(), "JANE@example.com")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, u.Role)
	require.NotNil(t, u.Phone)
	assert.Equal(t, "555-0100", *u.Phone)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err = NewRepository(db).GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrUserNotFound)
}
