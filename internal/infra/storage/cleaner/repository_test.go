package cleaner

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ListAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(cleanerColumns).
		AddRow("c1", "Ivon Gamez", 5.0, 9, "{\"Kitchen Cleaning\",\"Deep Cleaning\"}", "https://img/1", true).
		AddRow("c2", "Lucia Coronado", 4.9, 3, "{}", "https://img/2", true)

	mock.ExpectQuery(`SELECT .+ FROM cleaners WHERE available = \$1 ORDER BY rating DESC, name ASC`).
		WithArgs(true).
		WillReturnRows(rows)

	cleaners, err := NewRepository(db).ListAvailable(context.Background())

	require.NoError(t, err)
	require.Len(t, cleaners, 2)
	assert.Equal(t, []string{"Kitchen Cleaning", "Deep Cleaning"}, cleaners[0].Specialties)
	assert.Equal(t, 9, cleaners[0].ExperienceYears)
	assert.Empty(t, cleaners[1].Specialties)
	assert.NotNil(t, cleaners[1].Specialties)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM cleaners WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err = NewRepository(db).GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrCleanerNotFound)
}
