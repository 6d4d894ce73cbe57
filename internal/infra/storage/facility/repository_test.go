package facility

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT id, name, active FROM facilities WHERE id = \$1`).
		WithArgs("facility-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "active"}).AddRow("facility-1", "Main screen", true))

	f, err := repo.GetByID(context.Background(), "facility-1")

	require.NoError(t, err)
	assert.Equal(t, "Main screen", f.Name)
	assert.True(t, f.Active)

	mock.ExpectQuery("FROM facilities").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "active"}))

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrFacilityNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
