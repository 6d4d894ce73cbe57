package timeconfig

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newTestRepository(t)
	date := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO time_configs .* RETURNING id, created_at, updated_at`).
		WithArgs("maintenance", domain.TimeConfigSpecial, "2025-03-11", types.TimeString("10:00"), types.TimeString("10:30"), true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, created, created))

	cfg, err := repo.Create(context.Background(), &domain.TimeConfig{
		Name:   "maintenance",
		Type:   domain.TimeConfigSpecial,
		Date:   &date,
		Window: domain.TimeWindow{Start: "10:00", End: "10:30"},
		Active: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.ID)
	assert.Equal(t, created, cfg.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetBlackouts(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT .* FROM time_configs WHERE type = \$1 AND active = \$2 ORDER BY time_start ASC, id ASC`).
		WithArgs(domain.TimeConfigNotUse, true).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "night", "NOT_USE", nil, "23:00", "05:00", true, nil, nil))

	configs, err := repo.GetBlackouts(context.Background())

	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.True(t, configs[0].IsBlackout())
	assert.Nil(t, configs[0].Date)
	assert.Equal(t, types.TimeString("05:00"), configs[0].Window.End)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetSpecialByDate(t *testing.T) {
	repo, mock := newTestRepository(t)
	date := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE type = \$1 AND config_date = \$2 AND active = \$3`).
		WithArgs(domain.TimeConfigSpecial, "2025-03-11", true).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(2, "event", "SPECIAL", date, "10:00", "10:30", true, nil, nil))

	configs, err := repo.GetSpecialByDate(context.Background(), date)

	require.NoError(t, err)
	require.Len(t, configs, 1)
	require.NotNil(t, configs[0].Date)
	assert.True(t, configs[0].AppliesOn(date))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListIncludeInactive(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT .* FROM time_configs ORDER BY time_start ASC, id ASC$`).
		WillReturnRows(sqlmock.NewRows(columns))

	configs, err := repo.List(context.Background(), domain.TimeConfigFilter{IncludeInactive: true})

	require.NoError(t, err)
	assert.Empty(t, configs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT .* FROM time_configs WHERE id = \\$1").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, ErrTimeConfigNotFound)
}
