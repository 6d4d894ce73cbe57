package pricing

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

func TestRepository_GetCalendarOverrides(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT id, special_day, special_month FROM condition_prices WHERE special_day IS NOT NULL AND special_month IS NOT NULL ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "special_day", "special_month"}).
			AddRow("XMAS", 25, 12).
			AddRow("NEWYEAR", 1, 1))

	overrides, err := repo.GetCalendarOverrides(context.Background())

	require.NoError(t, err)
	require.Len(t, overrides, 2)
	assert.Equal(t, time.December, overrides[0].Month)
	assert.Equal(t, 25, overrides[0].Day)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetRulesByFacility(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`FROM price_by_slots WHERE active = \$1 AND facility_id = \$2 ORDER BY id ASC`).
		WithArgs(true, "facility-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "facility_id", "condition_price_id", "time_start", "time_end", "price"}).
			AddRow(1, "facility-1", "WEEKEND", "06:00", "12:00", 100.0).
			AddRow(2, "facility-1", "XMAS", "06:00", "08:00", 500.0))

	rules, err := repo.GetRulesByFacility(context.Background(), "facility-1")

	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, domain.Money(500), rules[1].Price)
	assert.Equal(t, types.TimeString("08:00"), rules[1].Window.End)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetRulesByFacility_QueryError(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("FROM price_by_slots").WillReturnError(assert.AnError)

	_, err := repo.GetRulesByFacility(context.Background(), "facility-1")

	assert.ErrorIs(t, err, ErrExecQuery)
}
