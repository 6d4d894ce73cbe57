package pricing

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/psqlbuilder"
)

// Repository репозиторий условий и правил цены
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория цен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCalendarOverrides возвращает условия цены, привязанные к календарной дате
// NORMAL и WEEKEND не имеют даты и сюда не попадают
func (r *Repository) GetCalendarOverrides(ctx context.Context) ([]*domain.CalendarOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "special_day", "special_month").
		From("condition_prices").
		Where(squirrel.NotEq{"special_day": nil}).
		Where(squirrel.NotEq{"special_month": nil}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCalendarOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCalendarOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.CalendarOverride, 0)
	for rows.Next() {
		var override domain.CalendarOverride
		var day, month int
		if err := rows.Scan(&override.ID, &day, &month); err != nil {
			return nil, fmt.Errorf("%w: GetCalendarOverrides - scan row: %v", ErrScanRow, err)
		}
		override.Day = day
		override.Month = time.Month(month)
		overrides = append(overrides, &override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetCalendarOverrides - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// GetRulesByFacility возвращает активные правила цены площадки в порядке создания
func (r *Repository) GetRulesByFacility(ctx context.Context, facilityID string) ([]*domain.PriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"facility_id",
		"condition_price_id",
		"time_start",
		"time_end",
		"price",
	).
		From("price_by_slots").
		Where(squirrel.Eq{"facility_id": facilityID, "active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRulesByFacility - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRulesByFacility - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

func scanRules(rows *sql.Rows) ([]*domain.PriceRule, error) {
	rules := make([]*domain.PriceRule, 0)

	for rows.Next() {
		var rule domain.PriceRule
		err := rows.Scan(
			&rule.ID,
			&rule.FacilityID,
			&rule.ConditionID,
			&rule.Window.Start,
			&rule.Window.End,
			&rule.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
