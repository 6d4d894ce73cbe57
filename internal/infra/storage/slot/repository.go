package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-FacilityBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// Repository репозиторий слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByFacilityAndDate возвращает активные слоты площадки на дату,
// заказ которых активен и в статусе NEW, PAID или APPROVED.
// Возраст NEW заказа здесь не проверяется, это делает вызывающий код по своему now.
// Внутри транзакции строки слотов блокируются (FOR UPDATE).
func (r *Repository) GetActiveByFacilityAndDate(ctx context.Context, facilityID string, date time.Time) ([]*domain.SlotOccupancy, error) {
	return r.selectOccupancy(ctx, "GetActiveByFacilityAndDate", squirrel.Eq{
		"s.facility_id":  facilityID,
		"s.date_display": date.Format(domain.DateFormat),
	})
}

// GetActiveAt как GetActiveByFacilityAndDate, но только слоты, начинающиеся в start
func (r *Repository) GetActiveAt(ctx context.Context, facilityID string, date time.Time, start types.TimeString) ([]*domain.SlotOccupancy, error) {
	return r.selectOccupancy(ctx, "GetActiveAt", squirrel.Eq{
		"s.facility_id":  facilityID,
		"s.date_display": date.Format(domain.DateFormat),
		"s.time_start":   start,
	})
}

// DeactivateByOrder снимает активность со всех слотов заказа
func (r *Repository) DeactivateByOrder(ctx context.Context, orderID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("active", false).
		Where(squirrel.Eq{"order_id": orderID, "active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateByOrder - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateByOrder - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateByOrder - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func (r *Repository) selectOccupancy(ctx context.Context, op string, where squirrel.Eq) ([]*domain.SlotOccupancy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	liveStatuses := make([]string, len(domain.LiveStatuses))
	for i, s := range domain.LiveStatuses {
		liveStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(
		"s.id",
		"s.facility_id",
		"s.date_display",
		"s.time_start",
		"s.time_end",
		"o.id",
		"o.status",
		"o.created_at",
	).
		From("slots s").
		Join("orders o ON o.id = s.order_id").
		Where(where).
		Where(squirrel.Eq{"s.active": true, "o.active": true, "o.status": liveStatuses}).
		OrderBy("s.time_start ASC")

	// В транзакции бронирования блокируем найденные слоты
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF s")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError(op+" - execute query", err)
	}
	defer rows.Close()

	return scanOccupancy(rows)
}

func scanOccupancy(rows *sql.Rows) ([]*domain.SlotOccupancy, error) {
	slots := make([]*domain.SlotOccupancy, 0)

	for rows.Next() {
		var slot domain.SlotOccupancy
		err := rows.Scan(
			&slot.SlotID,
			&slot.FacilityID,
			&slot.Date,
			&slot.Window.Start,
			&slot.Window.End,
			&slot.OrderID,
			&slot.OrderStatus,
			&slot.OrderCreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanOccupancy - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		if pgerrors.IsConflict(err) {
			return nil, fmt.Errorf("%w: scanOccupancy - rows error: %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: scanOccupancy - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// queryError блокировка строк слотов может проиграть гонку параллельной транзакции
func queryError(op string, err error) error {
	if pgerrors.IsConflict(err) {
		return fmt.Errorf("%w: %s: %v", ErrConflict, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
