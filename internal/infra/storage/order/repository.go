package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-FacilityBooking/pkg/psqlbuilder"
)

// Repository репозиторий заказов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет заказ, его слоты и пожелания.
// Должен вызываться внутри транзакции (txmanager), иначе заказ может сохраниться частично.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"id",
			"order_no",
			"facility_id",
			"created_by",
			"amount",
			"status",
			"type",
			"comment",
			"active",
			"created_at",
			"updated_at",
		).
		Values(
			order.ID,
			order.OrderNo,
			order.FacilityID,
			order.CreatedBy,
			float64(order.Amount),
			order.Status,
			order.Type,
			order.Comment,
			order.Active,
			order.CreatedAt,
			order.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, execError("Create - insert order", err)
	}

	if err := r.insertSlots(ctx, executor, order.Slots); err != nil {
		return nil, err
	}

	if err := r.insertStories(ctx, executor, order.Stories); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *Repository) insertSlots(ctx context.Context, executor DBExecutor, slots []domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("slots").
		Columns("order_id", "facility_id", "date_display", "time_start", "time_end", "unit_price", "active")
	for _, slot := range slots {
		insert = insert.Values(
			slot.OrderID,
			slot.FacilityID,
			slot.Date.Format(domain.DateFormat),
			slot.Window.Start,
			slot.Window.End,
			float64(slot.UnitPrice),
			slot.Active,
		)
	}

	query, args, err := insert.Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build slots insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return execError("Create - insert slots", err)
	}
	defer rows.Close()

	for i := 0; rows.Next() && i < len(slots); i++ {
		if err := rows.Scan(&slots[i].ID); err != nil {
			return fmt.Errorf("%w: Create - scan slot id: %v", ErrScanRow, err)
		}
	}

	if err := rows.Err(); err != nil {
		return execError("Create - slots rows", err)
	}

	return nil
}

func (r *Repository) insertStories(ctx context.Context, executor DBExecutor, stories []domain.Story) error {
	if len(stories) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("stories").
		Columns("order_id", "template_id", "message", "priority")
	for _, story := range stories {
		insert = insert.Values(story.OrderID, story.TemplateID, story.Message, story.Priority)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build stories insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return execError("Create - insert stories", err)
	}

	return nil
}

// GetByID получает активный заказ по ID вместе с активными слотами и пожеланиями
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"order_no",
		"facility_id",
		"created_by",
		"amount",
		"status",
		"type",
		"comment",
		"active",
		"created_at",
		"updated_at",
	).
		From("orders").
		Where(squirrel.Eq{"id": id, "active": true})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var order domain.Order
	var comment sql.NullString
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&order.OrderNo,
		&order.FacilityID,
		&order.CreatedBy,
		&order.Amount,
		&order.Status,
		&order.Type,
		&comment,
		&order.Active,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}
	if comment.Valid {
		order.Comment = &comment.String
	}

	slots, err := r.getSlots(ctx, executor, order.ID)
	if err != nil {
		return nil, err
	}
	order.Slots = slots

	stories, err := r.getStories(ctx, executor, order.ID)
	if err != nil {
		return nil, err
	}
	order.Stories = stories

	return &order, nil
}

func (r *Repository) getSlots(ctx context.Context, executor DBExecutor, orderID string) ([]domain.Slot, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"order_id",
		"facility_id",
		"date_display",
		"time_start",
		"time_end",
		"unit_price",
		"active",
	).
		From("slots").
		Where(squirrel.Eq{"order_id": orderID, "active": true}).
		OrderBy("date_display ASC", "time_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		var slot domain.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.OrderID,
			&slot.FacilityID,
			&slot.Date,
			&slot.Window.Start,
			&slot.Window.End,
			&slot.UnitPrice,
			&slot.Active,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

func (r *Repository) getStories(ctx context.Context, executor DBExecutor, orderID string) ([]domain.Story, error) {
	query, args, err := psqlbuilder.Select("id", "order_id", "template_id", "message", "priority").
		From("stories").
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("priority ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getStories - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getStories - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stories := make([]domain.Story, 0)
	for rows.Next() {
		var story domain.Story
		var templateID, message sql.NullString
		if err := rows.Scan(&story.ID, &story.OrderID, &templateID, &message, &story.Priority); err != nil {
			return nil, fmt.Errorf("%w: getStories - scan row: %v", ErrScanRow, err)
		}
		if templateID.Valid {
			story.TemplateID = &templateID.String
		}
		if message.Valid {
			story.Message = &message.String
		}
		stories = append(stories, story)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getStories - rows error: %v", ErrScanRow, err)
	}

	return stories, nil
}

// UpdateStatus обновляет статус и комментарий заказа
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, comment *string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	update := psqlbuilder.Update("orders").
		Set("status", status).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "active": true})
	if comment != nil {
		update = update.Set("comment", *comment)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError("UpdateStatus - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// Deactivate мягко удаляет заказ; status, если задан, записывается вместе с удалением
func (r *Repository) Deactivate(ctx context.Context, id string, status *domain.OrderStatus, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	update := psqlbuilder.Update("orders").
		Set("active", false).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "active": true})
	if status != nil {
		update = update.Set("status", *status)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError("Deactivate - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// CancelExpired переводит в CANCELLED все активные NEW заказы, созданные раньше createdBefore.
// Слоты не трогаются. Повторный вызов не находит уже отмененные заказы.
func (r *Repository) CancelExpired(ctx context.Context, createdBefore, now time.Time) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", domain.StatusCancelled).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": domain.StatusNew, "active": true}).
		Where(squirrel.Lt{"created_at": createdBefore}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CancelExpired - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("CancelExpired - execute update", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: CancelExpired - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CancelExpired - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// execError отделяет конфликт параллельной записи от прочих ошибок выполнения
func execError(op string, err error) error {
	if pgerrors.IsConflict(err) {
		return fmt.Errorf("%w: %s: %v", ErrConflict, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
