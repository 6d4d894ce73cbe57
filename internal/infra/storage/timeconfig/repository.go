package timeconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"name",
	"type",
	"config_date",
	"time_start",
	"time_end",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий настроек окон (окна закрытия и специальные окна дат)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек окон
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает настройку окна
func (r *Repository) Create(ctx context.Context, cfg *domain.TimeConfig) (*domain.TimeConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var configDate interface{}
	if cfg.Date != nil {
		configDate = cfg.Date.Format(domain.DateFormat)
	}

	query, args, err := psqlbuilder.Insert("time_configs").
		Columns("name", "type", "config_date", "time_start", "time_end", "active").
		Values(cfg.Name, cfg.Type, configDate, cfg.Window.Start, cfg.Window.End, cfg.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// GetByID получает настройку окна по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("time_configs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := scanTimeConfig(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimeConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan time config: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// GetBlackouts возвращает все активные окна закрытия
func (r *Repository) GetBlackouts(ctx context.Context) ([]*domain.TimeConfig, error) {
	t := domain.TimeConfigNotUse
	return r.List(ctx, domain.TimeConfigFilter{Type: &t})
}

// GetSpecialByDate возвращает активные специальные окна на дату
func (r *Repository) GetSpecialByDate(ctx context.Context, date time.Time) ([]*domain.TimeConfig, error) {
	t := domain.TimeConfigSpecial
	return r.List(ctx, domain.TimeConfigFilter{Type: &t, Date: &date})
}

// List возвращает настройки окон по фильтру
func (r *Repository) List(ctx context.Context, filter domain.TimeConfigFilter) ([]*domain.TimeConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("time_configs").
		OrderBy("time_start ASC", "id ASC")

	if filter.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"type": *filter.Type})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"config_date": filter.Date.Format(domain.DateFormat)})
	}
	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.TimeConfig, 0)
	for rows.Next() {
		cfg, err := scanTimeConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTimeConfig(row rowScanner) (*domain.TimeConfig, error) {
	var cfg domain.TimeConfig
	var configDate, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&cfg.ID,
		&cfg.Name,
		&cfg.Type,
		&configDate,
		&cfg.Window.Start,
		&cfg.Window.End,
		&cfg.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if configDate.Valid {
		date := configDate.Time
		cfg.Date = &date
	}
	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}
