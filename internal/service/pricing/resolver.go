package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// Resolver определяет цену слота площадки по календарным правилам
type Resolver struct {
	pricingRepo  PricingRepository
	defaultPrice domain.Money
	logger       Logger
}

// NewResolver создает новый экземпляр резолвера цен
func NewResolver(pricingRepo PricingRepository, defaultPrice domain.Money, logger Logger) *Resolver {
	return &Resolver{
		pricingRepo:  pricingRepo,
		defaultPrice: defaultPrice,
		logger:       logger,
	}
}

// Load читает календарь и правила площадки и строит таблицу цен на дату
func (r *Resolver) Load(ctx context.Context, facilityID string, date time.Time) (*PriceTable, error) {
	calendar, err := r.pricingRepo.GetCalendarOverrides(ctx)
	if err != nil {
		r.logger.Error("Load: failed to get calendar overrides: %v", err)
		return nil, fmt.Errorf("%w: Load - get calendar overrides: %v", ErrInternal, err)
	}

	rules, err := r.pricingRepo.GetRulesByFacility(ctx, facilityID)
	if err != nil {
		r.logger.Error("Load: failed to get price rules for facility=%s: %v", facilityID, err)
		return nil, fmt.Errorf("%w: Load - get price rules: %v", ErrInternal, err)
	}

	table := NewPriceTable(date, calendar, rules, r.defaultPrice)
	r.logger.Info("Load: facility=%s, date=%s, condition=%s, rules=%d",
		facilityID, date.Format(domain.DateFormat), table.Condition(), len(rules))

	return table, nil
}

// Price цена одного слота
func (r *Resolver) Price(ctx context.Context, facilityID string, date time.Time, at types.TimeString) (domain.Money, error) {
	table, err := r.Load(ctx, facilityID, date)
	if err != nil {
		return 0, err
	}
	return table.Price(at), nil
}
