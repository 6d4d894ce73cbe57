package pricing

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// PriceTable цены площадки на одну дату
// Строится один раз на запрос, дальше считается без обращений к хранилищу
type PriceTable struct {
	date         time.Time
	condition    string
	overrideIDs  map[string]struct{}
	overrides    []*domain.PriceRule
	weekday      []*domain.PriceRule
	defaultPrice domain.Money
}

// NewPriceTable раскладывает правила площадки по условиям для даты date
func NewPriceTable(
	date time.Time,
	calendar []*domain.CalendarOverride,
	rules []*domain.PriceRule,
	defaultPrice domain.Money,
) *PriceTable {
	table := &PriceTable{
		date:         date,
		condition:    domain.WeekdayCondition(date),
		overrideIDs:  make(map[string]struct{}),
		defaultPrice: defaultPrice,
	}

	for _, c := range calendar {
		if c.Matches(date) {
			table.overrideIDs[c.ID] = struct{}{}
			if table.condition == domain.ConditionNormal || table.condition == domain.ConditionWeekend {
				table.condition = c.ID
			}
		}
	}

	for _, rule := range rules {
		switch {
		case table.isOverride(rule.ConditionID):
			table.overrides = append(table.overrides, rule)
		case rule.ConditionID == domain.WeekdayCondition(date):
			table.weekday = append(table.weekday, rule)
		}
	}

	return table
}

// Condition условие цены для даты: id календарной даты, WEEKEND или NORMAL
func (t *PriceTable) Condition() string {
	return t.condition
}

// Price цена слота, начинающегося в at
// Правило календарной даты важнее правила выходного или будня, без правил берется цена по умолчанию
func (t *PriceTable) Price(at types.TimeString) domain.Money {
	price, _ := t.Lookup(at)
	return price
}

// Lookup как Price, но сообщает, найдено ли правило
func (t *PriceTable) Lookup(at types.TimeString) (domain.Money, bool) {
	if rule := firstCovering(t.overrides, at); rule != nil {
		return rule.Price, true
	}
	if rule := firstCovering(t.weekday, at); rule != nil {
		return rule.Price, true
	}
	return t.defaultPrice, false
}

// IsDefault совпадает ли цена с ценой по умолчанию
func (t *PriceTable) IsDefault(price domain.Money) bool {
	return price == t.defaultPrice
}

// DefaultPrice цена по умолчанию
func (t *PriceTable) DefaultPrice() domain.Money {
	return t.defaultPrice
}

func (t *PriceTable) isOverride(conditionID string) bool {
	_, ok := t.overrideIDs[conditionID]
	return ok
}

func firstCovering(rules []*domain.PriceRule, at types.TimeString) *domain.PriceRule {
	for _, rule := range rules {
		if rule.Window.Contains(at) {
			return rule
		}
	}
	return nil
}
