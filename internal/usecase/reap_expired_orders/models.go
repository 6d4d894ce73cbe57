package reap_expired_orders

import "time"

// Response итог одного прохода чистки
type Response struct {
	Cutoff       time.Time // Заказы, созданные раньше этого момента, считаются просроченными
	CancelledIDs []string
}
