package reap_expired_orders

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("reap_expired_orders: internal error")
)
