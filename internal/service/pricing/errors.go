package pricing

import "errors"

var (
	// ErrInternal возвращается при ошибках чтения правил цены
	ErrInternal = errors.New("pricing: internal error")
)
