package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды SQLSTATE PostgreSQL
const (
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
)

// Code возвращает SQLSTATE ошибки или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsConflict true для ошибок, означающих проигранную гонку параллельных транзакций
func IsConflict(err error) bool {
	switch Code(err) {
	case CodeSerializationFailure, CodeDeadlockDetected, CodeUniqueViolation:
		return true
	default:
		return false
	}
}

// IsForeignKeyViolation true при нарушении внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKeyViolation
}
