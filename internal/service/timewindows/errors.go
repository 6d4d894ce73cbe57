package timewindows

import "errors"

var (
	// ErrInternal возвращается при ошибках чтения настроек или слотов
	ErrInternal = errors.New("timewindows: internal error")
	// ErrConflict чтение слотов проиграло параллельной транзакции
	ErrConflict = errors.New("timewindows: concurrent transaction conflict")
)
