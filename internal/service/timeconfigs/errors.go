package timeconfigs

import "errors"

var (
	// ErrTimeConfigNotFound возвращается, когда настройка окна не найдена
	ErrTimeConfigNotFound = errors.New("time config not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
