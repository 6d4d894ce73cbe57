package get_available_slots

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена или неактивна
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrInvalidDate возвращается, когда дата раньше сегодняшней
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
