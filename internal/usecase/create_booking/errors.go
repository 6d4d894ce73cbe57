package create_booking

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена или неактивна
	ErrFacilityNotFound = errors.New("create_booking: facility not found")

	// ErrUserNotFound возвращается, когда пользователь не найден в UserService
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrTemplateNotFound возвращается, когда шаблон пожелания не найден или неактивен
	ErrTemplateNotFound = errors.New("create_booking: template not found")

	// ErrInvalidStory возвращается, когда в пожелании нет ни шаблона, ни текста
	ErrInvalidStory = errors.New("create_booking: invalid story")

	// ErrInvalidDate возвращается, когда дата интервала раньше сегодняшней
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInterval возвращается для пустого, невыровненного, неверной длины или слишком раннего интервала
	ErrInvalidInterval = errors.New("create_booking: invalid interval")

	// ErrSlotLimitExceeded возвращается, когда интервалов в заказе больше допустимого
	ErrSlotLimitExceeded = errors.New("create_booking: slot limit exceeded")

	// ErrTimeConflict возвращается, когда интервал попадает в закрытое окно или занят живым заказом
	ErrTimeConflict = errors.New("create_booking: time conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
