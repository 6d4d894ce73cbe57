package timeconfig

import "errors"

var (
	// ErrTimeConfigNotFound возвращается, когда настройка окна не найдена
	ErrTimeConfigNotFound = errors.New("timeconfig.repository: time config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeconfig.repository: failed to scan row")
)
