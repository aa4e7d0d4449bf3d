package addon

import "errors"

var (
	// ErrAddOnNotFound возвращается, когда add-on не найден
	ErrAddOnNotFound = errors.New("addon.repository: add-on not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("addon.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("addon.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("addon.repository: failed to scan row")
)
