package update_window

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно не найдено
	ErrWindowNotFound = errors.New("update_window: window not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_window: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_window: internal error")
)
