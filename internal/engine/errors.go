package engine

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("engine: invalid input data")

	// ErrInternal возвращается при внутренних ошибках движка
	// (недоступное хранилище, повреждённая конфигурация)
	ErrInternal = errors.New("engine: internal error")
)
