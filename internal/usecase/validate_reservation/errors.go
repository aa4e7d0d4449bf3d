package validate_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_reservation: invalid input data")

	// ErrResourceNotFound возвращается, когда ресурс не найден или неактивен
	ErrResourceNotFound = errors.New("validate_reservation: resource not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_reservation: internal error")
)
