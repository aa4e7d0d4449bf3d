package capacity

import "errors"

var (
	// ErrHoldNotFound возвращается при commit/rollback несуществующего холда
	ErrHoldNotFound = errors.New("capacity: tentative hold not found")

	// ErrInvalidCost возвращается при неположительной стоимости вместимости
	ErrInvalidCost = errors.New("capacity: capacity cost must be >= 1")

	// ErrStore возвращается при ошибках обращения к хранилищу бронирований
	ErrStore = errors.New("capacity: reservation store error")
)
