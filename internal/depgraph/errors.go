package depgraph

import "errors"

var (
	// ErrAddOnNotFound возвращается, когда выбранный add-on не объявлен
	ErrAddOnNotFound = errors.New("depgraph: add-on not found")

	// ErrStore возвращается при ошибках обращения к хранилищу add-on'ов
	ErrStore = errors.New("depgraph: add-on store error")
)
