package recurrence

import "errors"

var (
	// ErrOccurrenceLimitExceeded возвращается, когда раскрытие окна в диапазоне
	// дало бы больше вхождений, чем разрешено настройкой
	ErrOccurrenceLimitExceeded = errors.New("recurrence: occurrence limit exceeded")

	// ErrUnknownRecurrence возвращается при неизвестном типе повторения
	ErrUnknownRecurrence = errors.New("recurrence: unknown recurrence kind")

	// ErrInvalidQueryRange возвращается при некорректном диапазоне запроса
	ErrInvalidQueryRange = errors.New("recurrence: invalid query range")
)
