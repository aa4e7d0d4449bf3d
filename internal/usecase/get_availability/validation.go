package get_availability

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для запроса слотов
func validateDate(requestDate time.Time, now time.Time, maxAdvance time.Duration) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	// maxAdvance = 0 означает отсутствие ограничения на горизонт
	if maxAdvance == 0 {
		return nil
	}

	if startOfDay(requestDate).After(now.Add(maxAdvance)) {
		return fmt.Errorf("%w: horizon is %s", ErrDateTooFarInFuture, maxAdvance)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return startOfDay(date).Before(startOfDay(now))
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
