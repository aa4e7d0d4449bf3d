// Package recurrence раскрывает повторяющиеся окна доступности
// в конкретные временные диапазоны внутри запрошенного периода.
package recurrence

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Expander expands availability windows into concrete occurrences.
// The number of emitted occurrences is capped so that caller-supplied
// date ranges cannot make expansion unbounded.
type Expander struct {
	maxOccurrences int
}

// New creates an expander. maxOccurrences <= 0 falls back to the domain
// default.
func New(maxOccurrences int) *Expander {
	if maxOccurrences <= 0 {
		maxOccurrences = domain.DefaultMaxOccurrences
	}
	return &Expander{maxOccurrences: maxOccurrences}
}

// Expand returns every occurrence of the window that overlaps the query
// range, in chronological order. The result is a plain slice and can be
// iterated any number of times.
//
// Occurrences are anchored in the query range's location. Overnight
// TimeOfDay spans produce occurrences ending on the following calendar day.
func (e *Expander) Expand(w *domain.AvailabilityWindow, query domain.TimeRange) ([]domain.TimeRange, error) {
	if query.IsZero() || !query.End.After(query.Start) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQueryRange, query)
	}

	switch w.Recurrence.Kind {
	case domain.RecurrenceWeekly:
		return e.expandWeekly(w, query)
	case domain.RecurrenceDateRange:
		return e.expandDateRange(w, query)
	case domain.RecurrenceSpecificDate:
		return e.expandSpecificDate(w, query)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRecurrence, w.Recurrence.Kind)
	}
}

// expandWeekly emits one occurrence per matching weekday in the query range.
func (e *Expander) expandWeekly(w *domain.AvailabilityWindow, query domain.TimeRange) ([]domain.TimeRange, error) {
	occurrences := make([]domain.TimeRange, 0)

	// Начинаем на день раньше: ночное окно предыдущего дня может
	// пересекать начало запрошенного диапазона
	day := startOfDay(query.Start).AddDate(0, 0, -1)
	lastDay := startOfDay(query.End)

	for !day.After(lastDay) {
		if day.Weekday() == w.Recurrence.Weekday {
			occ, err := w.TimeOfDay.On(day)
			if err != nil {
				return nil, err
			}
			if occ.Overlaps(query) {
				if len(occurrences) >= e.maxOccurrences {
					return nil, fmt.Errorf("%w: more than %d occurrences in %s",
						ErrOccurrenceLimitExceeded, e.maxOccurrences, query)
				}
				occurrences = append(occurrences, occ)
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return occurrences, nil
}

// expandDateRange emits per-day occurrences when TimeOfDay is set, or a
// single contiguous span covering the whole date range otherwise.
func (e *Expander) expandDateRange(w *domain.AvailabilityWindow, query domain.TimeRange) ([]domain.TimeRange, error) {
	loc := query.Start.Location()
	first := startOfDay(w.Recurrence.StartDate.In(loc))
	last := startOfDay(w.Recurrence.EndDate.In(loc))

	if last.Before(first) {
		return nil, fmt.Errorf("%w: date range end before start", ErrInvalidQueryRange)
	}

	// Окно без времени суток покрывает целиком все дни диапазона
	if w.TimeOfDay.IsZero() {
		span, err := domain.NewTimeRange(first, last.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		if !span.Overlaps(query) {
			return []domain.TimeRange{}, nil
		}
		return []domain.TimeRange{span}, nil
	}

	occurrences := make([]domain.TimeRange, 0)

	day := first
	// Захватываем предыдущий день для ночных окон
	if queryDay := startOfDay(query.Start).AddDate(0, 0, -1); queryDay.After(day) {
		day = queryDay
	}
	lastDay := last
	if queryLast := startOfDay(query.End); queryLast.Before(lastDay) {
		lastDay = queryLast
	}

	for !day.After(lastDay) {
		occ, err := w.TimeOfDay.On(day)
		if err != nil {
			return nil, err
		}
		if occ.Overlaps(query) {
			if len(occurrences) >= e.maxOccurrences {
				return nil, fmt.Errorf("%w: more than %d occurrences in %s",
					ErrOccurrenceLimitExceeded, e.maxOccurrences, query)
			}
			occurrences = append(occurrences, occ)
		}
		day = day.AddDate(0, 0, 1)
	}

	return occurrences, nil
}

// expandSpecificDate emits at most one occurrence.
func (e *Expander) expandSpecificDate(w *domain.AvailabilityWindow, query domain.TimeRange) ([]domain.TimeRange, error) {
	day := startOfDay(w.Recurrence.Date.In(query.Start.Location()))

	var occ domain.TimeRange
	var err error
	if w.TimeOfDay.IsZero() {
		occ, err = domain.NewTimeRange(day, day.AddDate(0, 0, 1))
	} else {
		occ, err = w.TimeOfDay.On(day)
	}
	if err != nil {
		return nil, err
	}

	if !occ.Overlaps(query) {
		return []domain.TimeRange{}, nil
	}
	return []domain.TimeRange{occ}, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
