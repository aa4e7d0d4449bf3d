package domain

import (
	"fmt"
	"time"
)

// WindowType classifies an availability window
type WindowType string

const (
	WindowRegular      WindowType = "regular"
	WindowException    WindowType = "exception"
	WindowSpecialHours WindowType = "special_hours"
	WindowBlocked      WindowType = "blocked"
	WindowMaintenance  WindowType = "maintenance"
	WindowSpecialEvent WindowType = "special_event"
	WindowSeasonal     WindowType = "seasonal"
)

// RecurrenceKind определяет способ повторения окна
type RecurrenceKind string

const (
	RecurrenceWeekly       RecurrenceKind = "weekly"
	RecurrenceDateRange    RecurrenceKind = "date_range"
	RecurrenceSpecificDate RecurrenceKind = "specific_date"
)

// Recurrence describes when a window repeats. Exactly one shape is used
// depending on Kind:
//   - RecurrenceWeekly: Weekday
//   - RecurrenceDateRange: StartDate..EndDate (inclusive dates)
//   - RecurrenceSpecificDate: Date
type Recurrence struct {
	Kind      RecurrenceKind
	Weekday   time.Weekday
	StartDate time.Time
	EndDate   time.Time
	Date      time.Time
}

// SpanDays returns the inclusive day count of a date-range recurrence.
func (r Recurrence) SpanDays() int {
	if r.Kind != RecurrenceDateRange {
		return 0
	}
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

// AvailabilityWindow declares one slot of possible reservation time for a
// resource. Blocked and Maintenance windows are exclusions, not offerings.
type AvailabilityWindow struct {
	ID         int64
	ResourceID int64
	Type       WindowType
	Recurrence Recurrence

	// TimeOfDay is the daily span in local clock time. Empty for
	// date-range windows that cover whole days.
	TimeOfDay ClockRange

	MaxConcurrent       int
	SlotDurationMinutes int
	BufferBeforeMinutes int
	BufferAfterMinutes  int

	MinAdvanceNotice time.Duration
	MaxAdvanceWindow time.Duration

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlackout returns true for windows that forbid reservations outright.
func (w *AvailabilityWindow) IsBlackout() bool {
	return w.Type == WindowBlocked || w.Type == WindowMaintenance
}

// EffectiveMaxConcurrent returns the capacity the window actually offers.
// Blackout windows never offer capacity regardless of the stored value.
func (w *AvailabilityWindow) EffectiveMaxConcurrent() int {
	if w.IsBlackout() {
		return 0
	}
	return w.MaxConcurrent
}

// Validate enforces structural invariants of the window configuration.
// seasonalMinDays задаёт минимальную длительность сезонного окна.
func (w *AvailabilityWindow) Validate(seasonalMinDays int) error {
	if w.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidWindow)
	}

	if w.MaxConcurrent < 0 {
		return fmt.Errorf("%w: maxConcurrent must be >= 0", ErrInvalidWindow)
	}

	if w.IsBlackout() && w.MaxConcurrent != 0 {
		return fmt.Errorf("%w: %s windows must have maxConcurrent = 0", ErrInvalidWindow, w.Type)
	}

	switch w.Recurrence.Kind {
	case RecurrenceWeekly:
		if w.TimeOfDay.IsZero() {
			return fmt.Errorf("%w: weekly windows require a time of day", ErrInvalidWindow)
		}
	case RecurrenceDateRange:
		if w.Recurrence.EndDate.Before(w.Recurrence.StartDate) {
			return fmt.Errorf("%w: date range end before start", ErrInvalidWindow)
		}
		if w.Type == WindowSeasonal && w.Recurrence.SpanDays() < seasonalMinDays {
			return fmt.Errorf("%w: seasonal windows must span at least %d days",
				ErrInvalidWindow, seasonalMinDays)
		}
	case RecurrenceSpecificDate:
		if w.Recurrence.Date.IsZero() {
			return fmt.Errorf("%w: specific date is required", ErrInvalidWindow)
		}
	default:
		return fmt.Errorf("%w: unknown recurrence kind %q", ErrInvalidWindow, w.Recurrence.Kind)
	}

	if !w.TimeOfDay.IsZero() {
		if err := w.TimeOfDay.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
		}
	}

	return nil
}
