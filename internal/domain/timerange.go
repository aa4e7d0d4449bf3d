package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ErrInvalidTimeRange возвращается, когда конец диапазона не позже начала
var ErrInvalidTimeRange = errors.New("invalid time range: end must be after start")

// TimeRange represents a half-open [Start, End) interval of instants.
// Immutable value type: all operations return new values.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange constructs a TimeRange, rejecting End <= Start.
// Overnight clock-time ranges must be modeled by moving End to the
// following calendar day before constructing the range.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, fmt.Errorf("%w: [%s, %s)", ErrInvalidTimeRange,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps reports whether two ranges share any instant.
// Half-open semantics: ranges that only touch at a boundary do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains reports whether the instant falls inside the range.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// ContainsRange reports whether other lies fully within r.
func (r TimeRange) ContainsRange(other TimeRange) bool {
	return !other.Start.Before(r.Start) && !other.End.After(r.End)
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// DurationMinutes returns the length of the range in whole minutes.
func (r TimeRange) DurationMinutes() int {
	return int(r.End.Sub(r.Start) / time.Minute)
}

// Pad returns the range extended by before/after on each side.
func (r TimeRange) Pad(before, after time.Duration) TimeRange {
	return TimeRange{Start: r.Start.Add(-before), End: r.End.Add(after)}
}

// IsZero reports whether the range is unset.
func (r TimeRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}

// ClockRange is a daily wall-clock time span, e.g. 09:00-18:00.
// An overnight span (End <= Start) crosses midnight into the next
// calendar day; expansion shifts the emitted end instant accordingly.
type ClockRange struct {
	Start types.TimeString
	End   types.TimeString
}

// IsOvernight reports whether the span crosses midnight.
func (c ClockRange) IsOvernight() bool {
	return !c.Start.IsZero() && !c.End.IsZero() && !c.Start.IsBefore(c.End)
}

// IsZero reports whether the span is unset.
func (c ClockRange) IsZero() bool {
	return c.Start.IsZero() && c.End.IsZero()
}

// Validate проверяет формат обеих границ
func (c ClockRange) Validate() error {
	if err := c.Start.Validate(); err != nil {
		return err
	}
	return c.End.Validate()
}

// On anchors the clock span onto the given calendar date, producing a
// concrete TimeRange. Overnight spans end on the following day.
func (c ClockRange) On(date time.Time) (TimeRange, error) {
	start, err := c.Start.At(date)
	if err != nil {
		return TimeRange{}, err
	}
	end, err := c.End.At(date)
	if err != nil {
		return TimeRange{}, err
	}
	if c.IsOvernight() {
		end = end.AddDate(0, 0, 1)
	}
	return NewTimeRange(start, end)
}
