package engine

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель кандидата на бронирование
type Request struct {
	ResourceID   int64            // ID ресурса
	TimeRange    domain.TimeRange // Запрошенный диапазон
	CapacityCost int              // Стоимость в единицах вместимости (по умолчанию 1)
}

// Decision is the engine's verdict on a candidate reservation.
// A rejection always carries at least one violation with a reason code;
// capacity rejections additionally name the conflicting reservations.
type Decision struct {
	Accepted bool

	// MatchedWindow and Occurrence are set on acceptance.
	MatchedWindow *domain.AvailabilityWindow
	Occurrence    domain.TimeRange

	Violations []domain.Violation
	Conflicts  []*domain.Reservation
}

// Reject marks the decision as rejected with the given violation.
func (d *Decision) reject(v domain.Violation) {
	d.Accepted = false
	d.Violations = append(d.Violations, v)
}

// WindowChange describes a proposed configuration change to a window.
// Nil fields stay unchanged.
type WindowChange struct {
	TimeOfDay     *domain.ClockRange
	Recurrence    *domain.Recurrence
	MaxConcurrent *int
	BufferBefore  *int
	BufferAfter   *int
	Deactivate    bool
}

// ApplyTo returns a copy of the window with the change applied.
func (c WindowChange) ApplyTo(w *domain.AvailabilityWindow) domain.AvailabilityWindow {
	proposed := *w
	if c.TimeOfDay != nil {
		proposed.TimeOfDay = *c.TimeOfDay
	}
	if c.Recurrence != nil {
		proposed.Recurrence = *c.Recurrence
	}
	if c.MaxConcurrent != nil {
		proposed.MaxConcurrent = *c.MaxConcurrent
	}
	if c.BufferBefore != nil {
		proposed.BufferBeforeMinutes = *c.BufferBefore
	}
	if c.BufferAfter != nil {
		proposed.BufferAfterMinutes = *c.BufferAfter
	}
	if c.Deactivate {
		proposed.IsActive = false
	}
	return proposed
}

// MutationDecision is the verdict on a proposed window configuration change.
type MutationDecision struct {
	OK            bool
	Violations    []domain.Violation
	AffectedCount int
}
