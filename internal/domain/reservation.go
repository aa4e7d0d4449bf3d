package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusInProgress ReservationStatus = "in_progress"
	StatusCompleted  ReservationStatus = "completed"
	StatusCancelled  ReservationStatus = "cancelled"
	StatusNoShow     ReservationStatus = "no_show"
)

// Reservation represents a concrete, resolved time-bound claim on a resource
type Reservation struct {
	ID           int64
	ResourceID   int64
	TimeRange    TimeRange
	CapacityCost int
	Status       ReservationStatus

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountsAgainstCapacity returns true if the reservation occupies capacity.
// Cancelled, no-show and completed reservations are excluded from conflict
// checks.
func (r *Reservation) CountsAgainstCapacity() bool {
	return r.Status == StatusPending ||
		r.Status == StatusConfirmed ||
		r.Status == StatusInProgress
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsFuture returns true if the reservation starts after the given instant
func (r *Reservation) IsFuture(now time.Time) bool {
	return r.TimeRange.Start.After(now)
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// ReservationFilter фильтр для выборки бронирований ресурса
type ReservationFilter struct {
	ResourceID      int64      // Обязательный параметр
	Overlapping     *TimeRange // Только пересекающиеся с диапазоном (опционально)
	StartsAfter     *time.Time // Только начинающиеся после момента (опционально)
	Status          *ReservationStatus
	IncludeInactive bool // Включать ли отменённые/no-show/завершённые
}
