package domain

import "time"

// Default configuration values
const (
	DefaultCapacityCost        = 1
	DefaultSlotDurationMinutes = 30
	DefaultMaxConcurrent       = 1
	DefaultMinAdvanceNotice    = time.Hour
	DefaultMaxAdvanceWindow    = 0 // 0 = unlimited
	DefaultMaxOccurrences      = 500
	DefaultSeasonalMinDays     = 7
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinConcurrentLimit     = 0
	MaxConcurrentLimit     = 100
	MaxBufferMinutes       = 240
	MaxNotesLength         = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих вместимость
// Используется для фильтрации при подсчёте пересечений
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusNoShow,
	StatusCompleted,
}

// ActiveStatuses список статусов, занимающих вместимость
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}
