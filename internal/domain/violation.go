package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidWindow возвращается при нарушении инвариантов конфигурации окна
var ErrInvalidWindow = errors.New("invalid availability window")

// ViolationCode enumerates every expected, recoverable business outcome.
// These are returned as values and never raised as faults.
type ViolationCode string

const (
	CodeNoAvailabilityWindow    ViolationCode = "no_availability_window"
	CodeBlocked                 ViolationCode = "blocked"
	CodeInsufficientNotice      ViolationCode = "insufficient_notice"
	CodeTooFarInAdvance         ViolationCode = "too_far_in_advance"
	CodeOutsideWindow           ViolationCode = "outside_window"
	CodeCapacityExceeded        ViolationCode = "capacity_exceeded"
	CodeWouldOrphanReservations ViolationCode = "would_orphan_reservations"
	CodeWouldLeaveUnavailable   ViolationCode = "would_leave_resource_unavailable"
	CodeMissingPrerequisite     ViolationCode = "missing_prerequisite"
	CodeIncompatible            ViolationCode = "incompatible"
	CodeCircularDependency      ViolationCode = "circular_dependency"
	CodeInvalidTimeRange        ViolationCode = "invalid_time_range"
	CodeOccurrenceLimitExceeded ViolationCode = "occurrence_limit_exceeded"
)

// Violation is one business-rule rejection with enough context for the
// caller to render an actionable per-field message. A bare boolean is
// never returned.
type Violation struct {
	Field   string                 `json:"field"`
	Code    ViolationCode          `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// NewViolation constructs a violation with a formatted message.
func NewViolation(field string, code ViolationCode, format string, v ...interface{}) Violation {
	return Violation{
		Field:   field,
		Code:    code,
		Message: fmt.Sprintf(format, v...),
	}
}

// WithContext attaches a context value and returns the violation.
func (v Violation) WithContext(key string, value interface{}) Violation {
	if v.Context == nil {
		v.Context = make(map[string]interface{})
	}
	v.Context[key] = value
	return v
}

func (v Violation) String() string {
	return fmt.Sprintf("%s [%s]: %s", v.Field, v.Code, v.Message)
}
