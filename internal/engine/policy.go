package engine

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Policy contains the engine-wide defaults that individual windows fall
// back on when they leave a value unset. Passed in explicitly at
// construction so that behavior is deterministic across configurations.
type Policy struct {
	// DefaultMinAdvanceNotice applies when a window's MinAdvanceNotice is 0.
	DefaultMinAdvanceNotice time.Duration

	// DefaultMaxAdvanceWindow applies when a window's MaxAdvanceWindow is 0.
	// 0 leaves the horizon unlimited.
	DefaultMaxAdvanceWindow time.Duration

	// MutationHorizon bounds how far ahead window-mutation impact checks
	// look for affected reservations.
	MutationHorizon time.Duration

	// MaxOccurrences caps a single recurrence expansion.
	MaxOccurrences int

	// SeasonalMinDays is the minimum span of a seasonal window.
	SeasonalMinDays int
}

// DefaultPolicy returns the stock policy values.
func DefaultPolicy() Policy {
	return Policy{
		DefaultMinAdvanceNotice: domain.DefaultMinAdvanceNotice,
		DefaultMaxAdvanceWindow: domain.DefaultMaxAdvanceWindow,
		MutationHorizon:         90 * 24 * time.Hour,
		MaxOccurrences:          domain.DefaultMaxOccurrences,
		SeasonalMinDays:         domain.DefaultSeasonalMinDays,
	}
}

// minNoticeFor returns the effective minimum advance notice for a window.
func (p Policy) minNoticeFor(w *domain.AvailabilityWindow) time.Duration {
	if w.MinAdvanceNotice > 0 {
		return w.MinAdvanceNotice
	}
	return p.DefaultMinAdvanceNotice
}

// maxAdvanceFor returns the effective maximum advance horizon for a window.
// 0 means unlimited.
func (p Policy) maxAdvanceFor(w *domain.AvailabilityWindow) time.Duration {
	if w.MaxAdvanceWindow > 0 {
		return w.MaxAdvanceWindow
	}
	return p.DefaultMaxAdvanceWindow
}
