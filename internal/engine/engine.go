// Package engine принимает решение, может ли новое бронирование
// сосуществовать с уже существующими: окна доступности, blackout-периоды,
// заблаговременность, вместимость.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/recurrence"
)

// Engine is the availability decision core. It is stateless between calls
// and safe for concurrent use; all mutable state lives in the reservation
// store behind the capacity ledger.
type Engine struct {
	windows      WindowStore
	ledger       CapacityLedger
	expander     OccurrenceExpander
	policy       Policy
	timeProvider TimeProvider
	logger       Logger
}

// New creates the engine. The time provider defaults to the system clock;
// tests replace it with a fixed one.
func New(
	windows WindowStore,
	ledger CapacityLedger,
	expander OccurrenceExpander,
	policy Policy,
	logger Logger,
) *Engine {
	return &Engine{
		windows:      windows,
		ledger:       ledger,
		expander:     expander,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider заменяет источник текущего времени (для тестов)
func (e *Engine) WithTimeProvider(tp TimeProvider) *Engine {
	e.timeProvider = tp
	return e
}

// candidate одно вхождение окна, пересекающееся с запросом
type candidate struct {
	window     *domain.AvailabilityWindow
	occurrence domain.TimeRange
}

// Check runs the decision pipeline for a candidate reservation, in order:
// window resolution, blackout, advance notice, containment with buffers,
// capacity. Every rejection carries a reason code; nothing is retried.
func (e *Engine) Check(ctx context.Context, req Request) (*Decision, error) {
	decision := &Decision{}

	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if req.CapacityCost == 0 {
		req.CapacityCost = domain.DefaultCapacityCost
	}
	if req.CapacityCost < 1 {
		return nil, fmt.Errorf("%w: capacityCost must be >= 1", ErrInvalidInput)
	}
	if req.TimeRange.IsZero() || !req.TimeRange.End.After(req.TimeRange.Start) {
		decision.reject(domain.NewViolation("timeRange", domain.CodeInvalidTimeRange,
			"end must be after start"))
		return decision, nil
	}

	now := e.timeProvider.Now()

	windows, err := e.windows.ActiveWindowsFor(ctx, req.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load windows: %v", ErrInternal, err)
	}

	offerings, blackouts, err := e.resolveCandidates(windows, req.TimeRange)
	if err != nil {
		if d := expansionDecision(err); d != nil {
			return d, nil
		}
		return nil, fmt.Errorf("%w: window expansion failed: %v", ErrInternal, err)
	}

	// 1. Разрешение окон: ни одно вхождение не пересекает запрос
	if len(offerings) == 0 && len(blackouts) == 0 {
		e.logger.Warn("Check: no availability window for resource=%d range=%s",
			req.ResourceID, req.TimeRange)
		decision.reject(domain.NewViolation("timeRange", domain.CodeNoAvailabilityWindow,
			"resource %d offers no availability in the requested range", req.ResourceID))
		return decision, nil
	}

	// 2. Blackout: Blocked/Maintenance окно накрывает запрошенный диапазон
	for _, b := range blackouts {
		e.logger.Warn("Check: resource=%d blocked by window=%d (%s)",
			req.ResourceID, b.window.ID, b.window.Type)
		decision.reject(domain.NewViolation("timeRange", domain.CodeBlocked,
			"requested range falls into a %s period", b.window.Type).
			WithContext("windowId", b.window.ID).
			WithContext("windowType", string(b.window.Type)))
		return decision, nil
	}

	// 3-4. Заблаговременность и вхождение в рабочие часы: первое окно,
	// прошедшее обе проверки, становится кандидатом
	matched := e.matchWindow(decision, offerings, req, now)
	if matched == nil {
		if len(decision.Violations) == 0 {
			decision.reject(domain.NewViolation("timeRange", domain.CodeNoAvailabilityWindow,
				"resource %d offers no availability in the requested range", req.ResourceID))
		}
		return decision, nil
	}

	// 5. Вместимость
	max := matched.window.EffectiveMaxConcurrent()
	ok, conflicts, err := e.ledger.HasCapacity(ctx, req.ResourceID, req.TimeRange, req.CapacityCost, max)
	if err != nil {
		return nil, fmt.Errorf("%w: capacity check failed: %v", ErrInternal, err)
	}
	if !ok {
		e.logger.Warn("Check: capacity exceeded for resource=%d window=%d (%d conflicts)",
			req.ResourceID, matched.window.ID, len(conflicts))
		v := domain.NewViolation("timeRange", domain.CodeCapacityExceeded,
			"no remaining capacity in the requested range (max %d)", max).
			WithContext("maxConcurrent", max).
			WithContext("conflictCount", len(conflicts))
		decision.reject(v)
		decision.Conflicts = conflicts
		return decision, nil
	}

	decision.Accepted = true
	decision.Violations = nil
	decision.MatchedWindow = matched.window
	decision.Occurrence = matched.occurrence

	e.logger.Info("Check: accepted resource=%d range=%s window=%d",
		req.ResourceID, req.TimeRange, matched.window.ID)

	return decision, nil
}

// resolveCandidates expands every active window and splits the occurrences
// overlapping the requested range into offerings and blackouts.
func (e *Engine) resolveCandidates(windows []*domain.AvailabilityWindow, requested domain.TimeRange) (offerings, blackouts []candidate, err error) {
	// Расширяем диапазон запроса, чтобы захватить вхождения, в которые
	// запрос попадает с учётом буферов
	query := requested.Pad(maxBufferPadding, maxBufferPadding)

	for _, w := range windows {
		if !w.IsActive {
			continue
		}

		occurrences, expandErr := e.expander.Expand(w, query)
		if expandErr != nil {
			return nil, nil, fmt.Errorf("window %d: %w", w.ID, expandErr)
		}

		for _, occ := range occurrences {
			if !occ.Overlaps(requested) {
				continue
			}
			c := candidate{window: w, occurrence: occ}
			if w.IsBlackout() {
				blackouts = append(blackouts, c)
			} else {
				offerings = append(offerings, c)
			}
		}
	}

	return offerings, blackouts, nil
}

// maxBufferPadding bounds how far outside the requested range a matching
// occurrence may start, covering the largest allowed buffers.
const maxBufferPadding = time.Duration(domain.MaxBufferMinutes) * time.Minute

// matchWindow finds the first offering whose notice and containment
// constraints the request satisfies, accumulating violations from the
// ones it fails.
func (e *Engine) matchWindow(decision *Decision, offerings []candidate, req Request, now time.Time) *candidate {
	for i := range offerings {
		c := &offerings[i]
		w := c.window

		minNotice := e.policy.minNoticeFor(w)
		if now.Add(minNotice).After(req.TimeRange.Start) {
			decision.reject(domain.NewViolation("timeRange", domain.CodeInsufficientNotice,
				"reservations require at least %s advance notice", minNotice).
				WithContext("windowId", w.ID).
				WithContext("requiredNotice", minNotice.String()))
			continue
		}

		if maxAdvance := e.policy.maxAdvanceFor(w); maxAdvance > 0 {
			if req.TimeRange.Start.After(now.Add(maxAdvance)) {
				decision.reject(domain.NewViolation("timeRange", domain.CodeTooFarInAdvance,
					"reservations cannot be made more than %s in advance", maxAdvance).
					WithContext("windowId", w.ID).
					WithContext("maxAdvanceWindow", maxAdvance.String()))
				continue
			}
		}

		padded := req.TimeRange.Pad(
			time.Duration(w.BufferBeforeMinutes)*time.Minute,
			time.Duration(w.BufferAfterMinutes)*time.Minute,
		)
		if !c.occurrence.ContainsRange(padded) {
			decision.reject(domain.NewViolation("timeRange", domain.CodeOutsideWindow,
				"requested range (including buffers) does not fit the window hours").
				WithContext("windowId", w.ID).
				WithContext("occurrence", c.occurrence.String()))
			continue
		}

		// Кандидат найден: накопленные нарушения других окон не считаются
		decision.Violations = nil
		return c
	}

	return nil
}

// expansionDecision converts a recurrence expansion failure into a
// terminal decision where the failure is a business outcome.
func expansionDecision(err error) *Decision {
	if errors.Is(err, recurrence.ErrOccurrenceLimitExceeded) {
		d := &Decision{}
		d.reject(domain.NewViolation("timeRange", domain.CodeOccurrenceLimitExceeded,
			"requested range expands to too many occurrences"))
		return d
	}
	return nil
}
