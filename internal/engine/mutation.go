package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// CheckWindowMutation decides whether a proposed configuration change to a
// window can be applied without stranding existing reservations. Update
// endpoints call this before persisting the change.
//
// A change is rejected when any future Pending/Confirmed reservation would
// no longer satisfy containment or capacity under the proposed
// configuration, or when deactivation would leave the resource without a
// single active window.
func (e *Engine) CheckWindowMutation(ctx context.Context, w *domain.AvailabilityWindow, change WindowChange) (*MutationDecision, error) {
	if w == nil || w.ID <= 0 {
		return nil, fmt.Errorf("%w: window is required", ErrInvalidInput)
	}

	decision := &MutationDecision{OK: true}
	now := e.timeProvider.Now()

	proposed := change.ApplyTo(w)
	if !change.Deactivate {
		if err := proposed.Validate(e.policy.SeasonalMinDays); err != nil {
			decision.OK = false
			decision.Violations = append(decision.Violations,
				domain.NewViolation("window", domain.CodeInvalidTimeRange, "%v", err))
			return decision, nil
		}
	}

	horizon, err := domain.NewTimeRange(now, now.Add(e.policy.MutationHorizon))
	if err != nil {
		return nil, fmt.Errorf("%w: bad mutation horizon: %v", ErrInternal, err)
	}

	affected, err := e.affectedReservations(ctx, w, &proposed, change, horizon, now)
	if err != nil {
		return nil, err
	}

	if len(affected) > 0 {
		e.logger.Warn("CheckWindowMutation: window=%d change would orphan %d reservations",
			w.ID, len(affected))
		decision.OK = false
		decision.AffectedCount = len(affected)
		decision.Violations = append(decision.Violations,
			domain.NewViolation("window", domain.CodeWouldOrphanReservations,
				"%d future reservations would no longer fit", len(affected)).
				WithContext("affectedCount", len(affected)).
				WithContext("windowId", w.ID))
	}

	if change.Deactivate {
		if err := e.checkLastActiveWindow(ctx, w, decision); err != nil {
			return nil, err
		}
	}

	if decision.OK {
		e.logger.Info("CheckWindowMutation: window=%d change accepted", w.ID)
	}

	return decision, nil
}

// affectedReservations lists the future active reservations under the
// current window that would violate containment or capacity under the
// proposed configuration.
func (e *Engine) affectedReservations(
	ctx context.Context,
	current, proposed *domain.AvailabilityWindow,
	change WindowChange,
	horizon domain.TimeRange,
	now time.Time,
) ([]*domain.Reservation, error) {
	currentOccs, err := e.expander.Expand(current, horizon)
	if err != nil {
		return nil, fmt.Errorf("%w: expand current window %d: %v", ErrInternal, current.ID, err)
	}

	// Собираем будущие Pending/Confirmed бронирования, опирающиеся на окно
	held := make(map[int64]*domain.Reservation)
	for _, occ := range currentOccs {
		_, overlapping, err := e.ledger.CountOverlapping(ctx, current.ResourceID, occ)
		if err != nil {
			return nil, fmt.Errorf("%w: count overlapping for window %d: %v", ErrInternal, current.ID, err)
		}
		for _, res := range overlapping {
			if !res.IsFuture(now) {
				continue
			}
			if res.Status != domain.StatusPending && res.Status != domain.StatusConfirmed {
				continue
			}
			held[res.ID] = res
		}
	}

	if len(held) == 0 {
		return nil, nil
	}

	// Деактивация оставляет без окна все опирающиеся бронирования
	if change.Deactivate {
		return mapValues(held), nil
	}

	proposedOccs, err := e.expander.Expand(proposed, horizon)
	if err != nil {
		return nil, fmt.Errorf("%w: expand proposed window %d: %v", ErrInternal, proposed.ID, err)
	}

	affected := make(map[int64]*domain.Reservation)

	// Containment: бронирование должно умещаться (с буферами) хотя бы
	// в одно вхождение предлагаемой конфигурации
	for id, res := range held {
		padded := res.TimeRange.Pad(
			time.Duration(proposed.BufferBeforeMinutes)*time.Minute,
			time.Duration(proposed.BufferAfterMinutes)*time.Minute,
		)
		contained := false
		for _, occ := range proposedOccs {
			if occ.ContainsRange(padded) {
				contained = true
				break
			}
		}
		if !contained {
			affected[id] = res
		}
	}

	// Capacity: суммарная стоимость пересекающихся бронирований не должна
	// превышать новый maxConcurrent ни в одном вхождении
	max := proposed.EffectiveMaxConcurrent()
	for _, occ := range proposedOccs {
		total := 0
		var overlapping []*domain.Reservation
		for _, res := range held {
			if res.TimeRange.Overlaps(occ) {
				total += res.CapacityCost
				overlapping = append(overlapping, res)
			}
		}
		if total > max {
			for _, res := range overlapping {
				affected[res.ID] = res
			}
		}
	}

	return mapValues(affected), nil
}

// checkLastActiveWindow rejects deactivation of the resource's only
// active window.
func (e *Engine) checkLastActiveWindow(ctx context.Context, w *domain.AvailabilityWindow, decision *MutationDecision) error {
	windows, err := e.windows.ActiveWindowsFor(ctx, w.ResourceID)
	if err != nil {
		return fmt.Errorf("%w: failed to load windows: %v", ErrInternal, err)
	}

	activeOthers := 0
	for _, other := range windows {
		if other.ID != w.ID && other.IsActive && !other.IsBlackout() {
			activeOthers++
		}
	}

	if activeOthers == 0 {
		e.logger.Warn("CheckWindowMutation: window=%d is the last active window of resource=%d",
			w.ID, w.ResourceID)
		decision.OK = false
		decision.Violations = append(decision.Violations,
			domain.NewViolation("isActive", domain.CodeWouldLeaveUnavailable,
				"deactivating the last active window would leave resource %d unavailable", w.ResourceID).
				WithContext("resourceId", w.ResourceID))
	}

	return nil
}

func mapValues(m map[int64]*domain.Reservation) []*domain.Reservation {
	if len(m) == 0 {
		return nil
	}
	out := make([]*domain.Reservation, 0, len(m))
	for _, res := range m {
		out = append(out, res)
	}
	return out
}
