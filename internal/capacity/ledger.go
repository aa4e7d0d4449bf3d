// Package capacity отвечает на вопрос "есть ли ещё место" для ресурса
// в заданном временном диапазоне.
package capacity

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ReservationStore интерфейс хранилища бронирований.
// Реализация обязана возвращать только актуальное состояние: ledger
// никогда не кэширует счётчики между вызовами.
type ReservationStore interface {
	// ListActive возвращает Pending/Confirmed/InProgress бронирования ресурса,
	// пересекающиеся с диапазоном
	ListActive(ctx context.Context, resourceID int64, tr domain.TimeRange) ([]*domain.Reservation, error)
}

// Ledger counts concurrent reservation units per (resource, time range)
// and manages tentative holds for the two-phase check-then-commit protocol.
//
// Holds serialize the in-process gap between an ACCEPT decision and the
// reservation write. Cross-process safety additionally requires the caller
// to run the check-and-write section inside a serializable transaction
// (pkg/txmanager), which is what the create-reservation use case does.
type Ledger struct {
	store ReservationStore

	mu    sync.Mutex
	holds map[uuid.UUID]hold
}

type hold struct {
	resourceID int64
	timeRange  domain.TimeRange
	cost       int
}

// NewLedger creates a ledger over the given reservation store.
func NewLedger(store ReservationStore) *Ledger {
	return &Ledger{
		store: store,
		holds: make(map[uuid.UUID]hold),
	}
}

// CountOverlapping sums the capacity cost of every active reservation and
// tentative hold overlapping the range. The overlapping reservations are
// returned alongside the total so that rejections can name the conflicts.
func (l *Ledger) CountOverlapping(ctx context.Context, resourceID int64, tr domain.TimeRange) (int, []*domain.Reservation, error) {
	reservations, err := l.store.ListActive(ctx, resourceID, tr)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	total := 0
	conflicting := make([]*domain.Reservation, 0, len(reservations))
	for _, res := range reservations {
		if !res.CountsAgainstCapacity() {
			continue
		}
		if !res.TimeRange.Overlaps(tr) {
			continue
		}
		cost := res.CapacityCost
		if cost < 1 {
			cost = domain.DefaultCapacityCost
		}
		total += cost
		conflicting = append(conflicting, res)
	}

	l.mu.Lock()
	for _, h := range l.holds {
		if h.resourceID == resourceID && h.timeRange.Overlaps(tr) {
			total += h.cost
		}
	}
	l.mu.Unlock()

	return total, conflicting, nil
}

// HasCapacity reports whether additionalCost more units fit under max.
// max <= 0 always rejects: Blocked and Maintenance windows are modeled as
// zero-capacity.
func (l *Ledger) HasCapacity(ctx context.Context, resourceID int64, tr domain.TimeRange, additionalCost, max int) (bool, []*domain.Reservation, error) {
	if additionalCost < 1 {
		return false, nil, fmt.Errorf("%w: got %d", ErrInvalidCost, additionalCost)
	}
	if max <= 0 {
		return false, nil, nil
	}

	used, conflicting, err := l.CountOverlapping(ctx, resourceID, tr)
	if err != nil {
		return false, nil, err
	}

	if used+additionalCost > max {
		return false, conflicting, nil
	}
	return true, nil, nil
}

// ReserveTentative places a provisional hold that counts against capacity
// until Commit or Rollback. The hold does not itself re-check capacity;
// the caller decides first via HasCapacity and must hold the critical
// section around both calls.
func (l *Ledger) ReserveTentative(resourceID int64, tr domain.TimeRange, cost int) (uuid.UUID, error) {
	if cost < 1 {
		return uuid.Nil, fmt.Errorf("%w: got %d", ErrInvalidCost, cost)
	}

	id := uuid.New()

	l.mu.Lock()
	l.holds[id] = hold{resourceID: resourceID, timeRange: tr, cost: cost}
	l.mu.Unlock()

	return id, nil
}

// Commit releases the hold after the reservation has been persisted:
// from then on the stored row itself accounts for the capacity.
func (l *Ledger) Commit(id uuid.UUID) error {
	return l.release(id)
}

// Rollback releases the hold without a persisted reservation.
func (l *Ledger) Rollback(id uuid.UUID) error {
	return l.release(id)
}

func (l *Ledger) release(id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.holds[id]; !ok {
		return fmt.Errorf("%w: %s", ErrHoldNotFound, id)
	}
	delete(l.holds, id)
	return nil
}

// ActiveHolds returns the number of outstanding tentative holds.
func (l *Ledger) ActiveHolds() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.holds)
}
