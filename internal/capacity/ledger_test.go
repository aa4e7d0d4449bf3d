package capacity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type mockReservationStore struct {
	reservations []*domain.Reservation
	err          error
}

func (m *mockReservationStore) ListActive(_ context.Context, resourceID int64, tr domain.TimeRange) ([]*domain.Reservation, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Reservation, 0)
	for _, r := range m.reservations {
		if r.ResourceID == resourceID && r.CountsAgainstCapacity() && r.TimeRange.Overlaps(tr) {
			out = append(out, r)
		}
	}
	return out, nil
}

func tr(t *testing.T, startHour, endHour int) domain.TimeRange {
	t.Helper()
	r, err := domain.NewTimeRange(
		time.Date(2026, 9, 1, startHour, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, endHour, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return r
}

func reservation(id, resourceID int64, r domain.TimeRange, cost int, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:           id,
		ResourceID:   resourceID,
		TimeRange:    r,
		CapacityCost: cost,
		Status:       status,
	}
}

func TestCountOverlapping(t *testing.T) {
	ctx := context.Background()
	store := &mockReservationStore{reservations: []*domain.Reservation{
		reservation(1, 10, tr(t, 10, 12), 2, domain.StatusConfirmed),
		reservation(2, 10, tr(t, 11, 13), 1, domain.StatusPending),
		// Отменённое не считается
		reservation(3, 10, tr(t, 10, 12), 5, domain.StatusCancelled),
		// Чужой ресурс
		reservation(4, 99, tr(t, 10, 12), 5, domain.StatusConfirmed),
	}}
	l := NewLedger(store)

	used, conflicting, err := l.CountOverlapping(ctx, 10, tr(t, 10, 14))
	require.NoError(t, err)
	assert.Equal(t, 3, used)
	assert.Len(t, conflicting, 2)
}

func TestCountOverlapping_DefaultsZeroCost(t *testing.T) {
	ctx := context.Background()
	store := &mockReservationStore{reservations: []*domain.Reservation{
		reservation(1, 10, tr(t, 10, 12), 0, domain.StatusConfirmed),
	}}
	l := NewLedger(store)

	used, _, err := l.CountOverlapping(ctx, 10, tr(t, 10, 14))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCapacityCost, used)
}

func TestCountOverlapping_IncludesHolds(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(&mockReservationStore{})

	_, err := l.ReserveTentative(10, tr(t, 10, 12), 2)
	require.NoError(t, err)
	// Холд на чужой ресурс не учитывается
	_, err = l.ReserveTentative(99, tr(t, 10, 12), 5)
	require.NoError(t, err)

	used, conflicting, err := l.CountOverlapping(ctx, 10, tr(t, 11, 13))
	require.NoError(t, err)
	assert.Equal(t, 2, used)
	assert.Empty(t, conflicting)
}

func TestCountOverlapping_StoreError(t *testing.T) {
	l := NewLedger(&mockReservationStore{err: errors.New("connection refused")})

	_, _, err := l.CountOverlapping(context.Background(), 10, tr(t, 10, 12))
	assert.ErrorIs(t, err, ErrStore)
}

func TestHasCapacity(t *testing.T) {
	ctx := context.Background()
	store := &mockReservationStore{reservations: []*domain.Reservation{
		reservation(1, 10, tr(t, 10, 12), 2, domain.StatusConfirmed),
	}}
	l := NewLedger(store)

	ok, conflicts, err := l.HasCapacity(ctx, 10, tr(t, 10, 12), 1, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, conflicts)

	ok, conflicts, err = l.HasCapacity(ctx, 10, tr(t, 10, 12), 2, 3)
	require.NoError(t, err)
	assert.False(t, ok)
	require.Len(t, conflicts, 1)
	assert.Equal(t, int64(1), conflicts[0].ID)
}

func TestHasCapacity_ZeroMaxAlwaysRejects(t *testing.T) {
	l := NewLedger(&mockReservationStore{})

	ok, conflicts, err := l.HasCapacity(context.Background(), 10, tr(t, 10, 12), 1, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, conflicts)
}

func TestHasCapacity_InvalidCost(t *testing.T) {
	l := NewLedger(&mockReservationStore{})

	_, _, err := l.HasCapacity(context.Background(), 10, tr(t, 10, 12), 0, 5)
	assert.ErrorIs(t, err, ErrInvalidCost)
}

func TestHoldLifecycle(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(&mockReservationStore{})

	id, err := l.ReserveTentative(10, tr(t, 10, 12), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, l.ActiveHolds())

	ok, _, err := l.HasCapacity(ctx, 10, tr(t, 10, 12), 1, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.Commit(id))
	assert.Equal(t, 0, l.ActiveHolds())

	ok, _, err = l.HasCapacity(ctx, 10, tr(t, 10, 12), 1, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRollback(t *testing.T) {
	l := NewLedger(&mockReservationStore{})

	id, err := l.ReserveTentative(10, tr(t, 10, 12), 1)
	require.NoError(t, err)

	require.NoError(t, l.Rollback(id))
	assert.Equal(t, 0, l.ActiveHolds())

	// Повторный релиз того же холда
	assert.ErrorIs(t, l.Rollback(id), ErrHoldNotFound)
	assert.ErrorIs(t, l.Commit(uuid.New()), ErrHoldNotFound)
}

func TestReserveTentative_InvalidCost(t *testing.T) {
	l := NewLedger(&mockReservationStore{})

	_, err := l.ReserveTentative(10, tr(t, 10, 12), 0)
	assert.ErrorIs(t, err, ErrInvalidCost)
	assert.Equal(t, 0, l.ActiveHolds())
}
