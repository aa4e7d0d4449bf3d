package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func mustRange(t *testing.T, start, end string) TimeRange {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)
	tr, err := NewTimeRange(s, e)
	require.NoError(t, err)
	return tr
}

func TestNewTimeRange_RejectsEndBeforeStart(t *testing.T) {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	_, err := NewTimeRange(start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = NewTimeRange(start, start)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestTimeRange_Overlaps(t *testing.T) {
	a := mustRange(t, "2026-09-01T10:00:00Z", "2026-09-01T12:00:00Z")
	b := mustRange(t, "2026-09-01T11:00:00Z", "2026-09-01T13:00:00Z")
	c := mustRange(t, "2026-09-01T12:00:00Z", "2026-09-01T14:00:00Z")

	assert.True(t, a.Overlaps(b))
	// Симметричность
	assert.True(t, b.Overlaps(a))

	// Соприкасающиеся границы не пересекаются: [10,12) и [12,14)
	assert.False(t, a.Overlaps(c))
	assert.False(t, c.Overlaps(a))
}

func TestTimeRange_OverlapsContained(t *testing.T) {
	outer := mustRange(t, "2026-09-01T08:00:00Z", "2026-09-01T20:00:00Z")
	inner := mustRange(t, "2026-09-01T10:00:00Z", "2026-09-01T11:00:00Z")

	assert.True(t, outer.Overlaps(inner))
	assert.True(t, inner.Overlaps(outer))
	assert.True(t, outer.ContainsRange(inner))
	assert.False(t, inner.ContainsRange(outer))
}

func TestTimeRange_Contains(t *testing.T) {
	tr := mustRange(t, "2026-09-01T10:00:00Z", "2026-09-01T12:00:00Z")

	assert.True(t, tr.Contains(tr.Start))
	assert.True(t, tr.Contains(tr.Start.Add(time.Hour)))
	// Правая граница исключена
	assert.False(t, tr.Contains(tr.End))
	assert.False(t, tr.Contains(tr.Start.Add(-time.Second)))
}

func TestTimeRange_Pad(t *testing.T) {
	tr := mustRange(t, "2026-09-01T10:00:00Z", "2026-09-01T12:00:00Z")

	padded := tr.Pad(15*time.Minute, 30*time.Minute)
	assert.Equal(t, tr.Start.Add(-15*time.Minute), padded.Start)
	assert.Equal(t, tr.End.Add(30*time.Minute), padded.End)

	// Исходный диапазон не меняется
	assert.Equal(t, mustRange(t, "2026-09-01T10:00:00Z", "2026-09-01T12:00:00Z"), tr)
}

func TestTimeRange_Duration(t *testing.T) {
	tr := mustRange(t, "2026-09-01T10:00:00Z", "2026-09-01T11:30:00Z")

	assert.Equal(t, 90*time.Minute, tr.Duration())
	assert.Equal(t, 90, tr.DurationMinutes())
}

func newClockRange(t *testing.T, start, end string) ClockRange {
	t.Helper()
	s, err := types.NewTimeStringFromString(start)
	require.NoError(t, err)
	e, err := types.NewTimeStringFromString(end)
	require.NoError(t, err)
	return ClockRange{Start: s, End: e}
}

func TestClockRange_IsOvernight(t *testing.T) {
	assert.False(t, newClockRange(t, "09:00", "18:00").IsOvernight())
	assert.True(t, newClockRange(t, "22:00", "06:00").IsOvernight())
	assert.False(t, ClockRange{}.IsOvernight())
}

func TestClockRange_On(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	day := newClockRange(t, "09:00", "18:00")
	tr, err := day.On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), tr.Start)
	assert.Equal(t, time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC), tr.End)
}

func TestClockRange_OnOvernight(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	night := newClockRange(t, "22:00", "06:00")
	tr, err := night.On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 22, 0, 0, 0, time.UTC), tr.Start)
	// Ночное окно заканчивается на следующий календарный день
	assert.Equal(t, time.Date(2026, 9, 2, 6, 0, 0, 0, time.UTC), tr.End)
}
