package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func query(t *testing.T, start, end time.Time) domain.TimeRange {
	t.Helper()
	tr, err := domain.NewTimeRange(start, end)
	require.NoError(t, err)
	return tr
}

func weeklyWindow(weekday time.Weekday, start, end string) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		ID: 1,
		TimeOfDay: domain.ClockRange{
			Start: mustTimeString(start),
			End:   mustTimeString(end),
		},
		Recurrence: domain.Recurrence{
			Kind:    domain.RecurrenceWeekly,
			Weekday: weekday,
		},
	}
}

func TestExpand_WeeklyBasic(t *testing.T) {
	e := New(0)
	// 2026-09-01 это вторник
	w := weeklyWindow(time.Tuesday, "09:00", "18:00")
	q := query(t,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))

	occs, err := e.Expand(w, q)
	require.NoError(t, err)
	require.Len(t, occs, 2)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), occs[0].Start)
	assert.Equal(t, time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC), occs[0].End)
	assert.Equal(t, time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC), occs[1].Start)
}

func TestExpand_WeeklyOvernightLookback(t *testing.T) {
	e := New(0)
	// Ночное окно понедельника заходит во вторник
	w := weeklyWindow(time.Monday, "22:00", "06:00")
	q := query(t,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	occs, err := e.Expand(w, q)
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.Equal(t, time.Date(2026, 8, 31, 22, 0, 0, 0, time.UTC), occs[0].Start)
	assert.Equal(t, time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC), occs[0].End)
}

func TestExpand_WeeklyNoMatch(t *testing.T) {
	e := New(0)
	w := weeklyWindow(time.Friday, "09:00", "18:00")
	// Вторник и среда, пятницы нет
	q := query(t,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC))

	occs, err := e.Expand(w, q)
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestExpand_WeeklyOccurrenceLimit(t *testing.T) {
	e := New(2)
	w := weeklyWindow(time.Tuesday, "09:00", "18:00")
	q := query(t,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))

	_, err := e.Expand(w, q)
	assert.ErrorIs(t, err, ErrOccurrenceLimitExceeded)
}

func TestExpand_DateRangeWholeSpan(t *testing.T) {
	e := New(0)
	w := &domain.AvailabilityWindow{
		ID: 2,
		Recurrence: domain.Recurrence{
			Kind:      domain.RecurrenceDateRange,
			StartDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		},
	}
	q := query(t,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))

	occs, err := e.Expand(w, q)
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), occs[0].Start)
	// Последний день включается целиком
	assert.Equal(t, time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC), occs[0].End)
}

func TestExpand_DateRangePerDay(t *testing.T) {
	e := New(0)
	w := &domain.AvailabilityWindow{
		ID: 3,
		TimeOfDay: domain.ClockRange{
			Start: mustTimeString("10:00"),
			End:   mustTimeString("14:00"),
		},
		Recurrence: domain.Recurrence{
			Kind:      domain.RecurrenceDateRange,
			StartDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		},
	}
	q := query(t,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))

	occs, err := e.Expand(w, q)
	require.NoError(t, err)
	require.Len(t, occs, 3)
	for i, occ := range occs {
		assert.Equal(t, time.Date(2026, 9, 10+i, 10, 0, 0, 0, time.UTC), occ.Start)
		assert.Equal(t, time.Date(2026, 9, 10+i, 14, 0, 0, 0, time.UTC), occ.End)
	}
}

func TestExpand_DateRangeClampedToQuery(t *testing.T) {
	e := New(0)
	w := &domain.AvailabilityWindow{
		ID: 4,
		TimeOfDay: domain.ClockRange{
			Start: mustTimeString("10:00"),
			End:   mustTimeString("14:00"),
		},
		Recurrence: domain.Recurrence{
			Kind:      domain.RecurrenceDateRange,
			StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		},
	}
	q := query(t,
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC))

	occs, err := e.Expand(w, q)
	require.NoError(t, err)
	require.Len(t, occs, 2)
	assert.Equal(t, time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC), occs[0].Start)
	assert.Equal(t, time.Date(2026, 9, 11, 10, 0, 0, 0, time.UTC), occs[1].Start)
}

func TestExpand_SpecificDate(t *testing.T) {
	e := New(0)
	w := &domain.AvailabilityWindow{
		ID: 5,
		TimeOfDay: domain.ClockRange{
			Start: mustTimeString("09:00"),
			End:   mustTimeString("12:00"),
		},
		Recurrence: domain.Recurrence{
			Kind: domain.RecurrenceSpecificDate,
			Date: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	occs, err := e.Expand(w, query(t,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.Equal(t, time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC), occs[0].Start)

	// Вне запрошенного периода
	occs, err = e.Expand(w, query(t,
		time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestExpand_SpecificDateWholeDay(t *testing.T) {
	e := New(0)
	w := &domain.AvailabilityWindow{
		ID: 6,
		Recurrence: domain.Recurrence{
			Kind: domain.RecurrenceSpecificDate,
			Date: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	occs, err := e.Expand(w, query(t,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), occs[0].Start)
	assert.Equal(t, time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC), occs[0].End)
}

func TestExpand_InvalidQuery(t *testing.T) {
	e := New(0)
	w := weeklyWindow(time.Monday, "09:00", "18:00")

	_, err := e.Expand(w, domain.TimeRange{})
	assert.ErrorIs(t, err, ErrInvalidQueryRange)
}

func TestExpand_UnknownRecurrence(t *testing.T) {
	e := New(0)
	w := &domain.AvailabilityWindow{
		ID:         7,
		Recurrence: domain.Recurrence{Kind: "quarterly"},
	}

	_, err := e.Expand(w, query(t,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrUnknownRecurrence)
}

func mustTimeString(s string) types.TimeString {
	return types.TimeString(s)
}
