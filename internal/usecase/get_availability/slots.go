package get_availability

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// generateSlots нарезает вхождение окна на слоты фиксированной длительности.
// Слот, не помещающийся целиком до конца вхождения, отбрасывается.
func generateSlots(occurrence domain.TimeRange, slotDuration int) []domain.TimeRange {
	if slotDuration <= 0 {
		slotDuration = domain.DefaultSlotDurationMinutes
	}

	step := time.Duration(slotDuration) * time.Minute
	slots := make([]domain.TimeRange, 0)

	for start := occurrence.Start; ; start = start.Add(step) {
		end := start.Add(step)
		if end.After(occurrence.End) {
			break
		}
		slots = append(slots, domain.TimeRange{Start: start, End: end})
	}

	return slots
}

// filterByNotice отбрасывает слоты, начинающиеся раньше, чем now + minNotice.
// Граничные случаи: слот, начинающийся ровно в now+minNotice, остаётся.
func filterByNotice(slots []domain.TimeRange, now time.Time, minNotice time.Duration) []domain.TimeRange {
	earliest := now.Add(minNotice)

	filtered := make([]domain.TimeRange, 0, len(slots))
	for _, s := range slots {
		if s.Start.Before(earliest) {
			continue
		}
		filtered = append(filtered, s)
	}

	return filtered
}

// overlapsAny проверяет пересечение слота хотя бы с одним из диапазонов
func overlapsAny(slot domain.TimeRange, ranges []domain.TimeRange) bool {
	for _, r := range ranges {
		if slot.Overlaps(r) {
			return true
		}
	}
	return false
}

// fillOccupancy запрашивает занятость каждого слота и собирает итоговый список
func (uc *UseCase) fillOccupancy(
	ctx context.Context,
	resourceID int64,
	slots []domain.TimeRange,
	slotDuration int,
	maxConcurrent int,
) ([]domain.AvailableSlot, error) {
	result := make([]domain.AvailableSlot, 0, len(slots))

	for _, slot := range slots {
		used, _, err := uc.ledger.CountOverlapping(ctx, resourceID, slot)
		if err != nil {
			return nil, err
		}

		available := maxConcurrent - used
		if available < 0 {
			available = 0
		}

		result = append(result, domain.AvailableSlot{
			TimeRange:       slot,
			DurationMinutes: slotDuration,
			AvailableSpots:  available,
			TotalSpots:      maxConcurrent,
		})
	}

	return result, nil
}

// sortSlots упорядочивает слоты по времени начала
func sortSlots(slots []domain.AvailableSlot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].TimeRange.Start.Before(slots[j].TimeRange.Start)
	})
}
