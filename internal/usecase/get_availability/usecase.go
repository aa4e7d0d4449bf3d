package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
)

// UseCase use case для получения доступных слотов ресурса на дату
type UseCase struct {
	windows      WindowRepository
	ledger       CapacityLedger
	expander     OccurrenceExpander
	policy       engine.Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	windows WindowRepository,
	ledger CapacityLedger,
	expander OccurrenceExpander,
	policy engine.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		windows:      windows,
		ledger:       ledger,
		expander:     expander,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: resource=%d, date=%s",
		req.ResourceID, req.Date.Format("2006-01-02"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты с учетом предельного горизонта
	if err := validateDate(req.Date, now, uc.policy.DefaultMaxAdvanceWindow); err != nil {
		uc.logger.Warn("GetAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем все активные окна ресурса
	windows, err := uc.windows.ActiveWindowsFor(ctx, req.ResourceID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get windows for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	dayStart := startOfDay(req.Date)
	dayRange := domain.TimeRange{Start: dayStart, End: dayStart.AddDate(0, 0, 1)}

	// 5. Раскрываем блэкауты на эту дату, блокирующие слоты целиком
	blackouts, err := uc.expandBlackouts(windows, dayRange)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to expand blackouts: %v", err)
		return nil, fmt.Errorf("%w: failed to expand blackouts: %v", ErrInternal, err)
	}

	// 6. Нарезаем вхождения каждого предлагающего окна на слоты
	slots := make([]domain.AvailableSlot, 0)

	for _, w := range windows {
		if w.IsBlackout() {
			continue
		}

		occurrences, err := uc.expander.Expand(w, dayRange)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to expand window id=%d: %v", w.ID, err)
			return nil, fmt.Errorf("%w: failed to expand window: %v", ErrInternal, err)
		}

		minNotice := w.MinAdvanceNotice
		if minNotice == 0 {
			minNotice = uc.policy.DefaultMinAdvanceNotice
		}

		for _, occ := range occurrences {
			candidates := generateSlots(occ, w.SlotDurationMinutes)

			// Минимальное уведомление отсекает ближайшие слоты только сегодня
			if isSameDay(req.Date, now) {
				candidates = filterByNotice(candidates, now, minNotice)
			}

			open := make([]domain.TimeRange, 0, len(candidates))
			for _, c := range candidates {
				if overlapsAny(c, blackouts) {
					continue
				}
				open = append(open, c)
			}

			slotDuration := w.SlotDurationMinutes
			if slotDuration <= 0 {
				slotDuration = domain.DefaultSlotDurationMinutes
			}

			// 7. Вычисляем занятость каждого слота
			filled, err := uc.fillOccupancy(ctx, req.ResourceID, open, slotDuration, w.EffectiveMaxConcurrent())
			if err != nil {
				uc.logger.Error("GetAvailability: failed to count occupancy: %v", err)
				return nil, fmt.Errorf("%w: failed to count occupancy: %v", ErrInternal, err)
			}

			slots = append(slots, filled...)
		}
	}

	sortSlots(slots)

	uc.logger.Info("GetAvailability: generated %d slots for resource=%d, date=%s",
		len(slots), req.ResourceID, req.Date.Format("2006-01-02"))

	return &Response{
		ResourceID: req.ResourceID,
		Date:       req.Date,
		Slots:      slots,
	}, nil
}

// expandBlackouts раскрывает блокирующие окна в конкретные диапазоны на дату
func (uc *UseCase) expandBlackouts(windows []*domain.AvailabilityWindow, dayRange domain.TimeRange) ([]domain.TimeRange, error) {
	blackouts := make([]domain.TimeRange, 0)

	for _, w := range windows {
		if !w.IsBlackout() {
			continue
		}

		occurrences, err := uc.expander.Expand(w, dayRange)
		if err != nil {
			return nil, err
		}
		blackouts = append(blackouts, occurrences...)
	}

	return blackouts, nil
}
