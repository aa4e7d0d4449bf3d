package engine

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// WindowStore интерфейс хранилища окон доступности
type WindowStore interface {
	// ActiveWindowsFor возвращает все активные окна ресурса
	ActiveWindowsFor(ctx context.Context, resourceID int64) ([]*domain.AvailabilityWindow, error)
}

// CapacityLedger интерфейс учёта вместимости
type CapacityLedger interface {
	CountOverlapping(ctx context.Context, resourceID int64, tr domain.TimeRange) (int, []*domain.Reservation, error)
	HasCapacity(ctx context.Context, resourceID int64, tr domain.TimeRange, additionalCost, max int) (bool, []*domain.Reservation, error)
}

// OccurrenceExpander интерфейс раскрытия окон в конкретные вхождения
type OccurrenceExpander interface {
	Expand(w *domain.AvailabilityWindow, query domain.TimeRange) ([]domain.TimeRange, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования).
// Движок никогда не читает системное время напрямую.
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
