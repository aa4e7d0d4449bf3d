package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// WindowRepository интерфейс репозитория окон доступности
type WindowRepository interface {
	// ActiveWindowsFor возвращает все активные окна ресурса
	ActiveWindowsFor(ctx context.Context, resourceID int64) ([]*domain.AvailabilityWindow, error)
}

// CapacityLedger интерфейс учёта занятой вместимости
type CapacityLedger interface {
	CountOverlapping(ctx context.Context, resourceID int64, tr domain.TimeRange) (int, []*domain.Reservation, error)
}

// OccurrenceExpander интерфейс раскрытия окон в конкретные вхождения
type OccurrenceExpander interface {
	Expand(w *domain.AvailabilityWindow, query domain.TimeRange) ([]domain.TimeRange, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
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
