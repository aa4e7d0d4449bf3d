package validator

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
)

// AvailabilityEngine интерфейс решающего ядра
type AvailabilityEngine interface {
	Check(ctx context.Context, req engine.Request) (*engine.Decision, error)
}

// DependencyGraph интерфейс проверки ограничений add-on'ов
type DependencyGraph interface {
	ValidateSelection(ctx context.Context, selectedIDs []int64) ([]domain.Violation, error)
}

// HoldLedger интерфейс для двухфазного резервирования вместимости
type HoldLedger interface {
	ReserveTentative(resourceID int64, tr domain.TimeRange, cost int) (uuid.UUID, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
