package update_window

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
)

// WindowRepository интерфейс репозитория окон доступности
type WindowRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityWindow, error)
	Update(ctx context.Context, w *domain.AvailabilityWindow) error
	SetActive(ctx context.Context, id int64, active bool) error
}

// MutationChecker интерфейс проверки влияния изменений конфигурации
type MutationChecker interface {
	CheckWindowMutation(ctx context.Context, w *domain.AvailabilityWindow, change engine.WindowChange) (*engine.MutationDecision, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
