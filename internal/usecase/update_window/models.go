package update_window

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
)

// Request модель запроса на изменение конфигурации окна
type Request struct {
	WindowID int64
	Change   engine.WindowChange
}

// Response результат проверки и применения изменения.
// Отклонение сопровождается полным списком нарушений и количеством
// затронутых бронирований.
type Response struct {
	Applied       bool
	Violations    []domain.Violation
	AffectedCount int
	Window        *domain.AvailabilityWindow
}
