package update_window

import (
	"context"

	updateWindow "github.com/m04kA/SMC-AvailabilityService/internal/usecase/update_window"
)

type UpdateWindowUseCase interface {
	Execute(ctx context.Context, req updateWindow.Request) (*updateWindow.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
