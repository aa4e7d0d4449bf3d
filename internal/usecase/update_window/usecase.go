package update_window

import (
	"context"
	"errors"
	"fmt"

	windowstore "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/window"
)

// UseCase изменение конфигурации окна доступности с проверкой последствий
type UseCase struct {
	windows   WindowRepository
	checker   MutationChecker
	txManager TransactionManager
	logger    Logger
}

func New(windows WindowRepository, checker MutationChecker, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		windows:   windows,
		checker:   checker,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute проверяет влияние изменения на существующие бронирования и,
// если нарушений нет, применяет его. Изменение и проверка выполняются в
// одной serializable-транзакции, чтобы параллельные бронирования не
// проскочили между проверкой и записью.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if req.WindowID <= 0 {
		return nil, fmt.Errorf("%w: Execute - window id must be positive", ErrInvalidInput)
	}

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		w, err := uc.windows.GetByID(ctx, req.WindowID)
		if err != nil {
			if errors.Is(err, windowstore.ErrWindowNotFound) {
				return fmt.Errorf("%w: Execute - window %d", ErrWindowNotFound, req.WindowID)
			}
			return fmt.Errorf("%w: Execute - failed to load window %d: %v", ErrInternal, req.WindowID, err)
		}

		decision, err := uc.checker.CheckWindowMutation(ctx, w, req.Change)
		if err != nil {
			return fmt.Errorf("%w: Execute - mutation check failed for window %d: %v", ErrInternal, req.WindowID, err)
		}

		if !decision.OK {
			uc.logger.Warn("[UpdateWindow] Изменение окна %d отклонено: %d нарушений, затронуто броней: %d",
				req.WindowID, len(decision.Violations), decision.AffectedCount)
			resp = &Response{
				Applied:       false,
				Violations:    decision.Violations,
				AffectedCount: decision.AffectedCount,
			}
			return nil
		}

		proposed := req.Change.ApplyTo(w)

		if req.Change.Deactivate {
			if err := uc.windows.SetActive(ctx, req.WindowID, false); err != nil {
				return fmt.Errorf("%w: Execute - failed to deactivate window %d: %v", ErrInternal, req.WindowID, err)
			}
		} else {
			if err := uc.windows.Update(ctx, &proposed); err != nil {
				return fmt.Errorf("%w: Execute - failed to update window %d: %v", ErrInternal, req.WindowID, err)
			}
		}

		uc.logger.Info("[UpdateWindow] Окно %d обновлено (deactivate=%v)", req.WindowID, req.Change.Deactivate)
		resp = &Response{Applied: true, Window: &proposed}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
