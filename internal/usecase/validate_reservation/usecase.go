package validate_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	resourceClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/resourceservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/validator"
)

// UseCase use case проверки и создания бронирования.
// Критическая секция "проверить - записать" выполняется в сериализуемой
// транзакции: два конкурентных запроса на пересекающиеся диапазоны
// одного ресурса не могут оба пройти при нехватке вместимости.
type UseCase struct {
	reservationRepo ReservationRepository
	validator       ReservationValidator
	ledger          HoldLedger
	resourceClient  ResourceServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	v ReservationValidator,
	ledger HoldLedger,
	resourceClient ResourceServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		validator:       v,
		ledger:          ledger,
		resourceClient:  resourceClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет проверку запроса и, при успехе, создаёт бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateReservation: resource=%d, start=%s, end=%s, cost=%d, addons=%d, dryRun=%v",
		req.ResourceID, req.Start, req.End, req.CapacityCost, len(req.AddOnIDs), req.DryRun)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateReservation: validation failed: %v", err)
		return nil, err
	}

	// Проверяем существование ресурса до дорогой части пайплайна
	resource, err := uc.resourceClient.GetResource(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceClient.ErrResourceNotFound) {
			uc.logger.Warn("ValidateReservation: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("ValidateReservation: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}
	if !resource.IsActive {
		uc.logger.Warn("ValidateReservation: resource id=%d is inactive", req.ResourceID)
		return nil, ErrResourceNotFound
	}

	timeRange, err := domain.NewTimeRange(req.Start, req.End)
	if err != nil {
		// некорректный диапазон - бизнес-исход, а не сбой
		return &Response{
			Accepted: false,
			Violations: []domain.Violation{
				domain.NewViolation("timeRange", domain.CodeInvalidTimeRange,
					"end must be after start"),
			},
		}, nil
	}

	var response *Response

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		acceptance, violations, err := uc.validator.Validate(txCtx, validator.Request{
			ResourceID:   req.ResourceID,
			TimeRange:    timeRange,
			CapacityCost: req.CapacityCost,
			AddOnIDs:     req.AddOnIDs,
		})
		if err != nil {
			uc.logger.Error("ValidateReservation: validator failed: %v", err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		if len(violations) > 0 {
			response = &Response{Accepted: false, Violations: violations}
			return nil
		}

		if req.DryRun {
			// Холд не нужен: решение не сопровождается записью
			if err := uc.ledger.Rollback(acceptance.HoldID); err != nil {
				uc.logger.Warn("ValidateReservation: dry-run hold rollback failed: %v", err)
			}
			response = &Response{Accepted: true, Token: acceptance.Token}
			return nil
		}

		cost := req.CapacityCost
		if cost < 1 {
			cost = domain.DefaultCapacityCost
		}

		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			ResourceID:   req.ResourceID,
			TimeRange:    timeRange,
			CapacityCost: cost,
			Status:       domain.StatusConfirmed,
			Notes:        req.Notes,
		})
		if err != nil {
			if rbErr := uc.ledger.Rollback(acceptance.HoldID); rbErr != nil {
				uc.logger.Warn("ValidateReservation: hold rollback failed: %v", rbErr)
			}
			uc.logger.Error("ValidateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// Запись зафиксирована: с этого момента вместимость учитывает сама строка
		if err := uc.ledger.Commit(acceptance.HoldID); err != nil {
			uc.logger.Warn("ValidateReservation: hold commit failed: %v", err)
		}

		response = &Response{
			Accepted:    true,
			Token:       acceptance.Token,
			Reservation: created,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	if response.Accepted {
		uc.logger.Info("ValidateReservation: accepted resource=%d token=%s", req.ResourceID, response.Token)
	} else {
		uc.logger.Info("ValidateReservation: rejected resource=%d with %d violations",
			req.ResourceID, len(response.Violations))
	}

	return response, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if req.CapacityCost < 0 {
		return fmt.Errorf("%w: capacityCost must be >= 0", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	for _, id := range req.AddOnIDs {
		if id <= 0 {
			return fmt.Errorf("%w: addOnIds must be positive", ErrInvalidInput)
		}
	}

	return nil
}
