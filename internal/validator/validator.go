// Package validator - фасад над движком доступности и графом зависимостей.
// Единственная точка входа для вызывающего слоя.
package validator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
)

// Request входная модель проверки бронирования
type Request struct {
	ResourceID   int64
	TimeRange    domain.TimeRange
	CapacityCost int
	AddOnIDs     []int64
}

// Acceptance is the token the caller uses to persist the reservation.
// The tentative hold keeps the capacity claimed until the caller commits
// (after the write) or rolls back.
type Acceptance struct {
	Token         uuid.UUID
	HoldID        uuid.UUID
	MatchedWindow *domain.AvailabilityWindow
	Occurrence    domain.TimeRange
}

// Validator validates reservation requests end-to-end: availability
// decision plus add-on dependency constraints.
type Validator struct {
	engine AvailabilityEngine
	graph  DependencyGraph
	ledger HoldLedger
	logger Logger
}

// New создает валидатор
func New(eng AvailabilityEngine, graph DependencyGraph, ledger HoldLedger, logger Logger) *Validator {
	return &Validator{
		engine: eng,
		graph:  graph,
		ledger: ledger,
		logger: logger,
	}
}

// Validate runs the availability check and the dependency check
// independently and merges every violation found - it never stops at the
// first failure, so the caller can present the complete list in one pass.
//
// On success the returned Acceptance carries a tentative capacity hold;
// the caller must commit it after persisting the reservation, or roll it
// back on failure.
func (v *Validator) Validate(ctx context.Context, req Request) (*Acceptance, []domain.Violation, error) {
	violations := make([]domain.Violation, 0)

	decision, err := v.engine.Check(ctx, engine.Request{
		ResourceID:   req.ResourceID,
		TimeRange:    req.TimeRange,
		CapacityCost: req.CapacityCost,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("availability check: %w", err)
	}
	violations = append(violations, decision.Violations...)

	if len(req.AddOnIDs) > 0 {
		depViolations, err := v.graph.ValidateSelection(ctx, req.AddOnIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("dependency check: %w", err)
		}
		violations = append(violations, depViolations...)
	}

	if len(violations) > 0 {
		v.logger.Warn("Validate: resource=%d rejected with %d violations",
			req.ResourceID, len(violations))
		return nil, violations, nil
	}

	cost := req.CapacityCost
	if cost < 1 {
		cost = domain.DefaultCapacityCost
	}
	holdID, err := v.ledger.ReserveTentative(req.ResourceID, req.TimeRange, cost)
	if err != nil {
		return nil, nil, fmt.Errorf("tentative hold: %w", err)
	}

	acceptance := &Acceptance{
		Token:         uuid.New(),
		HoldID:        holdID,
		MatchedWindow: decision.MatchedWindow,
		Occurrence:    decision.Occurrence,
	}

	v.logger.Info("Validate: resource=%d accepted, token=%s", req.ResourceID, acceptance.Token)
	return acceptance, nil, nil
}
