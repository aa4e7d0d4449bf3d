package validate_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	validateReservation "github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_reservation"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeFormat  = "некорректный формат времени, ожидается RFC3339"
	msgResourceNotFound   = "ресурс не найден"

	operationName   = "validate_reservation"
	outcomeAccepted = "accepted"
)

type Handler struct {
	useCase ValidateReservationUseCase
	metrics *metrics.Metrics
	logger  Logger
}

func NewHandler(useCase ValidateReservationUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations/validate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateReservation.ErrResourceNotFound):
			h.logger.Warn("POST /reservations/validate - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, validateReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/validate - Invalid input: resource_id=%d, error=%v",
				req.ResourceID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations/validate - Failed to validate reservation: resource_id=%d, error=%v",
				req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	// Отклонение по бизнес-правилам не ошибка транспорта: всегда 200 с
	// полным списком нарушений
	if result.Accepted {
		h.metrics.ObserveDecision(operationName, outcomeAccepted)
		h.logger.Info("POST /reservations/validate - Reservation accepted: resource_id=%d, dry_run=%v",
			req.ResourceID, req.DryRun)
	} else {
		h.metrics.ObserveDecision(operationName, string(result.Violations[0].Code))
		h.logger.Info("POST /reservations/validate - Reservation rejected: resource_id=%d, violations=%d",
			req.ResourceID, len(result.Violations))
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
