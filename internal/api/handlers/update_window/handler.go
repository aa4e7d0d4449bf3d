package update_window

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	updateWindow "github.com/m04kA/SMC-AvailabilityService/internal/usecase/update_window"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

const (
	msgInvalidWindowID    = "некорректный ID окна"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidChange      = "некорректные параметры изменения"
	msgWindowNotFound     = "окно доступности не найдено"

	operationName  = "update_window"
	outcomeApplied = "applied"
)

type Handler struct {
	useCase UpdateWindowUseCase
	metrics *metrics.Metrics
	logger  Logger
}

func NewHandler(useCase UpdateWindowUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle PUT /api/v1/windows/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	windowIDStr := vars["windowId"]

	windowID, err := strconv.ParseInt(windowIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /windows/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	var req UpdateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /windows/{id} - Invalid request body: window_id=%d, error=%v", windowID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(windowID)
	if err != nil {
		h.logger.Warn("PUT /windows/{id} - Failed to parse change: window_id=%d, error=%v", windowID, err)
		handlers.RespondBadRequest(w, msgInvalidChange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateWindow.ErrWindowNotFound):
			h.logger.Warn("PUT /windows/{id} - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, updateWindow.ErrInvalidInput):
			h.logger.Warn("PUT /windows/{id} - Invalid input: window_id=%d, error=%v", windowID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /windows/{id} - Failed to update window: window_id=%d, error=%v", windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if result.Applied {
		h.metrics.ObserveDecision(operationName, outcomeApplied)
		h.logger.Info("PUT /windows/{id} - Window updated: window_id=%d", windowID)
		handlers.RespondJSON(w, http.StatusOK, response)
		return
	}

	// Изменение отклонено проверкой последствий: 409 со списком нарушений
	h.metrics.ObserveDecision(operationName, string(result.Violations[0].Code))
	h.logger.Info("PUT /windows/{id} - Change rejected: window_id=%d, violations=%d, affected=%d",
		windowID, len(result.Violations), result.AffectedCount)
	handlers.RespondJSON(w, http.StatusConflict, response)
}
