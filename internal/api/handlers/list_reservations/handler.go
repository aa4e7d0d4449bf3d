package list_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/reservations"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/reservations/models"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidStartDate  = "некорректный формат startDate, ожидается YYYY-MM-DD"
	msgInvalidEndDate    = "некорректный формат endDate, ожидается YYYY-MM-DD"
	msgInvalidFilter     = "некорректные параметры фильтрации"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/reservations
// Query params: startDate, endDate (YYYY-MM-DD), status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	resourceIDStr := vars["resourceId"]
	resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/reservations - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	req := &models.ListReservationsRequest{ResourceID: resourceID}

	query := r.URL.Query()

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.logger.Warn("GET /resources/{id}/reservations - Invalid startDate %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidStartDate)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.logger.Warn("GET /resources/{id}/reservations - Invalid endDate %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidEndDate)
			return
		}
		// Конец периода включительно: сдвигаем на следующий день
		endDate = endDate.AddDate(0, 0, 1)
		req.EndDate = &endDate
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if query.Get("includeInactive") == "true" {
		req.IncludeInactive = true
	}

	result, err := h.service.ListByResource(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/reservations - Invalid filter: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /resources/{id}/reservations - Failed to list reservations: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/reservations - Returned %d reservations: resource_id=%d",
		len(result.Reservations), resourceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
