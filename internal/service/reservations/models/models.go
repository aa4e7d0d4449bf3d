package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListReservationsRequest запрос на получение бронирований ресурса
type ListReservationsRequest struct {
	ResourceID      int64      `json:"resourceId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		ResourceID:      r.ResourceID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.StartDate != nil && r.EndDate != nil {
		tr, err := domain.NewTimeRange(*r.StartDate, *r.EndDate)
		if err != nil {
			return filter, err
		}
		filter.Overlapping = &tr
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID           int64  `json:"id"`
	ResourceID   int64  `json:"resourceId"`
	Start        string `json:"start"` // RFC3339
	End          string `json:"end"`   // RFC3339
	CapacityCost int    `json:"capacityCost"`
	Status       string `json:"status"`

	Notes *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // RFC3339

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	if res == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:           res.ID,
		ResourceID:   res.ResourceID,
		Start:        res.TimeRange.Start.Format(time.RFC3339),
		End:          res.TimeRange.End.Format(time.RFC3339),
		CapacityCost: res.CapacityCost,
		Status:       string(res.Status),
		Notes:        res.Notes,
		CreatedAt:    res.CreatedAt,
		UpdatedAt:    res.UpdatedAt,
	}

	resp.CancellationReason = res.CancellationReason
	if res.CancelledAt != nil {
		cancelledAt := res.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}

	for _, res := range list {
		out.Reservations = append(out.Reservations, *FromDomainReservation(res))
	}

	return out
}

// ToDomainReservationStatus конвертирует строку в domain статус
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(status) {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow:
		return domain.ReservationStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
