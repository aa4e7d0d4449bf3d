package validate_reservation

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	validateReservation "github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_reservation"
)

// ValidateReservationRequest HTTP request model
type ValidateReservationRequest struct {
	ResourceID   int64   `json:"resourceId"`
	Start        string  `json:"start"` // RFC3339
	End          string  `json:"end"`   // RFC3339
	CapacityCost int     `json:"capacityCost,omitempty"`
	AddOnIDs     []int64 `json:"addOnIds,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	DryRun       bool    `json:"dryRun,omitempty"`
}

// ViolationResponse HTTP модель одного нарушения
type ViolationResponse struct {
	Field   string                 `json:"field"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// ReservationResponse HTTP модель созданного бронирования
type ReservationResponse struct {
	ID           int64   `json:"id"`
	ResourceID   int64   `json:"resourceId"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	CapacityCost int     `json:"capacityCost"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ValidateReservationResponse HTTP response model
type ValidateReservationResponse struct {
	Accepted    bool                 `json:"accepted"`
	Token       string               `json:"token,omitempty"`
	Violations  []ViolationResponse  `json:"violations,omitempty"`
	Reservation *ReservationResponse `json:"reservation,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateReservationRequest) ToUseCaseRequest() (*validateReservation.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, err
	}

	return &validateReservation.Request{
		ResourceID:   r.ResourceID,
		Start:        start,
		End:          end,
		CapacityCost: r.CapacityCost,
		AddOnIDs:     r.AddOnIDs,
		Notes:        r.Notes,
		DryRun:       r.DryRun,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateReservation.Response) *ValidateReservationResponse {
	out := &ValidateReservationResponse{
		Accepted:   resp.Accepted,
		Violations: toViolationResponses(resp.Violations),
	}

	if resp.Accepted {
		out.Token = resp.Token.String()
	}

	if resp.Reservation != nil {
		out.Reservation = toReservationResponse(resp.Reservation)
	}

	return out
}

func toViolationResponses(violations []domain.Violation) []ViolationResponse {
	if len(violations) == 0 {
		return nil
	}

	out := make([]ViolationResponse, len(violations))
	for i, v := range violations {
		out[i] = ViolationResponse{
			Field:   v.Field,
			Code:    string(v.Code),
			Message: v.Message,
			Context: v.Context,
		}
	}
	return out
}

func toReservationResponse(res *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:           res.ID,
		ResourceID:   res.ResourceID,
		Start:        res.TimeRange.Start.Format(time.RFC3339),
		End:          res.TimeRange.End.Format(time.RFC3339),
		CapacityCost: res.CapacityCost,
		Status:       string(res.Status),
		Notes:        res.Notes,
		CreatedAt:    res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    res.UpdatedAt.Format(time.RFC3339),
	}
}
