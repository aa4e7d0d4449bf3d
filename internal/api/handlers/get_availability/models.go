package get_availability

import (
	"time"

	getAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// GetAvailabilityResponse HTTP response model
type GetAvailabilityResponse struct {
	ResourceID int64          `json:"resourceId"`
	Date       string         `json:"date"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *GetAvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			Start:           s.TimeRange.Start.Format(time.RFC3339),
			End:             s.TimeRange.End.Format(time.RFC3339),
			DurationMinutes: s.DurationMinutes,
			AvailableSpots:  s.AvailableSpots,
			TotalSpots:      s.TotalSpots,
		}
	}

	return &GetAvailabilityResponse{
		ResourceID: resp.ResourceID,
		Date:       resp.Date.Format("2006-01-02"),
		Slots:      slots,
	}
}
