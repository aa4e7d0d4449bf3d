package update_window

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
	updateWindow "github.com/m04kA/SMC-AvailabilityService/internal/usecase/update_window"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// TimeOfDayModel HTTP модель дневного интервала
type TimeOfDayModel struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "18:00"
}

// RecurrenceModel HTTP модель правила повторения
type RecurrenceModel struct {
	Kind      string `json:"kind"`                // weekly | date_range | specific_date
	Weekday   *int   `json:"weekday,omitempty"`   // 0 = Sunday .. 6 = Saturday
	StartDate string `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate   string `json:"endDate,omitempty"`   // YYYY-MM-DD
	Date      string `json:"date,omitempty"`      // YYYY-MM-DD
}

// UpdateWindowRequest HTTP request model. Незаполненные поля не меняются.
type UpdateWindowRequest struct {
	TimeOfDay     *TimeOfDayModel  `json:"timeOfDay,omitempty"`
	Recurrence    *RecurrenceModel `json:"recurrence,omitempty"`
	MaxConcurrent *int             `json:"maxConcurrent,omitempty"`
	BufferBefore  *int             `json:"bufferBeforeMinutes,omitempty"`
	BufferAfter   *int             `json:"bufferAfterMinutes,omitempty"`
	Deactivate    bool             `json:"deactivate,omitempty"`
}

// ViolationResponse HTTP модель одного нарушения
type ViolationResponse struct {
	Field   string                 `json:"field"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// UpdateWindowResponse HTTP response model
type UpdateWindowResponse struct {
	Applied       bool                `json:"applied"`
	Violations    []ViolationResponse `json:"violations,omitempty"`
	AffectedCount int                 `json:"affectedCount,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateWindowRequest) ToUseCaseRequest(windowID int64) (updateWindow.Request, error) {
	change := engine.WindowChange{
		MaxConcurrent: r.MaxConcurrent,
		BufferBefore:  r.BufferBefore,
		BufferAfter:   r.BufferAfter,
		Deactivate:    r.Deactivate,
	}

	if r.TimeOfDay != nil {
		start, err := types.NewTimeStringFromString(r.TimeOfDay.Start)
		if err != nil {
			return updateWindow.Request{}, err
		}
		end, err := types.NewTimeStringFromString(r.TimeOfDay.End)
		if err != nil {
			return updateWindow.Request{}, err
		}
		change.TimeOfDay = &domain.ClockRange{Start: start, End: end}
	}

	if r.Recurrence != nil {
		rec, err := r.Recurrence.toDomain()
		if err != nil {
			return updateWindow.Request{}, err
		}
		change.Recurrence = rec
	}

	return updateWindow.Request{WindowID: windowID, Change: change}, nil
}

func (m *RecurrenceModel) toDomain() (*domain.Recurrence, error) {
	rec := &domain.Recurrence{Kind: domain.RecurrenceKind(m.Kind)}

	switch rec.Kind {
	case domain.RecurrenceWeekly:
		if m.Weekday == nil || *m.Weekday < 0 || *m.Weekday > 6 {
			return nil, fmt.Errorf("weekday must be in range 0..6")
		}
		rec.Weekday = time.Weekday(*m.Weekday)

	case domain.RecurrenceDateRange:
		startDate, err := time.Parse("2006-01-02", m.StartDate)
		if err != nil {
			return nil, err
		}
		endDate, err := time.Parse("2006-01-02", m.EndDate)
		if err != nil {
			return nil, err
		}
		rec.StartDate = startDate
		rec.EndDate = endDate

	case domain.RecurrenceSpecificDate:
		date, err := time.Parse("2006-01-02", m.Date)
		if err != nil {
			return nil, err
		}
		rec.Date = date

	default:
		return nil, fmt.Errorf("unknown recurrence kind %q", m.Kind)
	}

	return rec, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateWindow.Response) *UpdateWindowResponse {
	out := &UpdateWindowResponse{
		Applied:       resp.Applied,
		AffectedCount: resp.AffectedCount,
	}

	if len(resp.Violations) > 0 {
		out.Violations = make([]ViolationResponse, len(resp.Violations))
		for i, v := range resp.Violations {
			out.Violations[i] = ViolationResponse{
				Field:   v.Field,
				Code:    string(v.Code),
				Message: v.Message,
				Context: v.Context,
			}
		}
	}

	return out
}
