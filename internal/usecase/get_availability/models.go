package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ResourceID int64     // ID ресурса
	Date       time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ResourceID int64
	Date       time.Time
	Slots      []domain.AvailableSlot
}
