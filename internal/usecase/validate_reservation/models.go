package validate_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на проверку и создание бронирования
type Request struct {
	ResourceID   int64     // ID ресурса
	Start        time.Time // Начало запрошенного диапазона
	End          time.Time // Конец запрошенного диапазона
	CapacityCost int       // Стоимость в единицах вместимости (0 = по умолчанию)
	AddOnIDs     []int64   // Выбранные add-on'ы
	Notes        *string   // Дополнительные заметки (опционально)

	// DryRun: только проверить, не создавая бронирование
	DryRun bool
}

// Response результат проверки.
// При отклонении Violations содержит полный список нарушений,
// чтобы вызывающая сторона показала их все за один проход.
type Response struct {
	Accepted   bool
	Token      uuid.UUID
	Violations []domain.Violation

	// Reservation заполняется при успешном создании (не dry-run)
	Reservation *domain.Reservation
}
