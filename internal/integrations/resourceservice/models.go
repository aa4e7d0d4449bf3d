package resourceservice

// Resource модель ресурса из ResourceService
type Resource struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от ResourceService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
