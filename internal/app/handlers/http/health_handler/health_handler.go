package health_handler

import (
	"net/http"

	httpError "github.com/IT-Nick/examdesk/pkg/http"
)

// HealthHandler проверка живости для балансировщика
type HealthHandler struct {
	storageType string
}

// NewHealthHandler создает новый экземпляр обработчика
func NewHealthHandler(storageType string) *HealthHandler {
	return &HealthHandler{storageType: storageType}
}

// ServeHTTP метод для обработки запроса
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	httpError.JSONResponse(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"storage": h.storageType,
	})
}
