package admin_login_handler

import (
	"encoding/json"
	"net/http"

	"github.com/IT-Nick/examdesk/internal/domain/auth/service"
	"github.com/IT-Nick/examdesk/internal/domain/dto"
	httpError "github.com/IT-Nick/examdesk/pkg/http"
)

// AdminLoginHandler первый шаг входа: проверка пароля и отправка кода
type AdminLoginHandler struct {
	authService *service.AuthService
}

// NewAdminLoginHandler создает новый экземпляр обработчика
func NewAdminLoginHandler(authService *service.AuthService) *AdminLoginHandler {
	return &AdminLoginHandler{authService: authService}
}

// ServeHTTP метод для обработки запроса
func (h *AdminLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.authService.Login(r.Context(), req.Username, req.Password); err != nil {
		httpError.Error(w, err)
		return
	}

	httpError.JSONResponse(w, http.StatusOK, dto.LoginResponse{Step: "verify_code"})
}
