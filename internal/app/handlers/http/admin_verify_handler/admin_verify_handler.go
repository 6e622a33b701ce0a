package admin_verify_handler

import (
	"encoding/json"
	"net/http"

	"github.com/IT-Nick/examdesk/internal/domain/auth/service"
	"github.com/IT-Nick/examdesk/internal/domain/dto"
	httpError "github.com/IT-Nick/examdesk/pkg/http"
)

// AdminVerifyHandler второй шаг входа: проверка кода и выдача токена
type AdminVerifyHandler struct {
	authService *service.AuthService
}

// NewAdminVerifyHandler создает новый экземпляр обработчика
func NewAdminVerifyHandler(authService *service.AuthService) *AdminVerifyHandler {
	return &AdminVerifyHandler{authService: authService}
}

// ServeHTTP метод для обработки запроса
func (h *AdminVerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.authService.Verify(r.Context(), req.Username, string(req.Code))
	if err != nil {
		httpError.Error(w, err)
		return
	}

	httpError.JSONResponse(w, http.StatusOK, dto.VerifyResponse{Msg: "Kirish muvaffaqiyatli!", Token: token})
}
