package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/IT-Nick/examdesk/internal/domain/model"
)

// ErrorBody тело ответа с ошибкой. Поле msg дублирует message для клиентов панели,
// которые читают ошибки входа из msg.
type ErrorBody struct {
	Message string `json:"message"`
	Msg     string `json:"msg"`
}

// ErrorResponse пишет ошибку в формате JSON с указанным статусом
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, ErrorBody{Message: message, Msg: message})
}

// JSONResponse сериализует v и пишет его с указанным статусом
func JSONResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// Error сопоставляет ошибку домена со статусом и текстом ответа
func Error(w http.ResponseWriter, err error) {
	ErrorResponse(w, StatusFor(err), MessageFor(err))
}

// StatusFor возвращает HTTP-статус для ошибки домена.
// Ошибки хранилища без собственного типа дают 400.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrUnauthorized), errors.Is(err, model.ErrChallengeMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusBadRequest
	}
}

// MessageFor возвращает текст для пользователя панели
func MessageFor(err error) string {
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		return "Login maʼlumotlari xato"
	case errors.Is(err, model.ErrChallengeNotFound):
		return "Avval login qiling"
	case errors.Is(err, model.ErrChallengeExpired):
		return "Kod muddati tugagan"
	case errors.Is(err, model.ErrChallengeMismatch):
		return "Kod xato"
	case errors.Is(err, model.ErrUserNotFound):
		return "Foydalanuvchi topilmadi"
	case errors.Is(err, model.ErrDuplicate):
		return "Bu ID karta raqami allaqachon roʻyxatdan oʻtgan"
	default:
		return err.Error()
	}
}
