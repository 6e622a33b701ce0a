package users_handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/IT-Nick/examdesk/internal/app/middleware"
	"github.com/IT-Nick/examdesk/internal/domain/dto"
	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/domain/testtakers/service"
	httpError "github.com/IT-Nick/examdesk/pkg/http"
)

// RegisterHandler регистрирует участника экзамена
type RegisterHandler struct {
	testTakerService *service.TestTakerService
}

// NewRegisterHandler создает новый экземпляр обработчика
func NewRegisterHandler(testTakerService *service.TestTakerService) *RegisterHandler {
	return &RegisterHandler{testTakerService: testTakerService}
}

// ServeHTTP метод для обработки запроса
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.testTakerService.Register(r.Context(), req.ToModel())
	if err != nil {
		httpError.Error(w, err)
		return
	}

	httpError.JSONResponse(w, http.StatusCreated, created)
}

// ListHandler возвращает всех участников
type ListHandler struct {
	testTakerService *service.TestTakerService
}

// NewListHandler создает новый экземпляр обработчика
func NewListHandler(testTakerService *service.TestTakerService) *ListHandler {
	return &ListHandler{testTakerService: testTakerService}
}

// ServeHTTP метод для обработки запроса
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	takers, err := h.testTakerService.List(r.Context())
	if err != nil {
		httpError.Error(w, err)
		return
	}
	if takers == nil {
		takers = []model.TestTaker{}
	}
	httpError.JSONResponse(w, http.StatusOK, takers)
}

// DeleteHandler удаляет участника по id из пути
type DeleteHandler struct {
	testTakerService *service.TestTakerService
}

// NewDeleteHandler создает новый экземпляр обработчика
func NewDeleteHandler(testTakerService *service.TestTakerService) *DeleteHandler {
	return &DeleteHandler{testTakerService: testTakerService}
}

// ServeHTTP метод для обработки запроса
func (h *DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.testTakerService.Delete(r.Context(), id); err != nil {
		httpError.Error(w, err)
		return
	}
	log.Printf("Test taker %s deleted by %s", id, middleware.AdminName(r.Context()))
	httpError.JSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Foydalanuvchi oʻchirildi"})
}
