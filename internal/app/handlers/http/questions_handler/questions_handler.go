package questions_handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/IT-Nick/examdesk/internal/app/middleware"
	"github.com/IT-Nick/examdesk/internal/domain/dto"
	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/domain/questions/service"
	httpError "github.com/IT-Nick/examdesk/pkg/http"
)

// ListHandler возвращает вопросы варианта.
// Вариант фиксируется при создании обработчика; пустой вариант читается из ?variant=.
// ?limit=n отдает n случайных вопросов.
type ListHandler struct {
	questionService *service.QuestionService
	variant         string
}

// NewListHandler создает новый экземпляр обработчика
func NewListHandler(questionService *service.QuestionService, variant string) *ListHandler {
	return &ListHandler{questionService: questionService, variant: variant}
}

// ServeHTTP метод для обработки запроса
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	variant := h.variant
	if variant == "" {
		variant = r.URL.Query().Get("variant")
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httpError.ErrorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	questions, err := h.questionService.Draw(r.Context(), variant, limit)
	if err != nil {
		httpError.Error(w, err)
		return
	}
	if questions == nil {
		questions = []model.Question{}
	}
	httpError.JSONResponse(w, http.StatusOK, questions)
}

// CreateHandler добавляет вопрос
type CreateHandler struct {
	questionService *service.QuestionService
}

// NewCreateHandler создает новый экземпляр обработчика
func NewCreateHandler(questionService *service.QuestionService) *CreateHandler {
	return &CreateHandler{questionService: questionService}
}

// ServeHTTP метод для обработки запроса
func (h *CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.QuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.questionService.Create(r.Context(), req.ToModel())
	if err != nil {
		httpError.Error(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusCreated, created)
}

// DeleteHandler удаляет вопрос по id из пути
type DeleteHandler struct {
	questionService *service.QuestionService
}

// NewDeleteHandler создает новый экземпляр обработчика
func NewDeleteHandler(questionService *service.QuestionService) *DeleteHandler {
	return &DeleteHandler{questionService: questionService}
}

// ServeHTTP метод для обработки запроса
func (h *DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.questionService.Delete(r.Context(), id); err != nil {
		httpError.Error(w, err)
		return
	}
	log.Printf("Question %s deleted by %s", id, middleware.AdminName(r.Context()))
	httpError.JSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Savol oʻchirildi"})
}
