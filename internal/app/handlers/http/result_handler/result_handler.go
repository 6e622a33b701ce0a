package result_handler

import (
	"encoding/json"
	"net/http"

	"github.com/IT-Nick/examdesk/internal/domain/dto"
	"github.com/IT-Nick/examdesk/internal/domain/results/service"
	httpError "github.com/IT-Nick/examdesk/pkg/http"
)

// ResultHandler принимает результат экзамена
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler создает новый экземпляр обработчика
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// ServeHTTP метод для обработки запроса
func (h *ResultHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.ResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.IDCardNumber == "" || req.Score == nil || req.Total == nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "id_card_number, score and total are required")
		return
	}

	result, err := h.resultService.Record(r.Context(), req.IDCardNumber, *req.Score, *req.Total)
	if err != nil {
		httpError.Error(w, err)
		return
	}

	httpError.JSONResponse(w, http.StatusOK, dto.ResultResponse{Message: "Natija saqlandi", Success: result.Success})
}
