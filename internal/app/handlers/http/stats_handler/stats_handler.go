package stats_handler

import (
	"net/http"

	"github.com/IT-Nick/examdesk/internal/domain/results/service"
	httpError "github.com/IT-Nick/examdesk/pkg/http"
)

// UsersStatsHandler число регистраций по дням
type UsersStatsHandler struct {
	resultService *service.ResultService
}

// NewUsersStatsHandler создает новый экземпляр обработчика
func NewUsersStatsHandler(resultService *service.ResultService) *UsersStatsHandler {
	return &UsersStatsHandler{resultService: resultService}
}

// ServeHTTP метод для обработки запроса
func (h *UsersStatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.resultService.UserStats(r.Context())
	if err != nil {
		httpError.Error(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, stats)
}

// ResultsStatsHandler сводка по баллам
type ResultsStatsHandler struct {
	resultService *service.ResultService
}

// NewResultsStatsHandler создает новый экземпляр обработчика
func NewResultsStatsHandler(resultService *service.ResultService) *ResultsStatsHandler {
	return &ResultsStatsHandler{resultService: resultService}
}

// ServeHTTP метод для обработки запроса
func (h *ResultsStatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.resultService.ResultStats(r.Context())
	if err != nil {
		httpError.Error(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, stats)
}
