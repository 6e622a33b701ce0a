package stats_handler

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/telebot.v4"

	resultsService "github.com/IT-Nick/examdesk/internal/domain/results/service"
	testTakersService "github.com/IT-Nick/examdesk/internal/domain/testtakers/service"
)

const statsMessage = "📈 Statistika\n👥 Roʻyxatdan oʻtganlar: %d\n📝 Natijalar: %d\n✅ Muvaffaqiyatli: %d\n📊 Oʻrtacha ball: %.2f\n⬇️ Eng past: %d\n⬆️ Eng yuqori: %d"

// requestTimeout ограничивает обращение к хранилищу из бота
const requestTimeout = 15 * time.Second

// StatsHandler структура для обработки команды /stats
type StatsHandler struct {
	testTakerService *testTakersService.TestTakerService
	resultService    *resultsService.ResultService
}

// NewStatsHandler возвращает структуру обработчика
func NewStatsHandler(testTakerService *testTakersService.TestTakerService, resultService *resultsService.ResultService) *StatsHandler {
	return &StatsHandler{testTakerService: testTakerService, resultService: resultService}
}

// Handle отправляет администратору сводку по участникам и результатам
func (h *StatsHandler) Handle(c telebot.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	takers, err := h.testTakerService.List(ctx)
	if err != nil {
		return c.Send(fmt.Sprintf("Statistikani olishda xatolik: %v", err))
	}
	stats, err := h.resultService.ResultStats(ctx)
	if err != nil {
		return c.Send(fmt.Sprintf("Statistikani olishda xatolik: %v", err))
	}

	return c.Send(fmt.Sprintf(statsMessage,
		len(takers), stats.Count, stats.Passed, stats.AverageScore, stats.MinScore, stats.MaxScore))
}

// GetHandlerFunc возвращает функцию-обработчик
func (h *StatsHandler) GetHandlerFunc() telebot.HandlerFunc {
	return h.Handle
}
