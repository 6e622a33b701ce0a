package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/infra/notify"
	"github.com/IT-Nick/examdesk/internal/storage"
)

// PassingScore минимальный балл для успешной сдачи
const PassingScore = 15

// notifyTimeout ограничивает фоновую отправку уведомления
const notifyTimeout = 10 * time.Second

const resultMessage = "📊 TEST NATIJASI\n%s\n👤 Ism: %s\n📞 Tel: %s\n🆔 ID: %s\n🎯 Ball: %d/%d"

// ResultService записывает результаты экзамена и считает статистику
type ResultService struct {
	store    storage.Gateway
	notifier notify.Notifier
	chatID   int64
	logger   *log.Logger
	now      func() time.Time
	wg       sync.WaitGroup
}

// NewResultService создает новый экземпляр ResultService.
// При chatID == 0 уведомления не отправляются, а результат сохраняется со статусом skipped.
func NewResultService(store storage.Gateway, notifier notify.Notifier, chatID int64, logger *log.Logger) *ResultService {
	if logger == nil {
		logger = log.Default()
	}
	return &ResultService{
		store:    store,
		notifier: notifier,
		chatID:   chatID,
		logger:   logger,
		now:      time.Now,
	}
}

// Passed сообщает, является ли балл проходным
func Passed(score int) bool {
	return score >= PassingScore
}

// Record сохраняет результат участника с номером ID-карты idCard и
// отправляет сводку в канал администраторов, не дожидаясь доставки.
func (s *ResultService) Record(ctx context.Context, idCard string, score, total int) (model.Result, error) {
	idCard = strings.TrimSpace(idCard)
	switch {
	case idCard == "":
		return model.Result{}, fmt.Errorf("%w: missing id_card_number", model.ErrValidation)
	case score < 0 || total < 0:
		return model.Result{}, fmt.Errorf("%w: score and total must be non-negative", model.ErrValidation)
	case score > total:
		return model.Result{}, fmt.Errorf("%w: score %d exceeds total %d", model.ErrValidation, score, total)
	}

	taker, err := s.store.FindTestTakerByIDCard(ctx, idCard)
	if err != nil {
		return model.Result{}, fmt.Errorf("failed to find test taker: %w", err)
	}
	if taker == nil {
		return model.Result{}, model.ErrUserNotFound
	}

	status := model.DeliverySent
	if s.chatID == 0 {
		status = model.DeliverySkipped
	}

	result, err := s.store.AppendResult(ctx, model.Result{
		FullName:     taker.FullName,
		IDCardNumber: taker.IDCardNumber,
		PhoneNumber:  taker.PhoneNumber,
		BirthDate:    taker.BirthDate,
		Address:      taker.Address,
		Score:        score,
		Total:        total,
		Success:      Passed(score),
		Date:         s.now().UTC(),
		Status:       status,
	})
	if err != nil {
		return model.Result{}, fmt.Errorf("failed to save result: %w", err)
	}

	if status == model.DeliverySent {
		s.notifyAsync(FormatResult(result))
	}
	return result, nil
}

// notifyAsync отправляет сообщение в отдельной горутине с собственным таймаутом,
// так как запрос клиента к этому моменту уже может завершиться
func (s *ResultService) notifyAsync(text string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, s.chatID, text); err != nil {
			s.logger.Printf("Failed to send result notification: %v", err)
		}
	}()
}

// Wait дожидается завершения отправленных уведомлений
func (s *ResultService) Wait() {
	s.wg.Wait()
}

// FormatResult формирует текст уведомления о результате
func FormatResult(r model.Result) string {
	status := "❌ Muvaffaqiyatsiz!"
	if r.Success {
		status = "✅ Muvaffaqiyatli!"
	}
	return fmt.Sprintf(resultMessage, status, r.FullName, r.PhoneNumber, r.IDCardNumber, r.Score, r.Total)
}

// List возвращает все результаты в порядке добавления
func (s *ResultService) List(ctx context.Context) ([]model.Result, error) {
	results, err := s.store.ListResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}

// UserStats считает регистрации по дням
func (s *ResultService) UserStats(ctx context.Context) ([]model.DailyCount, error) {
	takers, err := s.store.ListTestTakers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list test takers: %w", err)
	}

	counts := make(map[string]int)
	for _, t := range takers {
		if t.CreatedAt.IsZero() {
			continue
		}
		counts[t.CreatedAt.UTC().Format(time.DateOnly)]++
	}

	stats := make([]model.DailyCount, 0, len(counts))
	for date, count := range counts {
		stats = append(stats, model.DailyCount{Date: date, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats, nil
}

// ResultStats считает сводку по баллам
func (s *ResultService) ResultStats(ctx context.Context) (model.ResultStats, error) {
	results, err := s.store.ListResults(ctx)
	if err != nil {
		return model.ResultStats{}, fmt.Errorf("failed to list results: %w", err)
	}
	return Summarize(results), nil
}

// Summarize считает статистику по набору результатов. Пустой набор дает нулевую сводку.
func Summarize(results []model.Result) model.ResultStats {
	stats := model.ResultStats{ScoreDistribution: []model.ScoreCount{}}
	if len(results) == 0 {
		return stats
	}

	byScore := make(map[int]int)
	sum := 0
	stats.MinScore = results[0].Score
	stats.MaxScore = results[0].Score
	for _, r := range results {
		sum += r.Score
		byScore[r.Score]++
		if r.Score < stats.MinScore {
			stats.MinScore = r.Score
		}
		if r.Score > stats.MaxScore {
			stats.MaxScore = r.Score
		}
		if r.Success {
			stats.Passed++
		}
		stats.CorrectIncorrect.Correct += r.Score
		if r.Total > r.Score {
			stats.CorrectIncorrect.Incorrect += r.Total - r.Score
		}
	}

	stats.Count = len(results)
	stats.AverageScore = math.Round(float64(sum)/float64(len(results))*100) / 100
	for score, count := range byScore {
		stats.ScoreDistribution = append(stats.ScoreDistribution, model.ScoreCount{Score: score, Count: count})
	}
	sort.Slice(stats.ScoreDistribution, func(i, j int) bool {
		return stats.ScoreDistribution[i].Score < stats.ScoreDistribution[j].Score
	})
	return stats
}
