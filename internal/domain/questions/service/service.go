package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/domain/questions/bank"
	"github.com/IT-Nick/examdesk/internal/storage"
)

// QuestionService управляет банком вопросов
type QuestionService struct {
	store storage.Gateway
}

// NewQuestionService создает новый экземпляр QuestionService
func NewQuestionService(store storage.Gateway) *QuestionService {
	return &QuestionService{store: store}
}

// List возвращает вопросы варианта; пустой вариант означает practice
func (s *QuestionService) List(ctx context.Context, variant string) ([]model.Question, error) {
	variant = storage.Variant(variant)
	if err := checkVariant(variant); err != nil {
		return nil, err
	}
	questions, err := s.store.ListQuestions(ctx, variant)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// Draw возвращает до n случайных вопросов варианта; n <= 0 означает все вопросы по порядку
func (s *QuestionService) Draw(ctx context.Context, variant string, n int) ([]model.Question, error) {
	questions, err := s.List(ctx, variant)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return questions, nil
	}
	return bank.Pick(questions, n), nil
}

// Seed добавляет вопросы из банка в варианты, где вопросов еще нет.
// Повторный запуск ничего не дублирует. Возвращает число добавленных вопросов.
func (s *QuestionService) Seed(ctx context.Context, questions []model.Question) (int, error) {
	byVariant := make(map[string][]model.Question)
	var order []string
	for _, q := range questions {
		v := storage.Variant(q.Variant)
		if _, ok := byVariant[v]; !ok {
			order = append(order, v)
		}
		byVariant[v] = append(byVariant[v], q)
	}

	added := 0
	for _, variant := range order {
		existing, err := s.List(ctx, variant)
		if err != nil {
			return added, err
		}
		if len(existing) > 0 {
			continue
		}
		for _, q := range byVariant[variant] {
			q.Variant = variant
			if _, err := s.Create(ctx, q); err != nil {
				return added, err
			}
			added++
		}
	}
	return added, nil
}

// Create сохраняет новый вопрос. Вопросы не изменяются после создания.
func (s *QuestionService) Create(ctx context.Context, q model.Question) (model.Question, error) {
	q.Variant = storage.Variant(q.Variant)
	if err := checkVariant(q.Variant); err != nil {
		return model.Question{}, err
	}
	q.Question = strings.TrimSpace(q.Question)
	if q.Question == "" {
		return model.Question{}, fmt.Errorf("%w: missing question", model.ErrValidation)
	}
	if len(q.Options) == 0 {
		return model.Question{}, fmt.Errorf("%w: missing options", model.ErrValidation)
	}
	if strings.TrimSpace(q.Answer) == "" {
		return model.Question{}, fmt.Errorf("%w: missing answer", model.ErrValidation)
	}

	q.ID = ""
	created, err := s.store.CreateQuestion(ctx, q)
	if err != nil {
		return model.Question{}, fmt.Errorf("failed to create question: %w", err)
	}
	return created, nil
}

// Delete удаляет вопрос по id
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		return fmt.Errorf("failed to delete question %s: %w", id, err)
	}
	return nil
}

func checkVariant(variant string) error {
	if variant != model.VariantPractice && variant != model.VariantExam {
		return fmt.Errorf("%w: unknown variant %q", model.ErrValidation, variant)
	}
	return nil
}
