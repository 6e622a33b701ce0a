package service

import (
	"context"
	"errors"
	"testing"

	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/storage/memory"
)

func TestCreateAndList(t *testing.T) {
	s := NewQuestionService(memory.New())
	ctx := context.Background()

	practice, err := s.Create(ctx, model.Question{Question: "2+2?", Options: []string{"3", "4"}, Answer: "4"})
	if err != nil {
		t.Fatalf("Create вернул ошибку: %v", err)
	}
	if practice.Variant != model.VariantPractice || practice.ID == "" {
		t.Errorf("Неожиданный вопрос: %+v", practice)
	}
	if _, err := s.Create(ctx, model.Question{Variant: model.VariantExam, Question: "3+3?", Options: []string{"6", "7"}, Answer: "6"}); err != nil {
		t.Fatalf("Create вернул ошибку: %v", err)
	}

	got, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("List вернул ошибку: %v", err)
	}
	if len(got) != 1 || got[0].Question != "2+2?" {
		t.Errorf("Ожидался один practice-вопрос, получено %+v", got)
	}
	if got[0].Options[0] != "3" || got[0].Options[1] != "4" {
		t.Errorf("Порядок вариантов ответа нарушен: %v", got[0].Options)
	}

	exam, err := s.List(ctx, model.VariantExam)
	if err != nil {
		t.Fatalf("List вернул ошибку: %v", err)
	}
	if len(exam) != 1 || exam[0].Question != "3+3?" {
		t.Errorf("Ожидался один exam-вопрос, получено %+v", exam)
	}
}

func TestCreate_Validation(t *testing.T) {
	s := NewQuestionService(memory.New())
	cases := map[string]model.Question{
		"no question": {Options: []string{"a"}, Answer: "a"},
		"no options":  {Question: "q", Answer: "a"},
		"no answer":   {Question: "q", Options: []string{"a"}},
		"bad variant": {Variant: "final", Question: "q", Options: []string{"a"}, Answer: "a"},
	}
	for name, q := range cases {
		if _, err := s.Create(context.Background(), q); !errors.Is(err, model.ErrValidation) {
			t.Errorf("%s: ожидалась ErrValidation, получено %v", name, err)
		}
	}
}

func TestDelete(t *testing.T) {
	s := NewQuestionService(memory.New())
	ctx := context.Background()
	q, err := s.Create(ctx, model.Question{Question: "q", Options: []string{"a"}, Answer: "a"})
	if err != nil {
		t.Fatalf("Create вернул ошибку: %v", err)
	}
	if err := s.Delete(ctx, q.ID); err != nil {
		t.Fatalf("Delete вернул ошибку: %v", err)
	}
	if err := s.Delete(ctx, q.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Ожидалась ErrNotFound, получено %v", err)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	s := NewQuestionService(memory.New())
	ctx := context.Background()
	questions := []model.Question{
		{Question: "q1", Options: []string{"a", "b"}, Answer: "a"},
		{Question: "q2", Options: []string{"a", "b"}, Answer: "b"},
		{Variant: model.VariantExam, Question: "e1", Options: []string{"x"}, Answer: "x"},
	}

	added, err := s.Seed(ctx, questions)
	if err != nil {
		t.Fatalf("Seed вернул ошибку: %v", err)
	}
	if added != 3 {
		t.Errorf("Ожидалось 3 добавленных вопроса, получено %d", added)
	}

	added, err = s.Seed(ctx, questions)
	if err != nil {
		t.Fatalf("Повторный Seed вернул ошибку: %v", err)
	}
	if added != 0 {
		t.Errorf("Повторный Seed не должен ничего добавлять, добавлено %d", added)
	}

	practice, _ := s.List(ctx, model.VariantPractice)
	exam, _ := s.List(ctx, model.VariantExam)
	if len(practice) != 2 || len(exam) != 1 {
		t.Errorf("Ожидалось 2 practice и 1 exam, получено %d и %d", len(practice), len(exam))
	}
}

func TestDraw(t *testing.T) {
	s := NewQuestionService(memory.New())
	ctx := context.Background()
	for _, text := range []string{"q1", "q2", "q3", "q4"} {
		if _, err := s.Create(ctx, model.Question{Question: text, Options: []string{"a"}, Answer: "a"}); err != nil {
			t.Fatalf("Create вернул ошибку: %v", err)
		}
	}

	drawn, err := s.Draw(ctx, "", 2)
	if err != nil {
		t.Fatalf("Draw вернул ошибку: %v", err)
	}
	if len(drawn) != 2 || drawn[0].ID == drawn[1].ID {
		t.Errorf("Ожидалось 2 разных вопроса, получено %+v", drawn)
	}

	all, err := s.Draw(ctx, "", 0)
	if err != nil {
		t.Fatalf("Draw вернул ошибку: %v", err)
	}
	if len(all) != 4 || all[0].Question != "q1" {
		t.Errorf("При n=0 ожидались все вопросы по порядку, получено %+v", all)
	}
}
