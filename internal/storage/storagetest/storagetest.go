// Package storagetest содержит общий набор проверок для реализаций storage.Gateway.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/storage"
)

// Options описывает возможности проверяемого хранилища.
type Options struct {
	// SupportsDelete: есть ли у хранилища идентичность строк.
	SupportsDelete bool
}

// Run прогоняет проверки на свежем хранилище, созданном newGateway для каждого подтеста.
func Run(t *testing.T, opts Options, newGateway func(t *testing.T) storage.Gateway) {
	t.Run("CreateAndFindTestTaker", func(t *testing.T) {
		testCreateAndFindTestTaker(t, newGateway(t))
	})
	t.Run("DuplicateIDCard", func(t *testing.T) {
		testDuplicateIDCard(t, newGateway(t))
	})
	t.Run("ConcurrentDuplicateIDCard", func(t *testing.T) {
		testConcurrentDuplicateIDCard(t, newGateway(t))
	})
	t.Run("QuestionsByVariant", func(t *testing.T) {
		testQuestionsByVariant(t, newGateway(t))
	})
	t.Run("AppendAndListResults", func(t *testing.T) {
		testAppendAndListResults(t, newGateway(t))
	})
	t.Run("Delete", func(t *testing.T) {
		testDelete(t, newGateway(t), opts.SupportsDelete)
	})
}

// Ali возвращает тестового участника из сквозного сценария.
func Ali() model.TestTaker {
	return model.TestTaker{
		FullName:     "Ali",
		PhoneNumber:  "+998901234567",
		IDCardNumber: "AB123456",
		BirthDate:    "2000-01-02",
		Address:      "Tashkent",
		CreatedAt:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func testCreateAndFindTestTaker(t *testing.T, g storage.Gateway) {
	ctx := context.Background()

	created, err := g.CreateTestTaker(ctx, Ali())
	if err != nil {
		t.Fatalf("CreateTestTaker вернул ошибку: %v", err)
	}
	if created.IDCardNumber != "AB123456" {
		t.Errorf("Ожидался id_card_number AB123456, получено %q", created.IDCardNumber)
	}

	found, err := g.FindTestTakerByIDCard(ctx, "AB123456")
	if err != nil {
		t.Fatalf("FindTestTakerByIDCard вернул ошибку: %v", err)
	}
	if found == nil {
		t.Fatal("Участник не найден после создания")
	}
	if found.FullName != "Ali" || found.PhoneNumber != "+998901234567" {
		t.Errorf("Данные участника не совпадают: %+v", found)
	}

	missing, err := g.FindTestTakerByIDCard(ctx, "ZZ000000")
	if err != nil {
		t.Fatalf("FindTestTakerByIDCard вернул ошибку: %v", err)
	}
	if missing != nil {
		t.Errorf("Ожидался nil для неизвестной ID-карты, получено %+v", missing)
	}

	all, err := g.ListTestTakers(ctx)
	if err != nil {
		t.Fatalf("ListTestTakers вернул ошибку: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Ожидался 1 участник, получено %d", len(all))
	}
}

func testDuplicateIDCard(t *testing.T, g storage.Gateway) {
	ctx := context.Background()

	if _, err := g.CreateTestTaker(ctx, Ali()); err != nil {
		t.Fatalf("CreateTestTaker вернул ошибку: %v", err)
	}
	second := Ali()
	second.FullName = "Vali"
	_, err := g.CreateTestTaker(ctx, second)
	if !errors.Is(err, model.ErrDuplicate) {
		t.Fatalf("Ожидалась ErrDuplicate, получено %v", err)
	}

	all, err := g.ListTestTakers(ctx)
	if err != nil {
		t.Fatalf("ListTestTakers вернул ошибку: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Дубликат не должен сохраняться: записей %d", len(all))
	}
}

// concurrentRegistrations число одновременных регистраций одной ID-карты
const concurrentRegistrations = 8

func testConcurrentDuplicateIDCard(t *testing.T, g storage.Gateway) {
	ctx := context.Background()

	errs := make(chan error, concurrentRegistrations)
	var wg sync.WaitGroup
	for i := 0; i < concurrentRegistrations; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			taker := Ali()
			taker.FullName = fmt.Sprintf("Ali %d", i)
			_, err := g.CreateTestTaker(ctx, taker)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	created, duplicates := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, model.ErrDuplicate):
			duplicates++
		default:
			t.Errorf("Неожиданная ошибка: %v", err)
		}
	}
	if created != 1 || duplicates != concurrentRegistrations-1 {
		t.Errorf("Ожидалась 1 успешная регистрация и %d ErrDuplicate, получено %d и %d",
			concurrentRegistrations-1, created, duplicates)
	}

	all, err := g.ListTestTakers(ctx)
	if err != nil {
		t.Fatalf("ListTestTakers вернул ошибку: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Ожидалась одна запись, получено %d", len(all))
	}
}

func testQuestionsByVariant(t *testing.T, g storage.Gateway) {
	ctx := context.Background()

	practice := model.Question{Question: "2+2?", Options: []string{"3", "4", "5"}, Answer: "4"}
	exam := model.Question{Variant: model.VariantExam, Question: "Capital of Uzbekistan?", Options: []string{"Tashkent", "Samarkand"}, Answer: "Tashkent"}
	if _, err := g.CreateQuestion(ctx, practice); err != nil {
		t.Fatalf("CreateQuestion вернул ошибку: %v", err)
	}
	if _, err := g.CreateQuestion(ctx, exam); err != nil {
		t.Fatalf("CreateQuestion вернул ошибку: %v", err)
	}

	qs, err := g.ListQuestions(ctx, model.VariantPractice)
	if err != nil {
		t.Fatalf("ListQuestions вернул ошибку: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("Ожидался 1 вопрос practice, получено %d", len(qs))
	}
	if qs[0].Question != "2+2?" || qs[0].Answer != "4" || len(qs[0].Options) != 3 || qs[0].Options[1] != "4" {
		t.Errorf("Вопрос не совпадает: %+v", qs[0])
	}

	examQs, err := g.ListQuestions(ctx, model.VariantExam)
	if err != nil {
		t.Fatalf("ListQuestions вернул ошибку: %v", err)
	}
	if len(examQs) != 1 || examQs[0].Answer != "Tashkent" {
		t.Errorf("Ожидался 1 вопрос exam, получено %+v", examQs)
	}
}

func testAppendAndListResults(t *testing.T, g storage.Gateway) {
	ctx := context.Background()

	r := model.Result{
		FullName:     "Ali",
		IDCardNumber: "AB123456",
		PhoneNumber:  "+998901234567",
		Score:        16,
		Total:        20,
		Success:      true,
		Date:         time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC),
		Status:       model.DeliverySent,
	}
	if _, err := g.AppendResult(ctx, r); err != nil {
		t.Fatalf("AppendResult вернул ошибку: %v", err)
	}

	results, err := g.ListResults(ctx)
	if err != nil {
		t.Fatalf("ListResults вернул ошибку: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Ожидался 1 результат, получено %d", len(results))
	}
	got := results[0]
	if got.IDCardNumber != "AB123456" || !got.Success || got.Score != 16 || got.Total != 20 {
		t.Errorf("Результат не совпадает: %+v", got)
	}
	if !got.Date.Equal(r.Date) {
		t.Errorf("Ожидалась дата %v, получено %v", r.Date, got.Date)
	}
}

func testDelete(t *testing.T, g storage.Gateway, supported bool) {
	ctx := context.Background()

	created, err := g.CreateTestTaker(ctx, Ali())
	if err != nil {
		t.Fatalf("CreateTestTaker вернул ошибку: %v", err)
	}
	q, err := g.CreateQuestion(ctx, model.Question{Question: "2+2?", Options: []string{"4"}, Answer: "4"})
	if err != nil {
		t.Fatalf("CreateQuestion вернул ошибку: %v", err)
	}

	if !supported {
		if err := g.DeleteTestTaker(ctx, created.ID); !errors.Is(err, model.ErrUnsupported) {
			t.Errorf("Ожидалась ErrUnsupported, получено %v", err)
		}
		if err := g.DeleteQuestion(ctx, q.ID); !errors.Is(err, model.ErrUnsupported) {
			t.Errorf("Ожидалась ErrUnsupported, получено %v", err)
		}
		return
	}

	if err := g.DeleteTestTaker(ctx, created.ID); err != nil {
		t.Fatalf("DeleteTestTaker вернул ошибку: %v", err)
	}
	if err := g.DeleteTestTaker(ctx, created.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Повторное удаление: ожидалась ErrNotFound, получено %v", err)
	}
	found, err := g.FindTestTakerByIDCard(ctx, "AB123456")
	if err != nil {
		t.Fatalf("FindTestTakerByIDCard вернул ошибку: %v", err)
	}
	if found != nil {
		t.Errorf("Участник остался после удаления: %+v", found)
	}

	if err := g.DeleteQuestion(ctx, q.ID); err != nil {
		t.Fatalf("DeleteQuestion вернул ошибку: %v", err)
	}
	qs, err := g.ListQuestions(ctx, model.VariantPractice)
	if err != nil {
		t.Fatalf("ListQuestions вернул ошибку: %v", err)
	}
	if len(qs) != 0 {
		t.Errorf("Вопрос остался после удаления: %+v", qs)
	}
}
