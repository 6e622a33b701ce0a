package stats_handler

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/examdesk/internal/domain/model"
	resultsService "github.com/IT-Nick/examdesk/internal/domain/results/service"
	testTakersService "github.com/IT-Nick/examdesk/internal/domain/testtakers/service"
	"github.com/IT-Nick/examdesk/internal/infra/notify"
	"github.com/IT-Nick/examdesk/internal/storage/memory"
)

type fakeContext struct {
	telebot.Context
	sent []string
}

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, what.(string))
	return nil
}

func TestStatsHandler(t *testing.T) {
	store := memory.New()
	takers := testTakersService.NewTestTakerService(store)
	results := resultsService.NewResultService(store, notify.NewLogSender(log.New(io.Discard, "", 0)), 0, nil)
	ctx := context.Background()

	for _, card := range []string{"AB1", "AB2"} {
		if _, err := takers.Register(ctx, model.TestTaker{FullName: "Ali", PhoneNumber: "1", IDCardNumber: card}); err != nil {
			t.Fatalf("Register вернул ошибку: %v", err)
		}
	}
	if _, err := results.Record(ctx, "AB1", 18, 20); err != nil {
		t.Fatalf("Record вернул ошибку: %v", err)
	}
	if _, err := results.Record(ctx, "AB2", 10, 20); err != nil {
		t.Fatalf("Record вернул ошибку: %v", err)
	}
	results.Wait()

	c := &fakeContext{}
	if err := NewStatsHandler(takers, results).GetHandlerFunc()(c); err != nil {
		t.Fatalf("Handle вернул ошибку: %v", err)
	}
	if len(c.sent) != 1 {
		t.Fatalf("Ожидался один ответ, получено %d", len(c.sent))
	}
	for _, want := range []string{"Roʻyxatdan oʻtganlar: 2", "Natijalar: 2", "Muvaffaqiyatli: 1", "Oʻrtacha ball: 14.00", "Eng yuqori: 18"} {
		if !strings.Contains(c.sent[0], want) {
			t.Errorf("В ответе нет %q: %s", want, c.sent[0])
		}
	}
}
