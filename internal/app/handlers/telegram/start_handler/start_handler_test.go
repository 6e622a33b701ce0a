package start_handler

import (
	"strings"
	"testing"

	"gopkg.in/telebot.v4"

	adminsRepo "github.com/IT-Nick/examdesk/internal/domain/admins/repository"
)

// fakeContext переопределяет только методы, которые использует обработчик
type fakeContext struct {
	telebot.Context
	chat   *telebot.Chat
	sender *telebot.User
	sent   []string
}

func (f *fakeContext) Chat() *telebot.Chat   { return f.chat }
func (f *fakeContext) Sender() *telebot.User { return f.sender }

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, what.(string))
	return nil
}

func TestStartHandler(t *testing.T) {
	admins, err := adminsRepo.NewAdminRepository([]adminsRepo.Credentials{
		{Username: "admin1", PasswordHash: "$2a$10$hash", TelegramID: 5470369056},
	})
	if err != nil {
		t.Fatalf("NewAdminRepository вернул ошибку: %v", err)
	}
	h := NewStartHandler(admins)

	t.Run("обычный пользователь", func(t *testing.T) {
		c := &fakeContext{chat: &telebot.Chat{ID: 42}, sender: &telebot.User{ID: 42, FirstName: "Ali"}}
		if err := h.Handle(c); err != nil {
			t.Fatalf("Handle вернул ошибку: %v", err)
		}
		if len(c.sent) != 1 || !strings.Contains(c.sent[0], "Chat ID: 42") || !strings.Contains(c.sent[0], "Ali") {
			t.Errorf("Неожиданный ответ: %v", c.sent)
		}
		if strings.Contains(c.sent[0], "administrator") && strings.Contains(c.sent[0], "admin1") {
			t.Error("Обычный пользователь не должен видеть отметку администратора")
		}
	})

	t.Run("администратор", func(t *testing.T) {
		c := &fakeContext{chat: &telebot.Chat{ID: 5470369056}, sender: &telebot.User{ID: 5470369056, FirstName: "Boss"}}
		if err := h.Handle(c); err != nil {
			t.Fatalf("Handle вернул ошибку: %v", err)
		}
		if len(c.sent) != 1 || !strings.Contains(c.sent[0], "admin1") {
			t.Errorf("Ожидалась отметка администратора: %v", c.sent)
		}
	})

	t.Run("групповой чат", func(t *testing.T) {
		c := &fakeContext{chat: &telebot.Chat{ID: -1002003004, Title: "Exam results"}}
		if err := h.Handle(c); err != nil {
			t.Fatalf("Handle вернул ошибку: %v", err)
		}
		if len(c.sent) != 1 || !strings.Contains(c.sent[0], "-1002003004") || !strings.Contains(c.sent[0], "Exam results") {
			t.Errorf("Неожиданный ответ: %v", c.sent)
		}
	})
}
