package notify

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
)

func TestLogSender_WritesMessage(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(log.New(&buf, "", 0))

	if err := s.Notify(context.Background(), 5470369056, "🔐 Admin login tasdiqlash kodi: 123456"); err != nil {
		t.Fatalf("Notify вернул ошибку: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "chat=5470369056") || !strings.Contains(out, "123456") {
		t.Errorf("Неожиданная запись в логе: %q", out)
	}
}

func TestTelegramSender_CanceledContext(t *testing.T) {
	s := NewTelegramSender(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Notify(ctx, 1, "text"); err == nil {
		t.Error("Ожидалась ошибка для отмененного контекста")
	}
}
