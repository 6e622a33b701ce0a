package notify

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/telebot.v4"
)

// Notifier доставляет текстовое сообщение в чат администратора
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

// TelegramSender отправляет сообщения через бота
type TelegramSender struct {
	bot *telebot.Bot
}

// NewTelegramSender создает новый экземпляр TelegramSender
func NewTelegramSender(bot *telebot.Bot) *TelegramSender {
	return &TelegramSender{bot: bot}
}

// Notify отправляет text в чат chatID.
// telebot не принимает контекст, поэтому отмена проверяется только до отправки.
func (s *TelegramSender) Notify(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.bot.Send(telebot.ChatID(chatID), text); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}
	return nil
}

// LogSender пишет сообщения в лог вместо отправки, используется без токена бота
type LogSender struct {
	logger *log.Logger
}

// NewLogSender создает LogSender. При nil используется стандартный логгер.
func NewLogSender(logger *log.Logger) LogSender {
	if logger == nil {
		logger = log.Default()
	}
	return LogSender{logger: logger}
}

func (s LogSender) Notify(_ context.Context, chatID int64, text string) error {
	s.logger.Printf("notify chat=%d: %s", chatID, text)
	return nil
}
