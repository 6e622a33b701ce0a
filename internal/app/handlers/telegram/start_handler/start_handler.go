package start_handler

import (
	"fmt"

	"gopkg.in/telebot.v4"

	adminsRepo "github.com/IT-Nick/examdesk/internal/domain/admins/repository"
)

const startMessage = "Assalomu alaykum, %s!\n🆔 Chat ID: %d\nUshbu raqamni CHAT_ID yoki administrator telegram_id maydoniga yozing."

// StartHandler структура для обработки команды /start
type StartHandler struct {
	admins *adminsRepo.AdminRepository
}

// NewStartHandler возвращает структуру обработчика
func NewStartHandler(admins *adminsRepo.AdminRepository) *StartHandler {
	return &StartHandler{admins: admins}
}

// Handle отвечает ID чата, чтобы его можно было вписать в конфигурацию
func (h *StartHandler) Handle(c telebot.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}

	name := chat.FirstName
	if sender := c.Sender(); sender != nil && sender.FirstName != "" {
		name = sender.FirstName
	}
	if name == "" {
		name = chat.Title
	}

	text := fmt.Sprintf(startMessage, name, chat.ID)
	if sender := c.Sender(); sender != nil {
		if admin := h.admins.FindByTelegramID(sender.ID); admin != nil {
			text += fmt.Sprintf("\n👤 Siz administratorsiz: %s", admin.Username)
		}
	}
	return c.Send(text)
}

// GetHandlerFunc возвращает функцию-обработчик
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return h.Handle
}
