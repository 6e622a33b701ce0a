package webhook_handler

import (
	"encoding/json"
	"log"
	"net/http"

	"gopkg.in/telebot.v4"
)

// WebhookHandler принимает обновления Telegram на /bot<token>
type WebhookHandler struct {
	bot *telebot.Bot
}

// NewWebhookHandler создает новый экземпляр обработчика
func NewWebhookHandler(bot *telebot.Bot) *WebhookHandler {
	return &WebhookHandler{bot: bot}
}

// ServeHTTP всегда отвечает 200, иначе Telegram будет повторять доставку
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var update telebot.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Printf("Failed to decode telegram update: %v", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	h.bot.ProcessUpdate(update)
	w.WriteHeader(http.StatusOK)
}
