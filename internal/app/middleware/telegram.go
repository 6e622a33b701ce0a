package middleware

import (
	"encoding/json"
	"fmt"
	"log"

	tele "gopkg.in/telebot.v4"

	adminsRepo "github.com/IT-Nick/examdesk/internal/domain/admins/repository"
)

// Recover перехватывает панику в обработчике бота и передает ее в onError.
// Без onError паника только логируется.
func Recover(onError ...func(error, tele.Context)) tele.MiddlewareFunc {
	handleError := func(err error, _ tele.Context) {
		log.Printf("Recovered from panic: %v", err)
	}
	if len(onError) > 0 {
		handleError = onError[0]
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					e, ok := r.(error)
					if !ok {
						e = fmt.Errorf("%v", r)
					}
					handleError(e, c)
					err = e
				}
			}()
			return next(c)
		}
	}
}

// Logger пишет каждое входящее обновление в лог в виде JSON.
// Подключается только в режиме отладки.
func Logger(logger ...*log.Logger) tele.MiddlewareFunc {
	l := log.Default()
	if len(logger) > 0 {
		l = logger[0]
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			data, _ := json.MarshalIndent(c.Update(), "", "  ")
			l.Println(string(data))
			return next(c)
		}
	}
}

// AdminOnly пропускает к обработчику только администраторов из конфигурации
func AdminOnly(admins *adminsRepo.AdminRepository) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil || admins.FindByTelegramID(sender.ID) == nil {
				return c.Send("⛔️ Bu buyruq faqat administratorlar uchun.")
			}
			return next(c)
		}
	}
}
