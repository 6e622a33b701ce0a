package model

// Administrator представляет администратора панели
type Administrator struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	TelegramID   int64  `json:"telegram_id"`
}
