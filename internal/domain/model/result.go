package model

import "time"

// Статусы доставки уведомления о результате
const (
	DeliverySent    = "sent"
	DeliverySkipped = "skipped"
)

// Result представляет результат одной попытки сдачи экзамена
type Result struct {
	ID           string    `json:"id,omitempty"`
	FullName     string    `json:"full_name"`
	IDCardNumber string    `json:"id_card_number"`
	PhoneNumber  string    `json:"phone_number"`
	BirthDate    string    `json:"birth_date,omitempty"`
	Address      string    `json:"address,omitempty"`
	Score        int       `json:"score"`
	Total        int       `json:"total"`
	Success      bool      `json:"success"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status,omitempty"`
}
