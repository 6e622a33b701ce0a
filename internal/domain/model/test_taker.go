package model

import "time"

// TestTaker представляет зарегистрированного участника экзамена
type TestTaker struct {
	ID           string    `json:"id,omitempty"`
	FullName     string    `json:"full_name"`
	PhoneNumber  string    `json:"phone_number"`
	IDCardNumber string    `json:"id_card_number"`
	BirthDate    string    `json:"birth_date,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
