package dto

import "github.com/IT-Nick/examdesk/internal/domain/model"

// RegisterRequest регистрация участника.
// Старые клиенты присылают адрес в поле adress.
type RegisterRequest struct {
	FullName     string `json:"full_name"`
	PhoneNumber  string `json:"phone_number"`
	IDCardNumber string `json:"id_card_number"`
	BirthDate    string `json:"birth_date"`
	Address      string `json:"address"`
	LegacyAdress string `json:"adress"`
}

// ToModel переводит запрос в модель
func (r RegisterRequest) ToModel() model.TestTaker {
	address := r.Address
	if address == "" {
		address = r.LegacyAdress
	}
	return model.TestTaker{
		FullName:     r.FullName,
		PhoneNumber:  r.PhoneNumber,
		IDCardNumber: r.IDCardNumber,
		BirthDate:    r.BirthDate,
		Address:      address,
	}
}
