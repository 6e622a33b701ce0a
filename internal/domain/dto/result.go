package dto

// ResultRequest результат экзамена от клиента.
// Указатели отличают отсутствующее поле от нуля.
type ResultRequest struct {
	IDCardNumber string `json:"id_card_number"`
	Score        *int   `json:"score"`
	Total        *int   `json:"total"`
}

// ResultResponse ответ на сохранение результата
type ResultResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// MessageResponse ответ с текстом для пользователя панели
type MessageResponse struct {
	Message string `json:"message"`
}
