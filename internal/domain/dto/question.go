package dto

import "github.com/IT-Nick/examdesk/internal/domain/model"

// QuestionRequest создание вопроса
type QuestionRequest struct {
	Variant  string   `json:"variant"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// ToModel переводит запрос в модель
func (r QuestionRequest) ToModel() model.Question {
	return model.Question{
		Variant:  r.Variant,
		Question: r.Question,
		Options:  r.Options,
		Answer:   r.Answer,
	}
}
