package model

// Варианты набора вопросов
const (
	VariantPractice = "practice"
	VariantExam     = "exam"
)

// Question представляет вопрос теста
type Question struct {
	ID       string   `json:"id,omitempty"`
	Variant  string   `json:"variant"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}
