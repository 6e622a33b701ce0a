package bank

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/IT-Nick/examdesk/internal/domain/model"
)

// entry вопрос в файле банка. Текст задается полем question или text,
// ответ строкой или индексом в options.
type entry struct {
	Variant  string          `json:"variant"`
	Question string          `json:"question"`
	Text     string          `json:"text"`
	Options  []string        `json:"options"`
	Answer   json.RawMessage `json:"answer"`
}

// LoadFile загружает вопросы из JSON-файла
func LoadFile(filename string) ([]model.Question, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank %s: %w", filename, err)
	}
	return Parse(data)
}

// Parse разбирает JSON-массив вопросов
func Parse(data []byte) ([]model.Question, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	questions := make([]model.Question, 0, len(entries))
	for i, e := range entries {
		text := e.Question
		if text == "" {
			text = e.Text
		}
		answer, err := resolveAnswer(e.Answer, e.Options)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, model.Question{
			Variant:  e.Variant,
			Question: strings.TrimSpace(text),
			Options:  e.Options,
			Answer:   answer,
		})
	}
	return questions, nil
}

func resolveAnswer(raw json.RawMessage, options []string) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: missing answer", model.ErrValidation)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var idx int
	if err := json.Unmarshal(raw, &idx); err != nil {
		return "", fmt.Errorf("%w: answer must be a string or an option index", model.ErrValidation)
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("%w: answer index %d out of range", model.ErrValidation, idx)
	}
	return options[idx], nil
}

// Pick возвращает до n случайных вопросов без повторов. При n <= 0 или n >= len
// возвращаются все вопросы в случайном порядке.
func Pick(questions []model.Question, n int) []model.Question {
	cpy := make([]model.Question, len(questions))
	copy(cpy, questions)
	rand.Shuffle(len(cpy), func(i, j int) {
		cpy[i], cpy[j] = cpy[j], cpy[i]
	})
	if n <= 0 || n > len(cpy) {
		n = len(cpy)
	}
	return cpy[:n]
}
