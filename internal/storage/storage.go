package storage

import (
	"context"

	"github.com/IT-Nick/examdesk/internal/domain/model"
)

// Типы хранилища, выбираемые в конфигурации
const (
	TypeMemory   = "memory"
	TypeJSON     = "json"
	TypeSheets   = "sheets"
	TypePostgres = "postgres"
	TypeBolt     = "bolt"
)

// Gateway определяет единый интерфейс доступа к участникам, вопросам и результатам.
// Реализации: memory, jsonfile, sheets, postgres, bolt.
//
// CreateTestTaker возвращает model.ErrDuplicate, если номер ID-карты уже занят.
// FindTestTakerByIDCard возвращает nil без ошибки, если участник не найден.
// Удаление возвращает model.ErrNotFound для неизвестного id и model.ErrUnsupported
// на хранилищах без идентичности строк.
type Gateway interface {
	ListTestTakers(ctx context.Context) ([]model.TestTaker, error)
	CreateTestTaker(ctx context.Context, t model.TestTaker) (model.TestTaker, error)
	DeleteTestTaker(ctx context.Context, id string) error
	FindTestTakerByIDCard(ctx context.Context, idCard string) (*model.TestTaker, error)

	ListQuestions(ctx context.Context, variant string) ([]model.Question, error)
	CreateQuestion(ctx context.Context, q model.Question) (model.Question, error)
	DeleteQuestion(ctx context.Context, id string) error

	AppendResult(ctx context.Context, r model.Result) (model.Result, error)
	ListResults(ctx context.Context) ([]model.Result, error)

	Close() error
}

// Variant приводит пустой вариант набора вопросов к значению по умолчанию
func Variant(v string) string {
	if v == "" {
		return model.VariantPractice
	}
	return v
}
