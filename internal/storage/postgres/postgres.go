package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS test_takers (
    id             TEXT PRIMARY KEY,
    full_name      TEXT NOT NULL,
    phone_number   TEXT NOT NULL,
    id_card_number TEXT NOT NULL UNIQUE,
    birth_date     TEXT NOT NULL DEFAULT '',
    address        TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS questions (
    id         TEXT PRIMARY KEY,
    variant    TEXT NOT NULL DEFAULT 'practice',
    question   TEXT NOT NULL,
    options    JSONB NOT NULL DEFAULT '[]',
    answer     TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS results (
    id             TEXT PRIMARY KEY,
    full_name      TEXT NOT NULL,
    id_card_number TEXT NOT NULL,
    phone_number   TEXT NOT NULL,
    birth_date     TEXT NOT NULL DEFAULT '',
    address        TEXT NOT NULL DEFAULT '',
    score          INTEGER NOT NULL,
    total          INTEGER NOT NULL,
    success        BOOLEAN NOT NULL,
    date           TIMESTAMPTZ NOT NULL,
    status         TEXT NOT NULL DEFAULT ''
);
`

// Store реализация storage.Gateway с использованием базы данных PostgreSQL
type Store struct {
	db *pgxpool.Pool
}

var _ storage.Gateway = (*Store)(nil)

// New создает хранилище и применяет схему
func New(ctx context.Context, db *pgxpool.Pool) (*Store, error) {
	if _, err := db.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// ListTestTakers возвращает всех участников в порядке регистрации
func (s *Store) ListTestTakers(ctx context.Context) ([]model.TestTaker, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, full_name, phone_number, id_card_number, birth_date, address, created_at
        FROM test_takers
        ORDER BY created_at, id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query test takers: %w", err)
	}
	defer rows.Close()

	var testTakers []model.TestTaker
	for rows.Next() {
		var t model.TestTaker
		if err := rows.Scan(&t.ID, &t.FullName, &t.PhoneNumber, &t.IDCardNumber, &t.BirthDate, &t.Address, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan test taker: %w", err)
		}
		testTakers = append(testTakers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return testTakers, nil
}

// CreateTestTaker добавляет участника; уникальность ID-карты обеспечивает индекс таблицы
func (s *Store) CreateTestTaker(ctx context.Context, t model.TestTaker) (model.TestTaker, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	err := s.db.QueryRow(ctx, `
        INSERT INTO test_takers (id, full_name, phone_number, id_card_number, birth_date, address, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id_card_number) DO NOTHING
        RETURNING id
    `, t.ID, t.FullName, t.PhoneNumber, t.IDCardNumber, t.BirthDate, t.Address, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TestTaker{}, model.ErrDuplicate
		}
		return model.TestTaker{}, fmt.Errorf("failed to create test taker: %w", err)
	}
	return t, nil
}

// DeleteTestTaker удаляет участника по идентификатору
func (s *Store) DeleteTestTaker(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM test_takers WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("failed to delete test taker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// FindTestTakerByIDCard ищет участника по номеру ID-карты
func (s *Store) FindTestTakerByIDCard(ctx context.Context, idCard string) (*model.TestTaker, error) {
	var t model.TestTaker
	err := s.db.QueryRow(ctx, `
        SELECT id, full_name, phone_number, id_card_number, birth_date, address, created_at
        FROM test_takers
        WHERE id_card_number = $1
    `, idCard).Scan(&t.ID, &t.FullName, &t.PhoneNumber, &t.IDCardNumber, &t.BirthDate, &t.Address, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get test taker by id card: %w", err)
	}
	return &t, nil
}

// ListQuestions возвращает вопросы заданного набора
func (s *Store) ListQuestions(ctx context.Context, variant string) ([]model.Question, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, variant, question, options, answer
        FROM questions
        WHERE variant = $1
        ORDER BY created_at, id
    `, storage.Variant(variant))
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Variant, &q.Question, &q.Options, &q.Answer); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return questions, nil
}

// CreateQuestion добавляет вопрос
func (s *Store) CreateQuestion(ctx context.Context, q model.Question) (model.Question, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.Variant = storage.Variant(q.Variant)
	if q.Options == nil {
		q.Options = []string{}
	}
	_, err := s.db.Exec(ctx,
		"INSERT INTO questions (id, variant, question, options, answer) VALUES ($1, $2, $3, $4, $5)",
		q.ID, q.Variant, q.Question, q.Options, q.Answer)
	if err != nil {
		return model.Question{}, fmt.Errorf("failed to create question: %w", err)
	}
	return q, nil
}

// DeleteQuestion удаляет вопрос по идентификатору
func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM questions WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// AppendResult сохраняет результат экзамена
func (s *Store) AppendResult(ctx context.Context, r model.Result) (model.Result, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.Exec(ctx, `
        INSERT INTO results (id, full_name, id_card_number, phone_number, birth_date, address, score, total, success, date, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, r.ID, r.FullName, r.IDCardNumber, r.PhoneNumber, r.BirthDate, r.Address, r.Score, r.Total, r.Success, r.Date, r.Status)
	if err != nil {
		return model.Result{}, fmt.Errorf("failed to append result: %w", err)
	}
	return r, nil
}

// ListResults возвращает все результаты в порядке сдачи
func (s *Store) ListResults(ctx context.Context) ([]model.Result, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, full_name, id_card_number, phone_number, birth_date, address, score, total, success, date, status
        FROM results
        ORDER BY date, id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []model.Result
	for rows.Next() {
		var r model.Result
		err := rows.Scan(&r.ID, &r.FullName, &r.IDCardNumber, &r.PhoneNumber, &r.BirthDate, &r.Address,
			&r.Score, &r.Total, &r.Success, &r.Date, &r.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return results, nil
}

// Close закрывает пул соединений
func (s *Store) Close() error {
	s.db.Close()
	return nil
}
