package memory

import (
	"context"
	"sync"

	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/storage"
	"github.com/google/uuid"
)

// Store in-memory реализация storage.Gateway.
type Store struct {
	mu         sync.RWMutex
	testTakers []model.TestTaker
	questions  []model.Question
	results    []model.Result
}

// New создаёт пустое хранилище.
func New() *Store {
	return &Store{}
}

var _ storage.Gateway = (*Store)(nil)

func (s *Store) ListTestTakers(_ context.Context) ([]model.TestTaker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.TestTaker(nil), s.testTakers...), nil
}

// CreateTestTaker проверяет уникальность ID-карты и добавляет запись под одной блокировкой.
func (s *Store) CreateTestTaker(_ context.Context, t model.TestTaker) (model.TestTaker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.testTakers {
		if existing.IDCardNumber == t.IDCardNumber {
			return model.TestTaker{}, model.ErrDuplicate
		}
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.testTakers = append(s.testTakers, t)
	return t, nil
}

func (s *Store) DeleteTestTaker(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.testTakers {
		if t.ID == id {
			s.testTakers = append(s.testTakers[:i], s.testTakers[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (s *Store) FindTestTakerByIDCard(_ context.Context, idCard string) (*model.TestTaker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.testTakers {
		if t.IDCardNumber == idCard {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Store) ListQuestions(_ context.Context, variant string) ([]model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	variant = storage.Variant(variant)
	var qs []model.Question
	for _, q := range s.questions {
		if q.Variant == variant {
			qs = append(qs, q)
		}
	}
	return qs, nil
}

func (s *Store) CreateQuestion(_ context.Context, q model.Question) (model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.Variant = storage.Variant(q.Variant)
	s.questions = append(s.questions, q)
	return q, nil
}

func (s *Store) DeleteQuestion(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (s *Store) AppendResult(_ context.Context, r model.Result) (model.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.results = append(s.results, r)
	return r, nil
}

func (s *Store) ListResults(_ context.Context) ([]model.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Result(nil), s.results...), nil
}

func (s *Store) Close() error {
	return nil
}
