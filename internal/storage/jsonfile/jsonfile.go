package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/storage"
	"github.com/google/uuid"
)

// Имена файлов коллекций внутри каталога данных
const (
	TestTakersFile = "test_takers.json"
	QuestionsFile  = "questions.json"
	ResultsFile    = "results.json"
)

// collection JSON-массив в отдельном файле. Каждое изменение перечитывает и
// перезаписывает файл целиком.
type collection[T any] struct {
	filename string
}

// newCollection создаёт файл с пустым массивом, если его ещё нет.
func newCollection[T any](filename string) (collection[T], error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		if err := os.WriteFile(filename, []byte("[]"), 0644); err != nil {
			return collection[T]{}, fmt.Errorf("failed to create file %s: %w", filename, err)
		}
	}
	return collection[T]{filename: filename}, nil
}

func (c collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", c.filename, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", c.filename, err)
	}
	return items, nil
}

func (c collection[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(c.filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", c.filename, err)
	}
	return nil
}

// Store реализация storage.Gateway поверх трёх JSON-файлов.
type Store struct {
	mu         sync.Mutex // сериализует циклы чтение-изменение-запись
	testTakers collection[model.TestTaker]
	questions  collection[model.Question]
	results    collection[model.Result]
}

var _ storage.Gateway = (*Store)(nil)

// New открывает (и при необходимости создаёт) файлы коллекций в каталоге dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	testTakers, err := newCollection[model.TestTaker](filepath.Join(dir, TestTakersFile))
	if err != nil {
		return nil, err
	}
	questions, err := newCollection[model.Question](filepath.Join(dir, QuestionsFile))
	if err != nil {
		return nil, err
	}
	results, err := newCollection[model.Result](filepath.Join(dir, ResultsFile))
	if err != nil {
		return nil, err
	}
	return &Store{testTakers: testTakers, questions: questions, results: results}, nil
}

func (s *Store) ListTestTakers(_ context.Context) ([]model.TestTaker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.testTakers.load()
}

func (s *Store) CreateTestTaker(_ context.Context, t model.TestTaker) (model.TestTaker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.testTakers.load()
	if err != nil {
		return model.TestTaker{}, err
	}
	for _, existing := range items {
		if existing.IDCardNumber == t.IDCardNumber {
			return model.TestTaker{}, model.ErrDuplicate
		}
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := s.testTakers.save(append(items, t)); err != nil {
		return model.TestTaker{}, err
	}
	return t, nil
}

func (s *Store) DeleteTestTaker(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.testTakers.load()
	if err != nil {
		return err
	}
	for i, t := range items {
		if t.ID == id {
			return s.testTakers.save(append(items[:i], items[i+1:]...))
		}
	}
	return model.ErrNotFound
}

func (s *Store) FindTestTakerByIDCard(_ context.Context, idCard string) (*model.TestTaker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.testTakers.load()
	if err != nil {
		return nil, err
	}
	for _, t := range items {
		if t.IDCardNumber == idCard {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Store) ListQuestions(_ context.Context, variant string) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.questions.load()
	if err != nil {
		return nil, err
	}
	variant = storage.Variant(variant)
	var qs []model.Question
	for _, q := range items {
		if storage.Variant(q.Variant) == variant {
			qs = append(qs, q)
		}
	}
	return qs, nil
}

func (s *Store) CreateQuestion(_ context.Context, q model.Question) (model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.questions.load()
	if err != nil {
		return model.Question{}, err
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.Variant = storage.Variant(q.Variant)
	if err := s.questions.save(append(items, q)); err != nil {
		return model.Question{}, err
	}
	return q, nil
}

func (s *Store) DeleteQuestion(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.questions.load()
	if err != nil {
		return err
	}
	for i, q := range items {
		if q.ID == id {
			return s.questions.save(append(items[:i], items[i+1:]...))
		}
	}
	return model.ErrNotFound
}

func (s *Store) AppendResult(_ context.Context, r model.Result) (model.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.results.load()
	if err != nil {
		return model.Result{}, err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if err := s.results.save(append(items, r)); err != nil {
		return model.Result{}, err
	}
	return r, nil
}

func (s *Store) ListResults(_ context.Context) ([]model.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results.load()
}

func (s *Store) Close() error {
	return nil
}
