package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/storage"
)

// TestTakerService содержит логику регистрации участников
type TestTakerService struct {
	store storage.Gateway
	now   func() time.Time
}

// NewTestTakerService создает новый экземпляр TestTakerService
func NewTestTakerService(store storage.Gateway) *TestTakerService {
	return &TestTakerService{store: store, now: time.Now}
}

// Register проверяет обязательные поля и сохраняет участника.
// Повторный номер ID-карты дает model.ErrDuplicate.
func (s *TestTakerService) Register(ctx context.Context, t model.TestTaker) (model.TestTaker, error) {
	t.FullName = strings.TrimSpace(t.FullName)
	t.PhoneNumber = strings.TrimSpace(t.PhoneNumber)
	t.IDCardNumber = strings.TrimSpace(t.IDCardNumber)

	var missing []string
	if t.FullName == "" {
		missing = append(missing, "full_name")
	}
	if t.PhoneNumber == "" {
		missing = append(missing, "phone_number")
	}
	if t.IDCardNumber == "" {
		missing = append(missing, "id_card_number")
	}
	if len(missing) > 0 {
		return model.TestTaker{}, fmt.Errorf("%w: missing %s", model.ErrValidation, strings.Join(missing, ", "))
	}

	t.ID = ""
	t.CreatedAt = s.now().UTC()

	created, err := s.store.CreateTestTaker(ctx, t)
	if err != nil {
		return model.TestTaker{}, fmt.Errorf("failed to register test taker: %w", err)
	}
	return created, nil
}

// List возвращает всех зарегистрированных участников
func (s *TestTakerService) List(ctx context.Context) ([]model.TestTaker, error) {
	takers, err := s.store.ListTestTakers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list test takers: %w", err)
	}
	return takers, nil
}

// Delete удаляет участника по id
func (s *TestTakerService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTestTaker(ctx, id); err != nil {
		return fmt.Errorf("failed to delete test taker %s: %w", id, err)
	}
	return nil
}
