package repository

import (
	"fmt"

	"github.com/IT-Nick/examdesk/internal/domain/model"
	"golang.org/x/crypto/bcrypt"
)

// Credentials описывает администратора из конфигурации.
// Задается либо Password (хешируется при старте), либо готовый bcrypt PasswordHash.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
	TelegramID   int64
}

// AdminRepository неизменяемый список администраторов, собранный при старте процесса
type AdminRepository struct {
	byUsername   map[string]model.Administrator
	byTelegramID map[int64]model.Administrator
}

// NewAdminRepository хеширует пароли и создает новый экземпляр AdminRepository
func NewAdminRepository(creds []Credentials) (*AdminRepository, error) {
	r := &AdminRepository{
		byUsername:   make(map[string]model.Administrator, len(creds)),
		byTelegramID: make(map[int64]model.Administrator, len(creds)),
	}
	for _, c := range creds {
		if c.Username == "" {
			return nil, fmt.Errorf("admin username is empty")
		}
		if _, ok := r.byUsername[c.Username]; ok {
			return nil, fmt.Errorf("admin %s is listed twice", c.Username)
		}

		hash := c.PasswordHash
		if hash == "" {
			if c.Password == "" {
				return nil, fmt.Errorf("admin %s has neither password nor password_hash", c.Username)
			}
			h, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password for %s: %w", c.Username, err)
			}
			hash = string(h)
		}

		admin := model.Administrator{Username: c.Username, PasswordHash: hash, TelegramID: c.TelegramID}
		r.byUsername[c.Username] = admin
		if c.TelegramID != 0 {
			r.byTelegramID[c.TelegramID] = admin
		}
	}
	return r, nil
}

// FindAdministrator ищет администратора по имени пользователя.
// Возвращает nil, если такого администратора нет.
func (r *AdminRepository) FindAdministrator(username string) *model.Administrator {
	admin, ok := r.byUsername[username]
	if !ok {
		return nil
	}
	return &admin
}

// FindByTelegramID ищет администратора по ID чата Telegram
func (r *AdminRepository) FindByTelegramID(telegramID int64) *model.Administrator {
	admin, ok := r.byTelegramID[telegramID]
	if !ok {
		return nil
	}
	return &admin
}
