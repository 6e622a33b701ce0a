package challenge

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/IT-Nick/examdesk/internal/domain/model"
)

// CodeTTL время жизни одноразового кода
const CodeTTL = 2 * time.Minute

const (
	minCode = 100000
	maxCode = 999999
)

// entry ожидающий подтверждения код с метаданными срока действия
type entry struct {
	code      string
	issuedAt  time.Time
	expiresAt time.Time
}

// Manager хранит не более одного ожидающего кода на имя пользователя.
// Новый Issue перезаписывает предыдущий код. Просроченные записи удаляются
// при следующей проверке или вызовом Purge.
type Manager struct {
	mu       sync.Mutex
	pending  map[string]entry
	ttl      time.Duration
	now      func() time.Time
	generate func() (int, error)
}

// Option настраивает Manager
type Option func(*Manager)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithCodeSource подменяет генератор кодов
func WithCodeSource(generate func() (int, error)) Option {
	return func(m *Manager) { m.generate = generate }
}

// NewManager создает менеджер с указанным временем жизни кода
func NewManager(ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{
		pending:  make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
		generate: randomCode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// randomCode возвращает равномерно распределенное число из [100000, 999999]
func randomCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return 0, fmt.Errorf("failed to generate code: %w", err)
	}
	return minCode + int(n.Int64()), nil
}

// Issue выпускает новый код для username, заменяя ожидающий код, если он был.
// Код передается администратору через бота и никогда не попадает в HTTP-ответ.
func (m *Manager) Issue(username string) (string, error) {
	n, err := m.generate()
	if err != nil {
		return "", err
	}
	code := strconv.Itoa(n)

	now := m.now()
	m.mu.Lock()
	m.pending[username] = entry{code: code, issuedAt: now, expiresAt: now.Add(m.ttl)}
	m.mu.Unlock()

	return code, nil
}

// Verify проверяет код и при успехе удаляет его.
// Ошибки: model.ErrChallengeNotFound, model.ErrChallengeExpired, model.ErrChallengeMismatch.
func (m *Manager) Verify(username, submitted string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.pending[username]
	if !ok {
		return model.ErrChallengeNotFound
	}
	if m.now().After(e.expiresAt) {
		delete(m.pending, username)
		return model.ErrChallengeExpired
	}
	if strings.TrimSpace(submitted) != e.code {
		return model.ErrChallengeMismatch
	}

	delete(m.pending, username)
	return nil
}

// Purge удаляет просроченные коды и возвращает их количество
func (m *Manager) Purge() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	purged := 0
	for username, e := range m.pending {
		if now.After(e.expiresAt) {
			delete(m.pending, username)
			purged++
		}
	}
	return purged
}
