package service

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	adminsRepo "github.com/IT-Nick/examdesk/internal/domain/admins/repository"
	"github.com/IT-Nick/examdesk/internal/domain/auth/challenge"
	"github.com/IT-Nick/examdesk/internal/domain/auth/session"
	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/infra/notify"
)

const codeMessage = "🔐 Admin login tasdiqlash kodi: %s"

// AuthService реализует двухшаговый вход администратора: пароль, затем код из Telegram
type AuthService struct {
	admins     *adminsRepo.AdminRepository
	challenges *challenge.Manager
	sessions   *session.Issuer
	notifier   notify.Notifier
	// fallbackChatID используется, если у администратора не указан telegram_id
	fallbackChatID int64
	logger         *log.Logger
}

// NewAuthService создает новый экземпляр AuthService
func NewAuthService(
	admins *adminsRepo.AdminRepository,
	challenges *challenge.Manager,
	sessions *session.Issuer,
	notifier notify.Notifier,
	fallbackChatID int64,
	logger *log.Logger,
) *AuthService {
	if logger == nil {
		logger = log.Default()
	}
	return &AuthService{
		admins:         admins,
		challenges:     challenges,
		sessions:       sessions,
		notifier:       notifier,
		fallbackChatID: fallbackChatID,
		logger:         logger,
	}
}

// Login проверяет пароль и отправляет одноразовый код в чат администратора.
// Неизвестное имя и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	admin := s.admins.FindAdministrator(username)
	if admin == nil {
		return fmt.Errorf("%w: invalid username or password", model.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return fmt.Errorf("%w: invalid username or password", model.ErrUnauthorized)
	}

	code, err := s.challenges.Issue(admin.Username)
	if err != nil {
		return fmt.Errorf("failed to issue login code: %w", err)
	}

	chatID := admin.TelegramID
	if chatID == 0 {
		chatID = s.fallbackChatID
	}
	// Ошибка доставки не отменяет шаг: администратор может запросить код повторно
	if err := s.notifier.Notify(ctx, chatID, fmt.Sprintf(codeMessage, code)); err != nil {
		s.logger.Printf("Failed to deliver login code to %s: %v", admin.Username, err)
	}
	return nil
}

// Verify проверяет код и выпускает сессионный токен
func (s *AuthService) Verify(_ context.Context, username, code string) (string, error) {
	if err := s.challenges.Verify(username, code); err != nil {
		return "", err
	}

	token, err := s.sessions.Issue(username)
	if err != nil {
		return "", fmt.Errorf("failed to issue session: %w", err)
	}
	return token, nil
}
