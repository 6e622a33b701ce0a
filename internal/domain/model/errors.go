package model

import "errors"

// Ошибки домена. Сервисы оборачивают их через fmt.Errorf("...: %w"),
// HTTP-слой сопоставляет их со статусами ответа.
var (
	ErrValidation        = errors.New("validation failed")
	ErrDuplicate         = errors.New("id card number already registered")
	ErrUnauthorized      = errors.New("invalid credentials")
	ErrChallengeNotFound = errors.New("no pending login, log in first")
	ErrChallengeExpired  = errors.New("code expired")
	ErrChallengeMismatch = errors.New("invalid code")
	ErrUserNotFound      = errors.New("test taker not found")
	ErrNotFound          = errors.New("record not found")
	ErrUnsupported       = errors.New("operation not supported by storage backend")
)
