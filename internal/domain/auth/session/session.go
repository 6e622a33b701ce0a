package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/IT-Nick/examdesk/internal/domain/model"
)

// TokenTTL срок жизни сессионного токена администратора
const TokenTTL = 2 * time.Hour

// RoleAdmin единственная роль, которую выпускает сервис
const RoleAdmin = "admin"

// Claims содержимое токена администратора
type Claims struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issuer подписывает и проверяет токены HS256
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer создает новый экземпляр Issuer
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// SetClock подменяет источник времени, используется в тестах
func (i *Issuer) SetClock(now func() time.Time) {
	i.now = now
}

// Issue выпускает токен с ролью admin для username
func (i *Issuer) Issue(username string) (string, error) {
	now := i.now()
	claims := Claims{
		Role:     RoleAdmin,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse проверяет подпись, срок действия и роль токена.
// Любая ошибка сводится к model.ErrUnauthorized.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", model.ErrUnauthorized)
	}
	if claims.Role != RoleAdmin {
		return nil, fmt.Errorf("%w: role %q is not allowed", model.ErrUnauthorized, claims.Role)
	}
	return claims, nil
}
