package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken возвращается для неподписанного, просроченного или неполного токена.
var ErrInvalidToken = errors.New("session: invalid token")

// Claims содержит данные пользователя, передаваемые в токене сессии.
type Claims struct {
	Type  string `json:"type"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Codec выпускает и проверяет токены сессии, подписанные HS256.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec создаёт кодек с указанным секретом.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), now: time.Now}
}

// Issue выпускает токен для пользователя со сроком действия ttl.
func (c *Codec) Issue(u User, ttl time.Duration) (string, error) {
	if len(c.secret) == 0 {
		return "", errors.New("session: empty secret")
	}
	now := c.now()
	claims := Claims{
		Type:  u.Type,
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse проверяет токен и возвращает пользователя.
func (c *Codec) Parse(tokenString string) (User, error) {
	if tokenString == "" || len(c.secret) == 0 {
		return User{}, ErrInvalidToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Type == "" {
		return User{}, ErrInvalidToken
	}

	return User{Type: claims.Type, Email: claims.Email}, nil
}

// Storage строит хранилище сессии по проверенному токену.
func (c *Codec) Storage(tokenString string) (*MemoryStorage, error) {
	u, err := c.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	s := NewMemoryStorage()
	if err := s.SetUser(u); err != nil {
		return nil, err
	}
	s.SetItem(TokenKey, tokenString)
	return s, nil
}
