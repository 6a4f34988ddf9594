// Package middleware содержит HTTP middleware сервиса учёта расходов.
package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/mmeshcher/billed/internal/session"
)

const (
	// SessionCookieName задаёт имя cookie с токеном сессии.
	SessionCookieName = "session"
	sessionCookieTTL  = 24 * time.Hour
)

// AuthMiddleware проверяет токен сессии и кладёт хранилище сессии в контекст запроса.
type AuthMiddleware struct {
	codec *session.Codec
}

// NewAuthMiddleware создаёт новый экземпляр AuthMiddleware с указанным секретным ключом.
func NewAuthMiddleware(secret string) *AuthMiddleware {
	if secret == "" {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			secret = hex.EncodeToString(randomKey)
		} else {
			secret = "default-secret-key"
		}
	}

	return &AuthMiddleware{
		codec: session.NewCodec(secret),
	}
}

// Codec возвращает кодек токенов, которым подписываются сессии.
func (a *AuthMiddleware) Codec() *session.Codec {
	return a.codec
}

// Middleware проверяет cookie сессии (или заголовок Authorization) и добавляет сессию в контекст запроса.
func (a *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		storage, err := a.codec.Storage(token)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := session.WithStorage(r.Context(), storage)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetSessionCookie выпускает токен для пользователя и устанавливает его в cookie.
func (a *AuthMiddleware) SetSessionCookie(w http.ResponseWriter, u session.User) error {
	token, err := a.codec.Issue(u, sessionCookieTTL)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
