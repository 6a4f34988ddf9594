// Package session предоставляет чтение пользовательской сессии.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
)

// Ключи записей сессии.
const (
	UserKey  = "user"
	TokenKey = "jwt"
)

// Типы пользователей.
const (
	TypeEmployee = "Employee"
	TypeAdmin    = "Admin"
)

// ErrNoSession возвращается, если в хранилище нет записи о пользователе.
var ErrNoSession = errors.New("session: no user")

// Storage описывает хранилище сессии вида ключ-значение.
type Storage interface {
	GetItem(key string) (string, bool)
}

// User описывает сериализованную запись о текущем пользователе.
type User struct {
	Type  string `json:"type"`
	Email string `json:"email,omitempty"`
}

// IsEmployee сообщает, является ли пользователь сотрудником.
func (u User) IsEmployee() bool {
	return u.Type == TypeEmployee
}

// CurrentUser читает и разбирает запись о пользователе из хранилища.
func CurrentUser(s Storage) (User, error) {
	if s == nil {
		return User{}, ErrNoSession
	}
	raw, ok := s.GetItem(UserKey)
	if !ok || raw == "" {
		return User{}, ErrNoSession
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return User{}, fmt.Errorf("decode session user: %w", err)
	}
	return u, nil
}

// MemoryStorage хранит записи сессии в памяти.
type MemoryStorage struct {
	items map[string]string
}

// NewMemoryStorage создаёт пустое хранилище сессии.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

// GetItem возвращает значение по ключу.
func (m *MemoryStorage) GetItem(key string) (string, bool) {
	v, ok := m.items[key]
	return v, ok
}

// SetItem сохраняет значение по ключу.
func (m *MemoryStorage) SetItem(key, value string) {
	m.items[key] = value
}

// RemoveItem удаляет значение по ключу.
func (m *MemoryStorage) RemoveItem(key string) {
	delete(m.items, key)
}

// Clear удаляет все записи.
func (m *MemoryStorage) Clear() {
	clear(m.items)
}

// Clone возвращает независимую копию хранилища.
func (m *MemoryStorage) Clone() *MemoryStorage {
	return &MemoryStorage{items: maps.Clone(m.items)}
}

// SetUser сериализует пользователя в запись UserKey.
func (m *MemoryStorage) SetUser(u User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	m.SetItem(UserKey, string(raw))
	return nil
}

type contextKey string

const storageKey contextKey = "session"

// WithStorage сохраняет хранилище сессии в контексте запроса.
func WithStorage(ctx context.Context, s Storage) context.Context {
	return context.WithValue(ctx, storageKey, s)
}

// FromContext извлекает хранилище сессии из контекста запроса.
func FromContext(ctx context.Context) (Storage, bool) {
	s, ok := ctx.Value(storageKey).(Storage)
	return s, ok
}

// TokenFromContext возвращает токен сессии текущего запроса.
func TokenFromContext(ctx context.Context) string {
	s, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	token, _ := s.GetItem(TokenKey)
	return token
}

// EmailFromContext возвращает адрес текущего пользователя.
func EmailFromContext(ctx context.Context) string {
	s, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	u, err := CurrentUser(s)
	if err != nil {
		return ""
	}
	return u.Email
}
