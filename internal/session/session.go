// Package session управляет серверными сессиями.
//
// Сессия — непрозрачный случайный токен, который живёт в cookie
// браузера; всё состояние (идентификатор пользователя) хранится
// на сервере в Redis и исчезает по TTL или при выходе.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store описывает нужную часть кеша.
type Store interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Manager создаёт, находит и уничтожает сессии.
type Manager struct {
	store Store
	ttl   time.Duration
}

// New создает новый Manager поверх переданного хранилища.
func New(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// ErrNoSession возвращается, когда токен неизвестен или истёк.
var ErrNoSession = fmt.Errorf("session not found")

func key(token string) string { return "session:" + token }

// Create открывает сессию для пользователя и возвращает токен.
func (m *Manager) Create(ctx context.Context, userID int64) (string, error) {
	const op = "session.Create"
	token := uuid.NewString()
	if err := m.store.Set(ctx, key(token), userID, m.ttl); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Resolve возвращает идентификатор пользователя по токену.
func (m *Manager) Resolve(ctx context.Context, token string) (int64, error) {
	const op = "session.Resolve"
	var userID int64
	found, err := m.store.Get(ctx, key(token), &userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return 0, ErrNoSession
	}
	return userID, nil
}

// Destroy закрывает сессию. Отсутствующий токен — не ошибка.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	const op = "session.Destroy"
	if err := m.store.Invalidate(ctx, key(token)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
