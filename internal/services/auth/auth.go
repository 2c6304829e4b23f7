// Package auth содержит логику регистрации и входа.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andresnova/gym-manager/internal/apperr"
	"github.com/andresnova/gym-manager/internal/lib/clientid"
	"github.com/andresnova/gym-manager/internal/lib/password"
	"github.com/andresnova/gym-manager/internal/models"
	"github.com/andresnova/gym-manager/internal/storage/repository"
)

// maxClientIDAttempts ограничивает повторы генерации номера клиента,
// чтобы исключить теоретический бесконечный цикл при экстремальной
// заполненности пространства номеров.
const maxClientIDAttempts = 5

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int64, error)

	// GetUserByEmail возвращает пользователя по почте или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service отвечает за регистрацию и проверку учётных данных.
type Service struct {
	users UserRepository
}

// New создает новый Service.
func New(users UserRepository) *Service {
	return &Service{users: users}
}

// Register создаёт клиента с хэшированным паролем и уникальным
// номером клиента.
//
// Почта проверяется на точное совпадение; занятая почта — ошибка
// валидации, существующая запись не меняется. Гонку двух
// одновременных регистраций закрывает уникальный индекс.
// Номер клиента генерируется заново при конфликте вставки:
// проверка уникальности и вставка сведены к одной атомарной
// операции, окна "проверил — вставил" нет.
func (s *Service) Register(ctx context.Context, name, email, phone, rawPassword string) (int64, error) {
	const op = "auth.Register"

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return 0, apperr.Validation("email is already registered")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	for range maxClientIDAttempts {
		cid, err := clientid.New()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		user := models.User{
			ClientID:     cid,
			Name:         name,
			Email:        email,
			Phone:        phone,
			PasswordHash: hashed,
			Role:         models.RoleMember,
		}
		id, err := s.users.CreateUser(ctx, user)
		switch {
		case err == nil:
			return id, nil
		case errors.Is(err, repository.ErrClientIDTaken):
			continue
		case errors.Is(err, repository.ErrEmailTaken):
			return 0, apperr.Validation("email is already registered")
		default:
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}
	return 0, apperr.Persistence("could not allocate a unique client id")
}

// Login проверяет учётные данные и возвращает пользователя.
//
// Неизвестная почта и неверный пароль отвечают одной и той же
// ошибкой: какая именно часть не совпала, наружу не сообщается.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*models.User, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Validation("incorrect email or password")
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, apperr.Validation("incorrect email or password")
	}
	return user, nil
}

// EnsureAdmin создаёт администратора с заданными реквизитами, если
// пользователя с такой почтой ещё нет. Вызывается при старте,
// повторные запуски ничего не меняют.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, rawPassword string) (created bool, err error) {
	const op = "auth.EnsureAdmin"

	if _, err = s.users.GetUserByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	for range maxClientIDAttempts {
		cid, err := clientid.New()
		if err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		_, err = s.users.CreateUser(ctx, models.User{
			ClientID:     cid,
			Name:         name,
			Email:        email,
			PasswordHash: hashed,
			Role:         models.RoleAdmin,
		})
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, repository.ErrClientIDTaken):
			continue
		case errors.Is(err, repository.ErrEmailTaken):
			// Параллельный запуск успел раньше.
			return false, nil
		default:
			return false, fmt.Errorf("%s: %w", op, err)
		}
	}
	return false, apperr.Persistence("could not allocate a unique client id")
}
