// Package repository реализует хранилище данных на основе PostgreSQL
// для управления клиентами, тренировочными программами и упражнениями.
// Каскадные удаления (клиент → программы → упражнения) обеспечиваются
// внешними ключами схемы, а не кодом.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки нарушения уникальности, различаемые по имени ограничения.
var (
	// ErrEmailTaken — почта уже занята другим пользователем.
	ErrEmailTaken = errors.New("email already taken")
	// ErrClientIDTaken — сгенерированный номер клиента уже существует;
	// вызывающая сторона повторяет вставку с новым номером.
	ErrClientIDTaken = errors.New("client id already taken")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, программами и упражнениями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}

// uniqueViolation переводит ошибку уникального индекса в доменную.
// Код 23505 — unique_violation.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch pgErr.ConstraintName {
	case "users_email_key":
		return ErrEmailTaken
	case "users_client_id_key":
		return ErrClientIDTaken
	}
	return nil
}
