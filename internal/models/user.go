// Package models содержит доменные структуры приложения: пользователей,
// тренировочные программы и упражнения, а также вспомогательные типы
// для приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей системы.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User представляет учётную запись клиента зала или администратора.
// Поля SubscriptionStart и SubscriptionDays могут быть nil — это означает,
// что данные абонемента ещё не заданы.
type User struct {
	ID                int64      // Внутренний первичный ключ
	ClientID          string     // Видимый номер клиента, только цифры, уникальный
	Name              string     // Отображаемое имя
	Email             string     // Электронная почта (уникальная)
	Phone             string     // Телефон (опционально)
	PasswordHash      string     // Bcrypt-хэш пароля
	Role              string     // member или admin
	CreatedAt         time.Time  // Дата регистрации
	SubscriptionStart *time.Time // Дата начала абонемента
	SubscriptionDays  *int       // Длительность абонемента в днях
}

// IsAdmin сообщает, является ли пользователь администратором.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DummyPortal используется для приёма данных комбинированной формы
// входа и регистрации. Поле FormType определяет ветку обработки.
type DummyPortal struct {
	FormType string `json:"form_type" validate:"required,oneof=login register"`
	Name     string `json:"name"` // Обязательно при регистрации
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required"`
}

// DummySubscription принимает данные формы обновления абонемента.
// Оба поля — строки и опциональны: каждое разбирается независимо,
// нераспознанное значение молча игнорируется.
type DummySubscription struct {
	StartDate string `json:"start_date"` // Дата начала в формате 2006-01-02
	Days      string `json:"days"`       // Количество дней, целое число
}
