// Package apperr определяет классы ошибок уровня приложения.
// Сервисы возвращают ошибки, обёрнутые вокруг этих ошибок-меток,
// а HTTP-граница по errors.Is выбирает статус ответа.
package apperr

import "errors"

var (
	// ErrValidation — некорректный пользовательский ввод; операция
	// прервана без частичной записи, показывается как предупреждение.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized — нет действующей сессии.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden — недостаточно прав или чужой ресурс.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound — запрошенная запись отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrPersistence — сбой фиксации в хранилище; транзакция откатана.
	ErrPersistence = errors.New("persistence failure")
)

// Error связывает класс ошибки с текстом, пригодным для показа пользователю.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Kind.Error() + ": " + e.Msg }

// Unwrap позволяет errors.Is находить класс ошибки.
func (e *Error) Unwrap() error { return e.Kind }

// Validation возвращает ошибку валидации с текстом для пользователя.
func Validation(msg string) error { return &Error{Kind: ErrValidation, Msg: msg} }

// NotFound возвращает ошибку отсутствия записи.
func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Msg: msg} }

// Persistence возвращает ошибку хранилища; причина не раскрывается наружу.
func Persistence(msg string) error { return &Error{Kind: ErrPersistence, Msg: msg} }

// UserMessage извлекает текст для пользователя, если он есть.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return ""
}
