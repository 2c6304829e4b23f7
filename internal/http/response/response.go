// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и предупреждений в едином формате.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/andresnova/gym-manager/internal/apperr"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK", "Error" или "Warning").
// Warning — закрываемое предупреждение пользователю, операция
// отклонена без частичной записи. Data — данные при успехе.
type Response struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
	Data    any    `json:"data,omitempty"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
	// StatusWarning — значение статуса для отклонённой операции
	// с предупреждением пользователю.
	StatusWarning = "Warning"
)

// OK возвращает успешный Response без данных.
func OK() Response {
	return Response{Status: StatusOK}
}

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// Warning возвращает Response-предупреждение.
func Warning(msg string) Response {
	return Response{
		Status:  StatusWarning,
		Warning: msg,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s has an unexpected value", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}

// FromError переводит ошибку сервиса в HTTP-статус и тело ответа.
// Ошибки валидации уходят предупреждением, причины сбоев хранилища
// наружу не попадают.
func FromError(err error) (int, Response) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusUnprocessableEntity, Warning(userMessage(err, "invalid input"))
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, Error("unauthorized")
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, Error("forbidden")
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, Error(userMessage(err, "not found"))
	default:
		return http.StatusInternalServerError, Error("internal error")
	}
}

func userMessage(err error, fallback string) string {
	if msg := apperr.UserMessage(err); msg != "" {
		return msg
	}
	return fallback
}
