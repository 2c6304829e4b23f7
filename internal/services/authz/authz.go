// Package authz реализует проверки доступа.
//
// Каждая сервисная операция явно вызывает нужную проверку в самом
// начале и получает типизированную ошибку вместо скрытого обрыва
// запроса где-то во фреймворке. Действующее лицо тоже передаётся
// явно, глобального "текущего пользователя" в системе нет.
package authz

import (
	"github.com/andresnova/gym-manager/internal/apperr"
	"github.com/andresnova/gym-manager/internal/models"
)

// RequireActor требует аутентифицированного пользователя.
func RequireActor(actor *models.User) error {
	if actor == nil {
		return apperr.ErrUnauthorized
	}
	return nil
}

// RequireAdmin требует администратора. Отсутствие сессии и нехватка
// прав — разные исходы: Unauthorized против Forbidden.
func RequireAdmin(actor *models.User) error {
	if actor == nil {
		return apperr.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return apperr.ErrForbidden
	}
	return nil
}

// RequireOwnerOrAdmin пускает владельца ресурса или администратора.
func RequireOwnerOrAdmin(actor *models.User, ownerID int64) error {
	if actor == nil {
		return apperr.ErrUnauthorized
	}
	if actor.ID != ownerID && !actor.IsAdmin() {
		return apperr.ErrForbidden
	}
	return nil
}
