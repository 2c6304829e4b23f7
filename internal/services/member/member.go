// Package member содержит административные операции над клиентами:
// список, карточка с вычисленным статусом абонемента, обновление
// абонемента и удаление.
package member

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/andresnova/gym-manager/internal/apperr"
	"github.com/andresnova/gym-manager/internal/models"
	"github.com/andresnova/gym-manager/internal/services/authz"
	"github.com/andresnova/gym-manager/internal/subscription"
)

// ErrSelfDelete — попытка администратора удалить собственную
// учётную запись; показывается как предупреждение, запись остаётся.
var ErrSelfDelete = apperr.Validation("you cannot delete your own account")

// UserRepository описывает нужную часть хранилища пользователей.
type UserRepository interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListMembers(ctx context.Context) ([]*models.User, error)
	UpdateSubscription(ctx context.Context, id int64, start *time.Time, days *int) (int, error)
	DeleteUser(ctx context.Context, id int64) (int, error)
}

// Detail — карточка клиента с вычисленным на момент чтения статусом.
// Статус нигде не хранится и не обновляется фоном.
type Detail struct {
	User          *models.User
	RemainingDays *int
	Active        bool
}

// Service реализует операции администратора над клиентами.
type Service struct {
	users UserRepository
	now   func() time.Time
	log   *slog.Logger
}

// New создает новый Service. nowFn передаётся для детерминизма
// в тестах; nil означает time.Now.
func New(users UserRepository, nowFn func() time.Time, log *slog.Logger) *Service {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Service{users: users, now: nowFn, log: log}
}

// List возвращает всех клиентов зала; только для администратора.
func (s *Service) List(ctx context.Context, actor *models.User) ([]*models.User, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.users.ListMembers(ctx)
}

// Get возвращает карточку клиента с оставшимися днями абонемента.
func (s *Service) Get(ctx context.Context, actor *models.User, id int64) (*Detail, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("member not found")
		}
		return nil, err
	}
	remaining := subscription.RemainingDays(user.SubscriptionStart, user.SubscriptionDays, s.now())
	return &Detail{
		User:          user,
		RemainingDays: remaining,
		Active:        subscription.IsActive(remaining),
	}, nil
}

// UpdateSubscription обновляет поля абонемента клиента.
//
// Каждое поле разбирается независимо: распознанное значение
// перезаписывает сохранённое, нераспознанное молча пропускается —
// это не ошибка. Ноль дней — допустимое значение, оно отличается
// от отсутствующего.
func (s *Service) UpdateSubscription(ctx context.Context, actor *models.User, id int64, req models.DummySubscription) error {
	const op = "member.UpdateSubscription"
	if err := authz.RequireAdmin(actor); err != nil {
		return err
	}

	var start *time.Time
	if req.StartDate != "" {
		if parsed, err := time.Parse("2006-01-02", req.StartDate); err == nil {
			start = &parsed
		}
	}
	var days *int
	if req.Days != "" {
		if v, err := strconv.Atoi(req.Days); err == nil {
			days = &v
		}
	}
	if start == nil && days == nil {
		return nil
	}

	count, err := s.users.UpdateSubscription(ctx, id, start, days)
	if err != nil {
		s.log.Error("failed to update subscription", slog.Int64("member_id", id), slog.Any("err", err))
		return apperr.Persistence("could not save the subscription")
	}
	if count == 0 {
		return apperr.NotFound("member not found")
	}
	s.log.Info("subscription updated", slog.Int64("member_id", id))
	return nil
}

// Delete удаляет клиента вместе со всеми его программами и
// упражнениями. Удаление собственной учётной записи запрещено.
func (s *Service) Delete(ctx context.Context, actor *models.User, id int64) error {
	const op = "member.Delete"
	if err := authz.RequireAdmin(actor); err != nil {
		return err
	}
	if actor.ID == id {
		return ErrSelfDelete
	}

	count, err := s.users.DeleteUser(ctx, id)
	if err != nil {
		s.log.Error("failed to delete member", slog.Int64("member_id", id), slog.Any("err", err))
		return apperr.Persistence("could not delete the member")
	}
	if count == 0 {
		return apperr.NotFound("member not found")
	}
	s.log.Info("member deleted", slog.Int64("member_id", id))
	return nil
}
