// Package routine содержит бизнес-логику тренировочных программ:
// создание с пакетом упражнений, редактирование, просмотр и удаление.
package routine

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/andresnova/gym-manager/internal/apperr"
	"github.com/andresnova/gym-manager/internal/models"
	"github.com/andresnova/gym-manager/internal/services/authz"
	"github.com/andresnova/gym-manager/internal/subscription"
)

// Repository определяет методы хранилища для программ и упражнений.
type Repository interface {
	// CreateRoutine вставляет программу с упражнениями атомарно и возвращает её ID.
	CreateRoutine(ctx context.Context, routine models.Routine, exercises []models.Exercise) (int64, error)
	// ReadRoutine возвращает программу по ID.
	ReadRoutine(ctx context.Context, id int64) (*models.Routine, error)
	// UpdateRoutine перезаписывает название и описание.
	UpdateRoutine(ctx context.Context, id int64, title, description string) (int, error)
	// RemoveRoutine удаляет программу и каскадом её упражнения.
	RemoveRoutine(ctx context.Context, id int64) (int, error)
	// ListRoutines возвращает программы клиента.
	ListRoutines(ctx context.Context, userID int64) ([]*models.Routine, error)
	// ListExercises возвращает упражнения программы.
	ListExercises(ctx context.Context, routineID int64) ([]*models.Exercise, error)
	// RemoveExercise удаляет одно упражнение.
	RemoveExercise(ctx context.Context, id int64) (int, error)
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// Service реализует операции над программами.
type Service struct {
	repo Repository
	now  func() time.Time
	log  *slog.Logger
}

// New создает новый Service. nowFn nil означает time.Now.
func New(repo Repository, nowFn func() time.Time, log *slog.Logger) *Service {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Service{repo: repo, now: nowFn, log: log}
}

// CreateResult — итог создания программы. SkippedExercises больше
// нуля, когда часть записей пакета упражнений не разобралась:
// программа всё равно создана, а пропуски видны вызывающему.
type CreateResult struct {
	ID               int64
	Exercises        int
	SkippedExercises int
}

// View — программа вместе с её упражнениями.
type View struct {
	Routine   *models.Routine
	Exercises []*models.Exercise
}

// Create создаёт программу для клиента.
//
// Только администратор; клиент обязан иметь строго положительный
// остаток дней абонемента в момент создания — проверка идёт до
// любой записи в хранилище. Пустое название — ошибка валидации.
func (s *Service) Create(ctx context.Context, actor *models.User, memberID int64, req models.DummyRoutine) (*CreateResult, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	member, err := s.repo.GetUser(ctx, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("member not found")
		}
		return nil, err
	}

	remaining := subscription.RemainingDays(member.SubscriptionStart, member.SubscriptionDays, s.now())
	if !subscription.IsActive(remaining) {
		return nil, apperr.Validation("the member has no active subscription")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validation("title is required")
	}

	exercises, skipped := parseExercises(req.Exercises)

	id, err := s.repo.CreateRoutine(ctx, models.Routine{
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   actor.Name,
		UserID:      member.ID,
	}, exercises)
	if err != nil {
		s.log.Error("failed to create routine", slog.Int64("member_id", memberID), slog.Any("err", err))
		return nil, apperr.Persistence("could not create the routine")
	}

	s.log.Info("routine created",
		slog.Int64("id", id),
		slog.Int("exercises", len(exercises)),
		slog.Int("skipped", skipped))
	return &CreateResult{ID: id, Exercises: len(exercises), SkippedExercises: skipped}, nil
}

// parseExercises лояльно разбирает пакетное JSON-поле упражнений.
//
// Нечитаемый целиком пакет не мешает созданию программы: все записи
// просто пропускаются. Читаемый пакет разбирается по одной записи,
// негодные записи (кривой JSON, пустое имя, нечисловые подходы)
// пропускаются и подсчитываются. Поле series приводится к числу
// только когда оно непустое; иначе остаётся отсутствующим — not zero.
func parseExercises(payload string) (exercises []models.Exercise, skipped int) {
	if payload == "" {
		return nil, 0
	}
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, 0
	}
	for _, item := range raw {
		var dummy models.DummyExercise
		if err := json.Unmarshal(item, &dummy); err != nil {
			skipped++
			continue
		}
		if strings.TrimSpace(dummy.Name) == "" {
			skipped++
			continue
		}
		var series *int
		if dummy.Series != "" {
			v, err := strconv.Atoi(dummy.Series)
			if err != nil {
				skipped++
				continue
			}
			series = &v
		}
		exercises = append(exercises, models.Exercise{
			Name:   dummy.Name,
			Series: series,
			Reps:   dummy.Reps,
			Weight: dummy.Weight,
			Day:    dummy.Day,
			Notes:  dummy.Notes,
		})
	}
	return exercises, skipped
}

// Update перезаписывает название и описание программы, упражнения
// не трогает.
func (s *Service) Update(ctx context.Context, actor *models.User, id int64, title, description string) error {
	if err := authz.RequireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		return apperr.Validation("title is required")
	}
	count, err := s.repo.UpdateRoutine(ctx, id, title, description)
	if err != nil {
		s.log.Error("failed to update routine", slog.Int64("id", id), slog.Any("err", err))
		return apperr.Persistence("could not update the routine")
	}
	if count == 0 {
		return apperr.NotFound("routine not found")
	}
	return nil
}

// Delete удаляет программу и каскадом все её упражнения.
func (s *Service) Delete(ctx context.Context, actor *models.User, id int64) error {
	if err := authz.RequireAdmin(actor); err != nil {
		return err
	}
	count, err := s.repo.RemoveRoutine(ctx, id)
	if err != nil {
		s.log.Error("failed to delete routine", slog.Int64("id", id), slog.Any("err", err))
		return apperr.Persistence("could not delete the routine")
	}
	if count == 0 {
		return apperr.NotFound("routine not found")
	}
	s.log.Info("routine deleted", slog.Int64("id", id))
	return nil
}

// DeleteExercise удаляет одно упражнение; состояние программы
// значения не имеет.
func (s *Service) DeleteExercise(ctx context.Context, actor *models.User, id int64) error {
	if err := authz.RequireAdmin(actor); err != nil {
		return err
	}
	count, err := s.repo.RemoveExercise(ctx, id)
	if err != nil {
		s.log.Error("failed to delete exercise", slog.Int64("id", id), slog.Any("err", err))
		return apperr.Persistence("could not delete the exercise")
	}
	if count == 0 {
		return apperr.NotFound("exercise not found")
	}
	return nil
}

// Get возвращает программу с упражнениями. Чужую программу видит
// только администратор.
func (s *Service) Get(ctx context.Context, actor *models.User, id int64) (*View, error) {
	if err := authz.RequireActor(actor); err != nil {
		return nil, err
	}
	r, err := s.repo.ReadRoutine(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("routine not found")
		}
		return nil, err
	}
	if err := authz.RequireOwnerOrAdmin(actor, r.UserID); err != nil {
		return nil, err
	}
	exercises, err := s.repo.ListExercises(ctx, id)
	if err != nil {
		return nil, err
	}
	return &View{Routine: r, Exercises: exercises}, nil
}

// ListByMember возвращает программы клиента, новые первыми.
// Клиент видит только свои, администратор — любые.
func (s *Service) ListByMember(ctx context.Context, actor *models.User, memberID int64) ([]*models.Routine, error) {
	if err := authz.RequireOwnerOrAdmin(actor, memberID); err != nil {
		return nil, err
	}
	return s.repo.ListRoutines(ctx, memberID)
}
