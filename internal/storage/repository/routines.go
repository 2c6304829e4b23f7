package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andresnova/gym-manager/internal/models"
)

// CreateRoutine вставляет программу вместе с упражнениями в одной
// транзакции: сначала программа, чтобы получить её ID, затем
// упражнения со ссылкой на него. Возвращает ID программы.
func (s *Storage) CreateRoutine(ctx context.Context, routine models.Routine, exercises []models.Exercise) (int64, error) {
	const op = "storage.CreateRoutine"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var routineID int64
	query := `INSERT INTO routines (title, description, created_by, user_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	if err = tx.QueryRowContext(ctx, query,
		routine.Title, routine.Description, routine.CreatedBy,
		routine.UserID).Scan(&routineID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	insert := `INSERT INTO exercises (name, series, reps, weight, day, notes, routine_id)
			   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, e := range exercises {
		var series sql.NullInt64
		if e.Series != nil {
			series = sql.NullInt64{Int64: int64(*e.Series), Valid: true}
		}
		if _, err = tx.ExecContext(ctx, insert,
			e.Name, series, e.Reps, e.Weight, e.Day, e.Notes, routineID); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return routineID, nil
}

// ReadRoutine возвращает программу по её ID.
func (s *Storage) ReadRoutine(ctx context.Context, id int64) (*models.Routine, error) {
	const op = "storage.ReadRoutine"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, created_at, created_by, user_id
			  FROM routines WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Routine
	var description, createdBy sql.NullString
	if err := row.Scan(&result.ID, &result.Title, &description,
		&result.CreatedAt, &createdBy, &result.UserID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result.Description = description.String
	result.CreatedBy = createdBy.String
	return &result, nil
}

// UpdateRoutine перезаписывает название и описание программы,
// упражнения не трогает. Возвращает количество изменённых строк.
func (s *Storage) UpdateRoutine(ctx context.Context, id int64, title, description string) (int, error) {
	const op = "storage.UpdateRoutine"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE routines
			  SET title = $1, description = $2
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, title, description, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveRoutine удаляет программу; упражнения уходят каскадом.
func (s *Storage) RemoveRoutine(ctx context.Context, id int64) (int, error) {
	const op = "storage.RemoveRoutine"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM routines WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListRoutines возвращает программы одного клиента, новые первыми.
func (s *Storage) ListRoutines(ctx context.Context, userID int64) ([]*models.Routine, error) {
	const op = "storage.ListRoutines"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, created_at, created_by, user_id
			  FROM routines
			  WHERE user_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Routine
	for rows.Next() {
		var r models.Routine
		var description, createdBy sql.NullString
		if err = rows.Scan(&r.ID, &r.Title, &description,
			&r.CreatedAt, &createdBy, &r.UserID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		r.Description = description.String
		r.CreatedBy = createdBy.String
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
