package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andresnova/gym-manager/internal/models"
)

// ListExercises возвращает упражнения программы в порядке вставки.
func (s *Storage) ListExercises(ctx context.Context, routineID int64) ([]*models.Exercise, error) {
	const op = "storage.ListExercises"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, series, reps, weight, day, notes, routine_id
			  FROM exercises
			  WHERE routine_id = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, routineID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Exercise
	for rows.Next() {
		var e models.Exercise
		var series sql.NullInt64
		var reps, weight, day, notes sql.NullString
		if err = rows.Scan(&e.ID, &e.Name, &series, &reps, &weight,
			&day, &notes, &e.RoutineID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if series.Valid {
			v := int(series.Int64)
			e.Series = &v
		}
		e.Reps = reps.String
		e.Weight = weight.String
		e.Day = day.String
		e.Notes = notes.String
		result = append(result, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveExercise удаляет одно упражнение независимо от состояния
// программы. Возвращает количество удалённых строк.
func (s *Storage) RemoveExercise(ctx context.Context, id int64) (int, error) {
	const op = "storage.RemoveExercise"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM exercises WHERE id = $1`
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
