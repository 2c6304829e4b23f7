package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andresnova/gym-manager/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его ID.
// Нарушение уникальности почты или номера клиента возвращается
// как ErrEmailTaken / ErrClientIDTaken.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO users (client_id, name, email, phone, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.ClientID, user.Name, user.Email, user.Phone, user.PasswordHash,
		user.Role).Scan(&newID); err != nil {
		if uerr := uniqueViolation(err); uerr != nil {
			return 0, fmt.Errorf("%s: %w", op, uerr)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

const userColumns = `id, client_id, name, email, phone, password_hash, role,
			      created_at, subscription_start, subscription_days`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var phone sql.NullString
	var subscriptionStart sql.NullTime
	var subscriptionDays sql.NullInt64
	if err := row.Scan(&u.ID, &u.ClientID, &u.Name, &u.Email, &phone,
		&u.PasswordHash, &u.Role, &u.CreatedAt,
		&subscriptionStart, &subscriptionDays); err != nil {
		return nil, err
	}
	u.Phone = phone.String
	if subscriptionStart.Valid {
		u.SubscriptionStart = &subscriptionStart.Time
	}
	if subscriptionDays.Valid {
		days := int(subscriptionDays.Int64)
		u.SubscriptionDays = &days
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по почте. Сравнение точное,
// с учётом регистра.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListMembers возвращает всех клиентов (без администраторов),
// новые первыми.
func (s *Storage) ListMembers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListMembers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE role <> 'admin'
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSubscription перезаписывает поля абонемента пользователя.
// Nil-поле оставляет прежнее значение: обновление частичное.
func (s *Storage) UpdateSubscription(ctx context.Context, id int64, start *time.Time, days *int) (int, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET subscription_start = COALESCE($1, subscription_start),
			      subscription_days = COALESCE($2, subscription_days)
			  WHERE id = $3`
	var daysArg sql.NullInt64
	if days != nil {
		daysArg = sql.NullInt64{Int64: int64(*days), Valid: true}
	}
	var startArg sql.NullTime
	if start != nil {
		startArg = sql.NullTime{Time: *start, Valid: true}
	}
	result, err := s.DB.ExecContext(ctx, query, startArg, daysArg, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteUser удаляет пользователя; программы и упражнения уходят
// каскадом по внешним ключам. Возвращает количество удалённых строк.
func (s *Storage) DeleteUser(ctx context.Context, id int64) (int, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE id = $1`
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
