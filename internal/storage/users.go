package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/nerdshive/membership-portal/internal/models"
)

const userColumns = `uid, email, full_name, password_hash, role, status, phone, gender,
	city, location, occupation, id_type, id_number, id_file_url,
	needs_reimbursement, organization_name, gst_number, organization_location,
	created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.UID, &u.Email, &u.FullName, &u.PasswordHash, &u.Role, &u.Status,
		&u.Phone, &u.Gender, &u.City, &u.Location, &u.Occupation,
		&u.IDType, &u.IDNumber, &u.IDFileURL,
		&u.NeedsReimbursement, &u.OrganizationName, &u.GSTNumber, &u.OrganizationLocation,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, full_name, password_hash, role, status, phone, gender,
			      city, location, occupation, id_type, id_number, id_file_url,
			      needs_reimbursement, organization_name, gst_number, organization_location)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.FullName, user.PasswordHash, user.Role, user.Status,
		user.Phone, user.Gender, user.City, user.Location, user.Occupation,
		user.IDType, user.IDNumber, user.IDFileURL,
		user.NeedsReimbursement, user.OrganizationName, user.GSTNumber,
		user.OrganizationLocation).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по его электронной почте.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateUserStatus переводит учётную запись из pending в конечный статус,
// фиксируя время решения. Запись в конечном статусе повторно не изменяется.
func (s *Storage) UpdateUserStatus(ctx context.Context, userUID string, status models.UserStatus, at time.Time) (int, error) {
	const op = "storage.UpdateUserStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET status = $1, updated_at = $2
			  WHERE uid = $3 AND status = 'pending'`
	result, err := s.DB.ExecContext(ctx, query, status, at, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListUsersByStatus возвращает пользователей с заданной ролью и статусом,
// новые записи первыми.
func (s *Storage) ListUsersByStatus(ctx context.Context, role models.Role, status models.UserStatus) ([]*models.User, error) {
	const op = "storage.ListUsersByStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users
			  WHERE role = $1 AND status = $2
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, role, status)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
