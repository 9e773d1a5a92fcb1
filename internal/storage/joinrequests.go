package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nerdshive/membership-portal/internal/models"
)

// CreateJoinRequest вставляет новую заявку на вступление и возвращает её ID.
func (s *Storage) CreateJoinRequest(ctx context.Context, req models.JoinRequest) (int, error) {
	const op = "storage.CreateJoinRequest"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO join_requests (full_name, email, phone, profession, reason, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		req.FullName, req.Email, req.Phone, req.Profession, req.Reason,
		req.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListJoinRequestsByStatus возвращает заявки с заданным статусом, новые первыми.
func (s *Storage) ListJoinRequestsByStatus(ctx context.Context, status models.RequestStatus) ([]*models.JoinRequest, error) {
	const op = "storage.ListJoinRequestsByStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, full_name, email, phone, profession, reason, status,
			      submitted_at, processed_at, processed_by
			  FROM join_requests
			  WHERE status = $1
			  ORDER BY submitted_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.JoinRequest
	for rows.Next() {
		var r models.JoinRequest
		var processedAt sql.NullTime
		var processedBy sql.NullString
		if err := rows.Scan(&r.ID, &r.FullName, &r.Email, &r.Phone, &r.Profession,
			&r.Reason, &r.Status, &r.SubmittedAt, &processedAt, &processedBy); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if processedAt.Valid {
			r.ProcessedAt = &processedAt.Time
		}
		if processedBy.Valid {
			r.ProcessedBy = &processedBy.String
		}
		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateJoinRequestStatus переводит заявку из pending в конечный статус,
// фиксируя время решения и администратора. Обработанная заявка повторно
// не изменяется: запрос затрагивает ноль строк.
func (s *Storage) UpdateJoinRequestStatus(ctx context.Context, id int, status models.RequestStatus, processorUID string, at time.Time) (int, error) {
	const op = "storage.UpdateJoinRequestStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE join_requests SET status = $1, processed_at = $2, processed_by = $3
			  WHERE id = $4 AND status = 'pending'`
	result, err := s.DB.ExecContext(ctx, query, status, at, processorUID, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
