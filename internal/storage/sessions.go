package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nerdshive/membership-portal/internal/models"
)

// CreateMemberSession вставляет отметку прихода участника и возвращает её ID.
func (s *Storage) CreateMemberSession(ctx context.Context, session models.MemberSession) (int, error) {
	const op = "storage.CreateMemberSession"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO member_sessions (user_uid, plan_id, check_in_time)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		session.UserUID, session.PlanID, session.CheckInTime).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CloseMemberSession фиксирует время ухода и длительность посещения.
// Уже закрытое посещение повторно не изменяется: запрос затрагивает ноль строк.
func (s *Storage) CloseMemberSession(ctx context.Context, id int, userUID string, at time.Time) (int, error) {
	const op = "storage.CloseMemberSession"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE member_sessions
			  SET check_out_time = $1,
			      duration_hours = EXTRACT(EPOCH FROM ($1 - check_in_time)) / 3600.0
			  WHERE id = $2 AND user_uid = $3 AND check_out_time IS NULL`
	result, err := s.DB.ExecContext(ctx, query, at, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListMemberSessionsByUser возвращает посещения участника, новые первыми.
func (s *Storage) ListMemberSessionsByUser(ctx context.Context, userUID string) ([]*models.MemberSession, error) {
	const op = "storage.ListMemberSessionsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan_id, check_in_time, check_out_time, duration_hours, created_at
			  FROM member_sessions
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MemberSession
	for rows.Next() {
		var ms models.MemberSession
		var checkOut sql.NullTime
		var duration sql.NullFloat64
		if err := rows.Scan(&ms.ID, &ms.UserUID, &ms.PlanID, &ms.CheckInTime,
			&checkOut, &duration, &ms.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if checkOut.Valid {
			ms.CheckOutTime = &checkOut.Time
		}
		if duration.Valid {
			ms.DurationHours = &duration.Float64
		}
		result = append(result, &ms)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
