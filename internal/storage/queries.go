package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nerdshive/membership-portal/internal/models"
)

func scanQuery(row interface{ Scan(...any) error }) (*models.Query, error) {
	q := &models.Query{}
	var answeredAt sql.NullTime
	var answeredBy sql.NullString
	if err := row.Scan(&q.ID, &q.UserUID, &q.UserName, &q.Question, &q.Response,
		&q.Status, &q.SubmittedAt, &answeredAt, &answeredBy); err != nil {
		return nil, err
	}
	if answeredAt.Valid {
		q.AnsweredAt = &answeredAt.Time
	}
	if answeredBy.Valid {
		q.AnsweredBy = &answeredBy.String
	}
	return q, nil
}

// CreateQuery вставляет новый вопрос участника и возвращает его ID.
func (s *Storage) CreateQuery(ctx context.Context, query models.Query) (int, error) {
	const op = "storage.CreateQuery"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stmt := `INSERT INTO queries (user_uid, user_name, question, status)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, stmt,
		query.UserUID, query.UserName, query.Question, query.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListQueriesByUser возвращает вопросы участника, новые первыми.
func (s *Storage) ListQueriesByUser(ctx context.Context, userUID string) ([]*models.Query, error) {
	const op = "storage.ListQueriesByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stmt := `SELECT id, user_uid, user_name, question, response, status,
			     submitted_at, answered_at, answered_by
			 FROM queries
			 WHERE user_uid = $1
			 ORDER BY submitted_at DESC`
	rows, err := s.DB.QueryContext(ctx, stmt, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Query
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllQueries возвращает все вопросы, новые первыми.
func (s *Storage) ListAllQueries(ctx context.Context) ([]*models.Query, error) {
	const op = "storage.ListAllQueries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stmt := `SELECT id, user_uid, user_name, question, response, status,
			     submitted_at, answered_at, answered_by
			 FROM queries
			 ORDER BY submitted_at DESC`
	rows, err := s.DB.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Query
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// AnswerQuery записывает ответ администратора и переводит вопрос в answered.
// Отвеченный вопрос повторно не изменяется: запрос затрагивает ноль строк.
func (s *Storage) AnswerQuery(ctx context.Context, id int, response, responderUID string, at time.Time) (int, error) {
	const op = "storage.AnswerQuery"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stmt := `UPDATE queries SET response = $1, status = 'answered', answered_at = $2, answered_by = $3
			 WHERE id = $4 AND status = 'pending'`
	result, err := s.DB.ExecContext(ctx, stmt, response, at, responderUID, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
