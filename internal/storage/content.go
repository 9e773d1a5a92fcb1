package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nerdshive/membership-portal/internal/models"
)

// ListContent возвращает все справочные документы портала в порядке ключей.
func (s *Storage) ListContent(ctx context.Context) ([]*models.Content, error) {
	const op = "storage.ListContent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, body, updated_at, updated_by
			  FROM content
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Content
	for rows.Next() {
		var c models.Content
		var updatedBy sql.NullString
		if err := rows.Scan(&c.ID, &c.Title, &c.Body, &c.UpdatedAt, &updatedBy); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if updatedBy.Valid {
			c.UpdatedBy = &updatedBy.String
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetContent возвращает документ по ключу.
func (s *Storage) GetContent(ctx context.Context, id string) (*models.Content, error) {
	const op = "storage.GetContent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, body, updated_at, updated_by
			  FROM content WHERE id = $1`
	var c models.Content
	var updatedBy sql.NullString
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Title, &c.Body,
		&c.UpdatedAt, &updatedBy); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if updatedBy.Valid {
		c.UpdatedBy = &updatedBy.String
	}
	return &c, nil
}

// UpdateContent заменяет текст документа, фиксируя время изменения и
// администратора. Возвращает количество изменённых строк.
func (s *Storage) UpdateContent(ctx context.Context, id, body, editorUID string, at time.Time) (int, error) {
	const op = "storage.UpdateContent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE content SET body = $1, updated_at = $2, updated_by = $3
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, body, at, editorUID, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
