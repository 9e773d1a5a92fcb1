package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nerdshive/membership-portal/internal/models"
)

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	p := &models.Payment{}
	var verifiedAt sql.NullTime
	var verifiedBy sql.NullString
	if err := row.Scan(&p.ID, &p.UserUID, &p.PlanID, &p.Amount, &p.TransactionID,
		&p.ScreenshotURL, &p.Status, &p.SubmittedAt, &verifiedAt, &verifiedBy); err != nil {
		return nil, err
	}
	if verifiedAt.Valid {
		p.VerifiedAt = &verifiedAt.Time
	}
	if verifiedBy.Valid {
		p.VerifiedBy = &verifiedBy.String
	}
	return p, nil
}

// CreatePayment вставляет новый платеж со статусом pending и возвращает его ID.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_uid, plan_id, amount, transaction_id, screenshot_url, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		payment.UserUID, payment.PlanID, payment.Amount, payment.TransactionID,
		payment.ScreenshotURL, payment.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPaymentsByStatus возвращает платежи с заданным статусом, новые первыми.
func (s *Storage) ListPaymentsByStatus(ctx context.Context, status models.PaymentStatus) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsByStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan_id, amount, transaction_id, screenshot_url,
			      status, submitted_at, verified_at, verified_by
			  FROM payments
			  WHERE status = $1
			  ORDER BY submitted_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPaymentsByUser возвращает платежи участника, новые первыми.
func (s *Storage) ListPaymentsByUser(ctx context.Context, userUID string) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan_id, amount, transaction_id, screenshot_url,
			      status, submitted_at, verified_at, verified_by
			  FROM payments
			  WHERE user_uid = $1
			  ORDER BY submitted_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePaymentStatus переводит платеж из pending в конечный статус, фиксируя
// время решения и администратора. Условие status = 'pending' исключает
// повторное или обратное изменение: для уже обработанного платежа запрос
// затрагивает ноль строк.
func (s *Storage) UpdatePaymentStatus(ctx context.Context, id int, status models.PaymentStatus, verifierUID string, at time.Time) (int, error) {
	const op = "storage.UpdatePaymentStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments SET status = $1, verified_at = $2, verified_by = $3
			  WHERE id = $4 AND status = 'pending'`
	result, err := s.DB.ExecContext(ctx, query, status, at, verifierUID, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
