package models

import "time"

// Payment представляет заявленный участником платеж за тарифный план.
// Создается со статусом pending, решение по нему принимает только
// администратор; обратного перехода из конечного статуса нет.
type Payment struct {
	ID            int           `json:"id"`             // Идентификатор платежа
	UserUID       string        `json:"user_uid"`       // Идентификатор плательщика
	PlanID        int           `json:"plan_id"`        // Идентификатор оплаченного плана
	Amount        int           `json:"amount"`         // Сумма в рупиях
	TransactionID string        `json:"transaction_id"` // Идентификатор UPI-транзакции
	ScreenshotURL string        `json:"screenshot_url,omitempty"` // Ссылка на скриншот подтверждения (опционально)
	Status        PaymentStatus `json:"status"`         // Статус проверки
	SubmittedAt   time.Time     `json:"submitted_at"`   // Время подачи
	VerifiedAt    *time.Time    `json:"verified_at,omitempty"` // Время решения администратора
	VerifiedBy    *string       `json:"verified_by,omitempty"` // UID администратора, принявшего решение
}

// DummyPayment используется для приёма данных платежа из JSON-запроса
// до их валидации и преобразования в Payment.
type DummyPayment struct {
	PlanID        int    `json:"plan_id" validate:"required,gt=0"`       // Идентификатор плана
	Amount        int    `json:"amount" validate:"required,gt=0"`        // Сумма в рупиях
	TransactionID string `json:"transaction_id" validate:"required"`     // Идентификатор транзакции
	ScreenshotURL string `json:"screenshot_url,omitempty" validate:"omitempty,url"` // Скриншот подтверждения
}
