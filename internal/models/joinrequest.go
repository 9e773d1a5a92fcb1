package models

import "time"

// JoinRequest представляет заявку на вступление с публичной страницы.
// Подается без учётной записи, обрабатывается администратором.
type JoinRequest struct {
	ID          int           `json:"id"`           // Идентификатор заявки
	FullName    string        `json:"full_name"`    // Полное имя
	Email       string        `json:"email"`        // Электронная почта
	Phone       string        `json:"phone"`        // Телефон
	Profession  string        `json:"profession"`   // Профессия
	Reason      string        `json:"reason"`       // Причина вступления
	Status      RequestStatus `json:"status"`       // Статус обработки
	SubmittedAt time.Time     `json:"submitted_at"` // Время подачи
	ProcessedAt *time.Time    `json:"processed_at,omitempty"` // Время решения администратора
	ProcessedBy *string       `json:"processed_by,omitempty"` // UID администратора, принявшего решение
}

// DummyJoinRequest используется для приёма заявки из JSON-запроса
// до её валидации и преобразования в JoinRequest.
type DummyJoinRequest struct {
	FullName   string `json:"full_name" validate:"required"`        // Полное имя
	Email      string `json:"email" validate:"required,email"`      // Электронная почта
	Phone      string `json:"phone" validate:"required,inmobile"`   // Индийский мобильный номер
	Profession string `json:"profession" validate:"required"`       // Профессия
	Reason     string `json:"reason" validate:"required"`           // Причина вступления
}
