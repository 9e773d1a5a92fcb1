package models

import "time"

// Query представляет вопрос участника администрации коворкинга.
type Query struct {
	ID          int         `json:"id"`           // Идентификатор вопроса
	UserUID     string      `json:"user_uid"`     // UID автора
	UserName    string      `json:"user_name"`    // Имя автора на момент подачи
	Question    string      `json:"question"`     // Текст вопроса
	Response    string      `json:"response,omitempty"` // Текст ответа (пустой, пока вопрос не отвечен)
	Status      QueryStatus `json:"status"`       // Статус вопроса
	SubmittedAt time.Time   `json:"submitted_at"` // Время подачи
	AnsweredAt  *time.Time  `json:"answered_at,omitempty"` // Время ответа
	AnsweredBy  *string     `json:"answered_by,omitempty"` // UID администратора, давшего ответ
}
