package models

import "time"

// Content представляет справочный документ портала (FAQ, правила, WiFi,
// платёжные реквизиты). Документы адресуются строковым ключом, читаются
// всеми, редактируются только администратором.
type Content struct {
	ID        string    `json:"id"`         // Ключ документа: faq, rules, wifi, payment-info
	Title     string    `json:"title"`      // Заголовок
	Body      string    `json:"body"`       // Текст документа
	UpdatedAt time.Time `json:"updated_at"` // Время последнего изменения
	UpdatedBy *string   `json:"updated_by,omitempty"` // UID администратора, внесшего изменение
}
