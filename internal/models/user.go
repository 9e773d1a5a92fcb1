package models

import "time"

// User представляет зарегистрированного участника коворкинга.
// Запись создается при отправке регистрационной формы со статусом pending
// и меняет статус только решением администратора.
type User struct {
	UID          string     `json:"uid"`       // Уникальный идентификатор пользователя
	Email        string     `json:"email"`     // Электронная почта (уникальный внешний идентификатор)
	FullName     string     `json:"full_name"` // Полное имя
	PasswordHash string     `json:"-"`         // Хэш пароля пользователя
	Role         Role       `json:"role"`      // Роль пользователя, admin или user
	Status       UserStatus `json:"status"`    // Статус учётной записи

	// Анкетные данные
	Phone      string `json:"phone"`      // Мобильный телефон
	Gender     string `json:"gender"`     // Пол
	City       string `json:"city"`       // Город
	Location   string `json:"location"`   // Адрес / район
	Occupation string `json:"occupation"` // Род занятий

	// Документ, удостоверяющий личность
	IDType    string `json:"id_type"`     // Тип документа: pan, aadhaar, voter, driving
	IDNumber  string `json:"id_number"`   // Номер документа
	IDFileURL string `json:"id_file_url"` // Ссылка на загруженный скан документа

	// Данные организации для компенсации расходов
	NeedsReimbursement   bool   `json:"needs_reimbursement"`   // Нужна ли компенсация от организации
	OrganizationName     string `json:"organization_name"`     // Название организации
	GSTNumber            string `json:"gst_number"`            // Налоговый номер GST
	OrganizationLocation string `json:"organization_location"` // Адрес организации

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
