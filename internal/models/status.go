// Package models содержит доменные структуры портала коворкинга:
// пользователей, тарифные планы, платежи, заявки на вступление, вопросы,
// справочные документы и учёт посещений. Статусные поля оформлены как
// закрытые перечисления, чтобы исключить сравнение сырых строк.
package models

// Role определяет роль пользователя в системе.
type Role string

const (
	// RoleUser — обычный участник коворкинга.
	RoleUser Role = "user"
	// RoleAdmin — администратор портала.
	RoleAdmin Role = "admin"
)

// Valid сообщает, входит ли значение в перечисление ролей.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// UserStatus описывает жизненный цикл учётной записи: pending -> approved|rejected.
// Обратных переходов нет.
type UserStatus string

const (
	// UserStatusPending — заявка ожидает решения администратора.
	UserStatusPending UserStatus = "pending"
	// UserStatusApproved — учётная запись одобрена.
	UserStatusApproved UserStatus = "approved"
	// UserStatusRejected — учётная запись отклонена.
	UserStatusRejected UserStatus = "rejected"
)

// Valid сообщает, входит ли значение в перечисление статусов пользователя.
func (s UserStatus) Valid() bool {
	return s == UserStatusPending || s == UserStatusApproved || s == UserStatusRejected
}

// PaymentStatus описывает жизненный цикл платежа: pending -> verified|rejected.
type PaymentStatus string

const (
	// PaymentStatusPending — платеж ожидает проверки администратором.
	PaymentStatusPending PaymentStatus = "pending"
	// PaymentStatusVerified — платеж подтвержден.
	PaymentStatusVerified PaymentStatus = "verified"
	// PaymentStatusRejected — платеж отклонен.
	PaymentStatusRejected PaymentStatus = "rejected"
)

// Valid сообщает, входит ли значение в перечисление статусов платежа.
func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusPending || s == PaymentStatusVerified || s == PaymentStatusRejected
}

// Terminal сообщает, является ли статус конечным.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusVerified || s == PaymentStatusRejected
}

// RequestStatus описывает жизненный цикл заявки на вступление: pending -> approved|rejected.
type RequestStatus string

const (
	// RequestStatusPending — заявка ожидает обработки.
	RequestStatusPending RequestStatus = "pending"
	// RequestStatusApproved — заявка одобрена.
	RequestStatusApproved RequestStatus = "approved"
	// RequestStatusRejected — заявка отклонена.
	RequestStatusRejected RequestStatus = "rejected"
)

// Valid сообщает, входит ли значение в перечисление статусов заявки.
func (s RequestStatus) Valid() bool {
	return s == RequestStatusPending || s == RequestStatusApproved || s == RequestStatusRejected
}

// Terminal сообщает, является ли статус конечным.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// QueryStatus описывает жизненный цикл вопроса участника: pending -> answered.
type QueryStatus string

const (
	// QueryStatusPending — вопрос ожидает ответа администратора.
	QueryStatusPending QueryStatus = "pending"
	// QueryStatusAnswered — на вопрос дан ответ.
	QueryStatusAnswered QueryStatus = "answered"
)

// Valid сообщает, входит ли значение в перечисление статусов вопроса.
func (s QueryStatus) Valid() bool {
	return s == QueryStatusPending || s == QueryStatusAnswered
}
