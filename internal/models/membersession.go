package models

import "time"

// MemberSession представляет посещение коворкинга: отметку прихода и ухода
// участника в рамках выбранного тарифного плана.
type MemberSession struct {
	ID            int        `json:"id"`            // Идентификатор посещения
	UserUID       string     `json:"user_uid"`      // UID участника
	PlanID        int        `json:"plan_id"`       // Идентификатор плана
	CheckInTime   time.Time  `json:"check_in_time"` // Время прихода
	CheckOutTime  *time.Time `json:"check_out_time,omitempty"` // Время ухода (nil, пока участник в помещении)
	DurationHours *float64   `json:"duration_hours,omitempty"` // Длительность посещения в часах, заполняется при уходе
	CreatedAt     time.Time  `json:"created_at"`
}
