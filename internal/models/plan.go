package models

import "time"

// Plan представляет тарифный план коворкинга. Каталог планов доступен
// только на чтение, изменяется миграциями.
type Plan struct {
	ID        int       `json:"id"`         // Идентификатор плана
	Name      string    `json:"name"`       // Название плана
	Price     int       `json:"price"`      // Стоимость в рупиях
	Period    string    `json:"period"`     // Период действия: day, week, month
	Features  []string  `json:"features"`   // Список возможностей плана
	IsPopular bool      `json:"is_popular"` // Признак самого востребованного плана
	CreatedAt time.Time `json:"created_at"`
}
