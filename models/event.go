package models

import "time"

// Event - одно зачётное соревнование между домами.
// Category - произвольная строка ("sports", "academic", "arts", ...),
// система её не валидирует, только группирует по ней.
type Event struct {
	ID          int       `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`

	Results []EventResult `json:"results,omitempty"`
}

// EventResult - результат одного дома в одном событии.
// Составной ключ (EventID, HouseID). Отсутствие строки означает,
// что дом в событии не участвовал; это не то же самое, что 0 очков.
type EventResult struct {
	EventID      int `json:"event_id"`
	HouseID      int `json:"house_id"`
	PointsEarned int `json:"points_earned"`
	Rank         int `json:"rank"`

	House *House `json:"house,omitempty"`
}
