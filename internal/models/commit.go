package models

import "time"

// Commit is an immutable journal entry. Despite the name it has nothing
// to do with version control; it feeds the contribution calendar.
type Commit struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// CalendarDay is one cell of the contribution calendar: the number of
// commits on that date and the color-intensity level derived from it.
type CalendarDay struct {
	Date  string `json:"date"` // YYYY-MM-DD, UTC
	Count int    `json:"count"`
	Level int    `json:"level"` // 0..4
}
