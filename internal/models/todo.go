package models

import "time"

// Todo is a single task on a user's list.
// JSON field names match what the existing web client expects.
type Todo struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"userId"`
	Content     string    `json:"content"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
