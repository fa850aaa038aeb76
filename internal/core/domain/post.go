package domain

import "time"

// Post is a free-standing content record. Creation is deliberately
// unauthenticated; no user is attached.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
