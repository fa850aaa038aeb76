package domain

import (
	"errors"
	"time"
)

var ErrDetailNotFound = errors.New("details not found")

// BirthDetail is the gated secondary resource. UserID records which
// authenticated caller created the entry; it is attached at write time and
// never checked again on update or delete.
type BirthDetail struct {
	ID           string    `json:"id"`
	Age          int       `json:"age"`
	YearOfBirth  int       `json:"yearOfBirth"`
	PlaceOfBirth string    `json:"placeOfBirth"`
	UserID       string    `json:"userId,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
