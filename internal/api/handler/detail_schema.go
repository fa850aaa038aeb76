package handler

import "github.com/registryhq/birth-registry/internal/core/domain"

// addDetailRequest doubles as the update payload: an update is a full
// replacement of all three fields. The numeric fields are pointers so that
// a present zero (a newborn's age) is not mistaken for a missing field.
type addDetailRequest struct {
	Age          *int   `json:"age"          validate:"required"`
	YearOfBirth  *int   `json:"yearOfBirth"  validate:"required"`
	PlaceOfBirth string `json:"placeOfBirth" validate:"required"`
}

type detailResponse struct {
	Message string              `json:"message"`
	Data    *domain.BirthDetail `json:"data"`
}
