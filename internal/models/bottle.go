package models

import (
	"time"

	"github.com/google/uuid"
)

// Bottle is the tasting subject. It is owned by the collection side of the
// application; the engine only reads it. ReviewCount grows whenever a new
// community review is recorded and doubles as a cache staleness signal.
type Bottle struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Distillery  string    `json:"distillery" db:"distillery"`
	WhiskeyType string    `json:"whiskeyType" db:"whiskey_type"`
	AgeYears    int       `json:"ageYears" db:"age_years"`
	ABV         float64   `json:"abv" db:"abv"`
	ReviewCount int       `json:"reviewCount" db:"review_count"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
