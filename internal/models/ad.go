package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// Ad represents an advertising expense record. Ad spend is company-wide and
// is never attributed to a single driver.
type Ad struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Campaign  string             `json:"campaign" bson:"campaign"`
	Platform  string             `json:"platform,omitempty" bson:"platform,omitempty"` // "google", "meta", "print", "other"
	Amount    float64            `json:"amount" bson:"amount"`
	StartDate time.Time          `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate   time.Time          `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
