package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Type         string             `bson:"type" json:"type"` // "sedan", "suv", "tempo", "bus"
	Registration string             `bson:"registration" json:"registration"`
	Make         string             `bson:"make,omitempty" json:"make,omitempty"`
	Model        string             `bson:"model,omitempty" json:"model,omitempty"`
	Year         int                `bson:"year,omitempty" json:"year,omitempty"`
	Status       string             `bson:"status" json:"status"` // "active" or "inactive"
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
