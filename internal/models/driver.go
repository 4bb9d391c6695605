package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// Driver represents a fleet driver. Trips reference drivers by id and copy
// the name and number into the trip record at write time.
type Driver struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Number        string             `json:"number" bson:"number"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
	LicenseNumber string             `json:"license_number,omitempty" bson:"license_number,omitempty"`
	Address       string             `json:"address,omitempty" bson:"address,omitempty"`
	Salary        float64            `json:"salary,omitempty" bson:"salary,omitempty"`
	IsActive      bool               `json:"is_active" bson:"is_active"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}
