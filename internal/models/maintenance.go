package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// Maintenance represents a vehicle maintenance expense record. The optional
// driver reference scopes the expense to one driver's statement; records
// without it count against the whole fleet.
type Maintenance struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID   string             `json:"vehicle_id" bson:"vehicle_id"`
	DriverID    string             `json:"driver_id,omitempty" bson:"driver_id,omitempty"`
	ServiceType string             `json:"service_type" bson:"service_type"` // "oil_change", "tire_rotation", "brake_service", "inspection"
	Description string             `json:"description" bson:"description"`
	ServiceDate time.Time          `json:"service_date" bson:"service_date"`
	Cost        float64            `json:"cost" bson:"cost"`
	Vendor      string             `json:"vendor,omitempty" bson:"vendor,omitempty"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
