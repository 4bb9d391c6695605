package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// Trip represents a single ledger entry for a fleet trip. Driver and vehicle
// details are copied into the trip at write time so the record keeps saying
// who drove it even if the source driver or vehicle is later edited.
type Trip struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CreatedBy     string             `json:"created_by" bson:"created_by"`
	CreatedByRole Role               `json:"created_by_role" bson:"created_by_role"`

	DriverID  string `json:"driver_id" bson:"driver_id"`
	VehicleID string `json:"vehicle_id,omitempty" bson:"vehicle_id,omitempty"`

	// Snapshot fields, frozen at write time.
	DriverName   string `json:"driver_name,omitempty" bson:"driver_name,omitempty"`
	DriverNumber string `json:"driver_number,omitempty" bson:"driver_number,omitempty"`
	VehicleType  string `json:"vehicle_type,omitempty" bson:"vehicle_type,omitempty"`

	FromLocation   string    `json:"from_location" bson:"from_location"`
	EndLocation    string    `json:"end_location" bson:"end_location"`
	StartDate      time.Time `json:"start_date" bson:"start_date"`
	CustomerName   string    `json:"customer_name,omitempty" bson:"customer_name,omitempty"`
	CustomerNumber string    `json:"customer_number,omitempty" bson:"customer_number,omitempty"`
	TripAmount     float64   `json:"trip_amount" bson:"trip_amount"`
	// FuelAmount is a number or operator-entered free text such as
	// "₹500 + 2 liters@100"; the stats engine handles both shapes.
	FuelAmount     interface{} `json:"fuel_amount,omitempty" bson:"fuel_amount,omitempty"`
	Tolls          float64     `json:"tolls" bson:"tolls"`
	ParkingCharges float64     `json:"parking_charges" bson:"parking_charges"`
	DriverBeta     float64     `json:"driver_beta" bson:"driver_beta"`
	PaymentMode    string      `json:"payment_mode,omitempty" bson:"payment_mode,omitempty"`
	BookingID      string      `json:"booking_id,omitempty" bson:"booking_id,omitempty"`

	IsDriverDeleted bool       `json:"is_driver_deleted" bson:"is_driver_deleted"`
	DriverDeletedAt *time.Time `json:"driver_deleted_at,omitempty" bson:"driver_deleted_at,omitempty"`
	DriverDeletedBy string     `json:"driver_deleted_by,omitempty" bson:"driver_deleted_by,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// TripStats is the aggregated financial summary over a visible trip set.
type TripStats struct {
	TotalTrips       int     `json:"total_trips"`
	TotalTripAmount  float64 `json:"total_trip_amount"`
	TotalExpenses    float64 `json:"total_expenses"`
	TotalMaintenance float64 `json:"total_maintenance"`
	TotalAds         float64 `json:"total_ads"`
	TotalProfit      float64 `json:"total_profit"`
}
