package trips

import (
	"context"
	"errors"
	"fmt"

	"github.com/ukydev/trip-ledger/internal/db"
	"github.com/ukydev/trip-ledger/internal/models"
)

// Resolver copies driver and vehicle details into a trip payload at write
// time. Lookups are read-only; driver and vehicle resolution are
// independent of each other and a missing reference fails the whole write.
type Resolver struct {
	Drivers  db.DriverCollection
	Vehicles db.VehicleCollection
}

// AttachRefs enriches the trip in place. When skipDriver is set (driver
// role creators, whose identity is already known) only the vehicle snapshot
// is attached. A driver or vehicle id that resolves to nothing returns
// ErrNotFound so the caller can abort before persisting.
func (r *Resolver) AttachRefs(ctx context.Context, trip *models.Trip, skipDriver bool) error {
	if trip.DriverID != "" && !skipDriver {
		driver, err := r.Drivers.FindDriverByID(ctx, trip.DriverID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("driver %s: %w", trip.DriverID, ErrNotFound)
			}
			return fmt.Errorf("resolve driver: %w", err)
		}
		trip.DriverName = driver.Name
		trip.DriverNumber = driver.Number
	}
	if trip.VehicleID != "" {
		vehicle, err := r.Vehicles.FindVehicleByID(ctx, trip.VehicleID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("vehicle %s: %w", trip.VehicleID, ErrNotFound)
			}
			return fmt.Errorf("resolve vehicle: %w", err)
		}
		trip.VehicleType = vehicle.Type
	}
	return nil
}
