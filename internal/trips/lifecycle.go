package trips

import (
	"time"

	"github.com/ukydev/trip-ledger/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// Lifecycle transitions for a trip: Active <-> DriverDeleted, plus the
// terminal hard delete handled by the service. Each function returns the
// field set to persist, or nil when the transition is a no-op.

// SoftDeleteFields computes the Active -> DriverDeleted transition.
// Re-deleting an already deleted trip is an idempotent no-op that keeps the
// original DriverDeletedAt. Admin-initiated deletes do not record a
// DriverDeletedBy.
func SoftDeleteFields(trip *models.Trip, c Caller) bson.M {
	if trip.IsDriverDeleted {
		return nil
	}
	now := time.Now()
	fields := bson.M{
		"is_driver_deleted": true,
		"driver_deleted_at": now,
	}
	if c.Role == models.RoleDriver {
		fields["driver_deleted_by"] = c.DriverID
	}
	return fields
}

// RestoreFields computes the DriverDeleted -> Active transition, clearing
// the lifecycle markers. Restoring an active trip is a no-op.
func RestoreFields(trip *models.Trip) bson.M {
	if !trip.IsDriverDeleted {
		return nil
	}
	return bson.M{
		"is_driver_deleted": false,
		"driver_deleted_at": nil,
		"driver_deleted_by": "",
	}
}
