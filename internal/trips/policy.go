package trips

import (
	"time"

	"github.com/ukydev/trip-ledger/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// Caller is the authenticated identity every core operation receives
// explicitly. For driver accounts DriverID is the id of the driver record
// the account belongs to; ownership checks compare it to trip.DriverID.
type Caller struct {
	UserID   string
	DriverID string
	Role     models.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Action names one operation the policy gates.
type Action string

const (
	ActionRead       Action = "read"
	ActionUpdate     Action = "update"
	ActionSoftDelete Action = "soft_delete"
	ActionHardDelete Action = "hard_delete"
	ActionRestore    Action = "restore"
	ActionWhatsApp   Action = "whatsapp"
)

// capabilities is the role capability table. An action absent for a role is
// denied outright; present actions are still subject to ownership and
// deleted-hiding checks in Authorize.
var capabilities = map[models.Role]map[Action]bool{
	models.RoleAdmin: {
		ActionRead:       true,
		ActionUpdate:     true,
		ActionSoftDelete: true,
		ActionHardDelete: true,
		ActionRestore:    true,
		ActionWhatsApp:   true,
	},
	models.RoleDriver: {
		ActionRead:       true,
		ActionUpdate:     true,
		ActionSoftDelete: true,
	},
}

// Can consults the capability table alone, ignoring ownership.
func Can(role models.Role, action Action) bool {
	return capabilities[role][action]
}

// Authorize decides whether the caller may perform action on trip.
// includeDeleted lifts the deleted-hiding rule for reads of the caller's own
// trips. A driver touching another driver's trip gets ErrNotFound, never
// ErrForbidden, so probing cannot reveal that the trip exists.
func Authorize(c Caller, action Action, trip *models.Trip, includeDeleted bool) error {
	if !Can(c.Role, action) {
		// Driver asking for an admin-only action on someone else's trip
		// still must not learn the trip exists.
		if c.Role == models.RoleDriver && trip.DriverID != c.DriverID {
			return ErrNotFound
		}
		return ErrForbidden
	}
	if c.IsAdmin() {
		return nil
	}
	if trip.DriverID != c.DriverID {
		return ErrNotFound
	}
	if trip.IsDriverDeleted && action == ActionRead && !includeDeleted {
		return ErrNotFound
	}
	return nil
}

// ListQuery carries caller-supplied list filters. Zero values mean
// unfiltered.
type ListQuery struct {
	DriverID       string
	VehicleID      string
	PaymentMode    string
	From           time.Time
	To             time.Time
	IncludeDeleted bool
	Sort           string
}

// VisibilityFilter builds the Mongo filter for the caller's list scope.
// Drivers always see only their own non-deleted trips; admins see all
// non-deleted trips by default, narrowed by the query, and may lift the
// deleted-hiding with IncludeDeleted.
func VisibilityFilter(c Caller, q ListQuery) bson.M {
	filter := bson.M{}
	if c.IsAdmin() {
		if !q.IncludeDeleted {
			filter["is_driver_deleted"] = false
		}
		if q.DriverID != "" {
			filter["driver_id"] = q.DriverID
		}
		if q.VehicleID != "" {
			filter["vehicle_id"] = q.VehicleID
		}
		if q.PaymentMode != "" {
			filter["payment_mode"] = q.PaymentMode
		}
	} else {
		filter["driver_id"] = c.DriverID
		filter["is_driver_deleted"] = false
		if q.PaymentMode != "" {
			filter["payment_mode"] = q.PaymentMode
		}
	}
	dateRange := bson.M{}
	if !q.From.IsZero() {
		dateRange["$gte"] = q.From
	}
	if !q.To.IsZero() {
		dateRange["$lte"] = q.To
	}
	if len(dateRange) > 0 {
		filter["start_date"] = dateRange
	}
	return filter
}

// driverUpdatableFields is the whitelist of fields a driver-role caller may
// set through an update. Lifecycle and authorship fields are server
// controlled, and driver_id is immutable for the driver who set it.
var driverUpdatableFields = map[string]bool{
	"vehicle_id":      true,
	"from_location":   true,
	"end_location":    true,
	"start_date":      true,
	"customer_name":   true,
	"customer_number": true,
	"trip_amount":     true,
	"fuel_amount":     true,
	"tolls":           true,
	"parking_charges": true,
	"driver_beta":     true,
	"payment_mode":    true,
	"booking_id":      true,
}

// adminBlockedFields are server-controlled for every role, admin included.
var adminBlockedFields = map[string]bool{
	"_id":               true,
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"created_by":        true,
	"created_by_role":   true,
	"driver_name":       true,
	"driver_number":     true,
	"vehicle_type":      true,
	"is_driver_deleted": true,
	"driver_deleted_at": true,
	"driver_deleted_by": true,
}

// SanitizeUpdate strips forbidden fields from an update payload for the
// caller's role. Stripping is silent: the remaining fields are applied and
// the dropped ones ignored.
func SanitizeUpdate(c Caller, fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if c.IsAdmin() {
			if adminBlockedFields[k] {
				continue
			}
		} else if !driverUpdatableFields[k] {
			continue
		}
		out[k] = v
	}
	return out
}
