package trips

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/ukydev/trip-ledger/internal/db"
	"github.com/ukydev/trip-ledger/internal/events"
	"github.com/ukydev/trip-ledger/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatsConfig controls which external expense sets feed the stats totals.
// Some deployments run without maintenance or ad tracking entirely.
type StatsConfig struct {
	IncludeMaintenance bool
	IncludeAds         bool
}

// Service implements the trip lifecycle and aggregation operations. Every
// method takes the caller explicitly; nothing is read from ambient state.
type Service struct {
	trips       db.TripCollection
	maintenance db.MaintenanceCollection
	ads         db.AdCollection
	resolver    *Resolver
	events      events.Publisher
	stats       StatsConfig
}

// NewService creates a trip service.
func NewService(trips db.TripCollection, maintenance db.MaintenanceCollection, ads db.AdCollection, resolver *Resolver, publisher events.Publisher, stats StatsConfig) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		trips:       trips,
		maintenance: maintenance,
		ads:         ads,
		resolver:    resolver,
		events:      publisher,
		stats:       stats,
	}
}

// Create validates, enriches and persists a new trip. A reference that
// fails to resolve aborts the whole create; nothing is persisted. Driver
// callers always become the trip's driver and never get their own identity
// re-stamped from the driver collection.
func (s *Service) Create(ctx context.Context, c Caller, trip models.Trip) (*models.Trip, error) {
	if c.Role == models.RoleDriver {
		trip.DriverID = c.DriverID
	}

	verr := &ValidationError{}
	if trip.FromLocation == "" {
		verr.Add("from_location", "required")
	}
	if trip.EndLocation == "" {
		verr.Add("end_location", "required")
	}
	if trip.TripAmount < 0 {
		verr.Add("trip_amount", "must not be negative")
	}
	if trip.Tolls < 0 {
		verr.Add("tolls", "must not be negative")
	}
	if trip.ParkingCharges < 0 {
		verr.Add("parking_charges", "must not be negative")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	// Lifecycle and authorship are server controlled.
	trip.IsDriverDeleted = false
	trip.DriverDeletedAt = nil
	trip.DriverDeletedBy = ""
	trip.CreatedBy = c.UserID
	trip.CreatedByRole = c.Role
	if trip.BookingID == "" {
		trip.BookingID = uuid.NewString()
	}

	if err := s.resolver.AttachRefs(ctx, &trip, c.Role == models.RoleDriver); err != nil {
		return nil, err
	}

	now := time.Now()
	trip.CreatedAt = now
	trip.UpdatedAt = now
	id, err := s.trips.InsertTrip(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("insert trip: %w", err)
	}
	created, err := s.trips.FindTripByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load created trip: %w", err)
	}

	s.events.Publish(events.TopicTripCreated, events.TripEvent{
		Type:     "created",
		TripID:   id,
		DriverID: created.DriverID,
		Actor:    c.UserID,
		At:       now,
	})
	log.WithFields(log.Fields{"trip_id": id, "role": c.Role}).Info("trip created")
	return created, nil
}

// Get fetches a single trip under the caller's visibility rules.
// includeDeleted lifts the deleted-hiding for a driver's own trips.
func (s *Service) Get(ctx context.Context, c Caller, id string, includeDeleted bool) (*models.Trip, error) {
	trip, err := s.findTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(c, ActionRead, trip, includeDeleted); err != nil {
		return nil, err
	}
	return trip, nil
}

// List returns the trips visible to the caller, sorted by the requested
// field (default newest first).
func (s *Service) List(ctx context.Context, c Caller, q ListQuery) ([]models.Trip, error) {
	filter := VisibilityFilter(c, q)
	found, err := s.trips.FindTrips(ctx, filter, sortOption(q.Sort))
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	if found == nil {
		found = []models.Trip{}
	}
	return found, nil
}

// Update applies a partial update. Fields the caller's role may not touch
// are silently dropped. A changed driver or vehicle reference is re-resolved
// and its snapshot re-stamped before anything is written, so a bad
// reference leaves the trip untouched.
func (s *Service) Update(ctx context.Context, c Caller, id string, fields map[string]interface{}) (*models.Trip, error) {
	trip, err := s.findTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(c, ActionUpdate, trip, true); err != nil {
		return nil, err
	}

	set, err := normalizeUpdate(SanitizeUpdate(c, fields))
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return trip, nil
	}

	if err := s.resolveUpdatedRefs(ctx, c, set); err != nil {
		return nil, err
	}

	if err := s.trips.UpdateTripFields(ctx, id, set); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update trip: %w", err)
	}
	return s.findTrip(ctx, id)
}

// Delete soft-deletes a trip, or hard-deletes it for admin callers that ask
// for it explicitly. A driver's hard-delete directive silently degrades to
// a soft delete. Soft delete is idempotent.
func (s *Service) Delete(ctx context.Context, c Caller, id string, hard bool) error {
	trip, err := s.findTrip(ctx, id)
	if err != nil {
		return err
	}

	if hard && c.IsAdmin() {
		if err := Authorize(c, ActionHardDelete, trip, true); err != nil {
			return err
		}
		if err := s.trips.DeleteTrip(ctx, id); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("hard delete trip: %w", err)
		}
		s.events.Publish(events.TopicTripDeleted, events.TripEvent{
			Type: "hard_deleted", TripID: id, DriverID: trip.DriverID, Actor: c.UserID, At: time.Now(),
		})
		log.WithField("trip_id", id).Info("trip hard deleted")
		return nil
	}

	if err := Authorize(c, ActionSoftDelete, trip, true); err != nil {
		return err
	}
	set := SoftDeleteFields(trip, c)
	if set == nil {
		// Already deleted; idempotent success.
		return nil
	}
	if err := s.trips.UpdateTripFields(ctx, id, set); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("soft delete trip: %w", err)
	}
	s.events.Publish(events.TopicTripDeleted, events.TripEvent{
		Type: "soft_deleted", TripID: id, DriverID: trip.DriverID, Actor: c.UserID, At: time.Now(),
	})
	log.WithFields(log.Fields{"trip_id": id, "role": c.Role}).Info("trip soft deleted")
	return nil
}

// Restore clears the soft-delete markers. Admin only; any other role gets
// Forbidden (or NotFound when the trip is not theirs) and nothing changes.
func (s *Service) Restore(ctx context.Context, c Caller, id string) (*models.Trip, error) {
	trip, err := s.findTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(c, ActionRestore, trip, true); err != nil {
		return nil, err
	}
	set := RestoreFields(trip)
	if set == nil {
		return trip, nil
	}
	if err := s.trips.UpdateTripFields(ctx, id, set); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("restore trip: %w", err)
	}
	s.events.Publish(events.TopicTripRestored, events.TripEvent{
		Type: "restored", TripID: id, DriverID: trip.DriverID, Actor: c.UserID, At: time.Now(),
	})
	log.WithField("trip_id", id).Info("trip restored")
	return s.findTrip(ctx, id)
}

// Stats aggregates financials over the caller's visible non-deleted trips
// plus the configured external expense sets. Deleted trips never count,
// even for admins.
func (s *Service) Stats(ctx context.Context, c Caller, q ListQuery) (*models.TripStats, error) {
	q.IncludeDeleted = false
	visible, err := s.List(ctx, c, q)
	if err != nil {
		return nil, err
	}

	var maintenance []models.Maintenance
	if s.stats.IncludeMaintenance && s.maintenance != nil {
		filter := bson.M{}
		if !c.IsAdmin() {
			filter["driver_id"] = c.DriverID
		}
		maintenance, err = s.maintenance.FindMaintenance(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("load maintenance: %w", err)
		}
	}

	// Ad spend is company-wide and never filtered by driver.
	var ads []models.Ad
	if s.stats.IncludeAds && s.ads != nil {
		ads, err = s.ads.FindAds(ctx, bson.M{})
		if err != nil {
			return nil, fmt.Errorf("load ads: %w", err)
		}
	}

	stats := ComputeStats(visible, maintenance, ads)
	return &stats, nil
}

func (s *Service) findTrip(ctx context.Context, id string) (*models.Trip, error) {
	trip, err := s.trips.FindTripByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return trip, nil
}

// resolveUpdatedRefs re-stamps snapshot fields for any driver or vehicle
// reference present in the update set. Clearing a reference clears its
// snapshot.
func (s *Service) resolveUpdatedRefs(ctx context.Context, c Caller, set map[string]interface{}) error {
	probe := models.Trip{}
	if v, ok := set["driver_id"]; ok {
		probe.DriverID = cast.ToString(v)
		if probe.DriverID == "" {
			set["driver_name"] = ""
			set["driver_number"] = ""
		}
	}
	if v, ok := set["vehicle_id"]; ok {
		probe.VehicleID = cast.ToString(v)
		if probe.VehicleID == "" {
			set["vehicle_type"] = ""
		}
	}
	if probe.DriverID == "" && probe.VehicleID == "" {
		return nil
	}
	if err := s.resolver.AttachRefs(ctx, &probe, c.Role == models.RoleDriver); err != nil {
		return err
	}
	if probe.DriverID != "" && c.IsAdmin() {
		set["driver_name"] = probe.DriverName
		set["driver_number"] = probe.DriverNumber
	}
	if probe.VehicleID != "" {
		set["vehicle_type"] = probe.VehicleType
	}
	return nil
}

// normalizeUpdate coerces JSON-decoded values into storable types, with
// field-level errors for values that cannot be coerced.
func normalizeUpdate(fields map[string]interface{}) (map[string]interface{}, error) {
	verr := &ValidationError{}
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		switch k {
		case "trip_amount", "tolls", "parking_charges", "driver_beta":
			n, err := cast.ToFloat64E(v)
			if err != nil {
				verr.Add(k, "must be a number")
				continue
			}
			if n < 0 {
				verr.Add(k, "must not be negative")
				continue
			}
			out[k] = n
		case "start_date":
			ts, err := cast.ToTimeE(v)
			if err != nil {
				verr.Add(k, "must be a timestamp")
				continue
			}
			out[k] = ts
		default:
			out[k] = v
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}
	return out, nil
}

// sortFields maps API sort names onto stored field names.
var sortFields = map[string]string{
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"startDate":  "start_date",
	"tripAmount": "trip_amount",
	"driverName": "driver_name",
}

// sortOption translates a "field" / "-field" sort parameter, defaulting to
// newest first. Unknown fields fall back to the default.
func sortOption(sort string) *options.FindOptions {
	dir := 1
	if sort == "" {
		sort = "-createdAt"
	}
	if sort[0] == '-' {
		dir = -1
		sort = sort[1:]
	}
	field, ok := sortFields[sort]
	if !ok {
		field, dir = "created_at", -1
	}
	return options.Find().SetSort(bson.D{{Key: field, Value: dir}})
}
