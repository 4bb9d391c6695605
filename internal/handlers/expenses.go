package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ukydev/trip-ledger/internal/db"
	"github.com/ukydev/trip-ledger/internal/models"
	"github.com/ukydev/trip-ledger/internal/trips"
	"go.mongodb.org/mongo-driver/bson"
)

// ExpenseHandler handles maintenance and advertising expense records.
// Admin only; the stats engine consumes both sets read-only.
type ExpenseHandler struct {
	maintenance db.MaintenanceCollection
	ads         db.AdCollection
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(maintenance db.MaintenanceCollection, ads db.AdCollection) *ExpenseHandler {
	return &ExpenseHandler{maintenance: maintenance, ads: ads}
}

// CreateMaintenance handles POST /api/maintenance.
func (h *ExpenseHandler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	var m models.Maintenance
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		verr := &trips.ValidationError{}
		writeError(w, verr.Add("body", "invalid JSON"))
		return
	}

	verr := &trips.ValidationError{}
	if m.VehicleID == "" {
		verr.Add("vehicle_id", "required")
	}
	if m.Cost < 0 {
		verr.Add("cost", "must not be negative")
	}
	if verr.HasErrors() {
		writeError(w, verr)
		return
	}

	id, err := h.maintenance.InsertMaintenance(r.Context(), m)
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := h.maintenance.FindMaintenanceByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListMaintenance handles GET /api/maintenance.
func (h *ExpenseHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if v := r.URL.Query().Get("driver"); v != "" {
		filter["driver_id"] = v
	}
	if v := r.URL.Query().Get("vehicle"); v != "" {
		filter["vehicle_id"] = v
	}
	found, err := h.maintenance.FindMaintenance(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if found == nil {
		found = []models.Maintenance{}
	}
	writeJSON(w, http.StatusOK, found)
}

// DeleteMaintenance handles DELETE /api/maintenance/{id}.
func (h *ExpenseHandler) DeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	if err := h.maintenance.DeleteMaintenance(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, trips.ErrNotFound)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "maintenance record deleted"})
}

// CreateAd handles POST /api/ads.
func (h *ExpenseHandler) CreateAd(w http.ResponseWriter, r *http.Request) {
	var ad models.Ad
	if err := json.NewDecoder(r.Body).Decode(&ad); err != nil {
		verr := &trips.ValidationError{}
		writeError(w, verr.Add("body", "invalid JSON"))
		return
	}

	verr := &trips.ValidationError{}
	if ad.Campaign == "" {
		verr.Add("campaign", "required")
	}
	if ad.Amount < 0 {
		verr.Add("amount", "must not be negative")
	}
	if verr.HasErrors() {
		writeError(w, verr)
		return
	}

	id, err := h.ads.InsertAd(r.Context(), ad)
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := h.ads.FindAdByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListAds handles GET /api/ads.
func (h *ExpenseHandler) ListAds(w http.ResponseWriter, r *http.Request) {
	found, err := h.ads.FindAds(r.Context(), bson.M{})
	if err != nil {
		writeError(w, err)
		return
	}
	if found == nil {
		found = []models.Ad{}
	}
	writeJSON(w, http.StatusOK, found)
}

// DeleteAd handles DELETE /api/ads/{id}.
func (h *ExpenseHandler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	if err := h.ads.DeleteAd(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, trips.ErrNotFound)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "ad record deleted"})
}
