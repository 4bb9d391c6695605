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

// VehicleHandler handles vehicle CRUD. Admin only.
type VehicleHandler struct {
	vehicles db.VehicleCollection
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicles db.VehicleCollection) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// Create handles POST /api/vehicles.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		verr := &trips.ValidationError{}
		writeError(w, verr.Add("body", "invalid JSON"))
		return
	}

	verr := &trips.ValidationError{}
	if vehicle.Name == "" {
		verr.Add("name", "required")
	}
	if vehicle.Type == "" {
		verr.Add("type", "required")
	}
	if verr.HasErrors() {
		writeError(w, verr)
		return
	}

	id, err := h.vehicles.InsertVehicle(r.Context(), vehicle)
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := h.vehicles.FindVehicleByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /api/vehicles.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	found, err := h.vehicles.FindVehicles(r.Context(), bson.M{})
	if err != nil {
		writeError(w, err)
		return
	}
	if found == nil {
		found = []models.Vehicle{}
	}
	writeJSON(w, http.StatusOK, found)
}

// Get handles GET /api/vehicles/{id}.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, trips.ErrNotFound)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Update handles PUT /api/vehicles/{id}.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		verr := &trips.ValidationError{}
		writeError(w, verr.Add("body", "invalid JSON"))
		return
	}

	id := r.PathValue("id")
	if err := h.vehicles.UpdateVehicle(r.Context(), id, vehicle); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, trips.ErrNotFound)
			return
		}
		writeError(w, err)
		return
	}
	updated, err := h.vehicles.FindVehicleByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/vehicles/{id}.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vehicles.DeleteVehicle(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, trips.ErrNotFound)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "vehicle deleted"})
}
