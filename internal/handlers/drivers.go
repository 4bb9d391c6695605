package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ukydev/trip-ledger/internal/db"
	"github.com/ukydev/trip-ledger/internal/models"
	"github.com/ukydev/trip-ledger/internal/trips"
	"go.mongodb.org/mongo-driver/bson"
)

// DriverHandler handles driver CRUD. Admin only; the trip core reads
// drivers through the reference resolver instead.
type DriverHandler struct {
	drivers db.DriverCollection
}

// NewDriverHandler creates a new driver handler.
func NewDriverHandler(drivers db.DriverCollection) *DriverHandler {
	return &DriverHandler{drivers: drivers}
}

// Create handles POST /api/drivers.
func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var driver models.Driver
	if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
		verr := &trips.ValidationError{}
		writeError(w, verr.Add("body", "invalid JSON"))
		return
	}

	verr := &trips.ValidationError{}
	if driver.Name == "" {
		verr.Add("name", "required")
	}
	if driver.Number == "" {
		verr.Add("number", "required")
	}
	if verr.HasErrors() {
		writeError(w, verr)
		return
	}

	if driver.Email != "" {
		if _, err := h.drivers.FindDriverByEmail(r.Context(), driver.Email); err == nil {
			writeError(w, fmt.Errorf("driver email %s: %w", driver.Email, trips.ErrConflict))
			return
		}
	}

	id, err := h.drivers.InsertDriver(r.Context(), driver)
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := h.drivers.FindDriverByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /api/drivers.
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	found, err := h.drivers.FindDrivers(r.Context(), bson.M{})
	if err != nil {
		writeError(w, err)
		return
	}
	if found == nil {
		found = []models.Driver{}
	}
	writeJSON(w, http.StatusOK, found)
}

// Get handles GET /api/drivers/{id}.
func (h *DriverHandler) Get(w http.ResponseWriter, r *http.Request) {
	driver, err := h.drivers.FindDriverByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, trips.ErrNotFound)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

// Update handles PUT /api/drivers/{id}.
func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request) {
	var driver models.Driver
	if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
		verr := &trips.ValidationError{}
		writeError(w, verr.Add("body", "invalid JSON"))
		return
	}

	id := r.PathValue("id")
	if err := h.drivers.UpdateDriver(r.Context(), id, driver); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, trips.ErrNotFound)
			return
		}
		writeError(w, err)
		return
	}
	updated, err := h.drivers.FindDriverByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/drivers/{id}.
func (h *DriverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.drivers.DeleteDriver(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, trips.ErrNotFound)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "driver deleted"})
}
