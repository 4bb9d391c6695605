package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ukydev/trip-ledger/internal/models"
	"github.com/ukydev/trip-ledger/internal/trips"
)

// TripHandler handles the trip ledger routes.
type TripHandler struct {
	service *trips.Service
}

// NewTripHandler creates a new trip handler.
func NewTripHandler(service *trips.Service) *TripHandler {
	return &TripHandler{service: service}
}

// Create handles POST /trips.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var trip models.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		verr := &trips.ValidationError{}
		writeError(w, verr.Add("body", "invalid JSON"))
		return
	}

	created, err := h.service.Create(r.Context(), caller, trip)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /trips.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	found, err := h.service.List(r.Context(), caller, listQueryFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

// Stats handles GET /trips/stats.
func (h *TripHandler) Stats(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	stats, err := h.service.Stats(r.Context(), caller, listQueryFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Get handles GET /trips/{id}.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	includeDeleted := r.URL.Query().Get("includeDeleted") == "true"
	trip, err := h.service.Get(r.Context(), caller, r.PathValue("id"), includeDeleted)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// Update handles PUT /trips/{id}. Fields the caller may not set are
// silently stripped, not rejected.
func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		verr := &trips.ValidationError{}
		writeError(w, verr.Add("body", "invalid JSON"))
		return
	}

	updated, err := h.service.Update(r.Context(), caller, r.PathValue("id"), fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /trips/{id}. Admins may pass hard=true for a
// physical delete; for drivers the directive is ignored and the trip is
// soft-deleted.
func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	hard := r.URL.Query().Get("hard") == "true"
	if err := h.service.Delete(r.Context(), caller, r.PathValue("id"), hard); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "trip deleted"})
}

// Restore handles POST /trips/{id}/restore.
func (h *TripHandler) Restore(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	trip, err := h.service.Restore(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// WhatsApp handles GET /trips/{id}/whatsapp.
func (h *TripHandler) WhatsApp(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	sendTo := trips.WhatsAppTarget(r.URL.Query().Get("sendTo"))
	link, err := h.service.WhatsAppLink(r.Context(), caller, r.PathValue("id"), sendTo)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"link": link})
}

func listQueryFromRequest(r *http.Request) trips.ListQuery {
	q := r.URL.Query()
	lq := trips.ListQuery{
		DriverID:       q.Get("driver"),
		VehicleID:      q.Get("vehicle"),
		PaymentMode:    q.Get("paymentMode"),
		IncludeDeleted: q.Get("includeDeleted") == "true",
		Sort:           q.Get("sort"),
	}
	if v := q.Get("from"); v != "" {
		if ts, err := parseDate(v); err == nil {
			lq.From = ts
		}
	}
	if v := q.Get("to"); v != "" {
		if ts, err := parseDate(v); err == nil {
			lq.To = ts
		}
	}
	return lq
}

func parseDate(v string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, v); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", v)
}
