package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/trip-ledger/internal/middleware"
	"github.com/ukydev/trip-ledger/internal/trips"
)

type errorResponse struct {
	Message string             `json:"message"`
	Errors  []trips.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto the HTTP error contract: 400 for
// validation and conflicts, 403 forbidden, 404 not found, 500 for anything
// unexpected. Unexpected errors are logged, never surfaced verbatim.
func writeError(w http.ResponseWriter, err error) {
	var verr *trips.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "validation failed", Errors: verr.Fields})
	case errors.Is(err, trips.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "not found"})
	case errors.Is(err, trips.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Message: "forbidden"})
	case errors.Is(err, trips.ErrConflict):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	default:
		log.WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

// callerFromRequest builds the explicit caller identity from the JWT claims
// the auth middleware stored on the request context.
func callerFromRequest(r *http.Request) (trips.Caller, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		return trips.Caller{}, false
	}
	return trips.Caller{
		UserID:   claims.UserID,
		DriverID: claims.DriverID,
		Role:     claims.Role,
	}, true
}
