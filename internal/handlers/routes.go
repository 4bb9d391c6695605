package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ukydev/trip-ledger/internal/middleware"
)

// NewRouter wires every route. Trip-route authorization beyond the token
// check lives in the trips policy, so a driver probing a foreign trip gets
// the same 404 it would for a missing one; only the plain CRUD surfaces
// are gated by role middleware.
func NewRouter(authMW *middleware.AuthMiddleware, rateMW *middleware.RateLimitMiddleware,
	authH *AuthHandler, tripH *TripHandler, driverH *DriverHandler, vehicleH *VehicleHandler, expenseH *ExpenseHandler) http.Handler {

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/auth/register", authH.Register)
	mux.HandleFunc("POST /api/auth/login", authH.Login)
	mux.HandleFunc("GET /api/auth/profile", authH.GetProfile)

	mux.HandleFunc("POST /trips", tripH.Create)
	mux.HandleFunc("GET /trips", tripH.List)
	mux.HandleFunc("GET /trips/stats", tripH.Stats)
	mux.HandleFunc("GET /trips/{id}", tripH.Get)
	mux.HandleFunc("PUT /trips/{id}", tripH.Update)
	mux.HandleFunc("DELETE /trips/{id}", tripH.Delete)
	mux.HandleFunc("POST /trips/{id}/restore", tripH.Restore)
	mux.HandleFunc("GET /trips/{id}/whatsapp", tripH.WhatsApp)

	admin := func(h http.HandlerFunc) http.Handler {
		return authMW.RequireAdmin(h)
	}
	mux.Handle("POST /api/drivers", admin(driverH.Create))
	mux.Handle("GET /api/drivers", admin(driverH.List))
	mux.Handle("GET /api/drivers/{id}", admin(driverH.Get))
	mux.Handle("PUT /api/drivers/{id}", admin(driverH.Update))
	mux.Handle("DELETE /api/drivers/{id}", admin(driverH.Delete))

	mux.Handle("POST /api/vehicles", admin(vehicleH.Create))
	mux.Handle("GET /api/vehicles", admin(vehicleH.List))
	mux.Handle("GET /api/vehicles/{id}", admin(vehicleH.Get))
	mux.Handle("PUT /api/vehicles/{id}", admin(vehicleH.Update))
	mux.Handle("DELETE /api/vehicles/{id}", admin(vehicleH.Delete))

	mux.Handle("POST /api/maintenance", admin(expenseH.CreateMaintenance))
	mux.Handle("GET /api/maintenance", admin(expenseH.ListMaintenance))
	mux.Handle("DELETE /api/maintenance/{id}", admin(expenseH.DeleteMaintenance))

	mux.Handle("POST /api/ads", admin(expenseH.CreateAd))
	mux.Handle("GET /api/ads", admin(expenseH.ListAds))
	mux.Handle("DELETE /api/ads/{id}", admin(expenseH.DeleteAd))

	var handler http.Handler = mux
	handler = authMW.Authenticate(handler)
	handler = rateMW.RateLimit(100, 60)(handler)
	handler = middleware.Metrics(handler)
	return handler
}
