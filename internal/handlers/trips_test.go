package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/ukydev/trip-ledger/internal/db"
	"github.com/ukydev/trip-ledger/internal/middleware"
	"github.com/ukydev/trip-ledger/internal/models"
	"github.com/ukydev/trip-ledger/internal/trips"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mockTripStore struct{ mock.Mock }

func (m *mockTripStore) InsertTrip(ctx context.Context, trip models.Trip) (string, error) {
	args := m.Called(ctx, trip)
	return args.String(0), args.Error(1)
}

func (m *mockTripStore) FindTripByID(ctx context.Context, id string) (*models.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *mockTripStore) FindTrips(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Trip, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Trip), args.Error(1)
}

func (m *mockTripStore) UpdateTripFields(ctx context.Context, id string, fields bson.M) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *mockTripStore) DeleteTrip(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockVehicleStore struct{ mock.Mock }

func (m *mockVehicleStore) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error) {
	args := m.Called(ctx, vehicle)
	return args.String(0), args.Error(1)
}

func (m *mockVehicleStore) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *mockVehicleStore) FindVehicles(ctx context.Context, filter bson.M) ([]models.Vehicle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *mockVehicleStore) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	args := m.Called(ctx, id, vehicle)
	return args.Error(0)
}

func (m *mockVehicleStore) DeleteVehicle(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockDriverStore struct{ mock.Mock }

func (m *mockDriverStore) InsertDriver(ctx context.Context, driver models.Driver) (string, error) {
	args := m.Called(ctx, driver)
	return args.String(0), args.Error(1)
}

func (m *mockDriverStore) FindDriverByID(ctx context.Context, id string) (*models.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *mockDriverStore) FindDriverByEmail(ctx context.Context, email string) (*models.Driver, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *mockDriverStore) FindDrivers(ctx context.Context, filter bson.M) ([]models.Driver, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Driver), args.Error(1)
}

func (m *mockDriverStore) UpdateDriver(ctx context.Context, id string, driver models.Driver) error {
	args := m.Called(ctx, id, driver)
	return args.Error(0)
}

func (m *mockDriverStore) DeleteDriver(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type tripHandlerFixture struct {
	trips    *mockTripStore
	drivers  *mockDriverStore
	vehicles *mockVehicleStore
	router   *http.ServeMux
}

func newTripHandlerFixture() *tripHandlerFixture {
	f := &tripHandlerFixture{
		trips:    new(mockTripStore),
		drivers:  new(mockDriverStore),
		vehicles: new(mockVehicleStore),
		router:   http.NewServeMux(),
	}
	resolver := &trips.Resolver{Drivers: f.drivers, Vehicles: f.vehicles}
	service := trips.NewService(f.trips, nil, nil, resolver, nil, trips.StatsConfig{})
	h := NewTripHandler(service)

	f.router.HandleFunc("POST /trips", h.Create)
	f.router.HandleFunc("GET /trips", h.List)
	f.router.HandleFunc("GET /trips/stats", h.Stats)
	f.router.HandleFunc("GET /trips/{id}", h.Get)
	f.router.HandleFunc("PUT /trips/{id}", h.Update)
	f.router.HandleFunc("DELETE /trips/{id}", h.Delete)
	f.router.HandleFunc("POST /trips/{id}/restore", h.Restore)
	f.router.HandleFunc("GET /trips/{id}/whatsapp", h.WhatsApp)
	return f
}

func (f *tripHandlerFixture) do(claims *models.Claims, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if claims != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, claims))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func adminClaims() *models.Claims {
	return &models.Claims{UserID: "admin-1", Username: "admin", Role: models.RoleAdmin}
}

func driverClaims() *models.Claims {
	return &models.Claims{UserID: "user-1", Username: "ravi", Role: models.RoleDriver, DriverID: "driver-1"}
}

func TestTripHandler_Create(t *testing.T) {
	f := newTripHandlerFixture()
	id := primitive.NewObjectID()

	f.vehicles.On("FindVehicleByID", mock.Anything, "vehicle-1").
		Return(&models.Vehicle{Type: "sedan"}, nil)
	f.trips.On("InsertTrip", mock.Anything, mock.Anything).Return(id.Hex(), nil)
	f.trips.On("FindTripByID", mock.Anything, id.Hex()).
		Return(&models.Trip{ID: id, DriverID: "driver-1"}, nil)

	rec := f.do(driverClaims(), http.MethodPost, "/trips",
		`{"vehicle_id":"vehicle-1","from_location":"Chennai","end_location":"Madurai","trip_amount":4500}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var created models.Trip
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, id, created.ID)
}

func TestTripHandler_Create_InvalidJSON(t *testing.T) {
	f := newTripHandlerFixture()

	rec := f.do(driverClaims(), http.MethodPost, "/trips", `{"from_location":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTripHandler_Create_ValidationDetail(t *testing.T) {
	f := newTripHandlerFixture()

	rec := f.do(driverClaims(), http.MethodPost, "/trips", `{"trip_amount":-5}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Message string             `json:"message"`
		Errors  []trips.FieldError `json:"errors"`
	}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation failed", resp.Message)
	assert.NotEmpty(t, resp.Errors)
}

func TestTripHandler_Create_Unauthenticated(t *testing.T) {
	f := newTripHandlerFixture()

	rec := f.do(nil, http.MethodPost, "/trips", `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTripHandler_Get_ForeignTripIsHidden(t *testing.T) {
	f := newTripHandlerFixture()

	f.trips.On("FindTripByID", mock.Anything, "abc").
		Return(&models.Trip{DriverID: "driver-2"}, nil)

	rec := f.do(driverClaims(), http.MethodGet, "/trips/abc", "")

	// Existence is not leaked to other drivers.
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTripHandler_Get_IncludeDeleted(t *testing.T) {
	f := newTripHandlerFixture()

	f.trips.On("FindTripByID", mock.Anything, "abc").
		Return(&models.Trip{DriverID: "driver-1", IsDriverDeleted: true}, nil)

	rec := f.do(driverClaims(), http.MethodGet, "/trips/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(driverClaims(), http.MethodGet, "/trips/abc?includeDeleted=true", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTripHandler_List_DriverScope(t *testing.T) {
	f := newTripHandlerFixture()

	f.trips.On("FindTrips", mock.Anything, mock.MatchedBy(func(filter bson.M) bool {
		return filter["driver_id"] == "driver-1" && filter["is_driver_deleted"] == false
	})).Return([]models.Trip{{DriverID: "driver-1"}}, nil)

	rec := f.do(driverClaims(), http.MethodGet, "/trips?includeDeleted=true", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	f.trips.AssertExpectations(t)
}

func TestTripHandler_Update(t *testing.T) {
	f := newTripHandlerFixture()

	f.trips.On("FindTripByID", mock.Anything, "abc").
		Return(&models.Trip{DriverID: "driver-1"}, nil)
	f.trips.On("UpdateTripFields", mock.Anything, "abc", mock.MatchedBy(func(fields bson.M) bool {
		_, hasCreatedBy := fields["created_by"]
		return fields["tolls"] == 75.0 && !hasCreatedBy
	})).Return(nil)

	rec := f.do(driverClaims(), http.MethodPut, "/trips/abc",
		`{"tolls":75,"created_by":"intruder"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	f.trips.AssertExpectations(t)
}

func TestTripHandler_Delete_HardIgnoredForDriver(t *testing.T) {
	f := newTripHandlerFixture()

	f.trips.On("FindTripByID", mock.Anything, "abc").
		Return(&models.Trip{DriverID: "driver-1"}, nil)
	f.trips.On("UpdateTripFields", mock.Anything, "abc", mock.Anything).Return(nil)

	rec := f.do(driverClaims(), http.MethodDelete, "/trips/abc?hard=true", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	f.trips.AssertNotCalled(t, "DeleteTrip", mock.Anything, mock.Anything)
}

func TestTripHandler_Restore_DriverForbidden(t *testing.T) {
	f := newTripHandlerFixture()

	f.trips.On("FindTripByID", mock.Anything, "abc").
		Return(&models.Trip{DriverID: "driver-1", IsDriverDeleted: true}, nil)

	rec := f.do(driverClaims(), http.MethodPost, "/trips/abc/restore", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTripHandler_Restore_Admin(t *testing.T) {
	f := newTripHandlerFixture()

	f.trips.On("FindTripByID", mock.Anything, "abc").
		Return(&models.Trip{DriverID: "driver-1", IsDriverDeleted: true}, nil)
	f.trips.On("UpdateTripFields", mock.Anything, "abc", mock.Anything).Return(nil)

	rec := f.do(adminClaims(), http.MethodPost, "/trips/abc/restore", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTripHandler_Stats(t *testing.T) {
	f := newTripHandlerFixture()

	f.trips.On("FindTrips", mock.Anything, mock.Anything).
		Return([]models.Trip{{TripAmount: 1000, FuelAmount: "300"}}, nil)

	rec := f.do(adminClaims(), http.MethodGet, "/trips/stats", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var stats models.TripStats
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, 1, stats.TotalTrips)
	assert.Equal(t, 700.0, stats.TotalProfit)
}

func TestTripHandler_WhatsApp(t *testing.T) {
	f := newTripHandlerFixture()

	f.trips.On("FindTripByID", mock.Anything, "abc").
		Return(&models.Trip{DriverID: "driver-1", CustomerNumber: "98765"}, nil)

	rec := f.do(adminClaims(), http.MethodGet, "/trips/abc/whatsapp?sendTo=customer", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp["link"], "https://wa.me/98765")
}

func TestTripHandler_Get_UnknownID(t *testing.T) {
	f := newTripHandlerFixture()

	f.trips.On("FindTripByID", mock.Anything, "nope").Return(nil, db.ErrNotFound)

	rec := f.do(adminClaims(), http.MethodGet, "/trips/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
