package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/trip-ledger/internal/auth"
	"github.com/ukydev/trip-ledger/internal/db"
	"github.com/ukydev/trip-ledger/internal/events"
	"github.com/ukydev/trip-ledger/internal/handlers"
	"github.com/ukydev/trip-ledger/internal/middleware"
	"github.com/ukydev/trip-ledger/internal/trips"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	database := db.Database(client)
	log.WithField("database", database.Name()).Info("connected to MongoDB")

	tripCol := &db.MongoTripCollection{Collection: database.Collection("trips")}
	driverCol := &db.MongoDriverCollection{Collection: database.Collection("drivers")}
	vehicleCol := &db.MongoVehicleCollection{Collection: database.Collection("vehicles")}
	maintCol := &db.MongoMaintenanceCollection{Collection: database.Collection("maintenance")}
	adCol := &db.MongoAdCollection{Collection: database.Collection("ads")}
	userCol := &db.MongoUserCollection{Collection: database.Collection("users")}

	var publisher events.Publisher = events.Noop{}
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		mq, err := events.ConnectMQTT(broker, "trip-ledger")
		if err != nil {
			log.WithError(err).Fatal("failed to connect to MQTT broker")
		}
		defer mq.Close()
		publisher = mq
		log.WithField("broker", broker).Info("publishing trip events over MQTT")
	}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to create auth service")
	}

	resolver := &trips.Resolver{Drivers: driverCol, Vehicles: vehicleCol}
	tripService := trips.NewService(tripCol, maintCol, adCol, resolver, publisher, trips.StatsConfig{
		IncludeMaintenance: os.Getenv("STATS_INCLUDE_MAINTENANCE") != "false",
		IncludeAds:         os.Getenv("STATS_INCLUDE_ADS") != "false",
	})

	authMW := middleware.NewAuthMiddleware(authService)
	rateMW := middleware.NewRateLimitMiddleware()

	router := handlers.NewRouter(authMW, rateMW,
		handlers.NewAuthHandler(authService, userCol, driverCol),
		handlers.NewTripHandler(tripService),
		handlers.NewDriverHandler(driverCol),
		handlers.NewVehicleHandler(vehicleCol),
		handlers.NewExpenseHandler(maintCol, adCol),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
