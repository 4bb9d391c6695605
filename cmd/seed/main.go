package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// Seeds a running trip-ledger instance with demo data over its own API:
// an admin account, a handful of drivers and vehicles, and a few weeks of
// trips with the kind of messy operator-entered fuel notes the stats
// engine has to chew through.

var (
	driverNames = []string{"Ravi Kumar", "Suresh Babu", "Manoj Pillai", "Arun Prasad", "Vijay Anand"}
	routes      = []string{"Chennai", "Coimbatore", "Madurai", "Trichy", "Salem", "Pondicherry", "Bangalore"}
	fuelNotes   = []string{"", "1500", "1200 + 300 toll", "2 liters@100", "full tank 2500", "900"}
	payModes    = []string{"cash", "upi", "card"}
)

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func (c *client) post(path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func main() {
	baseURL := os.Getenv("SEED_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	c := &client{baseURL: baseURL, http: &http.Client{Timeout: 15 * time.Second}}

	var login struct {
		Token string `json:"token"`
	}
	admin := map[string]string{
		"username": "admin",
		"email":    "admin@example.com",
		"password": "admin-password-1",
		"role":     "admin",
	}
	if err := c.post("/api/auth/register", admin, &login); err != nil {
		// Already registered on a previous run; log in instead.
		if err := c.post("/api/auth/login", admin, &login); err != nil {
			log.WithError(err).Fatal("admin login failed")
		}
	}
	c.token = login.Token
	log.Info("admin session ready")

	var driverIDs []string
	for i, name := range driverNames {
		var created struct {
			ID string `json:"id"`
		}
		err := c.post("/api/drivers", map[string]interface{}{
			"name":   name,
			"number": fmt.Sprintf("+91 98%08d", rand.Intn(100000000)),
			"email":  fmt.Sprintf("driver%d@example.com", i+1),
		}, &created)
		if err != nil {
			log.WithError(err).WithField("driver", name).Fatal("driver create failed")
		}
		driverIDs = append(driverIDs, created.ID)
	}
	log.WithField("count", len(driverIDs)).Info("drivers created")

	var vehicleIDs []string
	for i := 0; i < 4; i++ {
		var created struct {
			ID string `json:"id"`
		}
		err := c.post("/api/vehicles", map[string]interface{}{
			"name":         fmt.Sprintf("Fleet Car %d", i+1),
			"type":         []string{"sedan", "suv", "tempo"}[i%3],
			"registration": fmt.Sprintf("TN-%02d-%04d", 10+i, rand.Intn(10000)),
		}, &created)
		if err != nil {
			log.WithError(err).Fatal("vehicle create failed")
		}
		vehicleIDs = append(vehicleIDs, created.ID)
	}
	log.WithField("count", len(vehicleIDs)).Info("vehicles created")

	trips := 0
	for day := 0; day < 21; day++ {
		for n := 0; n < 1+rand.Intn(3); n++ {
			from := routes[rand.Intn(len(routes))]
			to := routes[rand.Intn(len(routes))]
			if to == from {
				continue
			}
			trip := map[string]interface{}{
				"driver_id":       driverIDs[rand.Intn(len(driverIDs))],
				"vehicle_id":      vehicleIDs[rand.Intn(len(vehicleIDs))],
				"from_location":   from,
				"end_location":    to,
				"start_date":      time.Now().AddDate(0, 0, -day).Format(time.RFC3339),
				"customer_name":   fmt.Sprintf("Customer %d", rand.Intn(500)),
				"customer_number": fmt.Sprintf("+91 97%08d", rand.Intn(100000000)),
				"trip_amount":     float64(2000 + rand.Intn(6000)),
				"tolls":           float64(rand.Intn(400)),
				"parking_charges": float64(rand.Intn(150)),
				"driver_beta":     float64(300 + rand.Intn(300)),
				"payment_mode":    payModes[rand.Intn(len(payModes))],
			}
			if note := fuelNotes[rand.Intn(len(fuelNotes))]; note != "" {
				trip["fuel_amount"] = note
			}
			if err := c.post("/trips", trip, nil); err != nil {
				log.WithError(err).Fatal("trip create failed")
			}
			trips++
		}
	}
	log.WithField("count", trips).Info("trips created")

	if err := c.post("/api/maintenance", map[string]interface{}{
		"vehicle_id":   vehicleIDs[0],
		"driver_id":    driverIDs[0],
		"service_type": "oil_change",
		"description":  "scheduled service",
		"service_date": time.Now().Format(time.RFC3339),
		"cost":         3500.0,
	}, nil); err != nil {
		log.WithError(err).Fatal("maintenance create failed")
	}
	if err := c.post("/api/ads", map[string]interface{}{
		"campaign": "local listings",
		"platform": "google",
		"amount":   2000.0,
	}, nil); err != nil {
		log.WithError(err).Fatal("ad create failed")
	}
	log.Info("seed complete")
}
