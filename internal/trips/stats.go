package trips

import (
	"regexp"

	"github.com/spf13/cast"
	"github.com/ukydev/trip-ledger/internal/models"
)

var digitRuns = regexp.MustCompile(`\d+`)

// FuelValue turns the heterogeneous fuel_amount field into a number.
// Absent values are zero. Plain numbers (or strings that parse directly as
// one) are used as-is. Anything else is treated as operator free text:
// every maximal run of digits is read as an integer and the runs are
// summed. The free-text path is deliberately lossy: decimal points are
// dropped and unrelated numbers in the same note are summed together.
// Downstream totals depend on it staying that way.
func FuelValue(v interface{}) float64 {
	if v == nil {
		return 0
	}
	if n, err := cast.ToFloat64E(v); err == nil {
		return n
	}
	s := cast.ToString(v)
	var sum float64
	for _, run := range digitRuns.FindAllString(s, -1) {
		sum += cast.ToFloat64(run)
	}
	return sum
}

// TripExpense is the per-trip expense: fuel plus tolls, parking and driver
// beta, each defaulting to zero when absent.
func TripExpense(t *models.Trip) float64 {
	return FuelValue(t.FuelAmount) + t.Tolls + t.ParkingCharges + t.DriverBeta
}

// ComputeStats aggregates financials over an already visibility-scoped trip
// set plus externally supplied maintenance and ad expense records. It
// performs no authorization and tolerates empty expense sets. Profit is
// computed once from the final totals rather than summed incrementally.
func ComputeStats(visible []models.Trip, maintenance []models.Maintenance, ads []models.Ad) models.TripStats {
	stats := models.TripStats{TotalTrips: len(visible)}
	for i := range visible {
		stats.TotalTripAmount += visible[i].TripAmount
		stats.TotalExpenses += TripExpense(&visible[i])
	}
	for i := range maintenance {
		stats.TotalMaintenance += maintenance[i].Cost
	}
	for i := range ads {
		stats.TotalAds += ads[i].Amount
	}
	stats.TotalExpenses += stats.TotalMaintenance + stats.TotalAds
	stats.TotalProfit = stats.TotalTripAmount - stats.TotalExpenses
	return stats
}
