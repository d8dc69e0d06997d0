package analytics

import (
	"math"

	"github.com/sells-group/ev-dss/internal/model"
)

// Cumulative-cost trend assumptions for the dashboard's four-wheeler chart.
const (
	TrendEVBasePrice  = 1_500_000.0
	TrendICEBasePrice = 1_000_000.0
	TrendAnnualKm     = 15_000.0
	TrendYears        = 8
)

// TrendCity is the city whose four-wheeler data drives the dashboard trend.
var TrendCity = model.CityKey{State: "Maharashtra", City: "Mumbai"}

// TCOTrend projects cumulative EV and ICE cost for years 0..years from a
// class's per-km running and maintenance costs. Values are rounded rupees.
func TCOTrend(d model.VehicleClassData, years int) []model.TrendPoint {
	if years < 0 {
		years = 0
	}
	evPerYear := (d.EVCostPerKm + d.EVMaintenanceCost) * TrendAnnualKm
	icePerYear := (d.ICECostPerKm + d.ICEMaintenanceCost) * TrendAnnualKm

	out := make([]model.TrendPoint, 0, years+1)
	for y := 0; y <= years; y++ {
		out = append(out, model.TrendPoint{
			Year: y,
			EV:   math.Round(TrendEVBasePrice + evPerYear*float64(y)),
			ICE:  math.Round(TrendICEBasePrice + icePerYear*float64(y)),
		})
	}
	return out
}

// DashboardTrend returns the trend for TrendCity's four-wheelers, or nil when
// the dataset has no records for that city.
func DashboardTrend(records []model.Record) []model.TrendPoint {
	found := false
	for _, r := range records {
		if r.CityKey() == TrendCity {
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	d, _ := ClassData(VehicleClassData(records, TrendCity.State, TrendCity.City), model.FourWheeler)
	return TCOTrend(d, TrendYears)
}
