package analytics

import (
	"math"

	"github.com/sells-group/ev-dss/internal/model"
)

// VehicleClassData compares EV and ICE for each class in one city. The EV
// cost per km is a mean over the class's EV records; every other field is
// taken from the first matching record of each powertrain. Classes with no
// records report zeros.
func VehicleClassData(records []model.Record, state, city string) []model.VehicleClassData {
	key := model.CityKey{State: state, City: city}
	var local []model.Record
	for _, r := range records {
		if r.CityKey() == key {
			local = append(local, r)
		}
	}

	out := make([]model.VehicleClassData, 0, len(model.VehicleClasses))
	for _, vc := range model.VehicleClasses {
		d := model.VehicleClassData{VehicleClass: vc}

		evCost := collect(local, func(r model.Record) bool {
			return r.IsEV() && r.VehicleClass == vc
		}, func(r model.Record) float64 { return r.CostPerKm })
		d.EVCostPerKm = meanOr(evCost, 0)

		if ev, ok := first(local, vc, model.EV); ok {
			d.EVCO2PerKm = ev.CO2PerKm
			d.EVMaintenanceCost = ev.MaintenanceCost
			d.EVReplacementCost = ev.ReplacementCost
			d.EVReplacementCycle = ev.ReplacementCycle
			d.CostAdvantage = ev.CostAdvantage
			d.CO2Advantage = ev.CO2Advantage
		}
		if ice, ok := first(local, vc, model.ICE); ok {
			d.ICECostPerKm = ice.CostPerKm
			d.ICECO2PerKm = ice.CO2PerKm
			d.ICEMaintenanceCost = ice.MaintenanceCost
			d.ICEReplacementCost = ice.ReplacementCost
			d.ICEReplacementCycle = ice.ReplacementCycle
		}
		out = append(out, d)
	}
	return out
}

// ClassData returns the entry for vc from VehicleClassData output.
func ClassData(data []model.VehicleClassData, vc model.VehicleClass) (model.VehicleClassData, bool) {
	for _, d := range data {
		if d.VehicleClass == vc {
			return d, true
		}
	}
	return model.VehicleClassData{}, false
}

func first(records []model.Record, vc model.VehicleClass, pt model.Powertrain) (model.Record, bool) {
	for _, r := range records {
		if r.VehicleClass == vc && r.Powertrain == pt {
			return r, true
		}
	}
	return model.Record{}, false
}

// CostComparison returns the dataset-wide mean EV and ICE cost per km for
// each class, rounded to 2 decimals.
func CostComparison(records []model.Record) []model.CostComparison {
	out := make([]model.CostComparison, 0, len(model.VehicleClasses))
	for _, vc := range model.VehicleClasses {
		costOf := func(pt model.Powertrain) float64 {
			xs := collect(records, func(r model.Record) bool {
				return r.VehicleClass == vc && r.Powertrain == pt
			}, func(r model.Record) float64 { return r.CostPerKm })
			return roundTo(meanOr(xs, 0), 2)
		}
		out = append(out, model.CostComparison{
			VehicleClass: vc,
			Name:         vc.Label(),
			EV:           costOf(model.EV),
			ICE:          costOf(model.ICE),
		})
	}
	return out
}

// Emissions returns CO2 per km in g/km for the first EV and first ICE record
// of each class, EV before ICE.
func Emissions(records []model.Record) []model.EmissionPoint {
	out := make([]model.EmissionPoint, 0, 2*len(model.VehicleClasses))
	for _, vc := range model.VehicleClasses {
		for _, pt := range []model.Powertrain{model.EV, model.ICE} {
			var grams float64
			if r, ok := first(records, vc, pt); ok {
				grams = math.Round(r.CO2PerKm * 1000)
			}
			out = append(out, model.EmissionPoint{
				VehicleClass: vc,
				Powertrain:   pt,
				Name:         string(pt) + " " + string(vc),
				Value:        grams,
			})
		}
	}
	return out
}
