package analytics

import (
	"github.com/sells-group/ev-dss/internal/model"
)

// Fallbacks used when the filtered record set behind a parameter is empty.
const (
	FallbackPetrolPrice        = 105.0
	FallbackElectricityRate    = 8.0
	FallbackChargingDensity    = 2.0
	FallbackMaintenanceCostEV  = 0.3
	FallbackMaintenanceCostICE = 0.8
	FallbackCostAdvantage      = 1.5
	FallbackCO2Advantage       = 0.07
)

// ScenarioBaseParams averages the dataset into scenario seed values. The
// petrol price ignores non-positive ICE fuel prices. Values are rounded to 2
// decimals, the CO2 advantage to 3.
func ScenarioBaseParams(records []model.Record) model.ScenarioBaseParams {
	isEV := model.Record.IsEV
	isICE := model.Record.IsICE

	petrol := collect(records, func(r model.Record) bool {
		return r.IsICE() && r.FuelPrice > 0
	}, func(r model.Record) float64 { return r.FuelPrice })

	evField := func(get func(model.Record) float64, fallback float64) float64 {
		return meanOr(collect(records, isEV, get), fallback)
	}

	return model.ScenarioBaseParams{
		AvgPetrolPrice: roundTo(meanOr(petrol, FallbackPetrolPrice), 2),
		AvgElectricityRate: roundTo(evField(func(r model.Record) float64 {
			return r.EnergyCharge
		}, FallbackElectricityRate), 2),
		AvgChargingDensity: roundTo(evField(func(r model.Record) float64 {
			return r.ChargingDensity
		}, FallbackChargingDensity), 2),
		AvgMaintenanceCostEV: roundTo(evField(func(r model.Record) float64 {
			return r.MaintenanceCost
		}, FallbackMaintenanceCostEV), 2),
		AvgMaintenanceCostICE: roundTo(meanOr(collect(records, isICE, func(r model.Record) float64 {
			return r.MaintenanceCost
		}), FallbackMaintenanceCostICE), 2),
		AvgCostAdvantage: roundTo(evField(func(r model.Record) float64 {
			return r.CostAdvantage
		}, FallbackCostAdvantage), 2),
		AvgCO2Advantage: roundTo(evField(func(r model.Record) float64 {
			return r.CO2Advantage
		}, FallbackCO2Advantage), 3),
	}
}
