package analytics

import (
	"github.com/sells-group/ev-dss/internal/model"
)

// Dashboard computes the dataset-wide headline metrics. Advantage averages
// run over every EV record, paired or not; the CO2 figure is in g/km.
func Dashboard(records []model.Record) model.DashboardMetrics {
	isICE := model.Record.IsICE
	isEV := model.Record.IsEV

	avgEV := meanOr(collect(records, isEV, costPerKm), 0)
	avgICE := meanOr(collect(records, isICE, costPerKm), 0)

	savings := 0.0
	if avgICE > 0 {
		savings = (avgICE - avgEV) / avgICE * 100
	}

	return model.DashboardMetrics{
		AvgCostAdvantage: meanOr(collect(records, isEV, func(r model.Record) float64 {
			return r.CostAdvantage
		}), 0),
		AvgCO2Advantage: meanOr(collect(records, isEV, func(r model.Record) float64 {
			return r.CO2Advantage
		}), 0) * 1000,
		CitiesAnalyzed:     len(groupCities(records)),
		AvgEVCostPerKm:     avgEV,
		AvgICECostPerKm:    avgICE,
		CostSavingsPercent: savings,
		TotalRecords:       len(records),
	}
}

func costPerKm(r model.Record) float64 { return r.CostPerKm }

// States lists unique states in first-appearance order.
func States(records []model.Record) []string {
	return unique(records, func(model.Record) bool { return true }, func(r model.Record) string { return r.State })
}

// CitiesForState lists unique cities of state in first-appearance order.
func CitiesForState(records []model.Record, state string) []string {
	return unique(records, func(r model.Record) bool { return r.State == state }, func(r model.Record) string { return r.City })
}

func unique(records []model.Record, keep func(model.Record) bool, get func(model.Record) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range records {
		if !keep(r) {
			continue
		}
		v := get(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
