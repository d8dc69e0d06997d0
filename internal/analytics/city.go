package analytics

import (
	"math"
	"sort"

	"github.com/sells-group/ev-dss/internal/model"
)

// EVReadyStations is the station count a city needs to be labelled EV-Ready.
const EVReadyStations = 10.0

// HeuristicCluster labels a city from its station count and the mean of its
// three per-class cost advantages.
func HeuristicCluster(stations, avgCostAdvantage float64) model.Cluster {
	switch {
	case stations >= EVReadyStations && avgCostAdvantage > 0:
		return model.ClusterEVReady
	case stations > 0 || avgCostAdvantage > 0:
		return model.ClusterModerate
	default:
		return model.ClusterLowInfra
	}
}

type cityGroup struct {
	key     model.CityKey
	records []model.Record
}

// groupCities buckets records by (state, city) in first-appearance order.
func groupCities(records []model.Record) []cityGroup {
	idx := make(map[model.CityKey]int)
	var groups []cityGroup
	for _, r := range records {
		key := r.CityKey()
		i, ok := idx[key]
		if !ok {
			i = len(groups)
			idx[key] = i
			groups = append(groups, cityGroup{key: key})
		}
		groups[i].records = append(groups[i].records, r)
	}
	return groups
}

// firstEV returns the first EV record of class vc, if any.
func firstEV(records []model.Record, vc model.VehicleClass) (model.Record, bool) {
	for _, r := range records {
		if r.IsEV() && r.VehicleClass == vc {
			return r, true
		}
	}
	return model.Record{}, false
}

// CityMetrics summarizes every (state, city) in first-appearance order.
//
// The per-class cost advantage is the value of the first EV record of that
// class, while the CO2 advantage is the mean over all the city's EV records.
// Charging fields come from the city's first record.
func CityMetrics(records []model.Record) []model.CityMetrics {
	groups := groupCities(records)
	out := make([]model.CityMetrics, 0, len(groups))
	for _, g := range groups {
		first := g.records[0]
		m := model.CityMetrics{
			State:                 g.key.State,
			City:                  g.key.City,
			ChargingDensity:       first.ChargingDensity,
			ChargingReadiness:     first.ChargingReadiness,
			ChargingStationsCount: first.ChargingStationsCount,
		}
		adv := make(map[model.VehicleClass]float64, len(model.VehicleClasses))
		for _, vc := range model.VehicleClasses {
			if ev, ok := firstEV(g.records, vc); ok {
				adv[vc] = ev.CostAdvantage
			}
		}
		m.AvgCostAdvantage2W = adv[model.TwoWheeler]
		m.AvgCostAdvantage3W = adv[model.ThreeWheeler]
		m.AvgCostAdvantage4W = adv[model.FourWheeler]

		m.AvgCO2Advantage = meanOr(collect(g.records, model.Record.IsEV,
			func(r model.Record) float64 { return r.CO2Advantage }), 0)

		avg := (m.AvgCostAdvantage2W + m.AvgCostAdvantage3W + m.AvgCostAdvantage4W) / 3
		m.Cluster = HeuristicCluster(first.ChargingStationsCount, avg)

		out = append(out, m)
	}
	return out
}

// MergeClusters overlays external cluster rows on metrics by exact
// (state, city) match. Matched cities take the external label and indices;
// the rest keep their heuristic label. When cluster rows repeat a key the
// last one wins.
func MergeClusters(metrics []model.CityMetrics, clusters []model.ClusterRecord) []model.CityMetrics {
	byKey := make(map[model.CityKey]model.ClusterRecord, len(clusters))
	for _, c := range clusters {
		byKey[c.CityKey()] = c
	}

	out := make([]model.CityMetrics, len(metrics))
	for i, m := range metrics {
		if c, ok := byKey[m.Key()]; ok {
			econ, env := c.EconomicIndex, c.EnvironmentalIndex
			m.Cluster = c.Cluster
			m.EconomicIndex = &econ
			m.EnvironmentalIndex = &env
		}
		out[i] = m
	}
	return out
}

// ClusterSummary counts cities per cluster and averages their readiness
// scores. All three clusters are always present, in display order.
func ClusterSummary(metrics []model.CityMetrics) []model.ClusterSummary {
	scores := make(map[model.Cluster][]float64)
	for _, m := range metrics {
		scores[m.Cluster] = append(scores[m.Cluster], ReadinessScore(m.ChargingDensity))
	}

	out := make([]model.ClusterSummary, 0, len(model.Clusters))
	for _, c := range model.Clusters {
		s := scores[c]
		avg := 0.0
		if len(s) > 0 {
			avg = roundTo(meanOr(s, 0), 0)
		}
		out = append(out, model.ClusterSummary{
			Cluster:      c,
			Count:        len(s),
			AvgReadiness: avg,
			Description:  c.Description(),
		})
	}
	return out
}

// TopCities ranks cities by charging density, highest first, keeping input
// order among equals. n <= 0 returns every city.
func TopCities(metrics []model.CityMetrics, n int) []model.CityScore {
	ranked := make([]model.CityMetrics, len(metrics))
	copy(ranked, metrics)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ChargingDensity > ranked[j].ChargingDensity
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}

	out := make([]model.CityScore, 0, len(ranked))
	for _, m := range ranked {
		out = append(out, model.CityScore{
			State: m.State,
			City:  m.City,
			Score: math.Min(ReadinessMax, math.Round(m.ChargingDensity*ReadinessSlope+ReadinessBase)),
		})
	}
	return out
}

// CityIndices places each city on the economic/environmental scatter.
// External indices (scaled to 0-100) are used when present and non-zero;
// otherwise the heuristics below apply.
func CityIndices(metrics []model.CityMetrics) []model.CityIndex {
	out := make([]model.CityIndex, 0, len(metrics))
	for _, m := range metrics {
		econ := clamp(70+m.AvgCostAdvantage4W*3, 40, 100)
		if m.EconomicIndex != nil && *m.EconomicIndex != 0 {
			econ = *m.EconomicIndex * 100
		}
		env := clamp(60+m.AvgCO2Advantage*500, 40, 80)
		if m.EnvironmentalIndex != nil && *m.EnvironmentalIndex != 0 {
			env = *m.EnvironmentalIndex * 100
		}
		out = append(out, model.CityIndex{
			State:              m.State,
			City:               m.City,
			Cluster:            m.Cluster,
			EconomicIndex:      econ,
			EnvironmentalIndex: env,
			EVReadiness:        ReadinessScore(m.ChargingDensity),
		})
	}
	return out
}
