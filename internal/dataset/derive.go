package dataset

import (
	"github.com/sells-group/ev-dss/internal/model"
)

// Charging readiness thresholds (station counts) and density scale.
const (
	ChargingDensityScale    = 10.0
	HighReadinessStations   = 10.0
	MediumReadinessStations = 3.0
)

// ChargingReadiness buckets a station count.
func ChargingReadiness(stations float64) model.Readiness {
	switch {
	case stations >= HighReadinessStations:
		return model.ReadinessHigh
	case stations >= MediumReadinessStations:
		return model.ReadinessMedium
	case stations > 0:
		return model.ReadinessLow
	default:
		return model.ReadinessNone
	}
}

// ChargingDensity normalizes a station count.
func ChargingDensity(stations float64) float64 {
	return stations / ChargingDensityScale
}

// pair holds the indices of the first EV and first ICE row of a group.
type pair struct {
	ev, ice int
}

// pairIndex maps every (state, city, class) to its first EV and ICE rows in
// input order. Missing sides are -1.
func pairIndex(records []model.Record) map[model.PairKey]pair {
	idx := make(map[model.PairKey]pair)
	for i, r := range records {
		key := r.PairKey()
		p, ok := idx[key]
		if !ok {
			p = pair{ev: -1, ice: -1}
		}
		switch {
		case r.IsEV() && p.ev < 0:
			p.ev = i
		case r.IsICE() && p.ice < 0:
			p.ice = i
		}
		idx[key] = p
	}
	return idx
}

// Derive returns a copy of records with per-row charging fields filled in and
// cost/CO2 advantages set on the EV row of every complete EV/ICE pair. Only
// the first EV and first ICE row of a group (input order) take part; later
// duplicates keep zero advantages. The input slice is not modified.
func Derive(records []model.Record) []model.Record {
	out := make([]model.Record, len(records))
	copy(out, records)

	for i := range out {
		out[i].ChargingDensity = ChargingDensity(out[i].ChargingStationsCount)
		out[i].ChargingReadiness = ChargingReadiness(out[i].ChargingStationsCount)
		out[i].CostAdvantage = 0
		out[i].CO2Advantage = 0
		out[i].Paired = false
	}

	for _, p := range pairIndex(out) {
		if p.ev < 0 || p.ice < 0 {
			continue
		}
		ev, ice := &out[p.ev], out[p.ice]
		ev.CostAdvantage = ice.CostPerKm - ev.CostPerKm
		ev.CO2Advantage = ice.CO2PerKm - ev.CO2PerKm
		ev.Paired = true
	}
	return out
}

// DuplicatePairs lists, in first-appearance order, the groups that contain
// more than one EV or more than one ICE row.
func DuplicatePairs(records []model.Record) []model.PairKey {
	type counts struct{ ev, ice int }
	seen := make(map[model.PairKey]*counts)
	var order []model.PairKey
	for _, r := range records {
		key := r.PairKey()
		c, ok := seen[key]
		if !ok {
			c = &counts{}
			seen[key] = c
			order = append(order, key)
		}
		switch {
		case r.IsEV():
			c.ev++
		case r.IsICE():
			c.ice++
		}
	}

	var dups []model.PairKey
	for _, key := range order {
		if c := seen[key]; c.ev > 1 || c.ice > 1 {
			dups = append(dups, key)
		}
	}
	return dups
}
