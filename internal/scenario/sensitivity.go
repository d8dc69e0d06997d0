package scenario

import "math"

// Petrol price sweep used by Sensitivity.
const (
	SweepPetrolMin  = 80.0
	SweepPetrolMax  = 150.0
	SweepPetrolStep = 10.0
)

// SensitivityPoint is one step of the petrol price sweep.
type SensitivityPoint struct {
	PetrolPrice float64 `json:"petrol_price" yaml:"petrol_price"`
	Savings     float64 `json:"savings_lakh" yaml:"savings_lakh"`
	BreakEven   float64 `json:"break_even_years" yaml:"break_even_years"`
}

// Sensitivity reruns in across petrol prices 80..150, keeping every other
// input. The sentinel break-even is plotted as BreakEvenHorizon.
func Sensitivity(in Inputs) []SensitivityPoint {
	var out []SensitivityPoint
	for p := SweepPetrolMin; p <= SweepPetrolMax; p += SweepPetrolStep {
		run := in
		run.PetrolPrice = p
		r := Calculate(run)
		out = append(out, SensitivityPoint{
			PetrolPrice: p,
			Savings:     r.Savings / Lakh,
			BreakEven:   r.BreakEven.Years(),
		})
	}
	return out
}

// MinSignificantChange is the smallest percent change worth reporting.
const MinSignificantChange = 1.0

// PercentChange returns the change of current relative to base in percent.
// ok is false when base is zero or the change is below MinSignificantChange.
func PercentChange(current, base float64) (change float64, ok bool) {
	if base == 0 {
		return 0, false
	}
	change = (current - base) / base * 100
	if math.Abs(change) < MinSignificantChange {
		return change, false
	}
	return change, true
}

// Comparison lists the significant percent changes of a run against the
// base run, keyed by result field.
func Comparison(current, base Result) map[string]float64 {
	fields := []struct {
		name      string
		cur, base float64
	}{
		{"ev_tco", current.EVTCO, base.EVTCO},
		{"ice_tco", current.ICETCO, base.ICETCO},
		{"savings", current.Savings, base.Savings},
		{"co2_savings_kg", current.CO2Savings, base.CO2Savings},
	}
	out := make(map[string]float64)
	for _, f := range fields {
		if c, ok := PercentChange(f.cur, f.base); ok {
			out[f.name] = c
		}
	}
	return out
}
