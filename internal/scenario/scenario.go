// Package scenario computes EV vs ICE total cost of ownership from a handful
// of scalar inputs. Nothing here reads the dataset; the calculators are pure
// functions of their arguments.
package scenario

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/ev-dss/internal/model"
)

// Ownership horizon.
const (
	DailyKm     = 40.0
	DaysPerYear = 365.0
	Years       = 7
	AnnualKm    = DailyKm * DaysPerYear
	TotalKm     = AnnualKm * Years
)

// Vehicle assumptions. These are fixed at compile time.
const (
	BaseEVPrice           = 1_800_000.0
	ICEPrice              = 1_200_000.0
	EVEfficiencyKmPerKWh  = 7.0
	ICEEfficiencyKmPerL   = 15.0
	EVMaintenancePerYear  = 8_000.0
	ICEMaintenancePerYear = 20_000.0
	ICECO2KgPerKm         = 0.12
)

// Charging mix and grid constants.
const (
	HomeChargingShare   = 0.7
	PublicChargingShare = 0.3
	GreenGridFactor     = 50.0 // g CO2/kWh
)

// Lakh is 100 000 rupees.
const Lakh = 100_000.0

// Inputs are the user-adjustable scenario parameters.
type Inputs struct {
	PetrolPrice      float64 `json:"petrol_price" yaml:"petrol_price"`             // ₹/L
	ElectricityRate  float64 `json:"electricity_rate" yaml:"electricity_rate"`     // ₹/kWh at home
	GridCO2Factor    float64 `json:"grid_co2_factor" yaml:"grid_co2_factor"`       // g/kWh
	EVSubsidy        float64 `json:"ev_subsidy" yaml:"ev_subsidy"`                 // ₹
	ChargingCost     float64 `json:"charging_cost" yaml:"charging_cost"`           // ₹/kWh public
	EVPriceReduction float64 `json:"ev_price_reduction" yaml:"ev_price_reduction"` // percent
	GreenGrid        bool    `json:"green_grid" yaml:"green_grid"`
}

// BaseInputs returns the reference scenario.
func BaseInputs() Inputs {
	return Inputs{
		PetrolPrice:      105,
		ElectricityRate:  8,
		GridCO2Factor:    700,
		EVSubsidy:        150_000,
		ChargingCost:     15,
		EVPriceReduction: 0,
	}
}

// Range is an inclusive input range with its adjustment step.
type Range struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step" yaml:"step"`
}

// Contains reports whether v is a finite value within [Min, Max].
func (r Range) Contains(v float64) bool {
	return !math.IsNaN(v) && v >= r.Min && v <= r.Max
}

// Ranges are the suggested bounds for each input, keyed by JSON name.
var Ranges = map[string]Range{
	"petrol_price":       {Min: 80, Max: 180, Step: 5},
	"electricity_rate":   {Min: 4, Max: 18, Step: 0.5},
	"charging_cost":      {Min: 8, Max: 25, Step: 1},
	"grid_co2_factor":    {Min: 200, Max: 1000, Step: 50},
	"ev_subsidy":         {Min: 0, Max: 500_000, Step: 25_000},
	"ev_price_reduction": {Min: 0, Max: 40, Step: 5},
}

// Limits are hard upper bounds on each input, keyed by JSON name. They sit
// well above Ranges and keep every Calculate output finite.
var Limits = map[string]float64{
	"petrol_price":       1_000,
	"electricity_rate":   200,
	"charging_cost":      500,
	"grid_co2_factor":    5_000,
	"ev_subsidy":         10_000_000,
	"ev_price_reduction": 100,
}

// Validate rejects inputs that cannot describe a real scenario. Values
// outside Ranges are allowed up to Limits.
func (in Inputs) Validate() error {
	fields := map[string]float64{
		"petrol_price":       in.PetrolPrice,
		"electricity_rate":   in.ElectricityRate,
		"grid_co2_factor":    in.GridCO2Factor,
		"ev_subsidy":         in.EVSubsidy,
		"charging_cost":      in.ChargingCost,
		"ev_price_reduction": in.EVPriceReduction,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return eris.Errorf("scenario: %s must be a finite number", name)
		}
		if v < 0 {
			return eris.Errorf("scenario: %s must not be negative", name)
		}
		if v > Limits[name] {
			return eris.Errorf("scenario: %s must be at most %g", name, Limits[name])
		}
	}
	return nil
}

// GridFactor is the effective grid intensity, honouring the green-grid flag.
func (in Inputs) GridFactor() float64 {
	if in.GreenGrid {
		return GreenGridFactor
	}
	return in.GridCO2Factor
}

// Result is the outcome of one scenario run. Rupee totals are rounded to
// whole rupees, per-km costs to paise, CO2 rates to whole g/km.
type Result struct {
	EVTCO         float64            `json:"ev_tco" yaml:"ev_tco"`
	ICETCO        float64            `json:"ice_tco" yaml:"ice_tco"`
	Savings       float64            `json:"savings" yaml:"savings"`
	EVCostPerKm   float64            `json:"ev_cost_per_km" yaml:"ev_cost_per_km"`
	ICECostPerKm  float64            `json:"ice_cost_per_km" yaml:"ice_cost_per_km"`
	EVCO2         float64            `json:"ev_co2_g_per_km" yaml:"ev_co2_g_per_km"`
	ICECO2        float64            `json:"ice_co2_g_per_km" yaml:"ice_co2_g_per_km"`
	CO2Savings    float64            `json:"co2_savings_kg" yaml:"co2_savings_kg"`
	BreakEven     BreakEven          `json:"break_even" yaml:"break_even"`
	EVRecommended bool               `json:"ev_recommended" yaml:"ev_recommended"`
	Yearly        []model.TrendPoint `json:"yearly" yaml:"yearly"` // lakhs
}

// Calculate runs the scenario over the fixed 7-year, 40 km/day horizon.
func Calculate(in Inputs) Result {
	evPrice := BaseEVPrice * (1 - in.EVPriceReduction/100)
	blended := in.ElectricityRate*HomeChargingShare + in.ChargingCost*PublicChargingShare

	evFuel := TotalKm / EVEfficiencyKmPerKWh * blended
	evMaint := EVMaintenancePerYear * Years
	evTCO := evPrice + evFuel + evMaint - in.EVSubsidy
	evCO2 := in.GridFactor() / EVEfficiencyKmPerKWh / 1000 // kg/km

	iceFuel := TotalKm / ICEEfficiencyKmPerL * in.PetrolPrice
	iceMaint := ICEMaintenancePerYear * Years
	iceTCO := ICEPrice + iceFuel + iceMaint

	annualEV := (evFuel + evMaint) / Years
	annualICE := (iceFuel + iceMaint) / Years

	yearly := make([]model.TrendPoint, 0, Years+1)
	for y := 0; y <= Years; y++ {
		km := AnnualKm * float64(y)
		ev := evPrice + km/EVEfficiencyKmPerKWh*blended + EVMaintenancePerYear*float64(y) - in.EVSubsidy
		ice := ICEPrice + km/ICEEfficiencyKmPerL*in.PetrolPrice + ICEMaintenancePerYear*float64(y)
		yearly = append(yearly, model.TrendPoint{
			Year: y,
			EV:   math.Round(ev / Lakh),
			ICE:  math.Round(ice / Lakh),
		})
	}

	return Result{
		EVTCO:         math.Round(evTCO),
		ICETCO:        math.Round(iceTCO),
		Savings:       math.Round(iceTCO - evTCO),
		EVCostPerKm:   round2(evFuel / TotalKm),
		ICECostPerKm:  round2(iceFuel / TotalKm),
		EVCO2:         math.Round(evCO2 * 1000),
		ICECO2:        math.Round(ICECO2KgPerKm * 1000),
		CO2Savings:    math.Round((ICECO2KgPerKm - evCO2) * TotalKm),
		BreakEven:     breakEven(evPrice-ICEPrice-in.EVSubsidy, annualICE-annualEV),
		EVRecommended: evTCO < iceTCO,
		Yearly:        yearly,
	}
}

// breakEven divides the up-front premium by annual running savings. With no
// positive savings there is no crossing.
func breakEven(premium, annualSavings float64) BreakEven {
	if annualSavings <= 0 {
		return BeyondHorizon()
	}
	return NewBreakEven(premium / annualSavings)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
