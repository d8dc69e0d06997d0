package scenario

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/ev-dss/internal/model"
)

// Prices are the purchase prices of an EV and its ICE equivalent.
type Prices struct {
	EV  float64 `json:"ev" yaml:"ev"`
	ICE float64 `json:"ice" yaml:"ice"`
}

// ClassPrices are the purchase prices used by the ownership calculator.
var ClassPrices = map[model.VehicleClass]Prices{
	model.TwoWheeler:   {EV: 150_000, ICE: 80_000},
	model.ThreeWheeler: {EV: 350_000, ICE: 200_000},
	model.FourWheeler:  {EV: 1_500_000, ICE: 1_000_000},
}

// Ownership calculator input bounds and defaults.
var (
	DailyKmRange = Range{Min: 10, Max: 150, Step: 5}
	YearsRange   = Range{Min: 3, Max: 12, Step: 1}
)

// OwnershipInputs drive the per-city ownership calculator. Data carries the
// city's per-km costs for one vehicle class.
type OwnershipInputs struct {
	Data    model.VehicleClassData `json:"data" yaml:"data"`
	DailyKm float64                `json:"daily_km" yaml:"daily_km"`
	Years   int                    `json:"years" yaml:"years"`
}

// Validate checks the class and that the usage figures lie within
// DailyKmRange and YearsRange.
func (in OwnershipInputs) Validate() error {
	if !in.Data.VehicleClass.Valid() {
		return eris.Errorf("scenario: unknown vehicle class %q", in.Data.VehicleClass)
	}
	if !DailyKmRange.Contains(in.DailyKm) {
		return eris.Errorf("scenario: daily_km must be between %g and %g", DailyKmRange.Min, DailyKmRange.Max)
	}
	if !YearsRange.Contains(float64(in.Years)) {
		return eris.Errorf("scenario: years must be between %g and %g", YearsRange.Min, YearsRange.Max)
	}
	return nil
}

// OwnershipSide is the cost picture for one powertrain.
type OwnershipSide struct {
	PurchasePrice   float64 `json:"purchase_price" yaml:"purchase_price"`
	FuelCost        float64 `json:"fuel_cost" yaml:"fuel_cost"`
	MaintenanceCost float64 `json:"maintenance_cost" yaml:"maintenance_cost"`
	TCO             float64 `json:"tco" yaml:"tco"`
	CostPerKm       float64 `json:"cost_per_km" yaml:"cost_per_km"`
	CO2             float64 `json:"co2_g_per_km" yaml:"co2_g_per_km"`
}

// CostBreakdown is one cost category in lakhs.
type CostBreakdown struct {
	Category string  `json:"category" yaml:"category"`
	EV       float64 `json:"ev" yaml:"ev"`
	ICE      float64 `json:"ice" yaml:"ice"`
}

// OwnershipResult compares owning an EV and an ICE vehicle in one city.
type OwnershipResult struct {
	VehicleClass  model.VehicleClass `json:"vehicle_class" yaml:"vehicle_class"`
	EV            OwnershipSide      `json:"ev" yaml:"ev"`
	ICE           OwnershipSide      `json:"ice" yaml:"ice"`
	Savings       float64            `json:"savings" yaml:"savings"`
	BreakEven     BreakEven          `json:"break_even" yaml:"break_even"`
	CO2Savings    float64            `json:"co2_savings_kg" yaml:"co2_savings_kg"`
	TCOOverTime   []model.TrendPoint `json:"tco_over_time" yaml:"tco_over_time"`
	Breakdown     []CostBreakdown    `json:"breakdown" yaml:"breakdown"`
	EVRecommended bool               `json:"ev_recommended" yaml:"ev_recommended"`
	CostAdvantage float64            `json:"cost_advantage" yaml:"cost_advantage"`
}

// Ownership projects ownership costs from the city's per-km fuel and
// maintenance figures. Break-even here ignores subsidies.
func Ownership(in OwnershipInputs) (OwnershipResult, error) {
	if err := in.Validate(); err != nil {
		return OwnershipResult{}, err
	}
	d := in.Data
	prices := ClassPrices[d.VehicleClass]
	annualKm := in.DailyKm * DaysPerYear
	totalKm := annualKm * float64(in.Years)

	evFuel := d.EVCostPerKm * totalKm
	evMaint := d.EVMaintenanceCost * totalKm
	evTCO := prices.EV + evFuel + evMaint

	iceFuel := d.ICECostPerKm * totalKm
	iceMaint := d.ICEMaintenanceCost * totalKm
	iceTCO := prices.ICE + iceFuel + iceMaint

	annualEV := (evFuel + evMaint) / float64(in.Years)
	annualICE := (iceFuel + iceMaint) / float64(in.Years)

	trend := make([]model.TrendPoint, 0, in.Years+1)
	for y := 0; y <= in.Years; y++ {
		km := annualKm * float64(y)
		trend = append(trend, model.TrendPoint{
			Year: y,
			EV:   math.Round(prices.EV + d.EVCostPerKm*km + d.EVMaintenanceCost*km),
			ICE:  math.Round(prices.ICE + d.ICECostPerKm*km + d.ICEMaintenanceCost*km),
		})
	}

	return OwnershipResult{
		VehicleClass: d.VehicleClass,
		EV: OwnershipSide{
			PurchasePrice:   prices.EV,
			FuelCost:        math.Round(evFuel),
			MaintenanceCost: math.Round(evMaint),
			TCO:             math.Round(evTCO),
			CostPerKm:       round2(d.EVCostPerKm),
			CO2:             math.Round(d.EVCO2PerKm * 1000),
		},
		ICE: OwnershipSide{
			PurchasePrice:   prices.ICE,
			FuelCost:        math.Round(iceFuel),
			MaintenanceCost: math.Round(iceMaint),
			TCO:             math.Round(iceTCO),
			CostPerKm:       round2(d.ICECostPerKm),
			CO2:             math.Round(d.ICECO2PerKm * 1000),
		},
		Savings:     math.Round(iceTCO - evTCO),
		BreakEven:   breakEven(prices.EV-prices.ICE, annualICE-annualEV),
		CO2Savings:  math.Round((d.ICECO2PerKm - d.EVCO2PerKm) * totalKm),
		TCOOverTime: trend,
		Breakdown: []CostBreakdown{
			{Category: "Purchase", EV: prices.EV / Lakh, ICE: prices.ICE / Lakh},
			{Category: "Fuel/Energy", EV: evFuel / Lakh, ICE: iceFuel / Lakh},
			{Category: "Maintenance", EV: evMaint / Lakh, ICE: iceMaint / Lakh},
		},
		EVRecommended: evTCO < iceTCO,
		CostAdvantage: d.CostAdvantage,
	}, nil
}
