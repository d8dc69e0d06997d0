package model

// CityMetrics summarizes one (state, city).
type CityMetrics struct {
	State                 string    `json:"state" yaml:"state"`
	City                  string    `json:"city" yaml:"city"`
	ChargingDensity       float64   `json:"charging_density" yaml:"charging_density"`
	ChargingReadiness     Readiness `json:"charging_readiness" yaml:"charging_readiness"`
	AvgCostAdvantage2W    float64   `json:"avg_cost_advantage_2w" yaml:"avg_cost_advantage_2w"`
	AvgCostAdvantage3W    float64   `json:"avg_cost_advantage_3w" yaml:"avg_cost_advantage_3w"`
	AvgCostAdvantage4W    float64   `json:"avg_cost_advantage_4w" yaml:"avg_cost_advantage_4w"`
	AvgCO2Advantage       float64   `json:"avg_co2_advantage" yaml:"avg_co2_advantage"`
	ChargingStationsCount float64   `json:"charging_stations_count" yaml:"charging_stations_count"`
	Cluster               Cluster   `json:"cluster" yaml:"cluster"`

	// Set only when external cluster data matched this city.
	EconomicIndex      *float64 `json:"economic_index,omitempty" yaml:"economic_index,omitempty"`
	EnvironmentalIndex *float64 `json:"environmental_index,omitempty" yaml:"environmental_index,omitempty"`
}

// Key returns the (state, city) key.
func (m CityMetrics) Key() CityKey {
	return CityKey{State: m.State, City: m.City}
}

// CostAdvantage returns the per-class cost advantage.
func (m CityMetrics) CostAdvantage(vc VehicleClass) float64 {
	switch vc {
	case TwoWheeler:
		return m.AvgCostAdvantage2W
	case ThreeWheeler:
		return m.AvgCostAdvantage3W
	default:
		return m.AvgCostAdvantage4W
	}
}

// VehicleClassData compares EV and ICE for one class within a city.
type VehicleClassData struct {
	VehicleClass        VehicleClass `json:"vehicle_class" yaml:"vehicle_class"`
	EVCostPerKm         float64      `json:"ev_cost_per_km" yaml:"ev_cost_per_km"`
	ICECostPerKm        float64      `json:"ice_cost_per_km" yaml:"ice_cost_per_km"`
	EVCO2PerKm          float64      `json:"ev_co2_per_km" yaml:"ev_co2_per_km"`
	ICECO2PerKm         float64      `json:"ice_co2_per_km" yaml:"ice_co2_per_km"`
	EVMaintenanceCost   float64      `json:"ev_maintenance_cost" yaml:"ev_maintenance_cost"`
	ICEMaintenanceCost  float64      `json:"ice_maintenance_cost" yaml:"ice_maintenance_cost"`
	EVReplacementCost   float64      `json:"ev_replacement_cost" yaml:"ev_replacement_cost"`
	ICEReplacementCost  float64      `json:"ice_replacement_cost" yaml:"ice_replacement_cost"`
	EVReplacementCycle  float64      `json:"ev_replacement_cycle" yaml:"ev_replacement_cycle"`
	ICEReplacementCycle float64      `json:"ice_replacement_cycle" yaml:"ice_replacement_cycle"`
	CostAdvantage       float64      `json:"cost_advantage" yaml:"cost_advantage"`
	CO2Advantage        float64      `json:"co2_advantage" yaml:"co2_advantage"`
}

// DashboardMetrics holds dataset-wide headline numbers.
type DashboardMetrics struct {
	AvgCostAdvantage   float64 `json:"avg_cost_advantage" yaml:"avg_cost_advantage"`
	AvgCO2Advantage    float64 `json:"avg_co2_advantage_g" yaml:"avg_co2_advantage_g"` // g/km
	CitiesAnalyzed     int     `json:"cities_analyzed" yaml:"cities_analyzed"`
	AvgEVCostPerKm     float64 `json:"avg_ev_cost_per_km" yaml:"avg_ev_cost_per_km"`
	AvgICECostPerKm    float64 `json:"avg_ice_cost_per_km" yaml:"avg_ice_cost_per_km"`
	CostSavingsPercent float64 `json:"cost_savings_percent" yaml:"cost_savings_percent"`
	TotalRecords       int     `json:"total_records" yaml:"total_records"`
}

// ScenarioBaseParams are dataset-wide averages that seed scenario inputs.
type ScenarioBaseParams struct {
	AvgPetrolPrice        float64 `json:"avg_petrol_price" yaml:"avg_petrol_price"`
	AvgElectricityRate    float64 `json:"avg_electricity_rate" yaml:"avg_electricity_rate"`
	AvgChargingDensity    float64 `json:"avg_charging_density" yaml:"avg_charging_density"`
	AvgMaintenanceCostEV  float64 `json:"avg_maintenance_cost_ev" yaml:"avg_maintenance_cost_ev"`
	AvgMaintenanceCostICE float64 `json:"avg_maintenance_cost_ice" yaml:"avg_maintenance_cost_ice"`
	AvgCostAdvantage      float64 `json:"avg_cost_advantage" yaml:"avg_cost_advantage"`
	AvgCO2Advantage       float64 `json:"avg_co2_advantage" yaml:"avg_co2_advantage"`
}

// CostComparison is one bar of the EV vs ICE cost-per-km chart.
type CostComparison struct {
	VehicleClass VehicleClass `json:"vehicle_class" yaml:"vehicle_class"`
	Name         string       `json:"name" yaml:"name"`
	EV           float64      `json:"ev" yaml:"ev"`
	ICE          float64      `json:"ice" yaml:"ice"`
}

// EmissionPoint is one slice of the emissions chart, in g/km.
type EmissionPoint struct {
	VehicleClass VehicleClass `json:"vehicle_class" yaml:"vehicle_class"`
	Powertrain   Powertrain   `json:"powertrain" yaml:"powertrain"`
	Name         string       `json:"name" yaml:"name"`
	Value        float64      `json:"value" yaml:"value"`
}

// ClusterSummary aggregates cities sharing a cluster label.
type ClusterSummary struct {
	Cluster      Cluster `json:"cluster" yaml:"cluster"`
	Count        int     `json:"count" yaml:"count"`
	AvgReadiness float64 `json:"avg_readiness" yaml:"avg_readiness"`
	Description  string  `json:"description" yaml:"description"`
}

// CityScore ranks a city by readiness score (0-100).
type CityScore struct {
	State string  `json:"state" yaml:"state"`
	City  string  `json:"city" yaml:"city"`
	Score float64 `json:"score" yaml:"score"`
}

// CityIndex places a city on the economic/environmental scatter.
type CityIndex struct {
	State              string  `json:"state" yaml:"state"`
	City               string  `json:"city" yaml:"city"`
	Cluster            Cluster `json:"cluster" yaml:"cluster"`
	EconomicIndex      float64 `json:"economic_index" yaml:"economic_index"`
	EnvironmentalIndex float64 `json:"environmental_index" yaml:"environmental_index"`
	EVReadiness        float64 `json:"ev_readiness" yaml:"ev_readiness"`
}

// TrendPoint is a cumulative cost at a given ownership year.
type TrendPoint struct {
	Year int     `json:"year" yaml:"year"`
	EV   float64 `json:"ev" yaml:"ev"`
	ICE  float64 `json:"ice" yaml:"ice"`
}
