package model

// Record is one row of the feature-engineered dataset: a single
// state/city/vehicle-class/powertrain combination.
type Record struct {
	State        string       `json:"state" yaml:"state"`
	City         string       `json:"city" yaml:"city"`
	VehicleClass VehicleClass `json:"vehicle_class" yaml:"vehicle_class"`
	Powertrain   Powertrain   `json:"powertrain" yaml:"powertrain"`

	EnergyCharge          float64 `json:"energy_charge" yaml:"energy_charge"`
	FixedCharge           string  `json:"fixed_charge" yaml:"fixed_charge"`
	TariffYear            string  `json:"tariff_year" yaml:"tariff_year"`
	VoltageLevel          string  `json:"voltage_level" yaml:"voltage_level"`
	FuelType              string  `json:"fuel_type" yaml:"fuel_type"`
	FuelPrice             float64 `json:"fuel_price" yaml:"fuel_price"`
	SnapshotDate          string  `json:"snapshot_date" yaml:"snapshot_date"`
	ChargingStationsCount float64 `json:"charging_stations_count" yaml:"charging_stations_count"`
	ImplementingAgency    string  `json:"implementing_agency" yaml:"implementing_agency"`
	AccessType            string  `json:"access_type" yaml:"access_type"`
	GridEmissionFactor    float64 `json:"grid_emission_factor" yaml:"grid_emission_factor"`
	CO2PerKm              float64 `json:"co2_per_km" yaml:"co2_per_km"`
	MaintenanceCost       float64 `json:"maintenance_cost" yaml:"maintenance_cost"`
	ReplacementCost       float64 `json:"replacement_cost" yaml:"replacement_cost"`
	ReplacementCycle      float64 `json:"replacement_cycle" yaml:"replacement_cycle"`
	CostPerKm             float64 `json:"cost_per_km" yaml:"cost_per_km"`
	LocationLevel         string  `json:"location_level" yaml:"location_level"`
	DistributionCompany   string  `json:"distribution_company" yaml:"distribution_company"`
	ConsumerCategory      string  `json:"consumer_category" yaml:"consumer_category"`

	// Derived. Advantages are only set on EV rows that found an ICE
	// counterpart; Paired distinguishes "unknown" from a true zero.
	CostAdvantage     float64   `json:"cost_advantage" yaml:"cost_advantage"`
	CO2Advantage      float64   `json:"co2_advantage" yaml:"co2_advantage"`
	Paired            bool      `json:"paired" yaml:"paired"`
	ChargingDensity   float64   `json:"charging_density" yaml:"charging_density"`
	ChargingReadiness Readiness `json:"charging_readiness" yaml:"charging_readiness"`
}

// CityKey returns the (state, city) key of the record.
func (r Record) CityKey() CityKey {
	return CityKey{State: r.State, City: r.City}
}

// PairKey returns the (state, city, class) key used to match EV and ICE rows.
func (r Record) PairKey() PairKey {
	return PairKey{State: r.State, City: r.City, VehicleClass: r.VehicleClass}
}

// IsEV reports whether the record is an electric vehicle row.
func (r Record) IsEV() bool { return r.Powertrain == EV }

// IsICE reports whether the record is a combustion vehicle row.
func (r Record) IsICE() bool { return r.Powertrain == ICE }

// CityKey identifies a city. Struct keys avoid collisions on names
// containing separators such as hyphens.
type CityKey struct {
	State string
	City  string
}

// PairKey identifies an EV/ICE comparison group.
type PairKey struct {
	State        string
	City         string
	VehicleClass VehicleClass
}

// MLRecord is a row of the slimmer ML-ready dataset.
type MLRecord struct {
	State                 string       `json:"state" yaml:"state"`
	City                  string       `json:"city" yaml:"city"`
	VehicleClass          VehicleClass `json:"vehicle_class" yaml:"vehicle_class"`
	EnergyCharge          float64      `json:"energy_charge" yaml:"energy_charge"`
	CostPerKm             float64      `json:"cost_per_km" yaml:"cost_per_km"`
	CO2PerKm              float64      `json:"co2_per_km" yaml:"co2_per_km"`
	MaintenanceCost       float64      `json:"maintenance_cost" yaml:"maintenance_cost"`
	ChargingStationsCount float64      `json:"charging_stations_count" yaml:"charging_stations_count"`
}

// ClusterRecord is an externally computed city classification.
type ClusterRecord struct {
	State              string  `json:"state" yaml:"state"`
	City               string  `json:"city" yaml:"city"`
	Cluster            Cluster `json:"cluster" yaml:"cluster"`
	EconomicIndex      float64 `json:"economic_index" yaml:"economic_index"`
	EnvironmentalIndex float64 `json:"environmental_index" yaml:"environmental_index"`
	CostAdvantage      float64 `json:"cost_advantage" yaml:"cost_advantage"`
	CO2Advantage       float64 `json:"co2_advantage" yaml:"co2_advantage"`
	ChargingDensity    float64 `json:"charging_density" yaml:"charging_density"`
	MaintenanceCost    float64 `json:"maintenance_cost" yaml:"maintenance_cost"`
}

// CityKey returns the (state, city) key of the cluster row.
func (c ClusterRecord) CityKey() CityKey {
	return CityKey{State: c.State, City: c.City}
}
