package model

// VehicleClass identifies a vehicle segment.
type VehicleClass string

const (
	TwoWheeler   VehicleClass = "2W"
	ThreeWheeler VehicleClass = "3W"
	FourWheeler  VehicleClass = "4W"
)

// VehicleClasses lists every class in display order.
var VehicleClasses = []VehicleClass{TwoWheeler, ThreeWheeler, FourWheeler}

// Label returns the human-readable class name used in chart legends.
func (vc VehicleClass) Label() string {
	switch vc {
	case TwoWheeler:
		return "Two Wheeler"
	case ThreeWheeler:
		return "Three Wheeler"
	default:
		return "Four Wheeler"
	}
}

// Valid reports whether vc is one of the known classes.
func (vc VehicleClass) Valid() bool {
	switch vc {
	case TwoWheeler, ThreeWheeler, FourWheeler:
		return true
	default:
		return false
	}
}

// Powertrain distinguishes electric from combustion vehicles.
type Powertrain string

const (
	EV  Powertrain = "EV"
	ICE Powertrain = "ICE"
)

// Cluster is a city's EV readiness category.
type Cluster string

const (
	ClusterEVReady  Cluster = "EV-Ready"
	ClusterModerate Cluster = "Moderate"
	ClusterLowInfra Cluster = "Low-Infra"
)

// Clusters lists every cluster in display order.
var Clusters = []Cluster{ClusterEVReady, ClusterModerate, ClusterLowInfra}

// Description returns the one-line summary shown next to a cluster.
func (c Cluster) Description() string {
	switch c {
	case ClusterEVReady:
		return "High infrastructure, strong policy support"
	case ClusterModerate:
		return "Growing infrastructure, developing policies"
	default:
		return "Limited infrastructure, policy development needed"
	}
}

// Readiness buckets a charging station count.
type Readiness string

const (
	ReadinessHigh   Readiness = "High"
	ReadinessMedium Readiness = "Medium"
	ReadinessLow    Readiness = "Low"
	ReadinessNone   Readiness = "None"
)
