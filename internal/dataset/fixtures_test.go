package dataset

import (
	"fmt"
	"strings"
)

const featureHeader = "State,City,Vehicle Class,Powertrain,Energy Charge (₹/kWh),Fixed Charge,Tariff Year,Voltage Level,Fuel Type,Price (₹/litre),Snapshot Date,Charging Stations Count,Implementing Agency,Access Type,Grid Emission Factor (kg CO2/kWh),CO2_per_km_kg,Maintenance Cost (₹/km),Replacement Cost (₹),Replacement Cycle (Years),Cost_per_km_₹,Location_Level,Distribution Company,Consumer Category"

type row struct {
	state, city, class, powertrain string
	energy, fuelPrice, stations    string
	co2, maint, costPerKm          string
}

func (r row) csv() string {
	return strings.Join([]string{
		r.state, r.city, r.class, r.powertrain,
		r.energy, "₹50/kW", "2024-25", "LT", fuelType(r.powertrain),
		r.fuelPrice, "2024-06-01", r.stations, "Nodal Agency", "Public",
		"0.71", r.co2, r.maint, "90000", "8", r.costPerKm,
		"City", "MSEDCL", "Residential",
	}, ",")
}

func fuelType(pt string) string {
	if pt == "EV" {
		return "Electricity"
	}
	return "Petrol"
}

func featureCSV(rows ...row) string {
	lines := []string{featureHeader}
	for _, r := range rows {
		lines = append(lines, r.csv())
	}
	return strings.Join(lines, "\n") + "\n"
}

func evRow(state, city, class string, costPerKm, co2 float64, stations int) row {
	return row{
		state: state, city: city, class: class, powertrain: "EV",
		energy: "8.5", fuelPrice: "0", stations: fmt.Sprint(stations),
		co2: fmt.Sprint(co2), maint: "0.3", costPerKm: fmt.Sprint(costPerKm),
	}
}

func iceRow(state, city, class string, costPerKm, co2 float64, stations int) row {
	return row{
		state: state, city: city, class: class, powertrain: "ICE",
		energy: "0", fuelPrice: "104.2", stations: fmt.Sprint(stations),
		co2: fmt.Sprint(co2), maint: "0.8", costPerKm: fmt.Sprint(costPerKm),
	}
}

const mlCSV = `State,City,Vehicle Class,Energy Charge (₹/kWh),Cost_per_km_₹,CO2_per_km_kg,Maintenance Cost (₹/km),Charging Stations Count
Maharashtra,Mumbai,4W,8.5,1.2,0.1,0.3,12
Maharashtra,Pune,2W,7.9,0.25
Karnataka,Bengaluru,3W,7.1,0.6,0.05,0.2,x
`

const clusterCSV = `State,City,Cluster,Economic_Index,Environmental_Index,Cost_Advantage,CO2_Advantage,Charging_Density,Maintenance_Cost
Maharashtra,Mumbai,EV-Ready,0.82,0.61,5.4,0.04,1.2,0.3
Karnataka,Bengaluru,Moderate,0.7,0.5,4.1,0.03,0.8
Delhi,New Delhi,Low-Infra
`
