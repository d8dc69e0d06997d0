package api

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/spf13/cast"

	"github.com/sells-group/ev-dss/internal/analytics"
	"github.com/sells-group/ev-dss/internal/model"
	"github.com/sells-group/ev-dss/internal/scenario"
)

// DashboardResponse is the payload of GET /api/dashboard.
type DashboardResponse struct {
	Metrics        model.DashboardMetrics `json:"metrics"`
	CostComparison []model.CostComparison `json:"cost_comparison"`
	Emissions      []model.EmissionPoint  `json:"emissions"`
	TopCities      []model.CityScore      `json:"top_cities"`
	Trend          []model.TrendPoint     `json:"trend,omitempty"`
}

// ClustersResponse is the payload of GET /api/cities/clusters.
type ClustersResponse struct {
	Summary []model.ClusterSummary `json:"summary"`
	Indices []model.CityIndex      `json:"indices"`
}

// VehiclesResponse is the payload of GET /api/cities/{state}/{city}/vehicles.
type VehiclesResponse struct {
	State    string                   `json:"state"`
	City     string                   `json:"city"`
	Vehicles []model.VehicleClassData `json:"vehicles"`
	Trend    []model.TrendPoint       `json:"trend,omitempty"`
}

// ScenarioBaseResponse is the payload of GET /api/scenario/base.
type ScenarioBaseResponse struct {
	Params model.ScenarioBaseParams  `json:"params"`
	Inputs scenario.Inputs           `json:"inputs"`
	Ranges map[string]scenario.Range `json:"ranges"`
	Result scenario.Result           `json:"result"`
}

// ScenarioResponse is the payload of POST /api/scenario.
type ScenarioResponse struct {
	Inputs      scenario.Inputs             `json:"inputs"`
	Result      scenario.Result             `json:"result"`
	Base        scenario.Result             `json:"base"`
	Comparison  map[string]float64          `json:"comparison"`
	Sensitivity []scenario.SensitivityPoint `json:"sensitivity"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	ds := s.Dataset()
	metrics := analytics.MergeClusters(analytics.CityMetrics(ds.Records), ds.Clusters)
	writeJSON(w, http.StatusOK, DashboardResponse{
		Metrics:        analytics.Dashboard(ds.Records),
		CostComparison: analytics.CostComparison(ds.Records),
		Emissions:      analytics.Emissions(ds.Records),
		TopCities:      analytics.TopCities(metrics, s.opts.TopCities),
		Trend:          analytics.DashboardTrend(ds.Records),
	})
}

func (s *Server) handleStates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, analytics.States(s.Dataset().Records))
}

func (s *Server) handleCitiesForState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.CitiesForState(s.Dataset().Records, pathParam(r, "state")))
}

func (s *Server) handleCities(w http.ResponseWriter, _ *http.Request) {
	ds := s.Dataset()
	writeJSON(w, http.StatusOK, analytics.MergeClusters(analytics.CityMetrics(ds.Records), ds.Clusters))
}

func (s *Server) handleClusters(w http.ResponseWriter, _ *http.Request) {
	ds := s.Dataset()
	metrics := analytics.MergeClusters(analytics.CityMetrics(ds.Records), ds.Clusters)
	writeJSON(w, http.StatusOK, ClustersResponse{
		Summary: analytics.ClusterSummary(metrics),
		Indices: analytics.CityIndices(metrics),
	})
}

func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {
	state, city := pathParam(r, "state"), pathParam(r, "city")
	records := s.Dataset().Records
	key := model.CityKey{State: state, City: city}
	if !hasRecords(records, key, "") {
		writeError(w, http.StatusNotFound, "city not found")
		return
	}
	data := analytics.VehicleClassData(records, state, city)
	resp := VehiclesResponse{State: state, City: city, Vehicles: data}
	if hasRecords(records, key, model.FourWheeler) {
		fw, _ := analytics.ClassData(data, model.FourWheeler)
		resp.Trend = analytics.TCOTrend(fw, analytics.TrendYears)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOwnership(w http.ResponseWriter, r *http.Request) {
	state, city := pathParam(r, "state"), pathParam(r, "city")
	q := r.URL.Query()

	class := model.FourWheeler
	if v := q.Get("class"); v != "" {
		class = model.VehicleClass(strings.ToUpper(v))
	}
	if !class.Valid() {
		writeError(w, http.StatusBadRequest, "class must be one of 2W, 3W, 4W")
		return
	}

	dailyKm := scenario.DailyKm
	if v := q.Get("daily_km"); v != "" {
		f, err := cast.ToFloat64E(v)
		if err != nil || !scenario.DailyKmRange.Contains(f) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("daily_km must be a number between %g and %g",
				scenario.DailyKmRange.Min, scenario.DailyKmRange.Max))
			return
		}
		dailyKm = f
	}

	years := scenario.Years
	if v := q.Get("years"); v != "" {
		f, err := cast.ToFloat64E(v)
		if err != nil || f != math.Trunc(f) || !scenario.YearsRange.Contains(f) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("years must be a whole number between %g and %g",
				scenario.YearsRange.Min, scenario.YearsRange.Max))
			return
		}
		years = int(f)
	}

	records := s.Dataset().Records
	if !hasRecords(records, model.CityKey{State: state, City: city}, class) {
		writeError(w, http.StatusNotFound, "no "+string(class)+" data for city")
		return
	}
	d, _ := analytics.ClassData(analytics.VehicleClassData(records, state, city), class)

	res, err := scenario.Ownership(scenario.OwnershipInputs{Data: d, DailyKm: dailyKm, Years: years})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// hasRecords reports whether the city has any record, optionally limited
// to class vc.
func hasRecords(records []model.Record, key model.CityKey, vc model.VehicleClass) bool {
	for _, r := range records {
		if r.CityKey() == key && (vc == "" || r.VehicleClass == vc) {
			return true
		}
	}
	return false
}

func (s *Server) handleScenarioBase(w http.ResponseWriter, _ *http.Request) {
	in := scenario.BaseInputs()
	writeJSON(w, http.StatusOK, ScenarioBaseResponse{
		Params: analytics.ScenarioBaseParams(s.Dataset().Records),
		Inputs: in,
		Ranges: scenario.Ranges,
		Result: scenario.Calculate(in),
	})
}

// handleScenario runs the calculator. Fields missing from the body keep
// their base values.
func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	in := scenario.BaseInputs()
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := scenario.Calculate(in)
	base := scenario.Calculate(scenario.BaseInputs())
	writeJSON(w, http.StatusOK, ScenarioResponse{
		Inputs:      in,
		Result:      result,
		Base:        base,
		Comparison:  scenario.Comparison(result, base),
		Sensitivity: scenario.Sensitivity(in),
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	ds := s.Dataset()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"records":    len(ds.Records),
		"ml_records": len(ds.ML),
		"clusters":   len(ds.Clusters),
	})
}
