package dataset

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ev-dss/internal/model"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{" 8 ", 8},
		{"-3", -3},
		{"1e3", 1000},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"N/A", 0},
		{"Inf", 0},
		{"+Inf", 0},
		{"-inf", 0},
		{"infinity", 0},
		{"1e400", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.in))
		})
	}
}

func TestParseFeatureCSV_Fields(t *testing.T) {
	input := featureCSV(evRow("Maharashtra", "Mumbai", "4W", 1.25, 0.1, 12))

	recs, err := ParseFeatureCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, "Maharashtra", r.State)
	assert.Equal(t, "Mumbai", r.City)
	assert.Equal(t, model.FourWheeler, r.VehicleClass)
	assert.Equal(t, model.EV, r.Powertrain)
	assert.Equal(t, 8.5, r.EnergyCharge)
	assert.Equal(t, "₹50/kW", r.FixedCharge)
	assert.Equal(t, "Electricity", r.FuelType)
	assert.Equal(t, 12.0, r.ChargingStationsCount)
	assert.Equal(t, 0.71, r.GridEmissionFactor)
	assert.Equal(t, 0.1, r.CO2PerKm)
	assert.Equal(t, 0.3, r.MaintenanceCost)
	assert.Equal(t, 90000.0, r.ReplacementCost)
	assert.Equal(t, 8.0, r.ReplacementCycle)
	assert.Equal(t, 1.25, r.CostPerKm)
	assert.Equal(t, "MSEDCL", r.DistributionCompany)
	assert.Equal(t, "Residential", r.ConsumerCategory)
	// Derived fields are untouched by parsing.
	assert.Zero(t, r.ChargingDensity)
	assert.Empty(t, r.ChargingReadiness)
}

func TestParseFeatureCSV_DropsShortRows(t *testing.T) {
	good := evRow("Delhi", "New Delhi", "2W", 0.3, 0.02, 4).csv()
	truncated := strings.Join(strings.Split(good, ",")[:19], ",")
	input := strings.Join([]string{featureHeader, good, truncated, good}, "\n")

	recs, err := ParseFeatureCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	totalLines := 4
	assert.Len(t, recs, totalLines-1-1)
}

func TestParseFeatureCSV_StrayQuoteKeepsLaterRows(t *testing.T) {
	bad := evRow("Maharashtra", `"Bad`, "4W", 1.2, 0.1, 3)
	input := featureCSV(
		evRow("Maharashtra", "A", "4W", 1.2, 0.1, 3),
		bad,
		evRow("Maharashtra", "C", "4W", 1.2, 0.1, 3),
		evRow("Maharashtra", "D", "4W", 1.2, 0.1, 3),
		evRow("Maharashtra", "E", "4W", 1.2, 0.1, 3),
	)

	recs, err := ParseFeatureCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 5)
	assert.Equal(t, `"Bad`, recs[1].City)
	assert.Equal(t, "E", recs[4].City)
}

func TestParseFeatureCSV_QuotedCommaMisalignsOnlyItsRow(t *testing.T) {
	good := evRow("Delhi", "New Delhi", "2W", 0.3, 0.02, 4).csv()
	// An extra comma shifts this row's columns; it is kept but misaligned.
	shifted := strings.Replace(good, "Nodal Agency", `"Nodal, Agency"`, 1)
	truncated := strings.Join(strings.Split(good, ",")[:19], ",")
	input := strings.Join([]string{featureHeader, good, shifted, truncated, good}, "\n")

	recs, err := ParseFeatureCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	totalLines, truncatedRows := 5, 1
	require.Len(t, recs, totalLines-1-truncatedRows)
	assert.Equal(t, `"Nodal`, recs[1].ImplementingAgency)
	assert.Equal(t, "New Delhi", recs[2].City)
}

func TestParseFeatureCSV_OptionalTrailingColumns(t *testing.T) {
	full := evRow("Delhi", "New Delhi", "2W", 0.3, 0.02, 4).csv()
	twenty := strings.Join(strings.Split(full, ",")[:20], ",")

	recs, err := ParseFeatureCSV(context.Background(), strings.NewReader(featureHeader+"\n"+twenty))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Empty(t, recs[0].LocationLevel)
	assert.Empty(t, recs[0].ConsumerCategory)
	assert.Equal(t, 0.3, recs[0].CostPerKm)
}

func TestParseFeatureCSV_HeaderOnlyAndEmpty(t *testing.T) {
	recs, err := ParseFeatureCSV(context.Background(), strings.NewReader(featureHeader+"\n"))
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = ParseFeatureCSV(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestParseFeatureCSV_HeaderNotValidated(t *testing.T) {
	input := "whatever\n" + evRow("Goa", "Panaji", "3W", 0.5, 0.04, 1).csv()
	recs, err := ParseFeatureCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Panaji", recs[0].City)
}

func TestParseFeatureCSV_NonNumericFallsBackToZero(t *testing.T) {
	r := evRow("Goa", "Panaji", "3W", 0.5, 0.04, 1)
	r.energy = ""
	r.stations = "unknown"
	r.costPerKm = "n/a"

	recs, err := ParseFeatureCSV(context.Background(), strings.NewReader(featureCSV(r)))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Zero(t, recs[0].EnergyCharge)
	assert.Zero(t, recs[0].ChargingStationsCount)
	assert.Zero(t, recs[0].CostPerKm)
}

func TestParseFeatureCSV_CRLF(t *testing.T) {
	input := strings.ReplaceAll(featureCSV(evRow("Goa", "Panaji", "3W", 0.5, 0.04, 1)), "\n", "\r\n")
	recs, err := ParseFeatureCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Residential", recs[0].ConsumerCategory)
}

func TestParseMLCSV(t *testing.T) {
	recs, err := ParseMLCSV(context.Background(), strings.NewReader(mlCSV))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, model.MLRecord{
		State: "Maharashtra", City: "Mumbai", VehicleClass: model.FourWheeler,
		EnergyCharge: 8.5, CostPerKm: 1.2, CO2PerKm: 0.1, MaintenanceCost: 0.3,
		ChargingStationsCount: 12,
	}, recs[0])
	assert.Equal(t, "Bengaluru", recs[1].City)
	assert.Zero(t, recs[1].ChargingStationsCount)
}

func TestParseClusterCSV(t *testing.T) {
	recs, err := ParseClusterCSV(context.Background(), strings.NewReader(clusterCSV))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, model.ClusterEVReady, recs[0].Cluster)
	assert.Equal(t, 0.82, recs[0].EconomicIndex)
	assert.Equal(t, 0.3, recs[0].MaintenanceCost)

	assert.Equal(t, model.ClusterModerate, recs[1].Cluster)
	assert.Zero(t, recs[1].MaintenanceCost)
}

func TestParse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseMLCSV(ctx, strings.NewReader(mlCSV))
	require.Error(t, err)
}
