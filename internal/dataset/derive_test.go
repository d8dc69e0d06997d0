package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ev-dss/internal/model"
)

func rec(state, city string, vc model.VehicleClass, pt model.Powertrain, costPerKm, co2 float64) model.Record {
	return model.Record{
		State: state, City: city, VehicleClass: vc, Powertrain: pt,
		CostPerKm: costPerKm, CO2PerKm: co2, ChargingStationsCount: 5,
	}
}

func TestChargingReadiness(t *testing.T) {
	tests := []struct {
		stations float64
		want     model.Readiness
	}{
		{25, model.ReadinessHigh},
		{10, model.ReadinessHigh},
		{9.9, model.ReadinessMedium},
		{3, model.ReadinessMedium},
		{2, model.ReadinessLow},
		{0.5, model.ReadinessLow},
		{0, model.ReadinessNone},
		{-1, model.ReadinessNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ChargingReadiness(tt.stations), "stations=%v", tt.stations)
	}
}

func TestChargingDensity(t *testing.T) {
	assert.Equal(t, 1.2, ChargingDensity(12))
	assert.Zero(t, ChargingDensity(0))
}

func TestDerive_PairedAdvantage(t *testing.T) {
	in := []model.Record{
		rec("Maharashtra", "Mumbai", model.FourWheeler, model.EV, 1.4, 0.10),
		rec("Maharashtra", "Mumbai", model.FourWheeler, model.ICE, 7.0, 0.12),
	}
	out := Derive(in)
	require.Len(t, out, 2)

	ev, ice := out[0], out[1]
	assert.Equal(t, ice.CostPerKm-ev.CostPerKm, ev.CostAdvantage)
	assert.Equal(t, ice.CO2PerKm-ev.CO2PerKm, ev.CO2Advantage)
	assert.True(t, ev.Paired)

	assert.Zero(t, ice.CostAdvantage)
	assert.Zero(t, ice.CO2Advantage)
	assert.False(t, ice.Paired)

	assert.Equal(t, 0.5, ev.ChargingDensity)
	assert.Equal(t, model.ReadinessMedium, ice.ChargingReadiness)
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	in := []model.Record{
		rec("Delhi", "New Delhi", model.TwoWheeler, model.EV, 0.3, 0.02),
		rec("Delhi", "New Delhi", model.TwoWheeler, model.ICE, 2.1, 0.05),
	}
	snapshot := append([]model.Record(nil), in...)

	_ = Derive(in)
	assert.Equal(t, snapshot, in)
}

func TestDerive_UnpairedStaysUnknown(t *testing.T) {
	out := Derive([]model.Record{
		rec("Goa", "Panaji", model.ThreeWheeler, model.EV, 0.6, 0.04),
		rec("Goa", "Panaji", model.TwoWheeler, model.ICE, 2.0, 0.05),
	})
	for _, r := range out {
		assert.Zero(t, r.CostAdvantage)
		assert.Zero(t, r.CO2Advantage)
		assert.False(t, r.Paired)
	}
}

func TestDerive_GroupsByStateCityAndClass(t *testing.T) {
	out := Derive([]model.Record{
		rec("Kerala", "Kochi", model.FourWheeler, model.EV, 1.5, 0.1),
		rec("Kerala", "Thrissur", model.FourWheeler, model.ICE, 6.0, 0.12),
		rec("Telangana", "Kochi", model.FourWheeler, model.ICE, 6.0, 0.12),
	})
	assert.False(t, out[0].Paired, "different city or state must not pair")
}

func TestDerive_HyphenatedNamesDoNotCollide(t *testing.T) {
	out := Derive([]model.Record{
		rec("Jammu-Kashmir", "Srinagar", model.TwoWheeler, model.EV, 0.3, 0.02),
		rec("Jammu", "Kashmir-Srinagar", model.TwoWheeler, model.ICE, 2.0, 0.05),
	})
	assert.False(t, out[0].Paired)
}

func TestDerive_DeterministicUnderReordering(t *testing.T) {
	ev := rec("Punjab", "Ludhiana", model.ThreeWheeler, model.EV, 0.7, 0.05)
	ice := rec("Punjab", "Ludhiana", model.ThreeWheeler, model.ICE, 3.1, 0.09)
	other := rec("Punjab", "Amritsar", model.ThreeWheeler, model.EV, 0.8, 0.05)

	a := Derive([]model.Record{ev, ice, other})
	b := Derive([]model.Record{ice, other, ev})

	find := func(rs []model.Record, city string, pt model.Powertrain) model.Record {
		for _, r := range rs {
			if r.City == city && r.Powertrain == pt {
				return r
			}
		}
		t.Fatalf("no %s %s row", city, pt)
		return model.Record{}
	}
	assert.Equal(t, find(a, "Ludhiana", model.EV), find(b, "Ludhiana", model.EV))
	assert.Equal(t, find(a, "Amritsar", model.EV), find(b, "Amritsar", model.EV))
}

func TestDerive_FirstDuplicateWins(t *testing.T) {
	out := Derive([]model.Record{
		rec("Bihar", "Patna", model.TwoWheeler, model.EV, 0.4, 0.03),
		rec("Bihar", "Patna", model.TwoWheeler, model.EV, 0.9, 0.03),
		rec("Bihar", "Patna", model.TwoWheeler, model.ICE, 2.4, 0.05),
		rec("Bihar", "Patna", model.TwoWheeler, model.ICE, 9.9, 0.50),
	})
	assert.InDelta(t, 2.0, out[0].CostAdvantage, 1e-12)
	assert.True(t, out[0].Paired)
	assert.False(t, out[1].Paired)
	assert.Zero(t, out[1].CostAdvantage)
}

func TestDerive_Idempotent(t *testing.T) {
	in := []model.Record{
		rec("Maharashtra", "Mumbai", model.FourWheeler, model.EV, 1.4, 0.10),
		rec("Maharashtra", "Mumbai", model.FourWheeler, model.ICE, 7.0, 0.12),
	}
	once := Derive(in)
	assert.Equal(t, once, Derive(once))
	assert.Equal(t, once, Derive(in))
}

func TestDuplicatePairs(t *testing.T) {
	recs := []model.Record{
		rec("Bihar", "Patna", model.TwoWheeler, model.EV, 0.4, 0.03),
		rec("Goa", "Panaji", model.TwoWheeler, model.EV, 0.4, 0.03),
		rec("Goa", "Panaji", model.TwoWheeler, model.ICE, 2.0, 0.05),
		rec("Bihar", "Patna", model.TwoWheeler, model.EV, 0.9, 0.03),
	}
	assert.Equal(t, []model.PairKey{{State: "Bihar", City: "Patna", VehicleClass: model.TwoWheeler}}, DuplicatePairs(recs))
	assert.Empty(t, DuplicatePairs(recs[1:3]))
}
