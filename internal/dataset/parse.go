// Package dataset parses the EV/ICE CSV tables, derives per-row and paired
// metrics, and loads the three sources concurrently.
package dataset

import (
	"context"
	"io"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/sells-group/ev-dss/internal/fetcher"
	"github.com/sells-group/ev-dss/internal/model"
)

// Minimum column counts. Shorter rows are dropped without error.
const (
	MinFeatureColumns = 20
	MinMLColumns      = 8
	MinClusterColumns = 8
)

// Feature table column positions.
const (
	colState = iota
	colCity
	colVehicleClass
	colPowertrain
	colEnergyCharge
	colFixedCharge
	colTariffYear
	colVoltageLevel
	colFuelType
	colFuelPrice
	colSnapshotDate
	colChargingStations
	colImplementingAgency
	colAccessType
	colGridEmissionFactor
	colCO2PerKm
	colMaintenanceCost
	colReplacementCost
	colReplacementCycle
	colCostPerKm
	colLocationLevel
	colDistributionCompany
	colConsumerCategory
)

var csvOpts = fetcher.CSVOptions{
	HasHeader: true,
	TrimSpace: true,
	Literal:   true,
}

// Number parses a numeric field. Empty, non-numeric and non-finite input
// (NaN, Inf, overflow) yield 0, so a missing value is indistinguishable
// from a real zero.
func Number(s string) float64 {
	v, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// field returns row[i] or "" when the row is too short.
func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// ParseFeatureCSV parses the feature-engineered table. Derived fields are
// left at their zero values; see Derive.
func ParseFeatureCSV(ctx context.Context, r io.Reader) ([]model.Record, error) {
	var (
		records []model.Record
		dropped int
	)
	err := fetcher.ReadCSV(ctx, r, csvOpts, func(row []string) {
		if len(row) < MinFeatureColumns {
			dropped++
			return
		}
		records = append(records, model.Record{
			State:                 row[colState],
			City:                  row[colCity],
			VehicleClass:          model.VehicleClass(row[colVehicleClass]),
			Powertrain:            model.Powertrain(row[colPowertrain]),
			EnergyCharge:          Number(row[colEnergyCharge]),
			FixedCharge:           row[colFixedCharge],
			TariffYear:            row[colTariffYear],
			VoltageLevel:          row[colVoltageLevel],
			FuelType:              row[colFuelType],
			FuelPrice:             Number(row[colFuelPrice]),
			SnapshotDate:          row[colSnapshotDate],
			ChargingStationsCount: Number(row[colChargingStations]),
			ImplementingAgency:    row[colImplementingAgency],
			AccessType:            row[colAccessType],
			GridEmissionFactor:    Number(row[colGridEmissionFactor]),
			CO2PerKm:              Number(row[colCO2PerKm]),
			MaintenanceCost:       Number(row[colMaintenanceCost]),
			ReplacementCost:       Number(row[colReplacementCost]),
			ReplacementCycle:      Number(row[colReplacementCycle]),
			CostPerKm:             Number(row[colCostPerKm]),
			LocationLevel:         field(row, colLocationLevel),
			DistributionCompany:   field(row, colDistributionCompany),
			ConsumerCategory:      field(row, colConsumerCategory),
		})
	})
	if err != nil {
		return nil, eris.Wrap(err, "dataset: parse feature csv")
	}
	logDropped("feature", len(records), dropped)
	return records, nil
}

// ParseMLCSV parses the ML-ready table.
func ParseMLCSV(ctx context.Context, r io.Reader) ([]model.MLRecord, error) {
	var (
		records []model.MLRecord
		dropped int
	)
	err := fetcher.ReadCSV(ctx, r, csvOpts, func(row []string) {
		if len(row) < MinMLColumns {
			dropped++
			return
		}
		records = append(records, model.MLRecord{
			State:                 row[0],
			City:                  row[1],
			VehicleClass:          model.VehicleClass(row[2]),
			EnergyCharge:          Number(row[3]),
			CostPerKm:             Number(row[4]),
			CO2PerKm:              Number(row[5]),
			MaintenanceCost:       Number(row[6]),
			ChargingStationsCount: Number(row[7]),
		})
	})
	if err != nil {
		return nil, eris.Wrap(err, "dataset: parse ml csv")
	}
	logDropped("ml", len(records), dropped)
	return records, nil
}

// ParseClusterCSV parses externally computed city clusters. The ninth column
// (maintenance cost) is optional.
func ParseClusterCSV(ctx context.Context, r io.Reader) ([]model.ClusterRecord, error) {
	var (
		records []model.ClusterRecord
		dropped int
	)
	err := fetcher.ReadCSV(ctx, r, csvOpts, func(row []string) {
		if len(row) < MinClusterColumns {
			dropped++
			return
		}
		records = append(records, model.ClusterRecord{
			State:              row[0],
			City:               row[1],
			Cluster:            model.Cluster(row[2]),
			EconomicIndex:      Number(row[3]),
			EnvironmentalIndex: Number(row[4]),
			CostAdvantage:      Number(row[5]),
			CO2Advantage:       Number(row[6]),
			ChargingDensity:    Number(row[7]),
			MaintenanceCost:    Number(field(row, 8)),
		})
	})
	if err != nil {
		return nil, eris.Wrap(err, "dataset: parse cluster csv")
	}
	logDropped("cluster", len(records), dropped)
	return records, nil
}

func logDropped(table string, kept, dropped int) {
	if dropped == 0 {
		return
	}
	zap.L().Debug("dataset: dropped short rows",
		zap.String("table", table),
		zap.Int("kept", kept),
		zap.Int("dropped", dropped),
	)
}
