package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/ev-dss/internal/analytics"
	"github.com/sells-group/ev-dss/internal/api"
	"github.com/sells-group/ev-dss/internal/model"
)

var (
	vehiclesState string
	vehiclesCity  string
)

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "Compare EV and ICE per vehicle class in one city",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ds, err := loadDataset(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if !hasRecords(ds.Records, vehiclesState, vehiclesCity, "") {
			return eris.Errorf("vehicles: no records for %s, %s", vehiclesCity, vehiclesState)
		}
		view := api.VehiclesResponse{
			State:    vehiclesState,
			City:     vehiclesCity,
			Vehicles: analytics.VehicleClassData(ds.Records, vehiclesState, vehiclesCity),
		}
		return render(os.Stdout, outputFormat, view, func(w *tabwriter.Writer) {
			formatVehicles(w, view.Vehicles)
		})
	},
}

// hasRecords reports whether the city has any record, optionally limited
// to class vc.
func hasRecords(records []model.Record, state, city string, vc model.VehicleClass) bool {
	key := model.CityKey{State: state, City: city}
	for _, r := range records {
		if r.CityKey() == key && (vc == "" || r.VehicleClass == vc) {
			return true
		}
	}
	return false
}

// formatVehicles writes one row per vehicle class to w.
func formatVehicles(w *tabwriter.Writer, data []model.VehicleClassData) {
	_, _ = fmt.Fprintln(w, "CLASS\tEV ₹/KM\tICE ₹/KM\tEV gCO2/KM\tICE gCO2/KM\tADVANTAGE ₹/KM")
	for _, d := range data {
		_, _ = fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.0f\t%.0f\t%.2f\n",
			d.VehicleClass.Label(), d.EVCostPerKm, d.ICECostPerKm,
			d.EVCO2PerKm*1000, d.ICECO2PerKm*1000, d.CostAdvantage,
		)
	}
}

func init() {
	vehiclesCmd.Flags().StringVar(&vehiclesState, "state", "", "state name")
	vehiclesCmd.Flags().StringVar(&vehiclesCity, "city", "", "city name")
	_ = vehiclesCmd.MarkFlagRequired("state")
	_ = vehiclesCmd.MarkFlagRequired("city")
	rootCmd.AddCommand(vehiclesCmd)
}
