package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/ev-dss/internal/analytics"
	"github.com/sells-group/ev-dss/internal/model"
	"github.com/sells-group/ev-dss/internal/scenario"
)

var (
	ownershipState   string
	ownershipCity    string
	ownershipClass   string
	ownershipDailyKm float64
	ownershipYears   int
)

var ownershipCmd = &cobra.Command{
	Use:   "ownership",
	Short: "Project EV vs ICE ownership cost for one city and vehicle class",
	RunE: func(cmd *cobra.Command, _ []string) error {
		class := model.VehicleClass(strings.ToUpper(ownershipClass))
		if !class.Valid() {
			return eris.Errorf("ownership: --class must be 2W, 3W or 4W (got %q)", ownershipClass)
		}
		if !scenario.DailyKmRange.Contains(ownershipDailyKm) {
			return eris.Errorf("ownership: --daily-km must be between %g and %g",
				scenario.DailyKmRange.Min, scenario.DailyKmRange.Max)
		}
		if !scenario.YearsRange.Contains(float64(ownershipYears)) {
			return eris.Errorf("ownership: --years must be between %g and %g",
				scenario.YearsRange.Min, scenario.YearsRange.Max)
		}

		ds, err := loadDataset(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if !hasRecords(ds.Records, ownershipState, ownershipCity, class) {
			return eris.Errorf("ownership: no %s records for %s, %s", class, ownershipCity, ownershipState)
		}

		d, _ := analytics.ClassData(analytics.VehicleClassData(ds.Records, ownershipState, ownershipCity), class)
		res, err := scenario.Ownership(scenario.OwnershipInputs{
			Data:    d,
			DailyKm: ownershipDailyKm,
			Years:   ownershipYears,
		})
		if err != nil {
			return err
		}
		return render(os.Stdout, outputFormat, res, func(w *tabwriter.Writer) {
			formatOwnership(w, res)
		})
	},
}

// formatOwnership writes the side-by-side cost picture and breakdown to w.
func formatOwnership(w *tabwriter.Writer, r scenario.OwnershipResult) {
	_, _ = fmt.Fprintf(w, "\tEV\tICE\n")
	_, _ = fmt.Fprintf(w, "Purchase\t%s\t%s\n", lakhs(r.EV.PurchasePrice), lakhs(r.ICE.PurchasePrice))
	_, _ = fmt.Fprintf(w, "Fuel\t%s\t%s\n", lakhs(r.EV.FuelCost), lakhs(r.ICE.FuelCost))
	_, _ = fmt.Fprintf(w, "Maintenance\t%s\t%s\n", lakhs(r.EV.MaintenanceCost), lakhs(r.ICE.MaintenanceCost))
	_, _ = fmt.Fprintf(w, "Total cost\t%s\t%s\n", lakhs(r.EV.TCO), lakhs(r.ICE.TCO))
	_, _ = fmt.Fprintf(w, "Cost/km\t₹%.2f\t₹%.2f\n", r.EV.CostPerKm, r.ICE.CostPerKm)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Savings:\t%s\n", lakhs(r.Savings))
	_, _ = fmt.Fprintf(w, "Break-even:\t%s years\n", r.BreakEven)
	_, _ = fmt.Fprintf(w, "CO2 saved:\t%.0f kg\n", r.CO2Savings)
	_, _ = fmt.Fprintf(w, "Recommendation:\t%s\n", recommendation(r.EVRecommended))
}

func recommendation(ev bool) string {
	if ev {
		return "EV"
	}
	return "ICE"
}

func init() {
	ownershipCmd.Flags().StringVar(&ownershipState, "state", "", "state name")
	ownershipCmd.Flags().StringVar(&ownershipCity, "city", "", "city name")
	ownershipCmd.Flags().StringVar(&ownershipClass, "class", string(model.FourWheeler), "vehicle class: 2W, 3W or 4W")
	ownershipCmd.Flags().Float64Var(&ownershipDailyKm, "daily-km", scenario.DailyKm, "kilometres driven per day")
	ownershipCmd.Flags().IntVar(&ownershipYears, "years", scenario.Years, "ownership period in years")
	_ = ownershipCmd.MarkFlagRequired("state")
	_ = ownershipCmd.MarkFlagRequired("city")
	rootCmd.AddCommand(ownershipCmd)
}
