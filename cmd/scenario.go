package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sells-group/ev-dss/internal/api"
	"github.com/sells-group/ev-dss/internal/scenario"
)

var scenarioInputs = scenario.BaseInputs()

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run the what-if TCO calculator",
	Long:  "Computes 7-year EV vs ICE ownership cost at 40 km/day for the given prices, subsidy and grid factor, and compares it with the base scenario.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := scenarioInputs.Validate(); err != nil {
			return err
		}
		result := scenario.Calculate(scenarioInputs)
		base := scenario.Calculate(scenario.BaseInputs())
		view := api.ScenarioResponse{
			Inputs:      scenarioInputs,
			Result:      result,
			Base:        base,
			Comparison:  scenario.Comparison(result, base),
			Sensitivity: scenario.Sensitivity(scenarioInputs),
		}
		return render(os.Stdout, outputFormat, view, func(w *tabwriter.Writer) {
			formatScenario(w, view)
		})
	},
}

// addScenarioFlags binds the calculator inputs to fs.
func addScenarioFlags(fs *pflag.FlagSet, in *scenario.Inputs) {
	fs.Float64Var(&in.PetrolPrice, "petrol-price", in.PetrolPrice, "petrol price (₹/L)")
	fs.Float64Var(&in.ElectricityRate, "electricity-rate", in.ElectricityRate, "home electricity rate (₹/kWh)")
	fs.Float64Var(&in.ChargingCost, "charging-cost", in.ChargingCost, "public charging cost (₹/kWh)")
	fs.Float64Var(&in.GridCO2Factor, "grid-co2", in.GridCO2Factor, "grid emission factor (g CO2/kWh)")
	fs.Float64Var(&in.EVSubsidy, "subsidy", in.EVSubsidy, "EV purchase subsidy (₹)")
	fs.Float64Var(&in.EVPriceReduction, "price-reduction", in.EVPriceReduction, "EV price reduction (%)")
	fs.BoolVar(&in.GreenGrid, "green-grid", in.GreenGrid, "assume a renewable grid (50 g CO2/kWh)")
}

// formatScenario writes the scenario result, its change against the base
// run and the petrol price sweep to w.
func formatScenario(w *tabwriter.Writer, v api.ScenarioResponse) {
	r := v.Result
	_, _ = fmt.Fprintf(w, "\tEV\tICE\n")
	_, _ = fmt.Fprintf(w, "TCO (7 yr)\t%s\t%s\n", lakhs(r.EVTCO), lakhs(r.ICETCO))
	_, _ = fmt.Fprintf(w, "Cost/km\t₹%.2f\t₹%.2f\n", r.EVCostPerKm, r.ICECostPerKm)
	_, _ = fmt.Fprintf(w, "CO2\t%.0f g/km\t%.0f g/km\n", r.EVCO2, r.ICECO2)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Savings:\t%s\n", lakhs(r.Savings))
	_, _ = fmt.Fprintf(w, "Break-even:\t%s years\n", r.BreakEven)
	_, _ = fmt.Fprintf(w, "CO2 saved:\t%.0f kg\n", r.CO2Savings)
	_, _ = fmt.Fprintf(w, "Recommendation:\t%s\n", recommendation(r.EVRecommended))

	if len(v.Comparison) > 0 {
		keys := make([]string, 0, len(v.Comparison))
		for k := range v.Comparison {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "VS BASE\tCHANGE")
		for _, k := range keys {
			_, _ = fmt.Fprintf(w, "%s\t%+.1f%%\n", k, v.Comparison[k])
		}
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "PETROL ₹/L\tSAVINGS\tBREAK-EVEN")
	for _, p := range v.Sensitivity {
		_, _ = fmt.Fprintf(w, "%.0f\t₹%.2f L\t%.1f\n", p.PetrolPrice, p.Savings, p.BreakEven)
	}
}

func init() {
	addScenarioFlags(scenarioCmd.Flags(), &scenarioInputs)
	rootCmd.AddCommand(scenarioCmd)
}
