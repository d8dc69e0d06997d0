package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/ev-dss/internal/analytics"
	"github.com/sells-group/ev-dss/internal/api"
)

var dashboardTop int

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show dataset-wide EV vs ICE headline metrics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ds, err := loadDataset(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		metrics := analytics.MergeClusters(analytics.CityMetrics(ds.Records), ds.Clusters)
		view := api.DashboardResponse{
			Metrics:        analytics.Dashboard(ds.Records),
			CostComparison: analytics.CostComparison(ds.Records),
			Emissions:      analytics.Emissions(ds.Records),
			TopCities:      analytics.TopCities(metrics, dashboardTop),
			Trend:          analytics.DashboardTrend(ds.Records),
		}
		return render(os.Stdout, outputFormat, view, func(w *tabwriter.Writer) {
			formatDashboard(w, view)
		})
	},
}

// formatDashboard writes the headline metrics, per-class costs and city
// ranking to w.
func formatDashboard(w *tabwriter.Writer, v api.DashboardResponse) {
	m := v.Metrics
	_, _ = fmt.Fprintf(w, "Records:\t%d\n", m.TotalRecords)
	_, _ = fmt.Fprintf(w, "Cities analyzed:\t%d\n", m.CitiesAnalyzed)
	_, _ = fmt.Fprintf(w, "Avg cost advantage:\t₹%.2f/km\n", m.AvgCostAdvantage)
	_, _ = fmt.Fprintf(w, "Avg CO2 advantage:\t%.1f g/km\n", m.AvgCO2Advantage)
	_, _ = fmt.Fprintf(w, "Avg EV cost:\t₹%.2f/km\n", m.AvgEVCostPerKm)
	_, _ = fmt.Fprintf(w, "Avg ICE cost:\t₹%.2f/km\n", m.AvgICECostPerKm)
	_, _ = fmt.Fprintf(w, "EV savings:\t%.1f%%\n", m.CostSavingsPercent)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "CLASS\tEV ₹/KM\tICE ₹/KM")
	for _, c := range v.CostComparison {
		_, _ = fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", c.Name, c.EV, c.ICE)
	}

	if len(v.TopCities) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "RANK\tCITY\tSTATE\tREADINESS")
		for i, c := range v.TopCities {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%.0f\n", i+1, c.City, c.State, c.Score)
		}
	}
}

func init() {
	dashboardCmd.Flags().IntVar(&dashboardTop, "top", 5, "number of top cities to rank")
	rootCmd.AddCommand(dashboardCmd)
}
