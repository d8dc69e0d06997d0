package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/ev-dss/internal/analytics"
	"github.com/sells-group/ev-dss/internal/api"
	"github.com/sells-group/ev-dss/internal/model"
)

var (
	citiesState    string
	citiesClusters bool
)

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List per-city EV readiness metrics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ds, err := loadDataset(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		metrics := analytics.MergeClusters(analytics.CityMetrics(ds.Records), ds.Clusters)

		if citiesClusters {
			view := api.ClustersResponse{
				Summary: analytics.ClusterSummary(metrics),
				Indices: analytics.CityIndices(metrics),
			}
			return render(os.Stdout, outputFormat, view, func(w *tabwriter.Writer) {
				formatClusters(w, view.Summary)
			})
		}

		metrics = filterState(metrics, citiesState)
		return render(os.Stdout, outputFormat, metrics, func(w *tabwriter.Writer) {
			formatCities(w, metrics)
		})
	},
}

func filterState(metrics []model.CityMetrics, state string) []model.CityMetrics {
	if state == "" {
		return metrics
	}
	out := make([]model.CityMetrics, 0, len(metrics))
	for _, m := range metrics {
		if m.State == state {
			out = append(out, m)
		}
	}
	return out
}

// formatCities writes one row per city to w.
func formatCities(w *tabwriter.Writer, metrics []model.CityMetrics) {
	_, _ = fmt.Fprintln(w, "STATE\tCITY\tCLUSTER\tSTATIONS\tREADINESS\tADV 2W\tADV 3W\tADV 4W\tCO2 ADV")
	for _, m := range metrics {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%s\t%.2f\t%.2f\t%.2f\t%.3f\n",
			m.State, m.City, m.Cluster, m.ChargingStationsCount, m.ChargingReadiness,
			m.AvgCostAdvantage2W, m.AvgCostAdvantage3W, m.AvgCostAdvantage4W, m.AvgCO2Advantage,
		)
	}
}

// formatClusters writes the cluster summary to w.
func formatClusters(w *tabwriter.Writer, summary []model.ClusterSummary) {
	_, _ = fmt.Fprintln(w, "CLUSTER\tCITIES\tAVG READINESS\tDESCRIPTION")
	for _, s := range summary {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%.0f\t%s\n", s.Cluster, s.Count, s.AvgReadiness, s.Description)
	}
}

func init() {
	citiesCmd.Flags().StringVar(&citiesState, "state", "", "only list cities in this state")
	citiesCmd.Flags().BoolVar(&citiesClusters, "clusters", false, "show the cluster summary instead")
	rootCmd.AddCommand(citiesCmd)
}
