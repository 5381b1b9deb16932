package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/headline-goat/abtest/internal/store"
)

func newExportCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Export an experiment's values",
		Long: `Export the recorded values of an experiment in CSV or JSON format.

Examples:
  abtest export checkout --output csv > checkout.csv
  abtest export checkout --output json > checkout.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if output != "csv" && output != "json" {
				return fmt.Errorf("invalid output: must be 'csv' or 'json'")
			}

			return opts.withStore(func(ctx context.Context, s *store.SQLiteStore) error {
				// Verify experiment exists
				if _, err := s.GetExperiment(ctx, name); err != nil {
					return notFound(name, err)
				}

				metrics, err := s.GetMetrics(ctx, name)
				if err != nil {
					return fmt.Errorf("failed to get metrics: %w", err)
				}

				if output == "csv" {
					return exportCSV(cmd.OutOrStdout(), metrics)
				}
				return exportJSON(cmd.OutOrStdout(), name, metrics)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "csv", "output format (csv or json)")

	return cmd
}

// exportCSV writes the metrics in the group,<field>... layout that
// `abtest run` reads back.
func exportCSV(out io.Writer, metrics []store.Metric) error {
	var fields, groups []string
	values := make(map[string]map[string]float64)
	for _, m := range metrics {
		row, ok := values[m.Group]
		if !ok {
			row = make(map[string]float64)
			values[m.Group] = row
			groups = append(groups, m.Group)
		}
		row[m.Field] = m.Value
		if !slices.Contains(fields, m.Field) {
			fields = append(fields, m.Field)
		}
	}

	w := csv.NewWriter(out)
	defer w.Flush()

	// Write header
	if err := w.Write(append([]string{"group"}, fields...)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// Write rows
	for _, g := range groups {
		row := []string{g}
		for _, f := range fields {
			cell := ""
			if v, ok := values[g][f]; ok {
				cell = strconv.FormatFloat(v, 'f', -1, 64)
			}
			row = append(row, cell)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}

type jsonExport struct {
	Experiment string       `json:"experiment"`
	Metrics    []jsonMetric `json:"metrics"`
}

type jsonMetric struct {
	Group     string  `json:"group"`
	Field     string  `json:"field"`
	Value     float64 `json:"value"`
	UpdatedAt int64   `json:"updated_at"`
}

func exportJSON(out io.Writer, name string, metrics []store.Metric) error {
	export := jsonExport{
		Experiment: name,
		Metrics:    make([]jsonMetric, len(metrics)),
	}

	for i, m := range metrics {
		export.Metrics[i] = jsonMetric{
			Group:     m.Group,
			Field:     m.Field,
			Value:     m.Value,
			UpdatedAt: m.UpdatedAt.Unix(),
		}
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}
