package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/headline-goat/abtest/internal/dataset"
	"github.com/headline-goat/abtest/internal/stats"
)

// namedTest selects the columns a named test reads from a table.
type namedTest struct {
	params      testParams
	numerator   string
	denominator string
	mean        string
	variance    string
	count       string
	welch       bool
}

func (n *namedTest) register(cmd *cobra.Command) {
	n.params.register(cmd)
	cmd.Flags().StringVarP(&n.numerator, "numerator", "n", "", "success count column (proportion test)")
	cmd.Flags().StringVarP(&n.denominator, "denominator", "d", "", "trial count column (proportion test)")
	cmd.Flags().StringVar(&n.mean, "mean", "", "mean column (mean test)")
	cmd.Flags().StringVar(&n.variance, "variance", dataset.FieldVariance, "variance column (mean test)")
	cmd.Flags().StringVar(&n.count, "count", dataset.FieldCount, "count column (mean test)")
	cmd.Flags().BoolVar(&n.welch, "welch", false, "use Welch-Satterthwaite degrees of freedom (mean test)")
}

func (n *namedTest) run(cmd *cobra.Command, opts *globalOptions, table stats.Table) (*stats.Report, error) {
	significance, alt, err := n.params.resolve(cmd, opts.cfg)
	if err != nil {
		return nil, err
	}

	switch {
	case n.numerator != "" && n.denominator != "":
		opts.logger.Debug("running proportion test", zap.String("numerator", n.numerator), zap.String("denominator", n.denominator))
		return stats.RunNamedTest(table, n.numerator, n.denominator, significance, alt)
	case n.mean != "":
		opts.logger.Debug("running mean test", zap.String("mean", n.mean), zap.Bool("welch", n.welch))
		return stats.RunNamedMeanTest(table, n.mean, n.variance, n.count, significance, alt, meanOptions(n.welch)...)
	default:
		return nil, fmt.Errorf("give --numerator and --denominator for a proportion test, or --mean for a mean test")
	}
}

func newRunCmd(opts *globalOptions) *cobra.Command {
	var (
		test         namedTest
		sheet        string
		observations bool
	)

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a test on a CSV or XLSX table",
		Long: `Run a test on a table with a "group" column and one row for the test
group and one for the control group.

With --observations the file is a CSV of raw "group,value" rows, which are
summarized into mean, variance and count before a mean test.

Examples:
  abtest run signups.csv --numerator signups --denominator visitors
  abtest run revenue.xlsx --mean revenue --variance revenue_var --count buyers
  abtest run orders.csv --observations --alternative larger`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var frame *dataset.Frame
			var err error
			switch {
			case observations:
				frame, err = loadObservations(path)
				if test.mean == "" {
					test.mean = dataset.FieldMean
				}
			case sheet != "" && strings.EqualFold(filepath.Ext(path), ".xlsx"):
				frame, err = dataset.LoadXLSX(path, sheet)
			default:
				frame, err = dataset.Load(path)
			}
			if err != nil {
				return err
			}
			opts.logger.Debug("loaded table", zap.String("path", path), zap.Strings("fields", frame.Fields()))

			report, err := test.run(cmd, opts, frame)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report, opts.cfg.Format)
		},
	}

	test.register(cmd)
	cmd.Flags().StringVar(&sheet, "sheet", "", "spreadsheet sheet name (default first sheet)")
	cmd.Flags().BoolVar(&observations, "observations", false, "treat the file as raw group,value rows")

	return cmd
}

func loadObservations(path string) (*dataset.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open observations file: %w", err)
	}
	defer f.Close()
	return dataset.LoadObservationsCSV(f)
}
