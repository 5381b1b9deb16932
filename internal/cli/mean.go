package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/headline-goat/abtest/internal/dataset"
	"github.com/headline-goat/abtest/internal/stats"
)

func newMeanCmd(opts *globalOptions) *cobra.Command {
	var (
		params        testParams
		test, control stats.MeanSample
		welch         bool
	)

	cmd := &cobra.Command{
		Use:   "mean",
		Short: "T test for a difference in means",
		Long: `Compare the mean of the test group against the control group from
summary statistics. The standard error is sqrt(var_a/n_a + var_b/n_b) and
the degrees of freedom are n_a+n_b-2 unless --welch is given.

Example:
  abtest mean --test-mean 10 --test-var 4 --test-n 30 \
    --control-mean 8 --control-var 4 --control-n 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			significance, alt, err := params.resolve(cmd, opts.cfg)
			if err != nil {
				return err
			}

			frame := dataset.NewFrame()
			for group, s := range map[string]stats.MeanSample{stats.GroupTest: test, stats.GroupControl: control} {
				frame.Set(group, dataset.FieldMean, s.Mean)
				frame.Set(group, dataset.FieldVariance, s.Variance)
				frame.Set(group, dataset.FieldCount, float64(s.Count))
			}

			report, err := stats.RunNamedMeanTest(frame, dataset.FieldMean, dataset.FieldVariance, dataset.FieldCount,
				significance, alt, meanOptions(welch)...)
			if err != nil {
				return err
			}
			opts.logger.Debug("mean test done", zap.Float64("t", report.Statistic), zap.Float64("dof", report.DoF))
			return writeReport(cmd.OutOrStdout(), report, opts.cfg.Format)
		},
	}

	params.register(cmd)
	cmd.Flags().Float64Var(&test.Mean, "test-mean", 0, "mean of the test group (required)")
	cmd.Flags().Float64Var(&test.Variance, "test-var", 0, "variance of the test group (required)")
	cmd.Flags().IntVar(&test.Count, "test-n", 0, "size of the test group (required)")
	cmd.Flags().Float64Var(&control.Mean, "control-mean", 0, "mean of the control group (required)")
	cmd.Flags().Float64Var(&control.Variance, "control-var", 0, "variance of the control group (required)")
	cmd.Flags().IntVar(&control.Count, "control-n", 0, "size of the control group (required)")
	cmd.Flags().BoolVar(&welch, "welch", false, "use Welch-Satterthwaite degrees of freedom")
	for _, name := range []string{"test-mean", "test-var", "test-n", "control-mean", "control-var", "control-n"} {
		cmd.MarkFlagRequired(name)
	}

	return cmd
}

func meanOptions(welch bool) []stats.MeanDiffOption {
	if welch {
		return []stats.MeanDiffOption{stats.WithWelchDoF()}
	}
	return nil
}
