package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/headline-goat/abtest/internal/dataset"
	"github.com/headline-goat/abtest/internal/stats"
)

func newPropCmd(opts *globalOptions) *cobra.Command {
	var (
		params                     testParams
		testSucc, testTrials       int
		controlSucc, controlTrials int
	)

	cmd := &cobra.Command{
		Use:   "prop",
		Short: "Z test for a difference in proportions",
		Long: `Compare the success rate of the test group against the control group
with a pooled two-proportion z-test.

Example:
  abtest prop --test-successes 120 --test-trials 1000 \
    --control-successes 100 --control-trials 1000 --alternative larger`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			significance, alt, err := params.resolve(cmd, opts.cfg)
			if err != nil {
				return err
			}

			frame := dataset.NewFrame()
			frame.Set(stats.GroupTest, "successes", float64(testSucc))
			frame.Set(stats.GroupTest, "trials", float64(testTrials))
			frame.Set(stats.GroupControl, "successes", float64(controlSucc))
			frame.Set(stats.GroupControl, "trials", float64(controlTrials))

			report, err := stats.RunNamedTest(frame, "successes", "trials", significance, alt)
			if err != nil {
				return err
			}
			opts.logger.Debug("proportion test done", zap.Float64("z", report.Statistic), zap.Float64("p", report.PValue))
			return writeReport(cmd.OutOrStdout(), report, opts.cfg.Format)
		},
	}

	params.register(cmd)
	cmd.Flags().IntVar(&testSucc, "test-successes", 0, "successes in the test group (required)")
	cmd.Flags().IntVar(&testTrials, "test-trials", 0, "trials in the test group (required)")
	cmd.Flags().IntVar(&controlSucc, "control-successes", 0, "successes in the control group (required)")
	cmd.Flags().IntVar(&controlTrials, "control-trials", 0, "trials in the control group (required)")
	for _, name := range []string{"test-successes", "test-trials", "control-successes", "control-trials"} {
		cmd.MarkFlagRequired(name)
	}

	return cmd
}
