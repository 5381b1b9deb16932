package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/headline-goat/abtest/internal/config"
	"github.com/headline-goat/abtest/internal/logging"
	"github.com/headline-goat/abtest/internal/stats"
)

// globalOptions carries the persistent flags and what is derived from them.
type globalOptions struct {
	dbPath     string
	configPath string
	logLevel   string
	format     string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "abtest",
		Short: "abtest - significance tests for A/B experiments",
		Long: `abtest compares a test group against a control group.

It runs a two-proportion z-test on success/trial counts and a t-test on
mean/variance/count summaries, reporting the statistic, p-value, critical
value and a confidence interval relative to the control group.

Numbers can be passed as flags (prop, mean), read from a CSV/XLSX table
(run), or kept per experiment in a local SQLite database (create, set,
results).`,
		SilenceUsage:      true,
		PersistentPreRunE: opts.load,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.dbPath, "db", "", "database path (default from config, ./abtest.db)")
	flags.StringVar(&opts.configPath, "config", "", "YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.format, "format", "", "report format: text or json")

	rootCmd.AddCommand(
		newPropCmd(opts),
		newMeanCmd(opts),
		newRunCmd(opts),
		newCreateCmd(opts),
		newSetCmd(opts),
		newListCmd(opts),
		newResultsCmd(opts),
		newWinnerCmd(opts),
		newDeleteCmd(opts),
		newExportCmd(opts),
	)
	return rootCmd
}

// Execute runs the command line.
func Execute() error {
	return newRootCmd().Execute()
}

func (o *globalOptions) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.format != "" {
		cfg.Format = o.format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logger
	o.logger.Debug("configuration loaded",
		zap.String("db", cfg.DBPath),
		zap.Float64("significance", cfg.Significance),
		zap.Stringer("alternative", cfg.Alternative),
	)
	return nil
}

// testParams holds the --significance and --alternative flags shared by
// every command that runs a test.
type testParams struct {
	significance float64
	alternative  string
}

func (p *testParams) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&p.significance, "significance", "s", 0.05, "significance level (default from config)")
	cmd.Flags().StringVarP(&p.alternative, "alternative", "a", "two-sided", "alternative hypothesis: two-sided, larger or smaller (default from config)")
}

// resolve returns the flag values, falling back to the configuration for
// flags that were not set.
func (p *testParams) resolve(cmd *cobra.Command, cfg config.Config) (float64, stats.Alternative, error) {
	significance := cfg.Significance
	if cmd.Flags().Changed("significance") {
		significance = p.significance
	}

	alt := cfg.Alternative
	if cmd.Flags().Changed("alternative") {
		parsed, err := stats.ParseAlternative(p.alternative)
		if err != nil {
			return 0, 0, err
		}
		alt = parsed
	}

	if err := stats.ValidateSignificance(significance); err != nil {
		return 0, 0, err
	}
	return significance, alt, nil
}
