package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/mpnum/foundation/core/error"
	"github.com/msto63/mpnum/internal/calc"
	"github.com/msto63/mpnum/internal/tui"
	"github.com/msto63/mpnum/pkg/core/config"
	"github.com/msto63/mpnum/pkg/core/logging"
	"github.com/msto63/mpnum/pkg/kernel"
	"github.com/msto63/mpnum/pkg/precision"
)

var (
	cfgFile string
	profile string
	verbose bool
	noColor bool
)

// state shared by the subcommands, set up in PersistentPreRunE
var (
	cfg    *config.Config
	logger *logging.Logger
	store  *precision.Store
)

var rootCmd = &cobra.Command{
	Use:   "mpcalc",
	Short: "mpcalc - multi-precision calculator",
	Long: `mpcalc evaluates mixed integer, rational, real and complex arithmetic
under configurable precision contexts.

Contexts come from profiles in a TOML or YAML configuration file:
  default  - 53 bits, round to nearest, wide exponent range
  single   - IEEE 754 binary32
  double   - IEEE 754 binary64
  quad     - IEEE 754 binary128`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Close()
		}
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $MPNUM_CONFIG, ./mpnum.toml, ~/.config/mpnum/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "context profile (default: general.default_profile)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log context activity at debug level")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lc := logging.FromConfig("mpcalc", cfg.General)
	if verbose {
		lc.Level = "debug"
	}
	logger, err = logging.NewLogger(lc)
	if err != nil {
		return err
	}

	store = precision.NewStore(kernel.NewBig(), precision.WithLogger(logger.Logger))
	if noColor {
		tui.DisableStyles()
	}
	return nil
}

// loadConfig reads --config, falling back to the default locations and then
// to the built-in configuration
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	c, err := config.LoadFromEnv()
	if mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		return config.Default(), nil
	}
	return c, err
}

func newSession() (*calc.Session, error) {
	return calc.NewSession(store, cfg, profile, logger.Logger)
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("error: "+err.Error()))
}
