package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yashubustudio/cropyield/cropyield"
)

type cli struct {
	configPath string
	verbose    bool

	cfg    cropyield.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "cropyield-cli",
		Short: "Estimate crop yield, sacks and revenue with the trained yield model",
		Long: `cropyield-cli runs the same model and catalog as the desktop form.

Examples:
  cropyield-cli predict --soil Loamy --crop Wheat --area 10 --msp 20
  cropyield-cli batch --input fields.xlsx --output results/fields.html
  cropyield-cli catalog`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cropyield.LoadConfig(c.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if c.verbose {
				cfg.LogLevel = "debug"
			}
			logger, err := cropyield.NewLogger(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.cfg = cfg
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to config.yaml (default: ./config.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(c.predictCmd(), c.batchCmd(), c.catalogCmd(), c.acresCmd())
	return root
}

func (c *cli) formatter() (*cropyield.Formatter, error) {
	return cropyield.NewFormatter(c.cfg.Display)
}
