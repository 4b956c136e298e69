package main

import (
	"delivery-sim/internal/app"
	"delivery-sim/internal/config"
	"delivery-sim/internal/platform/logger"
	"delivery-sim/internal/ports"
	"delivery-sim/internal/services"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "simctl",
	Short:        "Run the parcel dispatch simulation and query its results",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "No .env file found (using environment variables)")
		}
		if !cmd.Flags().Changed("config") {
			cfgPath = config.Get("SIM_CONFIG", cfgPath)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// simulate runs the configured day once. Logs go to stderr so stdout only
// carries the command's output.
func simulate(cmd *cobra.Command) (*services.Simulation, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	log := logger.NewWithWriter("simctl", cmd.ErrOrStderr())
	return app.Simulate(cmd.Context(), cfg, log, ports.NopRecorder{})
}
