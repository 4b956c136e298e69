package main

import (
	"context"
	"delivery-sim/internal/app"
	"delivery-sim/internal/config"
	"delivery-sim/internal/platform/logger"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "dbtool",
	Short:        "Create and seed the simulator database",
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

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		log := logger.New("dbtool")
		log.Info().Str("driver", cfg.Database.Driver).Msg("initializing database schema")
		if err := app.InitDatabase(cmd.Context(), cfg); err != nil {
			return err
		}
		log.Info().Msg("schema ready")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and load the configured CSV files into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		return app.SeedDatabase(cmd.Context(), cfg, logger.New("dbtool"))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.AddCommand(schemaCmd, seedCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
