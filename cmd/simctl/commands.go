package main

import (
	"delivery-sim/internal/domain"
	"delivery-sim/internal/services"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	atFlag   string
	idFlag   int
	jsonFlag bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show every parcel's status at a time of day",
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := simulate(cmd)
		if err != nil {
			return err
		}
		at, err := parseAt(sim.Day(), atFlag)
		if err != nil {
			return err
		}

		h := services.NewHistoryFor(sim)
		return printSnapshot(cmd.OutOrStdout(), at, h.Snapshot(at))
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Show one parcel's status at a time of day",
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := simulate(cmd)
		if err != nil {
			return err
		}
		at, err := parseAt(sim.Day(), atFlag)
		if err != nil {
			return err
		}

		view, err := services.NewHistoryFor(sim).Lookup(idFlag, at)
		if errors.Is(err, services.ErrParcelNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "parcel %d not found\n", idFlag)
			return nil
		}
		if err != nil {
			return err
		}
		return printSnapshot(cmd.OutOrStdout(), at, []services.ParcelView{view})
	},
}

var mileageCmd = &cobra.Command{
	Use:   "mileage",
	Short: "Show miles driven per vehicle and in total",
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := simulate(cmd)
		if err != nil {
			return err
		}
		return printMileage(cmd.OutOrStdout(), services.NewHistoryFor(sim).Mileage())
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the completion report: routes, stranded and late parcels",
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := simulate(cmd)
		if err != nil {
			return err
		}
		if jsonFlag {
			return printReportJSON(cmd.OutOrStdout(), sim.Report())
		}
		return printReport(cmd.OutOrStdout(), sim.Matrix(), sim.Report())
	},
}

func init() {
	statusCmd.Flags().StringVar(&atFlag, "at", "", "time of day, HH:MM or H:MM AM/PM (default end of day)")
	lookupCmd.Flags().StringVar(&atFlag, "at", "", "time of day, HH:MM or H:MM AM/PM (default end of day)")
	lookupCmd.Flags().IntVar(&idFlag, "id", 0, "parcel id")
	_ = lookupCmd.MarkFlagRequired("id")
	reportCmd.Flags().BoolVar(&jsonFlag, "json", false, "print the report as JSON")

	rootCmd.AddCommand(statusCmd, lookupCmd, mileageCmd, reportCmd)
}

func parseAt(day time.Time, raw string) (time.Time, error) {
	if raw == "" {
		return domain.At(day, 23, 59, 59), nil
	}
	at, err := domain.ParseClock(day, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at: %w", err)
	}
	return at, nil
}
