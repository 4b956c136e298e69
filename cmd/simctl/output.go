package main

import (
	"delivery-sim/internal/domain"
	"delivery-sim/internal/services"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

func printSnapshot(w io.Writer, at time.Time, views []services.ParcelView) error {
	fmt.Fprintf(w, "Parcel status at %s\n", domain.ClockString(at))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tVEHICLE\tADDRESS\tDEADLINE\tWEIGHT\tSTATUS")
	for _, v := range views {
		vehicle := "-"
		if v.VehicleID != nil {
			vehicle = strconv.Itoa(*v.VehicleID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", v.ID, vehicle, v.Address, v.Deadline, v.Weight, v.Status)
	}
	return tw.Flush()
}

func printMileage(w io.Writer, m services.MileageReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VEHICLE\tMILES")
	for _, v := range m.Vehicles {
		fmt.Fprintf(tw, "%d\t%.1f\n", v.VehicleID, v.Mileage)
	}
	fmt.Fprintf(tw, "TOTAL\t%.1f\n", m.Total)
	return tw.Flush()
}

func printReport(w io.Writer, matrix *domain.LocationMatrix, r *services.CompletionReport) error {
	if r == nil {
		return fmt.Errorf("simulation has not run")
	}

	fmt.Fprintf(w, "Run %s\n", r.RunID)
	for _, v := range r.Vehicles {
		fmt.Fprintf(w, "\nVehicle %d: %.1f miles, back at hub %s\n", v.VehicleID, v.Mileage, domain.ClockString(v.ReturnAt))
		fmt.Fprintf(w, "  route: %s\n", routeString(matrix, v.Route))
		fmt.Fprintf(w, "  delivered: %s\n", joinInts(v.Delivered))
		if len(v.Stranded) > 0 {
			fmt.Fprintf(w, "  stranded: %s\n", joinInts(v.Stranded))
		}
	}

	fmt.Fprintf(w, "\nTotal mileage: %.1f\n", r.TotalMileage)
	fmt.Fprintf(w, "Delivered: %d\n", r.Delivered)
	if r.Complete() {
		fmt.Fprintln(w, "Stranded: none")
	} else {
		fmt.Fprintf(w, "Stranded: %s\n", joinInts(r.Stranded))
	}
	for _, l := range r.Late {
		fmt.Fprintf(w, "Late: parcel %d on vehicle %d delivered %s, deadline %s\n",
			l.ParcelID, l.VehicleID, domain.ClockString(l.DeliveredAt), domain.ClockString(l.Deadline))
	}
	return nil
}

func printReportJSON(w io.Writer, r *services.CompletionReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// routeString renders a route with the first line of each location label.
func routeString(matrix *domain.LocationMatrix, route []int) string {
	parts := make([]string, 0, len(route))
	for _, loc := range route {
		name, _, _ := strings.Cut(matrix.Label(loc), "\n")
		if name == "" {
			name = strconv.Itoa(loc)
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, " -> ")
}

func joinInts(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
