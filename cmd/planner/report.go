package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"carbon-planner/core/models"
)

const divider = "-----------------------------------"

// Output formats
const (
	outputText = "text"
	outputJSON = "json"
)

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeEstimate(w io.Writer, project *models.Project, result models.EstimateResult) {
	fmt.Fprintf(w, "%s\nWorst-case estimate: %s\n%s\n", divider, project.Name, divider)

	ids := make([]string, 0, len(result.PerJob))
	for id := range result.PerJob {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB\tMAX COST (USD)\tMAX CO2 (kg)\tMAX POWER (kW)\tMAX TIME (h)\tCONFIDENCE")
	for _, id := range ids {
		est := result.PerJob[id]
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n",
			id, est.MaxCostUSD, est.MaxCO2Kg, est.MaxPowerKW, est.MaxTimeHours, est.Confidence)
	}
	t := result.Totals
	fmt.Fprintf(tw, "TOTAL (%d)\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n",
		t.JobCount, t.MaxCostUSD, t.MaxCO2Kg, t.MaxPowerKW, t.MaxTimeHours, t.Confidence)
	tw.Flush()

	if len(result.Failures) > 0 {
		failed := make([]models.JobFailure, 0, len(result.Failures))
		for _, f := range result.Failures {
			failed = append(failed, f)
		}
		sort.Slice(failed, func(i, j int) bool { return failed[i].JobID < failed[j].JobID })
		writeFailures(w, "Not estimated", failed)
	}

	fmt.Fprintln(w, "Assumptions:")
	for _, a := range t.Assumptions {
		fmt.Fprintf(w, "- %s\n", a)
	}
}

func writePlan(w io.Writer, plan models.Plan) {
	fmt.Fprintf(w, "%s\nPlan (%s)\n%s\n", divider, plan.CompareMode, divider)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB\tPROVIDER\tREGION\tWINDOW\tRATIONALE")
	for _, item := range plan.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			item.JobID, item.Provider, item.Region, item.TimeWindowLabel, strings.Join(item.RationaleTags, "; "))
	}
	tw.Flush()

	writeFailures(w, "Infeasible", plan.Infeasible)
}

func writeRun(w io.Writer, run *models.RunResult) {
	fmt.Fprintf(w, "%s\nSimulated run %s (%s, scope %s)\n%s\n", divider, run.ID, run.CompareMode, run.Scope, divider)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB\tCOST (USD)\tCO2 (kg)\tPOWER (kW)\tTIME (h)\tPLACEMENT")
	for _, job := range run.Jobs {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%s/%s\n",
			job.JobID, job.ActualCostUSD, job.ActualCO2Kg, job.ActualPowerKW, job.ActualTimeHours, job.Provider, job.Region)
	}
	t := run.Totals
	fmt.Fprintf(tw, "TOTAL\t%.2f\t%.2f\t%.2f\t%.2f\t\n", t.CostUSD, t.CO2Kg, t.PeakPower, t.TimeHours)
	tw.Flush()

	writeFailures(w, "Skipped", run.Skipped)
}

func writeFailures(w io.Writer, title string, failures []models.JobFailure) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, f := range failures {
		fmt.Fprintf(w, "- %s [%s] %s\n", f.JobID, f.Code, f.Reason)
	}
}
