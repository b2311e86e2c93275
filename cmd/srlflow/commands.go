package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/srlflow/srlflow/internal/model"
	"github.com/srlflow/srlflow/pkg/compare"
	"github.com/srlflow/srlflow/pkg/config"
	"github.com/srlflow/srlflow/pkg/dataset"
	"github.com/srlflow/srlflow/pkg/reformat"
	"github.com/srlflow/srlflow/pkg/transition"
	"github.com/srlflow/srlflow/pkg/tui"
)

// loadConfig merges the layered configuration with any column flags
// the user set on this invocation.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	override := func(flag string, dst *string, value string) {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			*dst = value
		}
	}
	override("case", &cfg.Columns.Case, caseColumn)
	override("id", &cfg.Columns.Case, caseColumn)
	override("action", &cfg.Columns.Code, codeColumn)
	override("code", &cfg.Columns.Code, codeColumn)
	override("phase", &cfg.Columns.Phase, phaseColumn)

	return cfg, nil
}

func checkInput(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	return nil
}

func runTransition(cmd *cobra.Command, args []string) error {
	input := args[0]
	if err := checkInput(input); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	tbl, err := dataset.ReadTable(input)
	if err != nil {
		return err
	}
	events, err := tbl.Events(dataset.EventColumns{
		Case: cfg.Columns.Case,
		Code: cfg.Columns.Code,
	})
	if err != nil {
		return err
	}

	m := transition.Build(events, transition.Config{
		Vocabulary: cfg.Vocabulary(),
		Exclusion:  cfg.Exclusion(),
	})

	output := outputFile
	if output == "" {
		output = transition.OutputPath(input)
	}
	if err := m.WriteXLSX(output); err != nil {
		return err
	}

	tui.PrintTransitionReport(&tui.TransitionReport{
		Input:    input,
		Output:   output,
		Rows:     m.FilteredEvents(),
		Excluded: m.ExcludedEvents(),
		Cases:    m.Cases(),
		Total:    m.Total(),
		Unknown:  m.Unknown(),
	})
	return nil
}

func runCompareCodes(cmd *cobra.Command, args []string) error {
	return runCompare(cmd, args, compare.FieldCode)
}

func runComparePhases(cmd *cobra.Command, args []string) error {
	return runCompare(cmd, args, compare.FieldPhase)
}

func runCompare(cmd *cobra.Command, args []string, field compare.Field) error {
	for _, path := range args {
		if err := checkInput(path); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	groups := [2]string{cfg.Groups.First, cfg.Groups.Second}
	assignment := compare.AssignGroups(args[0], args[1], groups)

	cmpCfg := compare.Config{
		Field:      field,
		Vocabulary: cfg.Vocabulary(),
		Exclusion:  cfg.Exclusion(),
		GroupNames: groups,
	}

	cols := dataset.EventColumns{Case: cfg.Columns.Case}
	output := compare.PhasesOutputFile
	if field == compare.FieldCode {
		cols.Code = cfg.Columns.Code
		output = compare.CodesOutputFile
	} else {
		cols.Phase = cfg.Columns.Phase
	}
	if outputFile != "" {
		output = outputFile
	}

	events1, err := readEvents(assignment.File1, cols)
	if err != nil {
		return err
	}
	events2, err := readEvents(assignment.File2, cols)
	if err != nil {
		return err
	}

	report, err := compare.Run(events1, events2, cmpCfg)
	if err != nil {
		return err
	}
	if err := report.WriteXLSX(output); err != nil {
		return err
	}

	tui.PrintCompareReport(&tui.CompareReport{
		Group1:    report.Group1,
		Group2:    report.Group2,
		N1:        report.N1,
		N2:        report.N2,
		Excluded1: report.Excluded1,
		Excluded2: report.Excluded2,
		Values:    len(report.Rows),
		Unknown:   report.Unknown,
		Sniffed:   assignment.Sniffed,
		Output:    output,
	})
	return nil
}

func readEvents(path string, cols dataset.EventColumns) ([]model.Event, error) {
	tbl, err := dataset.ReadTable(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	events, err := tbl.Events(cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

func runReformat(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	res, err := reformat.Collect(root, !noProgress)
	if err != nil {
		return err
	}
	for _, path := range res.Skipped {
		tui.Warn("could not parse %s; skipped", path)
	}

	reformat.AdjustTimestamps(res.Turns)

	output := outputFile
	if output == "" {
		output = reformat.DefaultOutputFile
	}
	if err := reformat.WriteXLSX(res.Turns, output); err != nil {
		return err
	}

	tui.Done("conversation logs reformatted")
	tui.Field("Turns", fmt.Sprintf("%d", len(res.Turns)))
	if len(res.Skipped) > 0 {
		tui.Field("Skipped", fmt.Sprintf("%d files", len(res.Skipped)))
	}
	tui.Field("Output", output)
	fmt.Println()
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	input := args[0]
	if err := checkInput(input); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	stat, err := os.Stat(input)
	if err != nil {
		return err
	}

	tbl, err := dataset.ReadTable(input)
	if err != nil {
		return err
	}

	tui.Field("File", input)
	tui.Field("Size", humanSize(stat.Size()))
	tui.Field("Columns", fmt.Sprintf("%d", len(tbl.Columns)))
	tui.Field("Rows", fmt.Sprintf("%d", len(tbl.Rows)))

	events, err := tbl.Events(dataset.EventColumns{
		Case: cfg.Columns.Case,
		Code: cfg.Columns.Code,
	})
	if err != nil {
		// Unexpected layout: basic file facts are still useful.
		tui.Warn("%v", err)
		return nil
	}

	cases := make(map[string]bool)
	codes := make(map[string]bool)
	for _, e := range events {
		cases[e.CaseID] = true
		codes[e.Code] = true
	}
	tui.Field("Cases", fmt.Sprintf("%d", len(cases)))
	tui.Field("Codes", fmt.Sprintf("%d distinct", len(codes)))
	return nil
}

// humanSize formats a byte size in human-readable form.
func humanSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
