// Package tui provides the styled terminal output for srlflow.
// Simple streaming prints, no interactive UI.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors (Swiss minimal)
var (
	accent  = lipgloss.Color("#FF0000")
	muted   = lipgloss.Color("#666666")
	success = lipgloss.Color("#00CC66")
	white   = lipgloss.Color("#FFFFFF")
	warning = lipgloss.Color("#FFAA00")
)

// Styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(white)
	accentStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(warning).Bold(true)
)

// Warn prints a highlighted warning line.
func Warn(format string, args ...interface{}) {
	fmt.Println(warnStyle.Render("  ! " + fmt.Sprintf(format, args...)))
}

// Error prints a highlighted error line.
func Error(format string, args ...interface{}) {
	fmt.Println(accentStyle.Render("  ✗ " + fmt.Sprintf(format, args...)))
}

// Field prints an aligned "label: value" line.
func Field(label, value string) {
	fmt.Printf("  %s %s\n", mutedStyle.Render(label+":"), titleStyle.Render(value))
}

// Done prints a success banner.
func Done(what string) {
	fmt.Println()
	fmt.Println(successStyle.Render("  ✓ " + strings.ToUpper(what)))
	fmt.Println()
}

// TransitionReport summarizes one transition matrix run.
type TransitionReport struct {
	Input    string
	Output   string
	Rows     int
	Excluded int
	Cases    int
	Total    int64
	Unknown  []string
}

// PrintTransitionReport prints the run summary after the matrix is
// written.
func PrintTransitionReport(r *TransitionReport) {
	for _, code := range r.Unknown {
		Warn("code %q is not in the vocabulary; appended to the matrix", code)
	}

	Done("transition matrix written")
	Field("Input", r.Input)
	Field("Rows", fmt.Sprintf("%d (%d excluded)", r.Rows, r.Excluded))
	Field("Cases", fmt.Sprintf("%d", r.Cases))
	Field("Transitions", fmt.Sprintf("%d", r.Total))
	Field("Output", r.Output)
	fmt.Println()
}

// CompareReport summarizes one group comparison run.
type CompareReport struct {
	Group1, Group2       string
	N1, N2               int
	Excluded1, Excluded2 int
	Values               int
	Unknown              []string
	Sniffed              bool
	Output               string
}

// PrintCompareReport prints the run summary after the comparison
// sheet is written.
func PrintCompareReport(r *CompareReport) {
	if !r.Sniffed {
		Warn("could not match file names to dataset names; assuming %s first, %s second", r.Group1, r.Group2)
	}
	for _, code := range r.Unknown {
		Warn("code %q is not in the vocabulary; listed after the vocabulary codes", code)
	}

	Done("comparison written")
	Field(r.Group1, fmt.Sprintf("%d cases (%d rows excluded)", r.N1, r.Excluded1))
	Field(r.Group2, fmt.Sprintf("%d cases (%d rows excluded)", r.N2, r.Excluded2))
	Field("Compared", fmt.Sprintf("%d values", r.Values))
	Field("Output", r.Output)
	fmt.Println()
}
