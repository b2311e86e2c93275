// SRLFlow - Analysis toolkit for SRL-coded student-chatbot transcripts.
// Computes transition matrices, compares code and phase proportions
// between datasets, and reformats raw conversation logs for coding.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/srlflow/srlflow/pkg/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// CLI flags
var (
	caseColumn  string
	codeColumn  string
	phaseColumn string
	outputFile  string
	noProgress  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		tui.Error("%v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "srlflow",
	Short: "SRLFlow - Analyze SRL-coded conversation transcripts",
	Long: `SRLFlow is a batch analysis toolkit for student-chatbot transcripts coded
with a Self-Regulated Learning (SRL) scheme.

Each command reads flat spreadsheet files, runs one fixed computation, and
writes a result spreadsheet.`,
	Version: fmt.Sprintf("%s (%s)", version, commit),
}

var transitionCmd = &cobra.Command{
	Use:   "transition [input.xlsx]",
	Short: "Build a transition matrix from a coded transcript sheet",
	Long: `Count transitions between consecutive SRL codes within each case and
write the matrix as <input>_column_transition_matrix.xlsx.

Codes matching the exclusion pattern (default "R.SL *") are removed before
transitions are counted, so the remaining rows become adjacent.

Examples:
  srlflow transition coded_stugptviz.xlsx
  srlflow transition -c conversation_id -a code coded.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runTransition,
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare SRL distributions between two datasets",
}

var compareCodesCmd = &cobra.Command{
	Use:   "codes [file1.xlsx] [file2.xlsx]",
	Short: "Compare per-case SRL code proportions with a Mann-Whitney U test",
	Long: `For each SRL code, compute its percentage of each case's events in both
datasets and test the two ratio samples with a two-sided Mann-Whitney U
test. Results go to code_comparison_results.xlsx.

The file belonging to the first dataset is detected by name; when neither
file name matches, the files are taken in the given order.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompareCodes,
}

var comparePhasesCmd = &cobra.Command{
	Use:   "phases [file1.xlsx] [file2.xlsx]",
	Short: "Compare per-case SRL phase proportions with a Mann-Whitney U test",
	Args:  cobra.ExactArgs(2),
	RunE:  runComparePhases,
}

var reformatCmd = &cobra.Command{
	Use:   "reformat [dir]",
	Short: "Convert raw conversation logs into a coding-ready spreadsheet",
	Long: `Walk the task1..task18 directories under dir (or under its
Student_GPT_conversation_by_question subdirectory), parse the JSON
transcripts, and write one row per user message with the surrounding
chatbot messages to processed_users_data.xlsx.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReformat,
}

var infoCmd = &cobra.Command{
	Use:   "info [input.xlsx]",
	Short: "Display information about a coded transcript sheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	transitionCmd.Flags().StringVarP(&caseColumn, "case", "c", "case_id", "Case identifier column name")
	transitionCmd.Flags().StringVarP(&codeColumn, "action", "a", "SRL_code", "Action code column name")
	transitionCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default <input>_column_transition_matrix.xlsx)")

	compareCodesCmd.Flags().StringVarP(&caseColumn, "id", "i", "case_id", "Case identifier column name")
	compareCodesCmd.Flags().StringVarP(&codeColumn, "code", "c", "SRL_code", "Code column name")
	compareCodesCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")

	comparePhasesCmd.Flags().StringVarP(&caseColumn, "case", "c", "case_id", "Case identifier column name")
	comparePhasesCmd.Flags().StringVarP(&phaseColumn, "phase", "p", "SRL_Phase", "Phase column name")
	comparePhasesCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")

	reformatCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default processed_users_data.xlsx)")
	reformatCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	compareCmd.AddCommand(compareCodesCmd)
	compareCmd.AddCommand(comparePhasesCmd)

	rootCmd.AddCommand(transitionCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(reformatCmd)
	rootCmd.AddCommand(infoCmd)
}
