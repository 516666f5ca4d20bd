// ABOUTME: CLI command for direct semantic search over indexed chunks
// ABOUTME: Supports fuzzy course filtering, lesson filtering, table or JSON output
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/courserag/internal/storage"
)

var (
	searchCourse string
	searchLesson int
	searchLimit  int
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search course content directly",
		Long: `Search course content directly, without the language model.

Runs the same similarity search the chat tool uses and prints the raw
hits with their scores.

Examples:
  courserag search "vector embeddings"
  courserag search --course "MCP" --lesson 3 "tool schemas"
  courserag search --limit 10 --format json "chunking"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().StringVar(&searchCourse, "course", "", "Restrict to a course (fuzzy matched)")
	cmd.Flags().IntVar(&searchLesson, "lesson", 0, "Restrict to a lesson number")
	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	svc, err := newServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	var lesson *int
	if cmd.Flags().Changed("lesson") {
		lesson = &searchLesson
	}

	results, err := svc.store.Search(args[0], searchCourse, lesson, searchLimit)
	if err != nil {
		var unknown *storage.UnknownCourseError
		if errors.As(err, &unknown) {
			fmt.Fprintln(cmd.OutOrStdout(), unknown.Error())
			return nil
		}
		return fmt.Errorf("searching: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No content found for query: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		payload, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", payload)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tSOURCE\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t------\t-------\n")
	for _, result := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\n",
			result.Score,
			truncate(result.SourceLabel(), 40),
			truncate(result.Content, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}
