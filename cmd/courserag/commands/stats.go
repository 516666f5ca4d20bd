// ABOUTME: CLI command to show catalog statistics
// ABOUTME: Prints course count and titles in table or JSON form
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show indexed course statistics",
		Long: `Show the number of indexed courses and their titles.

Examples:
  courserag stats
  courserag stats --format json`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	svc, err := newServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	stats, err := svc.store.Stats()
	if err != nil {
		return fmt.Errorf("loading stats: %w", err)
	}

	if outputFormat == "json" {
		payload, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", payload)
		return nil
	}

	if stats.TotalCourses == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No courses indexed yet. Run 'courserag ingest <path>' first.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "#\tCOURSE\tCHUNKS\n")
	fmt.Fprintf(w, "-\t------\t------\n")
	for i, title := range stats.CourseTitles {
		count, err := svc.store.ChunkCount(title)
		if err != nil {
			return fmt.Errorf("counting chunks for %q: %w", title, err)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\n", i+1, truncate(title, 50), count)
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d course(s) indexed\n", stats.TotalCourses)
	}
	return nil
}
