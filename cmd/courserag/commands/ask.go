// ABOUTME: CLI command to ask one question against the course index
// ABOUTME: Runs the full two-round orchestration and prints answer plus sources
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/courserag/internal/core"
	"github.com/harper/courserag/internal/tools"
)

var askSession string

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the indexed courses",
		Long: `Ask a question about the indexed courses.

The model decides whether to search the index; course-specific questions
trigger one retrieval, general questions are answered directly.

Examples:
  courserag ask "What does lesson 2 of the MCP course cover?"
  courserag ask --session abc123 "And the one after that?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringVar(&askSession, "session", "", "Session id for follow-up questions")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc, err := newServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	registry := tools.NewRegistry()
	registry.Register(tools.NewCourseSearchTool(svc.store, svc.cfg.MaxResults))

	sessions := core.NewSessionStore(svc.cfg.MaxHistory)
	orchestrator := core.NewOrchestrator(svc.client, registry, sessions)

	answer, err := orchestrator.Answer(args[0], askSession)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	if outputFormat == "json" {
		payload, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", payload)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer.Text)
	if len(answer.Sources) > 0 && !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "\nSources:")
		for _, source := range answer.Sources {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", source)
		}
	}
	return nil
}
