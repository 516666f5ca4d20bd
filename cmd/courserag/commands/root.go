// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for ingest, ask, search, stats, serve, and mcp
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

const banner = `
 ██████╗ ██████╗ ██╗   ██╗██████╗ ███████╗███████╗██████╗  █████╗  ██████╗
██╔════╝██╔═══██╗██║   ██║██╔══██╗██╔════╝██╔════╝██╔══██╗██╔══██╗██╔════╝
██║     ██║   ██║██║   ██║██████╔╝███████╗█████╗  ██████╔╝███████║██║  ███╗
██║     ██║   ██║██║   ██║██╔══██╗╚════██║██╔══╝  ██╔══██╗██╔══██║██║   ██║
╚██████╗╚██████╔╝╚██████╔╝██║  ██║███████║███████╗██║  ██║██║  ██║╚██████╔╝
 ╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚══════╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝
`

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with global flags
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courserag",
		Short: "Ask questions about your course transcripts",
		Long: banner + `
CourseRAG indexes course transcripts into a searchable vector store and
answers questions about them with a retrieval-augmented language model.

Ingest a folder of transcripts, then ask questions from the CLI, over
HTTP, or through MCP-capable agents.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			switch outputFormat {
			case "auto", "json", "table":
				return nil
			default:
				return fmt.Errorf("--format must be auto, json, or table, got %q", outputFormat)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, json, or table")

	cmd.AddCommand(
		NewIngestCmd(),
		NewAskCmd(),
		NewSearchCmd(),
		NewStatsCmd(),
		NewServeCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
