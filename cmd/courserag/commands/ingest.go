// ABOUTME: CLI command to ingest course transcripts into the index
// ABOUTME: Walks a folder or single file, skipping duplicates, accumulating errors
package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/courserag/internal/ingest"
	"github.com/harper/courserag/internal/storage"
)

var ingestClear bool

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <path>",
		Short: "Ingest course transcripts",
		Long: `Ingest course transcripts from a file or folder.

Each transcript starts with three header lines (course title, link,
instructor) followed by the body with "Lesson N: Title" markers. Courses
already in the index are skipped; a malformed file does not stop the batch.

Examples:
  courserag ingest ./docs
  courserag ingest --clear ./docs
  courserag ingest intro_to_testing.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().BoolVar(&ingestClear, "clear", false, "Clear the index before ingesting")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	svc, err := newServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	if ingestClear {
		if err := svc.store.Reset(); err != nil {
			return fmt.Errorf("clearing index: %w", err)
		}
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared existing index")
		}
	}

	paths, err := transcriptPaths(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no transcript files found under %s", args[0])
	}

	chunker, err := ingest.NewChunker(svc.cfg.ChunkSize, svc.cfg.ChunkOverlap)
	if err != nil {
		return fmt.Errorf("configuring chunker: %w", err)
	}

	var (
		added    int
		skipped  int
		failures []string
	)

	for _, path := range paths {
		title, chunkCount, err := ingestFile(svc, chunker, path)
		switch {
		case errors.Is(err, storage.ErrDuplicateCourse):
			skipped++
			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s: already indexed\n", filepath.Base(path))
			}
		case err != nil:
			failures = append(failures, fmt.Sprintf("%s: %v", filepath.Base(path), err))
		default:
			added++
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Indexed %q (%d chunks)\n", title, chunkCount)
			}
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nIngestion complete: %d added, %d skipped, %d failed\n", added, skipped, len(failures))
	}
	for _, failure := range failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s\n", failure)
	}
	if added == 0 && len(failures) > 0 {
		return fmt.Errorf("all %d document(s) failed to ingest", len(failures))
	}
	return nil
}

// ingestFile parses, chunks, and indexes one transcript
func ingestFile(svc *services, chunker *ingest.Chunker, path string) (string, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("reading file: %w", err)
	}

	doc, err := ingest.Parse(string(data), filepath.Base(path))
	if err != nil {
		return "", 0, err
	}

	chunks := chunker.ChunkDocument(doc)
	if err := svc.store.AddCourse(&doc.Course, chunks); err != nil {
		return doc.Course.Title, 0, err
	}
	return doc.Course.Title, len(chunks), nil
}

// transcriptPaths expands a path argument into transcript files, sorted for
// deterministic ingestion order
func transcriptPaths(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("inspecting path: %w", err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading folder: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".md":
			paths = append(paths, filepath.Join(root, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
