package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/drydock-labs/drydock/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document",
	Long: `Extracts text from a PDF or plain text file, chunks it and indexes
the chunks into the user's collection. Progress is streamed as the
document is embedded.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	ctx := context.Background()
	doc, events, err := ingestService.Ingest(ctx, userID, filepath.Base(path), content)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingesting %s (document %s)\n", doc.Filename, doc.ID)

	var failed string
	for ev := range events {
		switch ev.Status {
		case domain.ProgressStarted:
			cmd.Printf("  %d chunks to index\n", ev.TotalChunks)
		case domain.ProgressProcessing:
			cmd.Printf("  [%6.2f%%] chunk %d/%d\n", ev.Percentage, ev.CurrentChunk, ev.TotalChunks)
		case domain.ProgressSkipped:
			cmd.Printf("  [%6.2f%%] chunk %d/%d skipped (no content)\n", ev.Percentage, ev.CurrentChunk, ev.TotalChunks)
		case domain.ProgressError:
			failed = ev.Err
		case domain.ProgressComplete:
			cmd.Printf("Done: %d indexed, %d skipped\n", ev.Processed, ev.Skipped)
		}
	}

	if failed != "" {
		return fmt.Errorf("indexing failed, document rolled back: %s", failed)
	}
	return nil
}
