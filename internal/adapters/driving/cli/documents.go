package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage ingested documents",
	Long:  `List or delete ingested documents, or wipe all data for a user.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the user's documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its indexed chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDelete,
}

var documentsPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all the user's documents and their collection",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsPurge,
}

// purgeConfirmed skips the interactive confirmation.
var purgeConfirmed bool

func init() {
	documentsPurgeCmd.Flags().BoolVarP(&purgeConfirmed, "yes", "y", false, "skip confirmation")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	documentsCmd.AddCommand(documentsPurgeCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	ctx := context.Background()
	docs, err := documentStore.ListDocuments(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents for user: %s\n", userID)
		return nil
	}

	cmd.Printf("Documents for user %s:\n\n", userID)
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    File: %s\n", docs[i].Filename)
		cmd.Printf("    Ingested: %s\n", docs[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()
	if err := ingestService.DeleteDocument(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document: %s\n", args[0])
	return nil
}

func runDocumentsPurge(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	if !purgeConfirmed {
		return errors.New("purge removes every document for the user; re-run with --yes to confirm")
	}

	ctx := context.Background()
	if err := ingestService.DeleteUserData(ctx, userID); err != nil {
		return fmt.Errorf("failed to purge user data: %w", err)
	}

	cmd.Printf("Purged all data for user: %s\n", userID)
	return nil
}
