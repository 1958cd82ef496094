package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Manage retrieval keywords",
	Long: `Keywords pair a term with a retrieval instruction. When a question
mentions a term, the instruction expands the retrieval query and its
results are surfaced ahead of the semantic baseline.`,
}

var keywordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the user's keywords",
	Args:  cobra.NoArgs,
	RunE:  runKeywordsList,
}

var keywordsAddCmd = &cobra.Command{
	Use:   "add [term]",
	Short: "Add a keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeywordsAdd,
}

var keywordsDeleteCmd = &cobra.Command{
	Use:   "delete [keyword-id]",
	Short: "Delete a keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeywordsDelete,
}

var keywordsSuggestCmd = &cobra.Command{
	Use:   "suggest [file]",
	Short: "Suggest keywords from a document",
	Long: `Asks the completion model to extract candidate keywords and retrieval
instructions from a text file. Suggestions are printed, not saved; add
the useful ones with 'keywords add'.`,
	Args: cobra.ExactArgs(1),
	RunE: runKeywordsSuggest,
}

// keywordInstruction is a flag for the add command.
var keywordInstruction string

func init() {
	keywordsAddCmd.Flags().StringVarP(&keywordInstruction, "instruction", "i", "", "retrieval instruction for the term")

	keywordsCmd.AddCommand(keywordsListCmd)
	keywordsCmd.AddCommand(keywordsAddCmd)
	keywordsCmd.AddCommand(keywordsDeleteCmd)
	keywordsCmd.AddCommand(keywordsSuggestCmd)
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywordsList(cmd *cobra.Command, _ []string) error {
	if keywordService == nil {
		return errors.New("keyword service not configured")
	}

	ctx := context.Background()
	keywords, err := keywordService.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list keywords: %w", err)
	}

	if len(keywords) == 0 {
		cmd.Printf("No keywords for user: %s\n", userID)
		return nil
	}

	cmd.Printf("Keywords for user %s:\n\n", userID)
	for i := range keywords {
		cmd.Printf("  %s\n", keywords[i].ID)
		cmd.Printf("    Term: %s\n", keywords[i].Term)
		if keywords[i].Instruction != "" {
			cmd.Printf("    Instruction: %s\n", keywords[i].Instruction)
		}
		cmd.Println()
	}
	return nil
}

func runKeywordsAdd(cmd *cobra.Command, args []string) error {
	if keywordService == nil {
		return errors.New("keyword service not configured")
	}

	ctx := context.Background()
	kw, err := keywordService.Add(ctx, userID, args[0], keywordInstruction)
	if err != nil {
		return fmt.Errorf("failed to add keyword: %w", err)
	}

	cmd.Printf("Added keyword %s (%s)\n", kw.Term, kw.ID)
	return nil
}

func runKeywordsDelete(cmd *cobra.Command, args []string) error {
	if keywordService == nil {
		return errors.New("keyword service not configured")
	}

	ctx := context.Background()
	if err := keywordService.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete keyword: %w", err)
	}

	cmd.Printf("Deleted keyword: %s\n", args[0])
	return nil
}

func runKeywordsSuggest(cmd *cobra.Command, args []string) error {
	if keywordService == nil {
		return errors.New("keyword service not configured")
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	ctx := context.Background()
	suggestions, err := keywordService.Suggest(ctx, string(content))
	if err != nil {
		return fmt.Errorf("failed to suggest keywords: %w", err)
	}

	if len(suggestions) == 0 {
		cmd.Println("No keywords suggested.")
		return nil
	}

	cmd.Printf("Suggested keywords:\n\n")
	for i := range suggestions {
		cmd.Printf("  Term: %s\n", suggestions[i].Term)
		cmd.Printf("    Instruction: %s\n", suggestions[i].Instruction)
		cmd.Println()
	}
	return nil
}
