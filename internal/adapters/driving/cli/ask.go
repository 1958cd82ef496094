package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drydock-labs/drydock/internal/core/domain"
)

var (
	askMode    string
	askSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Answers a question using hybrid retrieval: a semantic query plus one
expansion query per keyword matched in the question. Keyword hits are
presented to the model ahead of the semantic baseline.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askMode, "mode", "m", "", "audience framing: GC, MC or EC")
	askCmd.Flags().BoolVar(&askSources, "sources", false, "print the retrieved chunks and matched keywords")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	mode, err := parseMode(askMode)
	if err != nil {
		return err
	}

	ctx := context.Background()
	answer, err := askService.Ask(ctx, userID, args[0], mode)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Response)

	if askSources {
		cmd.Println()
		if len(answer.Keywords) > 0 {
			terms := make([]string, len(answer.Keywords))
			for i, kw := range answer.Keywords {
				terms[i] = kw.Term
			}
			cmd.Printf("Matched keywords: %s\n", strings.Join(terms, ", "))
		}
		cmd.Printf("Context chunks: %d\n", len(answer.Chunks))
		for i, chunk := range answer.Chunks {
			cmd.Printf("  [%d] %s (distance %.4f)\n", i+1, chunk.ID, chunk.Distance)
		}
	}
	return nil
}

func parseMode(raw string) (domain.AudienceMode, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "":
		return domain.AudienceNone, nil
	case "GC":
		return domain.AudienceGeneral, nil
	case "MC":
		return domain.AudienceMechanical, nil
	case "EC":
		return domain.AudienceElectrical, nil
	default:
		return domain.AudienceNone, fmt.Errorf("unknown mode %q: expected GC, MC or EC", raw)
	}
}
