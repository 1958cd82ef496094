// Package cli implements the drydock command line interface.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/drydock-labs/drydock/internal/adapters/driven/config/file"
	"github.com/drydock-labs/drydock/internal/adapters/driven/embedding/gemini"
	extractpdf "github.com/drydock-labs/drydock/internal/adapters/driven/extract/pdf"
	"github.com/drydock-labs/drydock/internal/adapters/driven/extract/plaintext"
	llmgemini "github.com/drydock-labs/drydock/internal/adapters/driven/llm/gemini"
	"github.com/drydock-labs/drydock/internal/adapters/driven/storage/sqlite"
	"github.com/drydock-labs/drydock/internal/adapters/driven/vector/chroma"
	vectormemory "github.com/drydock-labs/drydock/internal/adapters/driven/vector/memory"
	"github.com/drydock-labs/drydock/internal/core/ports/driven"
	"github.com/drydock-labs/drydock/internal/core/ports/driving"
	"github.com/drydock-labs/drydock/internal/core/services"
	"github.com/drydock-labs/drydock/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by the commands. Wired by initServices; tests replace
// them directly.
var (
	ingestService  driving.IngestService
	askService     driving.AskService
	keywordService driving.KeywordService
	documentStore  driven.DocumentStore
)

// Global flags.
var (
	verbose bool
	userID  string
)

var rootCmd = &cobra.Command{
	Use:   "drydock",
	Short: "Ask questions about your construction documents",
	Long: `Drydock ingests construction documents (PDF and plain text),
indexes them into a per-user vector collection, and answers questions
about them using hybrid keyword-aware retrieval.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "default", "user id that owns the documents")
}

// Execute wires the services and runs the root command.
func Execute() error {
	if err := initServices(); err != nil {
		return err
	}
	return rootCmd.Execute()
}

// initServices builds the adapter stack from configuration. Already-set
// services are left alone so tests can inject their own.
func initServices() error {
	if ingestService != nil || askService != nil || keywordService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore(os.Getenv("DRYDOCK_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	store, err := sqlite.NewStore(os.Getenv("DRYDOCK_DATA_DIR"))
	if err != nil {
		return fmt.Errorf("open metadata store: %w", err)
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = cfg.GetString("gemini.api_key")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}

	embedder, err := gemini.NewEmbeddingService(gemini.Config{
		APIKey: apiKey,
		Model:  cfg.GetString("gemini.embedding_model"),
	})
	if err != nil {
		return fmt.Errorf("embedding service: %w", err)
	}

	completion, err := llmgemini.NewCompletionService(llmgemini.Config{
		APIKey: apiKey,
		Model:  cfg.GetString("gemini.model"),
	})
	if err != nil {
		return fmt.Errorf("completion service: %w", err)
	}

	vectors := buildVectorStore(cfg)

	throttleLimit := cfg.GetInt("throttle.limit")
	if throttleLimit == 0 {
		throttleLimit = services.DefaultThrottleLimit
	}
	var throttleOpts []services.ThrottleOption
	if cfg.GetBool("throttle.disabled") {
		throttleOpts = append(throttleOpts, services.WithThrottleDisabled())
	}
	throttle, err := services.NewThrottle(throttleLimit, services.DefaultThrottleWindow, throttleOpts...)
	if err != nil {
		return fmt.Errorf("throttle: %w", err)
	}

	chunkSize := cfg.GetInt("chunker.size")
	if chunkSize == 0 {
		chunkSize = services.DefaultChunkSize
	}
	chunker, err := services.NewChunker(chunkSize)
	if err != nil {
		return fmt.Errorf("chunker: %w", err)
	}

	indexer := services.NewIndexer(embedder, vectors, throttle)
	extractors := []driven.PageExtractor{
		extractpdf.NewExtractor(),
		plaintext.NewExtractor(),
	}

	documentStore = store.DocumentStore()
	ingestService = services.NewIngest(extractors, chunker, indexer, documentStore, vectors)

	retrieval := services.NewRetrieval(embedder, vectors)
	askService = services.NewChat(store.KeywordStore(), retrieval, completion)
	keywordService = services.NewKeywords(store.KeywordStore(), completion)

	return nil
}

// buildVectorStore picks Chroma when an address is configured and the
// in-memory store otherwise.
func buildVectorStore(cfg driven.ConfigStore) driven.VectorStore {
	url := os.Getenv("CHROMA_URL")
	if url == "" {
		url = cfg.GetString("chroma.url")
	}
	if url == "" {
		logger.Warn("No Chroma address configured, using the in-memory vector store (contents are lost on exit)")
		return vectormemory.NewVectorStore()
	}

	timeout := time.Duration(cfg.GetInt("chroma.timeout_seconds")) * time.Second
	return chroma.NewVectorStore(chroma.Config{BaseURL: url, Timeout: timeout})
}
