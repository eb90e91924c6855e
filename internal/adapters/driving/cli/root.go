// Package cli implements the recall command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall/internal/core/ports/driving"
	"github.com/recall-labs/recall/internal/logger"
)

// version is injected by Execute.
var version = "dev"

var (
	cfgPath string
	verbose bool
	owner   string
)

// Services used by the commands. Wired lazily on first use so that
// commands like version and help never touch config or providers.
var (
	ingestionService driving.IngestionService
	retrievalService driving.RetrievalService
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Personal knowledge retrieval engine",
	Long: `Recall ingests your documents (PDF, DOCX, TXT, MD, EPUB) into a
personal knowledge base and answers semantic queries over it.

Uploads are extracted, sanitised, chunked and embedded; searches rank
your own passages by similarity and return explainable results.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default ~/.recall/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&owner, "user", "local", "user whose knowledge base to operate on")
}

// Execute runs the root command. The context cancels on shutdown
// signals so serve-style commands exit gracefully.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	defer shutdownServices()
	return rootCmd.ExecuteContext(ctx)
}
