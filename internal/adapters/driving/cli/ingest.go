package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Add documents to your knowledge base",
	Long: `Ingests one or more files into your knowledge base.
Supported formats: PDF, DOCX, TXT, MD, EPUB. Each file is extracted,
sanitised, chunked and embedded, then persisted for retrieval.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := initServices(cmd.Context()); err != nil {
		return err
	}

	var failed int
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			cmd.PrintErrf("skipping %s: %v\n", path, err)
			failed++
			continue
		}

		raw := &domain.RawFile{
			Filename: filepath.Base(path),
			Content:  content,
			OwnerID:  owner,
		}

		result, err := ingestionService.Ingest(cmd.Context(), raw)
		if err != nil {
			cmd.PrintErrf("skipping %s: %v\n", path, err)
			failed++
			continue
		}

		cmd.Printf("%s: %q (%s, %d chunks, id %s)\n",
			filepath.Base(path), result.Title, result.FileType, result.ChunkCount, result.DocumentID)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(args))
	}
	return nil
}
