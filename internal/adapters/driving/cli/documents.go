package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage knowledge base documents",
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your documents",
	RunE:  runDocumentsList,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [document-id]",
	Short: "Delete a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDelete,
}

func init() {
	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if err := initServices(cmd.Context()); err != nil {
		return err
	}
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	docs, err := ingestionService.Documents(cmd.Context(), owner)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		cmd.Println("No documents. Use 'recall ingest' to add some.")
		return nil
	}

	for i := range docs {
		cmd.Printf("%s  %-6s %8d bytes  %s\n",
			docs[i].ID, docs[i].FileType, docs[i].FileSize, docs[i].Title)
	}
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	if err := initServices(cmd.Context()); err != nil {
		return err
	}
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	if err := ingestionService.Delete(cmd.Context(), owner, args[0]); err != nil {
		return err
	}

	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
