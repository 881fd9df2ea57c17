package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/trivia-chatbot/internal/service"
	"github.com/yourusername/trivia-chatbot/internal/tabular"
)

var (
	importFilepath string
	importFiletype string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import questions from a CSV or XLSX file",
	Long: `Imports questions from a file with the columns question, answer1..answer4.
Imported questions replace existing answers for the same question.
The file type is taken from the extension unless --filetype is given.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFilepath, "filepath", "", "path to the file to import")
	importCmd.Flags().StringVar(&importFiletype, "filetype", "", "file type: CSV or XLSX")
	_ = importCmd.MarkFlagRequired("filepath")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	var result service.ImportResult
	if importFiletype == "" {
		result, err = a.Store.ImportFile(importFilepath)
	} else {
		result, err = importWithType(a.Store, importFilepath, importFiletype)
	}
	if err != nil {
		return fmt.Errorf("questions not imported from %s: %w", importFilepath, err)
	}

	cmd.Printf("Imported %d questions from %s\n", result.Imported, importFilepath)
	if result.Skipped > 0 {
		cmd.Printf("Skipped %d rows without a question or answers\n", result.Skipped)
	}
	return nil
}

func importWithType(store *service.KnowledgeStore, path, filetype string) (service.ImportResult, error) {
	format, err := tabular.ParseFormat(filetype)
	if err != nil {
		return service.ImportResult{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return service.ImportResult{}, err
	}
	defer f.Close()
	return store.ImportFrom(f, format)
}
