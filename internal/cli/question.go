package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addQuestion    string
	addAnswer      string
	removeQuestion string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a question and answer to the knowledge base",
	Long: `Adds an answer to the knowledge base. Questions are matched case-insensitively;
adding a new answer to an existing question keeps the previous answers.`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a question from the knowledge base",
	Args:  cobra.NoArgs,
	RunE:  runRemove,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all questions in the knowledge base",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	addCmd.Flags().StringVar(&addQuestion, "question", "", "question text")
	addCmd.Flags().StringVar(&addAnswer, "answer", "", "answer text")
	_ = addCmd.MarkFlagRequired("question")
	_ = addCmd.MarkFlagRequired("answer")

	removeCmd.Flags().StringVar(&removeQuestion, "question", "", "question to remove")
	_ = removeCmd.MarkFlagRequired("question")

	rootCmd.AddCommand(addCmd, removeCmd, listCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	if err := a.Store.Add(addQuestion, addAnswer); err != nil {
		return fmt.Errorf("question not added: %w", err)
	}
	cmd.Printf("Question added: %s\n", addQuestion)
	return nil
}

func runRemove(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	removed, err := a.Store.Remove(removeQuestion)
	if err != nil {
		return fmt.Errorf("question not removed: %w", err)
	}
	if !removed {
		cmd.Printf("Question not found: %s\n", removeQuestion)
		return nil
	}
	cmd.Printf("Question removed: %s\n", removeQuestion)
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	printNumbered(cmd, a.Store.List(), "Questions in the database:", "No questions in the database.")
	return nil
}

// printNumbered выводит нумерованный список или сообщение о пустом списке
func printNumbered(cmd *cobra.Command, items []string, title, empty string) {
	if len(items) == 0 {
		cmd.Println(empty)
		return
	}
	cmd.Println(title)
	for i, item := range items {
		cmd.Printf("%d. %s\n", i+1, item)
	}
}
