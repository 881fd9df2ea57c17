package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	triviaQuestion string
	optionA        string
	optionB        string
	optionC        string
	optionD        string
	correctAnswer  string
)

var addTriviaCmd = &cobra.Command{
	Use:   "add-trivia",
	Short: "Add a multiple-choice trivia question",
	Long: `Adds a trivia question with four distinct options.
--correct-answer must match one of the options exactly.`,
	Args: cobra.NoArgs,
	RunE: runAddTrivia,
}

var listTriviaCmd = &cobra.Command{
	Use:   "list-trivia",
	Short: "List all trivia questions",
	Args:  cobra.NoArgs,
	RunE:  runListTrivia,
}

func init() {
	flags := addTriviaCmd.Flags()
	flags.StringVar(&triviaQuestion, "trivia-question", "", "trivia question text")
	flags.StringVar(&optionA, "option-a", "", "option A")
	flags.StringVar(&optionB, "option-b", "", "option B")
	flags.StringVar(&optionC, "option-c", "", "option C")
	flags.StringVar(&optionD, "option-d", "", "option D")
	flags.StringVar(&correctAnswer, "correct-answer", "", "correct answer (must match one of the options)")
	for _, name := range []string{"trivia-question", "option-a", "option-b", "option-c", "option-d", "correct-answer"} {
		_ = addTriviaCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(addTriviaCmd, listTriviaCmd)
}

func runAddTrivia(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	if err := a.Trivia.AddQuestion(triviaQuestion, optionA, optionB, optionC, optionD, correctAnswer); err != nil {
		return fmt.Errorf("trivia question not added: %w", err)
	}
	cmd.Printf("Trivia question added: %s\n", triviaQuestion)
	return nil
}

func runListTrivia(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	printNumbered(cmd, a.Trivia.List(), "Trivia questions in the database:", "No trivia questions in the database.")
	return nil
}
