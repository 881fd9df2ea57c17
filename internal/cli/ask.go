package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the chatbot a question",
	Long: `Answers a single question from the knowledge base.
Time and date questions ("what is the time?", "date?") are answered from the clock.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	resp, err := a.Chat.Ask(strings.Join(args, " "))
	if err != nil {
		return err
	}
	cmd.Printf("Bot: %s\n", resp.Response)
	return nil
}
