package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
	"github.com/yourusername/trivia-chatbot/internal/handler/helper"
	"github.com/yourusername/trivia-chatbot/internal/service"
)

var exitCommands = []string{"quit", "exit", "bye"}

// Стили вывода интерактивного режима
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	botStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Run in interactive chat mode",
	Long: `Starts an interactive chat session.
Type your questions, 'trivia' to start or end a trivia game, and 'quit', 'exit' or 'bye' to leave.`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	session := newSession(a.Chat, a.Trivia, in, cmd.OutOrStdout(), isTerminal(in))
	return session.Run()
}

// isTerminal сообщает, подключен ли r к терминалу
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// session - один сеанс интерактивного режима
type session struct {
	chat   *service.ChatService
	trivia *service.TriviaEngine
	in     *bufio.Scanner
	out    io.Writer
	prompt bool
}

func newSession(chat *service.ChatService, trivia *service.TriviaEngine, in io.Reader, out io.Writer, prompt bool) *session {
	return &session{
		chat:   chat,
		trivia: trivia,
		in:     bufio.NewScanner(in),
		out:    out,
		prompt: prompt,
	}
}

// Run читает строки до команды выхода или конца ввода.
// Активная игра при выходе завершается.
func (s *session) Run() error {
	fmt.Fprintln(s.out, titleStyle.Render("🤖 Chatbot Interactive Mode"))
	fmt.Fprintln(s.out, "Type your questions, 'trivia' to start trivia game, or 'quit' to exit.")
	fmt.Fprintln(s.out)

	for {
		s.showPrompt()
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			s.goodbye()
			return s.in.Err()
		}

		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		if slices.Contains(exitCommands, strings.ToLower(line)) {
			s.goodbye()
			return nil
		}

		resp, err := s.chat.Ask(line)
		if err != nil {
			fmt.Fprintf(s.out, "%s %v\n", botStyle.Render("Bot:"), err)
			continue
		}
		s.render(resp)
	}
}

// showPrompt выводит приглашение только для терминала; во время игры приглашение
// заменяет подсказка из текста вопроса
func (s *session) showPrompt() {
	if !s.prompt || s.trivia.Status().Active {
		return
	}
	fmt.Fprint(s.out, "You: ")
}

func (s *session) goodbye() {
	if _, ended := s.chat.EndActiveGame(); ended {
		fmt.Fprintln(s.out, "Ending trivia game...")
	}
	fmt.Fprintln(s.out, "Goodbye!")
}

func (s *session) render(resp entity.ChatResponse) {
	text := resp.Response
	switch {
	case resp.Answer != nil && resp.Answer.Kind == entity.AnswerCorrect:
		text = correctStyle.Render(text)
	case resp.Answer != nil && resp.Answer.Kind == entity.AnswerIncorrect:
		text = wrongStyle.Render(text) + " " + mutedStyle.Render("The correct answer was: "+resp.Answer.CorrectAnswer)
	}
	fmt.Fprintf(s.out, "%s %s\n", botStyle.Render("Bot:"), text)

	if resp.Answer != nil && resp.Answer.Counted() {
		fmt.Fprintln(s.out, mutedStyle.Render(fmt.Sprintf("Score: %d/%d", resp.Answer.Score, resp.Answer.Total)))
	}
	if resp.Question != nil {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, questionStyle.Render(helper.FormatQuestion(resp.Question)))
	}
	if resp.Kind == entity.ChatTriviaFinalResult && resp.TriviaResult != nil {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, titleStyle.Render(helper.FormatSummary(resp.TriviaResult)))
	}
}
