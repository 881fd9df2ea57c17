// Package cli содержит команды интерфейса командной строки чат-бота.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/trivia-chatbot/internal/config"
	"github.com/yourusername/trivia-chatbot/internal/logging"
	"github.com/yourusername/trivia-chatbot/internal/repository/csvfile"
	"github.com/yourusername/trivia-chatbot/internal/service"
)

// Значения глобальных флагов
var (
	configPath    string
	debugMode     bool
	enableLogging bool
	logLevel      string
	questionsFile string
	triviaFile    string
)

// app - сервисы, собранные в PersistentPreRunE для текущей команды
var app *App

// App объединяет сервисы, с которыми работают команды
type App struct {
	Store  *service.KnowledgeStore
	Trivia *service.TriviaEngine
	Chat   *service.ChatService

	logCloser io.Closer
}

var rootCmd = &cobra.Command{
	Use:   "chatbot",
	Short: "Question-answering chatbot with a trivia game",
	Long: `A CLI-based chatbot for answering questions, managing a question-answer
database, and playing trivia games about university services.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "path to the config file")
	flags.BoolVar(&debugMode, "debug", false, "enable debug mode")
	flags.BoolVar(&enableLogging, "enable-logging", false, "write logs to the log file")
	flags.StringVar(&logLevel, "log-level", "", "log level (DEBUG, INFO, WARNING, ERROR, CRITICAL)")
	flags.StringVar(&questionsFile, "questions-file", "", "path to the questions CSV file")
	flags.StringVar(&triviaFile, "trivia-file", "", "path to the trivia CSV file")
}

// Execute запускает корневую команду
func Execute() error {
	defer closeApp()
	return rootCmd.Execute()
}

// setupApp загружает конфигурацию, применяет флаги и загружает данные хранилищ
func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Без --enable-logging журнал отбрасывается, чтобы не смешиваться с выводом команд
	closer, err := logging.Setup(cfg.LoggingOptions(), io.Discard)
	if err != nil {
		return err
	}
	if debugMode {
		cmd.Println("DEBUG: Debug mode enabled")
	}

	store := service.NewKnowledgeStore(csvfile.NewQuestionRepo(cfg.Storage.QuestionsFile))
	if err := store.Load(); err != nil {
		closer.Close()
		return fmt.Errorf("failed to load questions: %w", err)
	}
	trivia := service.NewTriviaEngine(csvfile.NewTriviaRepo(cfg.Storage.TriviaFile), service.TriviaConfig{
		DefaultQuestions: cfg.Trivia.DefaultQuestions,
		MaxQuestions:     cfg.Trivia.MaxQuestions,
	})
	if err := trivia.Load(); err != nil {
		closer.Close()
		return fmt.Errorf("failed to load trivia questions: %w", err)
	}

	app = &App{
		Store:     store,
		Trivia:    trivia,
		Chat:      service.NewChatService(store, trivia),
		logCloser: closer,
	}
	return nil
}

// applyFlags переопределяет конфигурацию явно заданными флагами
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("questions-file") {
		cfg.Storage.QuestionsFile = questionsFile
	}
	if flags.Changed("trivia-file") {
		cfg.Storage.TriviaFile = triviaFile
	}
	if flags.Changed("enable-logging") {
		cfg.Logging.Enabled = enableLogging
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = strings.ToUpper(logLevel)
	}
	if debugMode {
		cfg.Logging.Level = logging.LevelDebug.String()
	}
}

func closeApp() {
	if app == nil {
		return
	}
	if app.logCloser != nil {
		app.logCloser.Close()
	}
	app = nil
}

// requireApp возвращает собранные сервисы
func requireApp() (*App, error) {
	if app == nil {
		return nil, errors.New("chatbot services not configured")
	}
	return app, nil
}
