package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/yourusername/trivia-chatbot/internal/config"
	"github.com/yourusername/trivia-chatbot/internal/handler"
	"github.com/yourusername/trivia-chatbot/internal/logging"
	"github.com/yourusername/trivia-chatbot/internal/middleware"
	"github.com/yourusername/trivia-chatbot/internal/repository/csvfile"
	"github.com/yourusername/trivia-chatbot/internal/service"
	"github.com/yourusername/trivia-chatbot/internal/watcher"
	ws "github.com/yourusername/trivia-chatbot/internal/websocket"
	"github.com/yourusername/trivia-chatbot/pkg/database"
)

// Задержка перед перечитыванием файла после серии событий записи
const reloadDebounce = 300 * time.Millisecond

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	logCloser, err := logging.Setup(cfg.LoggingOptions(), os.Stderr)
	if err != nil {
		log.Printf("Failed to set up logging: %v", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	// Инициализируем хранилища и сервисы
	knowledgeStore := service.NewKnowledgeStore(csvfile.NewQuestionRepo(cfg.Storage.QuestionsFile))
	if err := knowledgeStore.Load(); err != nil {
		logging.Criticalf("[Main] Failed to load knowledge base: %v", err)
		os.Exit(1)
	}

	triviaEngine := service.NewTriviaEngine(csvfile.NewTriviaRepo(cfg.Storage.TriviaFile), service.TriviaConfig{
		DefaultQuestions: cfg.Trivia.DefaultQuestions,
		MaxQuestions:     cfg.Trivia.MaxQuestions,
	})
	if err := triviaEngine.Load(); err != nil {
		logging.Criticalf("[Main] Failed to load trivia catalog: %v", err)
		os.Exit(1)
	}

	chatService := service.NewChatService(knowledgeStore, triviaEngine)

	// Создаем контекст для управления фоновыми задачами
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis нужен только для ограничения частоты запросов
	var (
		redisClient redis.UniversalClient
		rateLimit   gin.HandlerFunc
	)
	if cfg.RateLimit.Enabled {
		redisClient, err = database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			logging.Criticalf("[Main] Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		limiter := middleware.NewRateLimiter(redisClient)
		rateLimit = limiter.Limit(middleware.DefaultAPIRateLimitConfig(cfg.RateLimit.Requests, cfg.RateLimit.Window))
		logging.Infof("[Main] Rate limit enabled: %d requests per %ds", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	// Перечитываем файлы при изменении на диске
	if cfg.Server.WatchFiles {
		fileWatcher, err := watcher.New(reloadDebounce)
		if err != nil {
			logging.Warnf("[Main] File watcher disabled: %v", err)
		} else {
			defer fileWatcher.Close()
			if err := fileWatcher.Add(cfg.Storage.QuestionsFile, watcher.ReloaderFunc(knowledgeStore.Reload)); err != nil {
				logging.Warnf("[Main] Failed to watch %s: %v", cfg.Storage.QuestionsFile, err)
			}
			if err := fileWatcher.Add(cfg.Storage.TriviaFile, watcher.ReloaderFunc(triviaEngine.Reload)); err != nil {
				logging.Warnf("[Main] Failed to watch %s: %v", cfg.Storage.TriviaFile, err)
			}
			go fileWatcher.Run(ctx)
		}
	}

	// Инициализируем WebSocket менеджер и обработчики
	wsManager := ws.NewManager()
	handlers := handler.Handlers{
		Chat:     handler.NewChatHandler(chatService),
		Question: handler.NewQuestionHandler(knowledgeStore, cfg.Server.MaxUploadMB<<20),
		Trivia:   handler.NewTriviaHandler(triviaEngine),
		WS:       handler.NewWSHandler(wsManager, chatService, triviaEngine, cfg.CORS.AllowedOrigins),
	}

	router := handler.NewRouter(handlers, handler.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimit:      rateLimit,
	})

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		logging.Infof("[Main] Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Criticalf("[Main] Failed to start server: %v", err)
			cancel()
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	// Останавливаем фоновые горутины (наблюдатель за файлами)
	cancel()

	// Закрываем WebSocket соединения: Shutdown не ждет hijacked соединения
	wsManager.CloseAll()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Errorf("[Main] Server forced to shutdown: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logging.Warnf("[Main] Error closing Redis client: %v", err)
		}
	}

	log.Println("Server exited properly")
}
