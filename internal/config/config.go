package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/yourusername/trivia-chatbot/internal/logging"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Trivia    TriviaConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port            string `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // секунды
	WriteTimeout    int    `mapstructure:"write_timeout"`    // секунды
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // секунды
	MaxUploadMB     int64  `mapstructure:"max_upload_mb"`
	// WatchFiles включает перечитывание файлов хранилища при их изменении на диске
	WatchFiles bool `mapstructure:"watch_files"`
}

// StorageConfig содержит пути к файлам базы вопросов и каталога викторины
type StorageConfig struct {
	QuestionsFile string `mapstructure:"questions_file"`
	TriviaFile    string `mapstructure:"trivia_file"`
}

// TriviaConfig содержит размеры игры
type TriviaConfig struct {
	DefaultQuestions int `mapstructure:"default_questions"`
	MaxQuestions     int `mapstructure:"max_questions"`
}

// LoggingConfig содержит настройки журнала
type LoggingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
}

// CORSConfig содержит список разрешенных источников фронтенда
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт).
	Addrs []string `mapstructure:"addrs"`

	// Addr: адрес для режима 'single', если Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // мс
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // мс
}

// IsConfigured сообщает, задан ли хотя бы один адрес Redis
func (r *RedisConfig) IsConfigured() bool {
	return len(r.Addrs) > 0 || r.Addr != ""
}

// RateLimitConfig содержит настройки ограничения частоты запросов (требует Redis)
type RateLimitConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Requests int  `mapstructure:"requests"` // запросов за окно
	Window   int  `mapstructure:"window"`   // секунды
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "5000")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 15)
	vip.SetDefault("server.shutdown_timeout", 10)
	vip.SetDefault("server.max_upload_mb", 10)
	vip.SetDefault("server.watch_files", true)

	vip.SetDefault("storage.questions_file", "questions.csv")
	vip.SetDefault("storage.trivia_file", "trivia.csv")

	vip.SetDefault("trivia.default_questions", 5)
	vip.SetDefault("trivia.max_questions", 20)

	vip.SetDefault("logging.enabled", false)
	vip.SetDefault("logging.level", "WARNING")
	vip.SetDefault("logging.file", "app.log")

	vip.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:3001"})

	vip.SetDefault("redis.mode", "single")

	vip.SetDefault("ratelimit.enabled", false)
	vip.SetDefault("ratelimit.requests", 60)
	vip.SetDefault("ratelimit.window", 60)
}

// Load загружает конфигурацию: умолчания, затем файл (если есть), затем переменные окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр, без глобального состояния

	setDefaults(vip)

	// Переменные окружения привязываются явно
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("storage.questions_file", "QUESTIONS_FILE")
	vip.BindEnv("storage.trivia_file", "TRIVIA_FILE")
	vip.BindEnv("logging.level", "LOG_LEVEL")
	vip.BindEnv("logging.enabled", "LOG_ENABLED")
	vip.BindEnv("logging.file", "LOG_FILE")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("ratelimit.enabled", "RATE_LIMIT_ENABLED")
	vip.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
				log.Printf("[Config] Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)
	cfg.Redis.Addrs = splitList(cfg.Redis.Addrs)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if os.Getenv("GIN_MODE") == "debug" {
		log.Printf("[Config] Questions file: %s, trivia file: %s", cfg.Storage.QuestionsFile, cfg.Storage.TriviaFile)
		log.Printf("[Config] Server port: %s, redis configured: %t, rate limit: %t",
			cfg.Server.Port, cfg.Redis.IsConfigured(), cfg.RateLimit.Enabled)
	}

	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Storage.QuestionsFile == "" || c.Storage.TriviaFile == "" {
		return fmt.Errorf("storage configuration is incomplete (check QUESTIONS_FILE, TRIVIA_FILE env vars)")
	}
	if c.Trivia.DefaultQuestions <= 0 || c.Trivia.MaxQuestions <= 0 {
		return fmt.Errorf("trivia sizes must be positive (default=%d, max=%d)", c.Trivia.DefaultQuestions, c.Trivia.MaxQuestions)
	}
	if c.Trivia.DefaultQuestions > c.Trivia.MaxQuestions {
		return fmt.Errorf("trivia default size %d exceeds max size %d", c.Trivia.DefaultQuestions, c.Trivia.MaxQuestions)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.RateLimit.Enabled {
		if !c.Redis.IsConfigured() {
			return fmt.Errorf("rate limiting requires redis (check REDIS_ADDR env var)")
		}
		if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
			return fmt.Errorf("rate limit requests and window must be positive")
		}
	}
	return nil
}

// LoggingOptions преобразует настройки журнала в параметры пакета logging
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{Enabled: c.Logging.Enabled, Level: c.Logging.Level, File: c.Logging.File}
}

// splitList разбивает элементы вида "a,b" (значения из переменных окружения) и убирает пустые
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
