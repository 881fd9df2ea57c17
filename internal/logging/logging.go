// Package logging добавляет уровни поверх стандартного логгера.
// Сообщения пишутся через log.Output с префиксом уровня ("WARNING: ...").
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Level - уровень важности сообщения
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

var levelNames = map[Level]string{
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int32(l))
}

// ParseLevel разбирает имя уровня без учета регистра. "WARN" допускается как синоним WARNING.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARNING", "WARN":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	default:
		return LevelWarning, fmt.Errorf("unknown log level %q (expected DEBUG, INFO, WARNING, ERROR or CRITICAL)", name)
	}
}

var current atomic.Int32

func init() {
	current.Store(int32(LevelWarning))
}

// SetLevel устанавливает минимальный уровень выводимых сообщений
func SetLevel(l Level) {
	current.Store(int32(l))
}

// CurrentLevel возвращает текущий минимальный уровень
func CurrentLevel() Level {
	return Level(current.Load())
}

// Enabled сообщает, будут ли выведены сообщения уровня l
func Enabled(l Level) bool {
	return l >= CurrentLevel()
}

// Options описывает настройку вывода логов
type Options struct {
	Enabled bool   // Писать в файл
	Level   string // Минимальный уровень
	File    string // Путь к файлу логов (app.log)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup настраивает стандартный логгер. Если запись в файл включена, открывает файл
// на дозапись, иначе направляет вывод в fallback (os.Stderr для сервера, io.Discard для CLI).
// Возвращаемый io.Closer нужно закрыть при завершении работы.
func Setup(opts Options, fallback io.Writer) (io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	SetLevel(level)
	log.SetFlags(log.LstdFlags)

	if !opts.Enabled {
		if fallback == nil {
			fallback = os.Stderr
		}
		log.SetOutput(fallback)
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", opts.File, err)
	}
	log.SetOutput(f)
	return f, nil
}

func logf(l Level, format string, args ...interface{}) {
	if !Enabled(l) {
		return
	}
	// calldepth 3: logf -> Xxxf -> вызывающий код
	_ = log.Output(3, l.String()+": "+fmt.Sprintf(format, args...))
}

// Debugf пишет отладочное сообщение
func Debugf(format string, args ...interface{}) { logf(LevelDebug, format, args...) }

// Infof пишет информационное сообщение
func Infof(format string, args ...interface{}) { logf(LevelInfo, format, args...) }

// Warnf пишет предупреждение
func Warnf(format string, args ...interface{}) { logf(LevelWarning, format, args...) }

// Errorf пишет сообщение об ошибке
func Errorf(format string, args ...interface{}) { logf(LevelError, format, args...) }

// Criticalf пишет сообщение о критической ошибке
func Criticalf(format string, args ...interface{}) { logf(LevelCritical, format, args...) }
