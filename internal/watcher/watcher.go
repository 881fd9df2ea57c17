// Package watcher перечитывает файлы хранилища, когда их меняют на диске
// (например, правят questions.csv вручную при работающем сервере).
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yourusername/trivia-chatbot/internal/logging"
)

// Reloader перечитывает свое состояние из файла
type Reloader interface {
	Reload() error
}

// ReloaderFunc позволяет использовать функцию как Reloader
type ReloaderFunc func() error

// Reload вызывает f
func (f ReloaderFunc) Reload() error { return f() }

// Watcher следит за набором файлов. Наблюдение ведется за каталогами, так как
// атомарная запись через rename заменяет сам файл.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	targets map[string]Reloader
	timers  map[string]*time.Timer
	dirs    map[string]bool
}

// New создает Watcher. Серия событий в пределах debounce приводит к одной перезагрузке.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		fs:       fsw,
		debounce: debounce,
		targets:  make(map[string]Reloader),
		timers:   make(map[string]*time.Timer),
		dirs:     make(map[string]bool),
	}, nil
}

// Add регистрирует файл и обработчик его изменений
func (w *Watcher) Add(path string, r Reloader) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.dirs[dir] {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.targets[abs] = r
	logging.Debugf("[Watcher] Watching %s", abs)
	return nil
}

// Run обрабатывает события до отмены контекста
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Warnf("[Watcher] File watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Удаление файла не очищает данные в памяти
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	r, ok := w.targets[name]
	if !ok {
		return
	}
	if t, pending := w.timers[name]; pending {
		t.Reset(w.debounce)
		return
	}
	w.timers[name] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, name)
		w.mu.Unlock()

		if err := r.Reload(); err != nil {
			logging.Errorf("[Watcher] Failed to reload %s: %v", name, err)
			return
		}
		logging.Infof("[Watcher] Reloaded %s", name)
	})
}

// Close останавливает наблюдение и отложенные перезагрузки
func (w *Watcher) Close() error {
	w.mu.Lock()
	for name, t := range w.timers {
		t.Stop()
		delete(w.timers, name)
	}
	w.mu.Unlock()
	return w.fs.Close()
}
