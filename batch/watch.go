package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/formulafmt/scanner"
)

// settleDelay groups the burst of events an editor emits for one save.
const settleDelay = 100 * time.Millisecond

// Watcher re-renders formula files whenever they are written.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	renderer Renderer
	filter   *scanner.Scanner
	onResult func(Result)

	mu      sync.Mutex
	pending map[string]*time.Timer
	running bool
	done    chan struct{}
}

// NewWatcher returns a Watcher that passes each re-rendered file to
// onResult. onResult may be called from several goroutines.
func NewWatcher(logger *zap.Logger, r Renderer, extensions []string, onResult func(Result)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(extensions) == 0 {
		extensions = []string{scanner.DefaultExtension}
	}
	return &Watcher{
		watcher:  fw,
		logger:   logger,
		renderer: r,
		filter:   scanner.New("", extensions...),
		onResult: onResult,
		pending:  make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}, nil
}

// Add watches every directory under each root. A file root watches its
// parent directory.
func (w *Watcher) Add(roots ...string) error {
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			if err := w.watcher.Add(filepath.Dir(root)); err != nil {
				return fmt.Errorf("error adding directory to watcher: %w", err)
			}
			continue
		}
		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	return nil
}

func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return errors.New("already watching")
	}
	w.running = true
	go w.loop()
	return nil
}

// Close stops watching and waits for the event loop to exit. Renders
// already scheduled are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	for name, timer := range w.pending {
		timer.Stop()
		delete(w.pending, name)
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	if running {
		<-w.done
	}
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !w.filter.IsTarget(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	if timer, ok := w.pending[event.Name]; ok {
		timer.Reset(settleDelay)
		return
	}
	name := event.Name
	w.pending[name] = time.AfterFunc(settleDelay, func() { w.render(name) })
}

func (w *Watcher) render(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	running := w.running
	w.mu.Unlock()
	if !running {
		return
	}

	result, err := ProcessFile(w.renderer, path)
	if err != nil {
		w.logger.Error("Error processing file", zap.String("file", path), zap.Error(err))
		return
	}
	w.logger.Debug("Rendered", zap.String("file", path))
	if w.onResult != nil {
		w.onResult(result)
	}
}
