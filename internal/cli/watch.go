package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/PneumoDetect/internal/app"
	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/emoji"
	"github.com/yildizm/PneumoDetect/internal/formatter"
	"github.com/yildizm/PneumoDetect/internal/i18n"
	"github.com/yildizm/PneumoDetect/internal/logger"
	"github.com/yildizm/PneumoDetect/internal/media"
	"github.com/yildizm/PneumoDetect/internal/toast"
	"golang.org/x/sync/errgroup"
)

var watchDebounce time.Duration

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Analyze X-ray images as they appear in a directory",
		Long: `Watch a directory and analyze every JPEG or PNG image that is created
or rewritten in it.

Writes are debounced so a file is analyzed once its writer goes quiet.
Images are analyzed one at a time. Results are printed to stdout and
notifications to stderr. Press Ctrl+C to stop watching.

Examples:
  pneumodetect watch ./incoming
  pneumodetect watch --debounce 2s /mnt/scanner`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before a file is analyzed (default from config)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	log := GetLogger("watch")

	dir := filepath.Clean(args[0])
	if err := validateWatchDir(dir); err != nil {
		return fmt.Errorf("invalid directory: %w", err)
	}

	debounce := cfg.Watch.Debounce
	if cmd.Flags().Changed("debounce") {
		debounce = watchDebounce
	}

	watcher, err := newImageWatcher(dir, cfg.Watch.Extensions, debounce, log)
	if err != nil {
		return err
	}
	defer watcher.Close()

	svc, err := newServices(cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	printer := &watchPrinter{
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		format: getOutputFormat(),
		layout: cfg.Output.TimestampFormat,
		tr:     svc.tr,
	}
	defer svc.toasts.Subscribe(printer.toasts)()
	defer svc.store.Subscribe(printer.state)()

	log.Info("watching %s against %s", dir, svc.client.BaseURL())
	fmt.Fprintf(cmd.ErrOrStderr(), "%s Watching %s (Ctrl+C to stop)\n", emoji.GetEmoji("watch"), dir)

	return watchAndAnalyze(commandContext(cmd), watcher, &watchSession{
		store:       svc.store,
		toasts:      svc.toasts,
		tr:          svc.tr,
		log:         log,
		maxFileSize: cfg.Upload.MaxFileSize,
	})
}

// watchAndAnalyze runs the watcher and analyzes the images it reports until
// ctx is cancelled.
func watchAndAnalyze(ctx context.Context, watcher *imageWatcher, session *watchSession) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return watcher.Run(gctx)
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case path := <-watcher.Ready():
				session.analyze(gctx, path)
			}
		}
	})

	return g.Wait()
}

// watchSession feeds watched files through the application store
type watchSession struct {
	store       *app.Store
	toasts      app.Notifier
	tr          *i18n.Translator
	log         *logger.Logger
	maxFileSize int64
}

// analyze selects and analyzes one file. The store reports the outcome.
func (s *watchSession) analyze(ctx context.Context, path string) {
	img, err := media.Load(path, s.maxFileSize)
	if err != nil {
		s.log.WarnWithFields("skipping image", []logger.Field{logger.Path(path), logger.Error(err)})
		s.toasts.Show(toast.TypeError, fmt.Sprintf("%s: %s", filepath.Base(path), s.tr.T(media.MessageKey(err))))
		return
	}

	s.log.Debug("analyzing %s", path)
	s.store.SetSelectedImage(img)
	s.store.AnalyzeCurrentImage(ctx)
}

// watchPrinter prints new results and notifications as they arrive
type watchPrinter struct {
	out    io.Writer
	errOut io.Writer
	format string
	layout string
	tr     *i18n.Translator

	mu         sync.Mutex
	lastResult string
	seenToasts map[string]bool
}

// state prints the current result the first time it is seen
func (p *watchPrinter) state(s app.State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r := s.CurrentResult
	if r == nil || r.ID == p.lastResult {
		return
	}
	p.lastResult = r.ID

	name := ""
	if s.SelectedImage != nil {
		name = s.SelectedImage.Name
	}
	p.printResult(name, *r)
}

func (p *watchPrinter) printResult(name string, r common.AnalysisResult) {
	if p.format != formatter.FormatText && p.format != "" {
		f, err := formatter.New(p.format, formatter.Options{Translator: p.tr, TimestampFormat: p.layout})
		if err == nil {
			if output, err := f.Format(&formatter.Report{Results: []common.AnalysisResult{r}, GeneratedAt: time.Now()}); err == nil {
				_, _ = p.out.Write(output)
				return
			}
		}
	}

	fmt.Fprintf(p.out, "[%s] %s %s: %s (%.1f%%)\n",
		r.FormatTimestamp(p.layout), emoji.ForPrediction(r.Prediction.IsPneumonia()), name, p.tr.T(r.Prediction.TranslationKey()),
		r.Probabilities.Confidence()*100)
}

// toasts prints notifications not printed before
func (p *watchPrinter) toasts(list []toast.Toast) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := make(map[string]bool, len(list))
	for _, t := range list {
		current[t.ID] = true
		if p.seenToasts[t.ID] {
			continue
		}
		fmt.Fprintf(p.errOut, "%s %s\n", emoji.ForToast(t.Type), t.Message)
	}
	p.seenToasts = current
}

// imageWatcher reports image files in a directory once writes to them settle
type imageWatcher struct {
	dir        string
	extensions []string
	debounce   time.Duration
	log        *logger.Logger
	fs         *fsnotify.Watcher

	mu     sync.Mutex
	timers map[string]*time.Timer
	ready  chan string
	done   chan struct{}
	once   sync.Once
}

// newImageWatcher starts watching dir
func newImageWatcher(dir string, extensions []string, debounce time.Duration, log *logger.Logger) (*imageWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.F("dir", dir))

	return &imageWatcher{
		dir:        dir,
		extensions: extensions,
		debounce:   debounce,
		log:        log,
		fs:         fsw,
		timers:     make(map[string]*time.Timer),
		ready:      make(chan string, 16),
		done:       make(chan struct{}),
	}, nil
}

// Ready delivers settled image paths
func (w *imageWatcher) Ready() <-chan string {
	return w.ready
}

// Run processes file system events until ctx is cancelled
func (w *imageWatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error: %v", err)
		}
	}
}

// handleEvent schedules created or written images and forgets removed ones
func (w *imageWatcher) handleEvent(event fsnotify.Event) {
	if !media.IsImagePath(event.Name, w.extensions) {
		return
	}

	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		w.schedule(event.Name)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.cancel(event.Name)
	}
}

// schedule (re)starts the quiet period for path
func (w *imageWatcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() { w.fire(path) })
}

func (w *imageWatcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
		delete(w.timers, path)
	}
}

func (w *imageWatcher) fire(path string) {
	w.mu.Lock()
	delete(w.timers, path)
	w.mu.Unlock()

	select {
	case w.ready <- path:
	case <-w.done:
	}
}

// Close stops pending timers and the file system watcher
func (w *imageWatcher) Close() {
	w.once.Do(func() {
		close(w.done)

		w.mu.Lock()
		for path, t := range w.timers {
			t.Stop()
			delete(w.timers, path)
		}
		w.mu.Unlock()

		if err := w.fs.Close(); err != nil {
			w.log.Warn("failed to close watcher: %v", err)
		}
	})
}

// validateWatchDir validates that a path is a directory that can be watched
func validateWatchDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty path")
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}
	return nil
}
