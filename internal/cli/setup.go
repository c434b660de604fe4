package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/yildizm/PneumoDetect/internal/api"
	"github.com/yildizm/PneumoDetect/internal/app"
	"github.com/yildizm/PneumoDetect/internal/config"
	"github.com/yildizm/PneumoDetect/internal/formatter"
	"github.com/yildizm/PneumoDetect/internal/i18n"
	"github.com/yildizm/PneumoDetect/internal/logger"
	"github.com/yildizm/PneumoDetect/internal/media"
	"github.com/yildizm/PneumoDetect/internal/toast"
)

// services bundles the stores and client shared by the interactive commands
type services struct {
	config *config.Config
	tr     *i18n.Translator
	log    *logger.Logger
	client *api.Client
	toasts *toast.Store
	store  *app.Store
}

// newServices wires the remote client, the notification store and the application store
func newServices(cfg *config.Config, log *logger.Logger) (*services, error) {
	client, err := newAPIClient(cfg)
	if err != nil {
		return nil, err
	}

	tr := newTranslator()
	toasts := toast.NewStore(toast.WithDefaultDuration(cfg.UI.ToastDuration))
	previews := media.NewTempPreviews(config.ExpandPath(cfg.Storage.PreviewDir))

	store := app.NewStore(client, toasts, previews,
		app.WithLogger(log.WithComponent("store")),
		app.WithTranslator(tr),
	)

	return &services{
		config: cfg,
		tr:     tr,
		log:    log,
		client: client,
		toasts: toasts,
		store:  store,
	}, nil
}

// Close releases the preview file and stops pending toast timers
func (s *services) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Warn("failed to release preview: %v", err)
	}
	s.toasts.Close()
}

// newAPIClient creates a client for the configured service
func newAPIClient(cfg *config.Config) (*api.Client, error) {
	client, err := api.New(&api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

// GetLogger returns a stderr logger for a CLI component
func GetLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// openLogFile opens the log file the interactive interface writes to.
// The returned closer is never nil.
func openLogFile(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}

	path = config.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return io.Discard, func() {}, fmt.Errorf("failed to create log directory: %w", err)
	}

	// #nosec G304 - path comes from the user's configuration
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return io.Discard, func() {}, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

// useColor resolves the color mode against the destination
func useColor(w io.Writer) bool {
	switch GetGlobalConfig().Output.ColorMode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// getFormatter returns the formatter for the given format
func getFormatter(format string, out io.Writer) (formatter.Formatter, error) {
	return formatter.New(format, formatter.Options{
		Color:           useColor(out),
		Translator:      newTranslator(),
		TimestampFormat: GetGlobalConfig().Output.TimestampFormat,
	})
}

// commandContext returns the command's context, or a background context outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
