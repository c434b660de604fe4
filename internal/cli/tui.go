package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yildizm/PneumoDetect/internal/app"
	"github.com/yildizm/PneumoDetect/internal/config"
	"github.com/yildizm/PneumoDetect/internal/logger"
	"github.com/yildizm/PneumoDetect/internal/ui"
)

var tuiPage string

func newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive interface",
		Long: `Open the full-screen interface for analyzing chest X-rays.

Type or paste an image path on the home page and press Enter to analyze it.
Tab cycles between the home, result, history and guide pages.

Examples:
  pneumodetect
  pneumodetect tui --page history
  pneumodetect tui --lang vi`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}

	cmd.Flags().StringVar(&tuiPage, "page", "", "start page (home, result, history, guide)")

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	startPage := app.PageHome
	if tuiPage != "" {
		page, err := app.ParsePage(tuiPage)
		if err != nil {
			return err
		}
		startPage = page
	}

	// the terminal belongs to the interface, diagnostics go to the log file
	logOutput, closeLog, err := openLogFile(cfg.Logging.File)
	if err != nil {
		GetLogger("tui").Warn("logging disabled: %v", err)
	}
	defer closeLog()
	log := logger.NewWithWriter("pneumodetect", logOutput, isVerbose)

	svc, err := newServices(cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	log.Info("starting interface against %s", svc.client.BaseURL())
	svc.store.NavigateTo(startPage)

	err = ui.InteractiveRun(commandContext(cmd), ui.Options{
		Store:           svc.store,
		Toasts:          svc.toasts,
		Translator:      svc.tr,
		Logger:          log,
		MaxFileSize:     cfg.Upload.MaxFileSize,
		DownloadDir:     config.ExpandPath(cfg.Storage.DownloadDir),
		TimestampFormat: cfg.Output.TimestampFormat,
	})
	if err != nil {
		return fmt.Errorf("interface error: %w", err)
	}
	return nil
}
