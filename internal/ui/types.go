package ui

import (
	"context"

	"github.com/yildizm/PneumoDetect/internal/app"
	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/i18n"
	"github.com/yildizm/PneumoDetect/internal/logger"
	"github.com/yildizm/PneumoDetect/internal/media"
	"github.com/yildizm/PneumoDetect/internal/toast"
)

// StateStore is the part of app.Store the interface drives
type StateStore interface {
	Snapshot() app.State
	Subscribe(listener app.Listener) func()
	NavigateTo(page app.Page)
	SetSelectedImage(img *media.Image)
	AnalyzeCurrentImage(ctx context.Context)
	LoadHistory(ctx context.Context)
	ClearResults()
	ViewResult(result common.AnalysisResult)
}

// ToastSource is the part of toast.Store the interface drives
type ToastSource interface {
	Show(t toast.Type, message string) string
	Dismiss(id string)
	List() []toast.Toast
	Subscribe(listener toast.Listener) func()
}

// Options configures the interactive model
type Options struct {
	Store      StateStore
	Toasts     ToastSource
	Translator *i18n.Translator
	Logger     *logger.Logger

	MaxFileSize     int64  // largest image accepted from the path input
	DownloadDir     string // expanded directory for the download key
	TimestampFormat string
}
