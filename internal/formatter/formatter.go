package formatter

import (
	"fmt"
	"time"

	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/i18n"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// Report is a batch of classifications plus the inputs that could not be analyzed
type Report struct {
	Results     []common.AnalysisResult
	Failures    []Failure
	GeneratedAt time.Time
}

// Failure records one input that produced no result
type Failure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Options tune the human-readable formatters
type Options struct {
	Color           bool
	Translator      *i18n.Translator
	TimestampFormat string
}

const defaultTimestampFormat = "2006-01-02 15:04:05"

// Supported output format names
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// New returns the formatter registered under name
func New(name string, opts Options) (Formatter, error) {
	if opts.Translator == nil {
		opts.Translator = i18n.NewTranslator(i18n.DefaultLanguage)
	}

	switch name {
	case FormatText, "":
		return NewTerminal(opts), nil
	case FormatJSON:
		return NewJSON(), nil
	case FormatMarkdown:
		return NewMarkdown(opts), nil
	case FormatCSV:
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be one of: json, text, markdown, csv)", name)
	}
}
