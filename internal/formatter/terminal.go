package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/i18n"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts            *termfmt.TerminalOptions
	tr              *i18n.Translator
	timestampFormat string
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(o Options) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = o.Color
	opts.Emoji = true
	tr := o.Translator
	if tr == nil {
		tr = i18n.NewTranslator(i18n.DefaultLanguage)
	}
	return &terminalFormatter{opts: opts, tr: tr, timestampFormat: timestampLayout(o)}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeSummary(&b, report)

	for _, result := range report.Results {
		f.writeResult(&b, result)
	}

	if len(report.Failures) > 0 {
		f.writeFailures(&b, report.Failures)
	}

	if len(report.Results) > 0 {
		fmt.Fprintf(&b, "%s %s\n", f.tr.T("disclaimer"), f.tr.T("disclaimerText"))
	}

	return []byte(b.String()), nil
}

// writeHeader writes the boxed report title
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := f.tr.T("analysisResults")
	headerLen := len([]rune(header))

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeSummary writes per-class counts as a tree
func (f *terminalFormatter) writeSummary(b *strings.Builder, report *Report) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " " + f.tr.T("reportSummary") + "\n")

	stats := summarize(report.Results)
	items := []termfmt.TreeItem{
		{Label: f.tr.T("reportTotal"), Value: fmt.Sprintf("%d", len(report.Results))},
		{Label: f.tr.T("pneumonia"), Value: fmt.Sprintf("%d", stats.pneumonia)},
		{Label: f.tr.T("normal"), Value: fmt.Sprintf("%d", stats.normal)},
		{Label: f.tr.T("highConfidence"), Value: fmt.Sprintf("%d", stats.highConfidence)},
		{Label: f.tr.T("reportFailed"), Value: fmt.Sprintf("%d", len(report.Failures)), Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeResult writes one diagnosis with its scores and recommendation
func (f *terminalFormatter) writeResult(b *strings.Builder, result common.AnalysisResult) {
	emoji := getPredictionEmoji(result.Prediction, f.opts)
	fmt.Fprintf(b, "%s %s: %s\n", emoji, f.tr.T("diagnosis"), f.tr.T(result.Prediction.TranslationKey()))

	confidence := result.Probabilities.Confidence()
	items := []termfmt.TreeItem{
		{Label: f.tr.T("resultID"), Value: result.ID},
		{
			Label: f.tr.T("confidenceScore"),
			Value: fmt.Sprintf("%s (%s)", percent(confidence), confidenceLabel(f.tr, result)),
			Children: []termfmt.TreeItem{
				{Label: termfmt.CreateConfidenceBar(confidence, f.opts), Value: ""},
			},
		},
		{Label: f.tr.T("pneumonia"), Value: percent(result.Probabilities.Pneumonia)},
		{Label: f.tr.T("normal"), Value: percent(result.Probabilities.Normal)},
		{Label: f.tr.T("analyzedAt"), Value: result.FormatTimestamp(f.timestampFormat)},
	}
	if result.ImagePath != "" {
		items = append(items, termfmt.TreeItem{Label: f.tr.T("imagePath"), Value: result.ImagePath})
	}
	items = append(items, termfmt.TreeItem{
		Label: f.tr.T("recommendation"),
		Value: f.tr.T(recommendationKey(result.Prediction)),
		Last:  true,
	})

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeFailures lists the inputs that could not be analyzed
func (f *terminalFormatter) writeFailures(b *strings.Builder, failures []Failure) {
	symbol := termfmt.GetEmoji("error", f.opts)
	b.WriteString(symbol + " " + f.tr.T("reportFailed") + "\n")

	for i, failure := range failures {
		if i == len(failures)-1 {
			fmt.Fprintf(b, "└─ %s: %s\n", failure.Path, failure.Error)
		} else {
			fmt.Fprintf(b, "├─ %s: %s\n", failure.Path, failure.Error)
		}
	}
	b.WriteString("\n")
}
