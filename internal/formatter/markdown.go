package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/i18n"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	tr              *i18n.Translator
	timestampFormat string
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown(o Options) Formatter {
	tr := o.Translator
	if tr == nil {
		tr = i18n.NewTranslator(i18n.DefaultLanguage)
	}
	return &markdownFormatter{tr: tr, timestampFormat: timestampLayout(o)}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", f.tr.T("analysisResults"))
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format(f.timestampFormat))
	}

	f.writeSummaryTable(&b, report)

	for _, result := range report.Results {
		f.writeResultSection(&b, result)
	}

	if len(report.Failures) > 0 {
		f.writeFailures(&b, report.Failures)
	}

	fmt.Fprintf(&b, "**%s** %s\n", f.tr.T("disclaimer"), f.tr.T("disclaimerText"))
	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "*%s*\n", f.tr.T("reportFooter"))

	return []byte(b.String()), nil
}

// writeSummaryTable writes the per-class counts
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *Report) {
	fmt.Fprintf(b, "## %s\n\n", f.tr.T("reportSummary"))

	stats := summarize(report.Results)
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| %s | %d |\n", f.tr.T("reportTotal"), len(report.Results))
	fmt.Fprintf(b, "| %s | %d |\n", f.tr.T("pneumonia"), stats.pneumonia)
	fmt.Fprintf(b, "| %s | %d |\n", f.tr.T("normal"), stats.normal)
	fmt.Fprintf(b, "| %s | %d |\n", f.tr.T("highConfidence"), stats.highConfidence)
	fmt.Fprintf(b, "| %s | %d |\n\n", f.tr.T("reportFailed"), len(report.Failures))
}

// writeResultSection writes one result with its confidence bar
func (f *markdownFormatter) writeResultSection(b *strings.Builder, result common.AnalysisResult) {
	confidence := result.Probabilities.Confidence()
	fmt.Fprintf(b, "### %s: %s (`%s`)\n\n", f.tr.T("diagnosis"), f.tr.T(result.Prediction.TranslationKey()), result.ID)
	fmt.Fprintf(b, "%s\n\n", f.tr.T(descriptionKey(result.Prediction)))

	fmt.Fprintf(b, "**%s**: %s %s (%s)\n\n",
		f.tr.T("confidenceScore"), createConfidenceBar(confidence), percent(confidence), confidenceLabel(f.tr, result))

	fmt.Fprintf(b, "| %s | %s |\n", f.tr.T("pneumonia"), f.tr.T("normal"))
	b.WriteString("|---|---|\n")
	fmt.Fprintf(b, "| %s | %s |\n\n", percent(result.Probabilities.Pneumonia), percent(result.Probabilities.Normal))

	fmt.Fprintf(b, "- **%s**: %s\n", f.tr.T("analyzedAt"), result.FormatTimestamp(f.timestampFormat))
	if result.ImagePath != "" {
		fmt.Fprintf(b, "- **%s**: `%s`\n", f.tr.T("imagePath"), result.ImagePath)
	}
	fmt.Fprintf(b, "- **%s**: %s\n\n", f.tr.T("recommendation"), f.tr.T(recommendationKey(result.Prediction)))
}

// writeFailures lists inputs that produced no result
func (f *markdownFormatter) writeFailures(b *strings.Builder, failures []Failure) {
	fmt.Fprintf(b, "## %s\n\n", f.tr.T("reportFailed"))
	for _, failure := range failures {
		fmt.Fprintf(b, "- `%s`: %s\n", failure.Path, failure.Error)
	}
	b.WriteString("\n")
}
