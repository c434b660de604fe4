package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/PneumoDetect/internal/app"
	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/emoji"
	"github.com/yildizm/PneumoDetect/internal/ui/components"
)

const defaultTimestampFormat = "2006-01-02 15:04:05"

func (m *InteractiveModel) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return max(40, m.width-4)
}

func (m *InteractiveModel) timestampFormat() string {
	if m.opts.TimestampFormat == "" {
		return defaultTimestampFormat
	}
	return m.opts.TimestampFormat
}

func (m *InteractiveModel) renderLoadingScreen() string {
	loading := m.styles.Header.Render(emoji.GetEmoji("lungs") + " " + m.tr.T("appName"))
	return lipgloss.Place(max(m.width, 1), max(m.height, 1), lipgloss.Center, lipgloss.Center, loading)
}

func (m *InteractiveModel) renderGoodbyeScreen() string {
	goodbye := m.styles.Success.Render(m.tr.T("goodbye"))
	return lipgloss.Place(max(m.width, 1), max(m.height, 1), lipgloss.Center, lipgloss.Center, goodbye)
}

// renderHeader renders the app name and one tab per page
func (m *InteractiveModel) renderHeader() string {
	title := m.styles.Title.Render(emoji.GetEmoji("lungs") + " " + m.tr.T("appName"))

	icons := map[app.Page]string{
		app.PageHome:    "home",
		app.PageResult:  "target",
		app.PageHistory: "history",
		app.PageGuide:   "guide",
	}
	labels := map[app.Page]string{
		app.PageHome:    m.tr.T("home"),
		app.PageResult:  m.tr.T("analysisResults"),
		app.PageHistory: m.tr.T("history"),
		app.PageGuide:   m.tr.T("guide"),
	}

	tabs := make([]string, 0, len(app.Pages()))
	for i, page := range app.Pages() {
		label := fmt.Sprintf("%d %s %s", i+1, emoji.GetEmoji(icons[page]), labels[page])
		if page == m.state.CurrentPage {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
}

// renderHomePage renders the path input, the selected image and the introduction
func (m *InteractiveModel) renderHomePage() string {
	width := m.contentWidth()
	content := []string{
		m.styles.Header.Render(m.tr.T("appTitle")),
		m.styles.Body.Width(width).Render(m.tr.T("appDescription")),
		"",
		m.styles.Subheader.Render(emoji.GetEmoji("upload") + " " + m.tr.T("imagePathPrompt")),
		m.styles.Input.Width(min(width, 72)).Render(m.input + "█"),
		m.styles.Muted.Render(m.tr.T("supportedFormats")),
		"",
	}

	if img := m.state.SelectedImage; img != nil {
		box := components.NewSummaryBox(m.tr.T("selectedImage"), min(width, 72), m.styles.Palette)
		box.AddKeyValue(m.tr.T("fileName"), img.Name)
		box.AddKeyValue(m.tr.T("fileType"), img.ContentType)
		box.AddKeyValue(m.tr.T("fileSize"), fmt.Sprintf("%.1f KB", float64(img.Size())/1024))
		if m.state.PreviewURL != "" {
			box.AddLine("")
			box.AddLine(m.tr.T("preview") + ": " + m.state.PreviewURL)
		}
		content = append(content, box.Render())
	} else {
		content = append(content, m.styles.Muted.Render(m.tr.T("noImageSelected")))
	}

	if m.state.IsAnalyzing {
		m.spinner.SetLabel(m.tr.T("analyzing"))
		content = append(content, "", m.spinner.Render())
	}

	content = append(content,
		"",
		m.styles.Subheader.Render(m.tr.T("howItWorks")),
		m.styles.Muted.Width(width).Render(m.tr.T("howItWorksDescription")),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content...)
}

// renderResultPage renders the current result
func (m *InteractiveModel) renderResultPage() string {
	result := m.state.CurrentResult
	if result == nil {
		return m.styles.Muted.Render(m.tr.T("noResult"))
	}

	width := m.contentWidth()
	pneumonia := result.Prediction.IsPneumonia()
	style := m.styles.Diagnosis(pneumonia)
	probs := result.Probabilities

	diagnosis := style.Render(fmt.Sprintf("%s %s: %s",
		emoji.ForPrediction(pneumonia), m.tr.T("diagnosis"), m.tr.T(result.Prediction.TranslationKey())))

	descriptionKey, recommendationKey, recommendationStatus := "normalDescription", "normalRecommendation", components.StatusSuccess
	if pneumonia {
		descriptionKey, recommendationKey, recommendationStatus = "pneumoniaDescription", "pneumoniaRecommendation", components.StatusWarning
	}

	barWidth := min(40, max(10, width-30))
	bars := []string{
		components.NewProbabilityBar(m.tr.T("pneumonia"), probs.Pneumonia, barWidth, m.styles.Palette).WithFill(m.styles.Palette.Pneumonia).Render(),
		components.NewProbabilityBar(m.tr.T("normal"), probs.Normal, barWidth, m.styles.Palette).WithFill(m.styles.Palette.Normal).Render(),
	}

	confidenceKey := "lowConfidence"
	if probs.HighConfidence() {
		confidenceKey = "highConfidence"
	}
	confidence := fmt.Sprintf("%s: %.1f%% (%s)",
		m.tr.T("confidenceScore"), probs.Confidence()*100, m.tr.T(confidenceKey))

	details := []string{
		fmt.Sprintf("%s: %s", m.tr.T("resultID"), result.ID),
		fmt.Sprintf("%s: %s", m.tr.T("analyzedAt"), result.FormatTimestamp(m.timestampFormat())),
	}
	if result.ImagePath != "" {
		details = append(details, fmt.Sprintf("%s: %s", m.tr.T("imagePath"), result.ImagePath))
	}

	viewer := components.NewDetailViewer("", width, 0, m.styles.Palette)
	viewer.AddSection(components.DetailSection{
		Title:   m.tr.T("recommendation"),
		Content: []string{m.tr.T(recommendationKey)},
		Status:  recommendationStatus,
	})
	viewer.AddSection(components.DetailSection{
		Content: details,
	})
	viewer.AddSection(components.DetailSection{
		Title:   m.tr.T("disclaimer"),
		Content: []string{m.tr.T("disclaimerText")},
		Status:  components.StatusInfo,
	})

	content := []string{
		m.styles.Header.Render(m.tr.T("analysisResults")),
		"",
		diagnosis,
		m.styles.Body.Width(width).Render(m.tr.T(descriptionKey)),
		"",
	}
	content = append(content, bars...)
	content = append(content, "", m.styles.Subheader.Render(confidence), "", viewer.Render())

	return lipgloss.JoinVertical(lipgloss.Left, content...)
}

// renderHistoryPage renders the statistics, trend, search line and list
func (m *InteractiveModel) renderHistoryPage() string {
	width := m.contentWidth()
	content := []string{m.styles.Header.Render(emoji.GetEmoji("history") + " " + m.tr.T("analysisHistory"))}

	if m.state.IsHistoryLoading {
		m.spinner.SetLabel(m.tr.T("loadingHistory"))
		content = append(content, m.spinner.Render())
	}

	if len(m.state.History) == 0 {
		if !m.state.IsHistoryLoading {
			content = append(content, "",
				m.styles.Subheader.Render(m.tr.T("noHistory")),
				m.styles.Muted.Render(m.tr.T("startAnalyzing")))
		}
		return lipgloss.JoinVertical(lipgloss.Left, content...)
	}

	dashboard := components.CreateHistoryStats(m.state.History, m.tr, m.styles.Palette)
	dashboard.SetCardSize(max(16, width/4-2), 5)
	content = append(content, dashboard.Render())

	if len(m.state.History) > 1 {
		chart := components.NewTimelineChart(m.tr.T("probabilityTrend"), m.state.History, min(width, 60), m.styles.Palette)
		content = append(content, chart.Render())
	}

	content = append(content, "", m.renderSearchLine())

	if len(m.history.results) == 0 {
		content = append(content, "",
			m.styles.Subheader.Render(m.tr.T("noMatchingResults")),
			m.styles.Muted.Render(m.tr.T("tryDifferentSearch")))
		return lipgloss.JoinVertical(lipgloss.Left, content...)
	}

	content = append(content, m.history.list.Render())
	return lipgloss.JoinVertical(lipgloss.Left, content...)
}

// renderSearchLine renders the query field and the active filter
func (m *InteractiveModel) renderSearchLine() string {
	query := m.history.query
	if m.history.searching {
		query += "█"
	}
	if query == "" {
		query = m.styles.Muted.Render(m.tr.T("searchPlaceholder"))
	}

	filterKey := "all"
	if m.history.filter != common.FilterAll {
		filterKey = string(m.history.filter)
	}

	search := fmt.Sprintf("%s %s", emoji.GetEmoji("search"), query)
	if m.history.searching {
		search = m.styles.Focused.Render(search)
	}
	filter := fmt.Sprintf("%s %s: %s", emoji.GetEmoji("filter"), m.tr.T("filter"), m.tr.T(filterKey))

	return lipgloss.JoinHorizontal(lipgloss.Center, search, "   ", m.styles.Info.Render(filter))
}

// historyItem converts a result to a list row; matches of the query are highlighted
func (m *InteractiveModel) historyItem(r common.AnalysisResult) components.ListItem {
	pneumonia := r.Prediction.IsPneumonia()
	status := components.StatusSuccess
	if pneumonia {
		status = components.StatusError
	}

	details := []string{
		fmt.Sprintf("%s: %.1f%%", m.tr.T("pneumonia"), r.Probabilities.Pneumonia*100),
		fmt.Sprintf("%s: %.1f%%", m.tr.T("normal"), r.Probabilities.Normal*100),
	}
	if r.ImagePath != "" {
		details = append(details, fmt.Sprintf("%s: %s", m.tr.T("imagePath"), r.ImagePath))
	}

	return components.ListItem{
		ID:    r.ID,
		Title: fmt.Sprintf("%s  %s", m.tr.T(r.Prediction.TranslationKey()), m.styles.Palette.Highlight(r.ID, m.history.query)),
		Description: fmt.Sprintf("%.1f%% • %s",
			r.Probabilities.Confidence()*100, r.FormatTimestamp(m.timestampFormat())),
		Status:  status,
		Icon:    emoji.ForPrediction(pneumonia),
		Details: details,
	}
}

// renderGuidePage renders the static user guide
func (m *InteractiveModel) renderGuidePage() string {
	width := m.contentWidth()
	body := m.styles.Body.Width(width)
	muted := m.styles.Muted.Width(width)

	content := []string{
		m.styles.Header.Render(emoji.GetEmoji("guide") + " " + m.tr.T("userGuide")),
		"",
		m.styles.Subheader.Render(m.tr.T("howToUse")),
	}

	steps := [][2]string{
		{"uploadXray", "uploadXrayDescription"},
		{"analyzeImage", "analyzeImageDescription"},
		{"reviewResults", "reviewResultsDescription"},
	}
	for i, step := range steps {
		content = append(content,
			fmt.Sprintf("  %s  %s", m.styles.Info.Render(m.tr.Tf("stepNumber", i+1)), m.styles.Body.Bold(true).Render(m.tr.T(step[0]))),
			"      "+muted.Render(m.tr.T(step[1])),
		)
	}

	content = append(content,
		"",
		m.styles.Subheader.Render(m.tr.T("understandingResults")),
		m.styles.Pneumonia.Render(emoji.ForPrediction(true)+" "+m.tr.T("pneumonia")),
		"  "+body.Render(m.tr.T("pneumoniaResultExplanation")),
		m.styles.Normal.Render(emoji.ForPrediction(false)+" "+m.tr.T("normal")),
		"  "+body.Render(m.tr.T("normalResultExplanation")),
		m.styles.Info.Render(m.tr.T("confidenceScore")),
		"  "+body.Render(m.tr.T("confidenceScoreExplanation")),
		"",
		m.styles.Subheader.Render(emoji.GetEmoji("warning")+" "+m.tr.T("importantNotes")),
		"  "+body.Render(m.tr.T("disclaimerDetail")),
		"  "+body.Render(strings.Join([]string{m.styles.Warning.Render(m.tr.T("medicalAdvice")), m.tr.T("medicalAdviceDetail")}, " ")),
		"  "+body.Render(strings.Join([]string{m.styles.Warning.Render(m.tr.T("dataPrivacy")), m.tr.T("dataPrivacyDetail")}, " ")),
		"",
		m.styles.Subheader.Render(m.tr.T("aboutModel")),
		"  "+muted.Render(m.tr.T("modelDescription")),
		"  "+muted.Render(m.tr.T("modelPerformance")),
		"  "+muted.Render(m.tr.T("modelLimitations")),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content...)
}
