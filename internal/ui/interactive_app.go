package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/PneumoDetect/internal/app"
	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/i18n"
	"github.com/yildizm/PneumoDetect/internal/logger"
	"github.com/yildizm/PneumoDetect/internal/media"
	"github.com/yildizm/PneumoDetect/internal/toast"
	"github.com/yildizm/PneumoDetect/internal/ui/components"
)

const defaultMaxFileSize = 10 * 1024 * 1024

// historyView holds the history page's local state
type historyView struct {
	list      *components.List
	results   []common.AnalysisResult // filtered, in list order
	query     string
	searching bool
	filter    common.PredictionFilter
}

// InteractiveModel is the bubbletea model over one application store and one toast store
type InteractiveModel struct {
	opts   Options
	ctx    context.Context
	cancel context.CancelFunc
	tr     *i18n.Translator
	styles *Styles
	log    *logger.Logger
	now    func() time.Time

	width    int
	height   int
	ready    bool
	quitting bool

	state  app.State
	toasts []toast.Toast

	states      *latest[app.State]
	toastFeed   *latest[[]toast.Toast]
	unsubscribe []func()

	spinner *components.Spinner
	input   string
	history historyView

	// ID of the result produced from the selected image, the only one the download key may save
	imageResultID  string
	awaitingResult bool
	resultBefore   string
}

// NewInteractiveModel creates a model and subscribes it to both stores
func NewInteractiveModel(ctx context.Context, opts Options) *InteractiveModel {
	if opts.Translator == nil {
		opts.Translator = i18n.NewTranslator(i18n.DefaultLanguage)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = defaultMaxFileSize
	}

	ctx, cancel := context.WithCancel(ctx)
	styles := GetStyles()
	list := components.NewList(opts.Translator.T("analysisHistory"), 80, 14)
	list.Palette = styles.Palette

	m := &InteractiveModel{
		opts:      opts,
		ctx:       ctx,
		cancel:    cancel,
		tr:        opts.Translator,
		styles:    styles,
		log:       opts.Logger.WithComponent("tui"),
		now:       time.Now,
		states:    newLatest[app.State](),
		toastFeed: newLatest[[]toast.Toast](),
		spinner:   components.NewSpinner(styles.Palette),
		history: historyView{
			list:   list,
			filter: common.FilterAll,
		},
	}
	m.spinner.SetLabel(m.tr.T("analyzing"))

	m.state = opts.Store.Snapshot()
	m.toasts = opts.Toasts.List()
	m.refreshHistoryList()

	m.unsubscribe = append(m.unsubscribe,
		opts.Store.Subscribe(func(s app.State) { m.states.put(s) }),
		opts.Toasts.Subscribe(func(t []toast.Toast) { m.toastFeed.put(t) }),
	)

	return m
}

func wrapState(s app.State) tea.Msg { return stateMsg(s) }

func wrapToasts(t []toast.Toast) tea.Msg { return toastsMsg(t) }

// Init starts the animation and both store subscriptions
func (m *InteractiveModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tick(),
		waitFor(m.states, wrapState),
		waitFor(m.toastFeed, wrapToasts),
	}
	if m.state.CurrentPage == app.PageHistory {
		cmds = append(cmds, m.loadHistory())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and navigation
func (m *InteractiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	case stateMsg:
		return m.handleState(app.State(msg))
	case toastsMsg:
		m.toasts = msg
		return m, waitFor(m.toastFeed, wrapToasts)
	}

	return m, nil
}

// View renders the interactive model
func (m *InteractiveModel) View() string {
	if m.quitting {
		return m.renderGoodbyeScreen()
	}

	if !m.ready {
		return m.renderLoadingScreen()
	}

	var body string
	var hints string
	switch m.state.CurrentPage {
	case app.PageResult:
		body, hints = m.renderResultPage(), m.tr.T("keyHintsResult")
	case app.PageHistory:
		body, hints = m.renderHistoryPage(), m.tr.T("keyHintsHistory")
	case app.PageGuide:
		body, hints = m.renderGuidePage(), m.tr.T("keyHintsGuide")
	default:
		body, hints = m.renderHomePage(), m.tr.T("keyHintsHome")
	}

	sections := []string{m.renderHeader(), "", body}
	if toasts := renderToasts(m.toasts, m.styles, m.width); toasts != "" {
		sections = append(sections, "", toasts)
	}
	sections = append(sections, "", m.styles.Muted.Render(hints))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Close unsubscribes from both stores and cancels in-flight requests
func (m *InteractiveModel) Close() {
	m.cancel()
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.unsubscribe = nil
	m.states.close()
	m.toastFeed.close()
}

// run executes a store action off the update loop; state changes come back through the subscription
func (m *InteractiveModel) run(action func(ctx context.Context)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		action(ctx)
		return nil
	}
}

func (m *InteractiveModel) loadHistory() tea.Cmd {
	store := m.opts.Store
	return m.run(store.LoadHistory)
}

// navigate switches pages; the history page loads when it is entered
func (m *InteractiveModel) navigate(page app.Page) {
	if page == m.state.CurrentPage {
		return
	}
	m.opts.Store.NavigateTo(page)
}

// cyclePage moves through the pages in navigation order
func (m *InteractiveModel) cyclePage(step int) {
	pages := app.Pages()
	current := 0
	for i, p := range pages {
		if p == m.state.CurrentPage {
			current = i
			break
		}
	}
	next := (current + step + len(pages)) % len(pages)
	m.navigate(pages[next])
}

// Handler functions for Update method

// handleWindowResize handles window resize events
func (m *InteractiveModel) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.history.list.Width = max(40, m.width-4)
	m.history.list.Height = max(6, m.height-24)
	return m, nil
}

// handleTick advances the spinner while work is in flight
func (m *InteractiveModel) handleTick() (tea.Model, tea.Cmd) {
	if m.state.IsAnalyzing || m.state.IsHistoryLoading {
		m.spinner.Tick()
	}
	return m, tick()
}

// handleState applies a new store snapshot
func (m *InteractiveModel) handleState(s app.State) (tea.Model, tea.Cmd) {
	prev := m.state
	m.state = s

	if m.awaitingResult && s.CurrentResult != nil && s.CurrentResult.ID != m.resultBefore {
		m.imageResultID = s.CurrentResult.ID
		m.awaitingResult = false
	}
	if s.SelectedImage == nil {
		m.imageResultID = ""
	}

	m.refreshHistoryList()

	cmds := []tea.Cmd{waitFor(m.states, wrapState)}
	if s.CurrentPage == app.PageHistory && prev.CurrentPage != app.PageHistory {
		cmds = append(cmds, m.loadHistory())
	}
	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m *InteractiveModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.handleQuit()
	case "tab":
		m.cyclePage(1)
		return m, nil
	case "shift+tab":
		m.cyclePage(-1)
		return m, nil
	case "ctrl+x":
		for _, t := range m.toasts {
			m.opts.Toasts.Dismiss(t.ID)
		}
		return m, nil
	}

	switch m.state.CurrentPage {
	case app.PageHome:
		return m.handleHomeKey(msg)
	case app.PageResult:
		return m.handleResultKey(msg)
	case app.PageHistory:
		return m.handleHistoryKey(msg)
	default:
		return m.handleCommonKey(msg)
	}
}

// handleCommonKey handles keys shared by pages without text input
func (m *InteractiveModel) handleCommonKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.handleQuit()
	case "esc":
		m.navigate(app.PageHome)
	case "1", "2", "3", "4":
		pages := app.Pages()
		m.navigate(pages[int(msg.String()[0]-'1')])
	}
	return m, nil
}

// handleQuit handles quit commands
func (m *InteractiveModel) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}

// handleHomeKey edits the path input and submits it
func (m *InteractiveModel) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submitPath()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU, tea.KeyEsc:
		m.input = ""
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

// submitPath loads the typed image, selects it and starts the analysis.
// An empty input re-analyzes the image already selected.
func (m *InteractiveModel) submitPath() (tea.Model, tea.Cmd) {
	store := m.opts.Store

	if m.state.IsAnalyzing {
		m.opts.Toasts.Show(toast.TypeInfo, m.tr.T("analysisInProgress"))
		return m, nil
	}

	m.awaitingResult = true
	m.resultBefore = ""
	if m.state.CurrentResult != nil {
		m.resultBefore = m.state.CurrentResult.ID
	}

	path := strings.Trim(strings.TrimSpace(m.input), `"'`)
	if path == "" {
		return m, m.run(store.AnalyzeCurrentImage)
	}

	img, err := media.Load(path, m.opts.MaxFileSize)
	if err != nil {
		m.log.WarnWithFields("failed to load image", []logger.Field{logger.Path(path), logger.Error(err)})
		m.opts.Toasts.Show(toast.TypeError, m.tr.T(media.MessageKey(err)))
		m.awaitingResult = false
		return m, nil
	}

	m.input = ""
	store.SetSelectedImage(img)
	return m, m.run(store.AnalyzeCurrentImage)
}

// handleResultKey handles the result page actions
func (m *InteractiveModel) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.input = ""
		m.opts.Store.ClearResults()
	case "d":
		m.downloadImage()
	case "h":
		m.navigate(app.PageHistory)
	default:
		return m.handleCommonKey(msg)
	}
	return m, nil
}

// downloadImage saves a copy of the image behind the current result
func (m *InteractiveModel) downloadImage() {
	img := m.state.SelectedImage
	if img == nil || m.state.CurrentResult == nil || m.state.CurrentResult.ID != m.imageResultID {
		m.opts.Toasts.Show(toast.TypeInfo, m.tr.T("noImageSelected"))
		return
	}

	path, err := media.SaveCopy(img, m.opts.DownloadDir, m.now())
	if err != nil {
		m.log.Error("failed to save %s: %v", img.Name, err)
		m.opts.Toasts.Show(toast.TypeError, m.tr.T("imageSaveError"))
		return
	}
	m.log.InfoWithFields("image saved", []logger.Field{logger.Path(path)})
	m.opts.Toasts.Show(toast.TypeSuccess, m.tr.Tf("imageSaved", path))
}

// handleHistoryKey handles list navigation, search and filtering
func (m *InteractiveModel) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.history.searching {
		return m.handleSearchKey(msg)
	}

	list := m.history.list
	switch msg.String() {
	case "/":
		m.history.searching = true
		list.SetFocused(false)
	case "f":
		m.history.filter = m.history.filter.Next()
		m.refreshHistoryList()
	case "r":
		return m, m.loadHistory()
	case "up", "k":
		list.MoveUp()
	case "down", "j":
		list.MoveDown()
	case " ":
		list.ToggleExpanded()
	case "enter":
		if result, ok := m.selectedHistoryResult(); ok {
			m.opts.Store.ViewResult(result)
		}
	case "esc":
		if m.history.query != "" {
			m.history.query = ""
			m.refreshHistoryList()
			return m, nil
		}
		m.navigate(app.PageHome)
	default:
		return m.handleCommonKey(msg)
	}
	return m, nil
}

// handleSearchKey edits the search query
func (m *InteractiveModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.history.searching = false
	case tea.KeyEsc:
		m.history.searching = false
		m.history.query = ""
	case tea.KeyBackspace:
		if r := []rune(m.history.query); len(r) > 0 {
			m.history.query = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		m.history.query = ""
	case tea.KeySpace:
		m.history.query += " "
	case tea.KeyRunes:
		m.history.query += string(msg.Runes)
	default:
		return m, nil
	}
	m.history.list.SetFocused(!m.history.searching)
	m.refreshHistoryList()
	return m, nil
}

func (m *InteractiveModel) selectedHistoryResult() (common.AnalysisResult, bool) {
	item := m.history.list.GetSelectedItem()
	if item == nil {
		return common.AnalysisResult{}, false
	}
	for _, r := range m.history.results {
		if r.ID == item.ID {
			return r, true
		}
	}
	return common.AnalysisResult{}, false
}

// refreshHistoryList rebuilds the list from the history, query and filter
func (m *InteractiveModel) refreshHistoryList() {
	filtered := app.FilterHistory(m.state.History, m.history.query, m.history.filter)
	m.history.results = filtered

	items := make([]components.ListItem, 0, len(filtered))
	for _, r := range filtered {
		items = append(items, m.historyItem(r))
	}
	m.history.list.SetItems(items)
	m.history.list.SetFocused(!m.history.searching)
}

// InteractiveRun runs the interactive interface until the user quits or ctx is cancelled
func InteractiveRun(ctx context.Context, opts Options) error {
	model := NewInteractiveModel(ctx, opts)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
