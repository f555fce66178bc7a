package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"quotevault/internal/config"
	"quotevault/internal/domain"
	"quotevault/internal/eventbus"
	"quotevault/internal/fetch"
	"quotevault/internal/share"
	"quotevault/internal/ui/input"
	inputtypes "quotevault/internal/ui/input/types"
	"quotevault/internal/ui/views"
)

// toastDuration is how long a notification stays on screen
const toastDuration = 4 * time.Second

// Model represents the UI state. Search state itself lives in the
// orchestrator; the model only tracks cursors, focus and overlays.
type Model struct {
	orch   *fetch.Orchestrator
	sharer *share.Service
	logger *zap.Logger

	width   int
	height  int
	help    help.Model
	keys    inputtypes.KeyMap
	spinner spinner.Model

	renderer     *views.Renderer
	inputHandler *input.Handler

	focus        inputtypes.Focus
	resultCursor int
	facetCursor  int
	sortIndex    int
	showHelp     bool

	toast         string
	toastSeverity domain.Severity
	toastID       int
}

// NewModel creates a new UI model
func NewModel(orch *fetch.Orchestrator, sharer *share.Service, cfg *config.Config, logger *zap.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := inputtypes.DefaultKeyMap()
	return &Model{
		orch:         orch,
		sharer:       sharer,
		logger:       logger.Named("ui"),
		help:         help.New(),
		keys:         keys,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		renderer:     views.NewRenderer(cfg.UISettings.ShowTags, cfg.UISettings.ShowCounts),
		inputHandler: input.New(keys),
	}
}

// Init fires the initial search
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.search(m.orch.Trigger()))
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m.context())
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case searchResolvedMsg:
		if m.orch.Resolve(msg.env, msg.resp, msg.err) {
			m.resultCursor = 0
			m.clampCursors()
		}

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}

	case shareDoneMsg:
		if msg.err != nil {
			m.logger.Debug("share finished with error", zap.String("quote_id", msg.quoteID), zap.Error(msg.err))
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m, m.inputHandler.Update(msg)
	}

	return m, nil
}

// processAction applies one input action and returns any follow-up command
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.SwitchFocusAction:
		if m.focus == inputtypes.FocusResults {
			m.focus = inputtypes.FocusFacets
		} else {
			m.focus = inputtypes.FocusResults
		}

	case inputtypes.UpdateTextAction:
		return m.applyQuery(a.Text)

	case inputtypes.SubmitTextAction:
		return m.applyQuery(a.Text)

	case inputtypes.ToggleFacetAction:
		if a.Kind == domain.FacetTag {
			return m.search(m.orch.ToggleTag(a.Value))
		}
		return m.search(m.orch.ToggleCategory(a.Value))

	case inputtypes.SortByAction:
		return m.search(m.orch.SetSort(a.Key))

	case inputtypes.UpdateSortIndexAction:
		m.sortIndex = a.Index

	case inputtypes.PageAction:
		return m.search(m.orch.SetPage(m.orch.State().Page() + a.Delta))

	case inputtypes.RefreshAction:
		return m.search(m.orch.Refresh())

	case inputtypes.CopyQuoteAction:
		return m.shareQuote(a.Quote, false)

	case inputtypes.ShareQuoteAction:
		return m.shareQuote(a.Quote, true)

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// applyQuery triggers a search when the text actually changed
func (m *Model) applyQuery(text string) tea.Cmd {
	if text == m.orch.State().Query() {
		return nil
	}
	return m.search(m.orch.SetQuery(text))
}

// search runs env off the update loop and hands the result back as a message
func (m *Model) search(env fetch.Envelope) tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		resp, err := orch.Execute(env)
		return searchResolvedMsg{env: env, resp: resp, err: err}
	}
}

func (m *Model) shareQuote(q domain.Quote, native bool) tea.Cmd {
	if m.sharer == nil {
		return nil
	}
	sharer := m.sharer
	return func() tea.Msg {
		var err error
		if native {
			err = sharer.ShareQuote(q)
		} else {
			err = sharer.CopyQuote(q)
		}
		return shareDoneMsg{quoteID: q.ID, err: err}
	}
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	e, ok := event.(eventbus.NotificationEvent)
	if !ok {
		return nil
	}
	m.toast = e.Title
	if e.Description != "" {
		m.toast += " " + e.Description
	}
	m.toastSeverity = e.Severity
	m.toastID++
	id := m.toastID
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// displayed is the outcome on screen: the pending request keeps showing the
// last settled results until it resolves
func (m *Model) displayed() fetch.Outcome {
	out := m.orch.Outcome()
	if out.IsPending() {
		return m.orch.Settled()
	}
	return out
}

func (m *Model) facetRows() []views.FacetRow {
	return views.BuildFacetRows(m.orch.Catalog(), m.orch.State())
}

func (m *Model) navigate(direction string) {
	size := len(m.displayed().Quotes)
	cursor := &m.resultCursor
	if m.focus == inputtypes.FocusFacets {
		size = len(m.facetRows())
		cursor = &m.facetCursor
	}

	switch direction {
	case "up":
		*cursor--
	case "down":
		*cursor++
	case "home":
		*cursor = 0
	case "end":
		*cursor = size - 1
	}
	*cursor = clamp(*cursor, size)
}

func (m *Model) clampCursors() {
	m.resultCursor = clamp(m.resultCursor, len(m.displayed().Quotes))
	m.facetCursor = clamp(m.facetCursor, len(m.facetRows()))
}

func clamp(i, size int) int {
	if i >= size {
		i = size - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// context snapshots what the input modes need to decide on actions
func (m *Model) context() *input.ModelContext {
	out := m.displayed()
	ctx := &input.ModelContext{
		CurrentFocus: m.focus,
		QueryText:    m.orch.State().Query(),
		Sort:         m.orch.State().Sort(),
		Pagination:   out.Pagination,
	}
	if m.resultCursor < len(out.Quotes) {
		q := out.Quotes[m.resultCursor]
		ctx.Quote = &q
	}
	if rows := m.facetRows(); m.facetCursor < len(rows) {
		ctx.OnFacet = true
		ctx.Kind = rows[m.facetCursor].Kind
		ctx.Value = rows[m.facetCursor].Value
	}
	return ctx
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	state := m.orch.State()
	out := m.displayed()

	vs := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Query:         state.Query(),
		Pending:       m.orch.Outcome().IsPending(),
		SpinnerView:   m.spinner.View(),
		Kind:          out.Kind,
		Quotes:        out.Quotes,
		Reason:        out.Reason,
		TotalCount:    out.TotalCount,
		Pagination:    out.Pagination,
		Facets:        m.facetRows(),
		FacetCursor:   m.facetCursor,
		ResultCursor:  m.resultCursor,
		FacetsFocused: m.focus == inputtypes.FocusFacets,
		Sort:          state.Sort(),
		Order:         state.Order(),
		SortPicking:   m.inputHandler.CurrentMode() == inputtypes.ModeSort,
		SortIndex:     m.sortIndex,
		Toast:         m.toast,
		ToastSeverity: m.toastSeverity,
		HelpView:      m.help.View(m.keys),
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.Editing = true
		vs.InputView = ti.View()
	}
	return vs
}
