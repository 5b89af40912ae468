package ui

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"filegrip/internal/catalog"
	"filegrip/internal/config"
	"filegrip/internal/deeplink"
	"filegrip/internal/domain"
	"filegrip/internal/eventbus"
	"filegrip/internal/feed"
	"filegrip/internal/suggest"
	"filegrip/internal/ui/input"
	inputtypes "filegrip/internal/ui/input/types"
	"filegrip/internal/ui/state"
	"filegrip/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	configSvc config.ConfigService
	state     *state.AppState

	client    *catalog.Client
	feed      *feed.Controller
	suggester *suggest.Engine

	width  int
	height int

	renderer     *views.Renderer
	inputHandler *input.Handler
	pager        *PagerOps

	// searchText mirrors the text input while a text mode is active
	searchText string

	// Generations invalidate pending debounce and sidebar timers
	debounceGen uint64
	sidebarGen  uint64

	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, configSvc config.ConfigService, client *catalog.Client) *Model {
	appState := state.NewAppState()
	appState.DarkMode = cfg.DarkMode

	m := &Model{
		bus:          bus,
		config:       cfg,
		configSvc:    configSvc,
		state:        appState,
		client:       client,
		renderer:     views.NewRenderer(cfg.DarkMode),
		inputHandler: input.New(),
		pager:        NewPagerOps(),
	}

	// The unfiltered landing feed comes from /api/latest; anything with text
	// or filters goes through /api/search.
	m.feed = feed.New(func(ctx context.Context, q domain.Query, page, perPage int) ([]domain.FileRecord, error) {
		if q.IsEmpty() && q.Sort != domain.SortAsc {
			return client.Latest(ctx, page, perPage)
		}
		return client.Search(ctx, q, page, perPage)
	}, bus)
	m.suggester = suggest.NewEngine(client, bus)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if m.pager != nil {
		m.pager.SetProgram(p)
	}
}

// modelContext adapts AppState to the input handler's read-only view
type modelContext struct {
	state *state.AppState
}

func (c *modelContext) CurrentIndex() int    { return c.state.SelectedIndex }
func (c *modelContext) TotalItems() int      { return len(c.state.Records) }
func (c *modelContext) SidebarOpen() bool    { return c.state.ShowSidebar }
func (c *modelContext) ModalOpen() bool      { return c.state.ShowModal }
func (c *modelContext) HelpOpen() bool       { return c.state.ShowHelp }
func (c *modelContext) SuggestionCount() int { return len(c.state.Suggestions) }

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	m.state.ViewportHeight = 6 // Updated on first WindowSizeMsg
	m.state.Loading = true
	m.feed.ResetAndLoad(context.Background())
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportHeight()
		m.state.ClampScroll()
		return m, nil

	case tickMsg:
		if m.state.Loading {
			return m, tickCmd()
		}
		return m, nil

	case suggestDebounceMsg:
		if msg.gen != m.debounceGen {
			return m, nil
		}
		if m.inputHandler.CurrentMode() != inputtypes.ModeSearch {
			return m, nil
		}
		m.suggester.Lookup(context.Background(), m.searchText)
		return m, nil

	case sidebarTimeoutMsg:
		if msg.gen == m.sidebarGen && m.state.ShowSidebar {
			m.state.ShowSidebar = false
		}
		return m, nil

	case linkOpenedMsg:
		if msg.err != nil {
			log.Printf("deeplink: %v", msg.err)
			m.state.StatusMessage = "Couldn't open the bot link"
		} else {
			m.state.StatusMessage = "Opened " + msg.link
		}
		return m, nil

	case pagerDoneMsg:
		if msg.err != nil {
			log.Printf("pager: %v", msg.err)
		}
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := &modelContext{state: m.state}

	actions, cmd := m.inputHandler.HandleKey(msg, ctx)

	cmds := []tea.Cmd{}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	for _, action := range actions {
		if actionCmd := m.processAction(action); actionCmd != nil {
			cmds = append(cmds, actionCmd)
		}
	}

	// Any keypress counts as sidebar activity
	if m.state.ShowSidebar {
		cmds = append(cmds, m.armSidebarTimer())
	}

	return m, tea.Batch(cmds...)
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch ev := event.(type) {
	case eventbus.FeedPageLoadedEvent:
		m.state.SetRecords(m.feed.Records())
		m.state.Loading = m.feed.InFlight()
		m.state.Exhausted = m.feed.Exhausted()
		m.state.NoResults = m.feed.Empty()
		m.state.ClampScroll()
		return nil

	case eventbus.FeedLoadFailedEvent:
		m.state.Loading = false
		m.state.StatusMessage = "Couldn't load results; scroll to retry"
		return nil

	case eventbus.SuggestionsReadyEvent:
		// Responses older than the last applied one are stale; drop them.
		if ev.Seq <= m.state.AppliedSeq {
			return nil
		}
		m.state.AppliedSeq = ev.Seq
		if m.inputHandler.CurrentMode() == inputtypes.ModeSearch {
			m.state.SetSuggestions(ev.Records)
		}
		return nil

	case eventbus.SuggestionsFailedEvent:
		if ev.Seq <= m.state.AppliedSeq {
			return nil
		}
		m.state.AppliedSeq = ev.Seq
		m.state.ClearSuggestions()
		return nil

	case eventbus.ConfigChangedEvent:
		if ev.DarkMode != m.state.DarkMode {
			m.state.DarkMode = ev.DarkMode
			m.config.DarkMode = ev.DarkMode
			m.renderer.SetTheme(ev.DarkMode)
		}
		return nil

	case eventbus.ErrorEvent:
		m.state.StatusMessage = ev.Message
		return nil
	}

	return nil
}

// processAction executes a single action emitted by the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		return m.navigate(a.Direction)

	case inputtypes.UpdateTextAction:
		m.searchText = a.Text
		if m.inputHandler.CurrentMode() == inputtypes.ModeSearch {
			if strings.TrimSpace(a.Text) == "" {
				m.debounceGen++
				m.state.ClearSuggestions()
				if m.state.SearchQuery != "" {
					m.state.SearchQuery = ""
					return m.applyQuery()
				}
				return nil
			}
			m.debounceGen++
			gen := m.debounceGen
			return tea.Tick(suggest.Debounce, func(time.Time) tea.Msg {
				return suggestDebounceMsg{gen: gen}
			})
		}
		return nil

	case inputtypes.SubmitTextAction:
		return m.submitText(a)

	case inputtypes.CancelTextAction:
		m.searchText = ""
		m.state.ClearSuggestions()
		return nil

	case inputtypes.MoveSuggestionAction:
		delta := 1
		if a.Direction == "up" {
			delta = -1
		}
		m.state.MoveSuggestion(delta)
		return nil

	case inputtypes.AcceptSuggestionAction:
		if rec, ok := m.state.HighlightedSuggestion(); ok {
			m.state.SearchQuery = rec.FileName
		} else {
			m.state.SearchQuery = strings.TrimSpace(m.searchText)
		}
		m.state.ClearSuggestions()
		m.state.ShowSidebar = false
		return m.applyQuery()

	case inputtypes.ToggleSidebarAction:
		m.state.ShowSidebar = !m.state.ShowSidebar
		if m.state.ShowSidebar {
			return m.armSidebarTimer()
		}
		return nil

	case inputtypes.CloseOverlayAction:
		m.closeTopOverlay()
		return nil

	case inputtypes.OpenModalAction:
		if rec, ok := m.state.SelectedRecord(); ok {
			m.state.ModalRecord = &rec
			m.state.ShowModal = true
		}
		return nil

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp
		return nil

	case inputtypes.OpenDeepLinkAction:
		return m.openDeepLink()

	case inputtypes.ShowDetailsAction:
		return m.showDetails()

	case inputtypes.RefreshAction:
		return m.applyQuery()

	case inputtypes.ToggleSortAction:
		m.state.Sort = m.state.Sort.Toggle()
		return m.applyQuery()

	case inputtypes.ClearFiltersAction:
		m.state.YearFilter = 0
		m.state.TypeFilter = ""
		m.state.Sort = domain.SortDesc
		return m.applyQuery()

	case inputtypes.ToggleDarkModeAction:
		m.state.DarkMode = !m.state.DarkMode
		m.config.DarkMode = m.state.DarkMode
		m.renderer.SetTheme(m.state.DarkMode)
		return m.saveConfig()

	case inputtypes.QuitAction:
		if !a.Force {
			if err := m.configSvc.Save(m.config); err != nil {
				log.Printf("config: saving on quit: %v", err)
			}
		}
		return tea.Quit
	}

	return nil
}

func (m *Model) navigate(direction string) tea.Cmd {
	total := len(m.state.Records)
	if total == 0 {
		return nil
	}

	switch direction {
	case "up":
		m.state.SelectedIndex--
	case "down":
		m.state.SelectedIndex++
	case "pageup":
		m.state.SelectedIndex -= m.state.ViewportHeight
	case "pagedown":
		m.state.SelectedIndex += m.state.ViewportHeight
	case "home":
		m.state.SelectedIndex = 0
	case "end":
		m.state.SelectedIndex = total - 1
	}

	if m.state.SelectedIndex < 0 {
		m.state.SelectedIndex = 0
	}
	if m.state.SelectedIndex >= total {
		m.state.SelectedIndex = total - 1
	}
	m.state.ClampScroll()

	if m.feed.ShouldLoadMore(m.state.SelectedIndex) {
		if m.feed.LoadNext(context.Background()) {
			m.state.Loading = true
			return tickCmd()
		}
	}
	return nil
}

func (m *Model) submitText(a inputtypes.SubmitTextAction) tea.Cmd {
	text := strings.TrimSpace(a.Text)

	switch a.Mode {
	case inputtypes.ModeSearch:
		m.state.SearchQuery = text
		m.state.ClearSuggestions()
		m.state.ShowSidebar = false
		return m.applyQuery()

	case inputtypes.ModeYear:
		if text == "" {
			m.state.YearFilter = 0
			return m.applyQuery()
		}
		year, err := strconv.Atoi(text)
		if err != nil || year < 1000 || year > 9999 {
			m.state.StatusMessage = "Year must be a four digit number"
			return nil
		}
		m.state.YearFilter = year
		return m.applyQuery()

	case inputtypes.ModeType:
		m.state.TypeFilter = strings.ToLower(text)
		return m.applyQuery()
	}

	return nil
}

// applyQuery pushes the rendered query state into the feed controller and
// starts over from page one.
func (m *Model) applyQuery() tea.Cmd {
	m.feed.SetQuery(domain.Query{
		Text: m.state.SearchQuery,
		Year: m.state.YearFilter,
		Type: m.state.TypeFilter,
		Sort: m.state.Sort,
	})

	m.state.SetRecords(nil)
	m.state.SelectedIndex = 0
	m.state.ViewportOffset = 0
	m.state.Exhausted = false
	m.state.NoResults = false
	m.state.StatusMessage = ""
	m.state.Loading = true

	m.feed.LoadNext(context.Background())
	return tickCmd()
}

// closeTopOverlay closes overlays in priority order: modal, help, sidebar.
func (m *Model) closeTopOverlay() {
	switch {
	case m.state.ShowModal:
		m.state.ShowModal = false
		m.state.ModalRecord = nil
	case m.state.ShowHelp:
		m.state.ShowHelp = false
	case m.state.ShowSidebar:
		m.state.ShowSidebar = false
	}
}

func (m *Model) armSidebarTimer() tea.Cmd {
	m.sidebarGen++
	gen := m.sidebarGen
	timeout := m.config.SidebarTimeout.Duration
	return tea.Tick(timeout, func(time.Time) tea.Msg {
		return sidebarTimeoutMsg{gen: gen}
	})
}

func (m *Model) openDeepLink() tea.Cmd {
	rec, ok := m.state.SelectedRecord()
	if m.state.ShowModal && m.state.ModalRecord != nil {
		rec, ok = *m.state.ModalRecord, true
	}
	if !ok {
		return nil
	}
	m.state.ShowSidebar = false

	client := m.client
	template := m.config.BotLink
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Ask the server for the canonical link; fall back to building it
		// locally from the configured template.
		link, err := client.SendLink(ctx, rec.ID)
		if err != nil {
			link = deeplink.Build(template, rec.ID)
		}
		if err := deeplink.Open(link); err != nil {
			return linkOpenedMsg{link: link, err: err}
		}
		return linkOpenedMsg{link: link}
	}
}

func (m *Model) showDetails() tea.Cmd {
	rec, ok := m.state.SelectedRecord()
	if m.state.ShowModal && m.state.ModalRecord != nil {
		rec, ok = *m.state.ModalRecord, true
	}
	if !ok {
		return nil
	}

	pager := m.pager
	return func() tea.Msg {
		return pagerDoneMsg{err: pager.ShowInPager(RecordDetailsText(rec))}
	}
}

func (m *Model) saveConfig() tea.Cmd {
	cfg := *m.config
	svc := m.configSvc
	return func() tea.Msg {
		if err := svc.Save(&cfg); err != nil {
			log.Printf("config: saving: %v", err)
		}
		return nil
	}
}

func (m *Model) updateViewportHeight() {
	// Title, search box, status line and padding take up fixed rows; each
	// card renders as three rows.
	chrome := 9
	cards := (m.height - chrome) / 3
	if cards < 3 {
		cards = 3
	}
	m.state.ViewportHeight = cards
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	vs := views.ViewState{
		Width:  m.width,
		Height: m.height,

		Records:        m.state.Records,
		SelectedIndex:  m.state.SelectedIndex,
		ViewportOffset: m.state.ViewportOffset,
		ViewportHeight: m.state.ViewportHeight,

		SearchQuery: m.state.SearchQuery,
		YearFilter:  m.state.YearFilter,
		TypeFilter:  m.state.TypeFilter,
		Sort:        m.state.Sort,

		Suggestions:     m.state.Suggestions,
		SuggestionIndex: m.state.SuggestionIndex,

		ShowSidebar: m.state.ShowSidebar,
		ShowModal:   m.state.ShowModal,
		ModalRecord: m.state.ModalRecord,
		ShowHelp:    m.state.ShowHelp,

		Loading:   m.state.Loading,
		Exhausted: m.state.Exhausted,
		NoResults: m.state.NoResults,
		DarkMode:  m.state.DarkMode,

		StatusMessage: m.state.StatusMessage,
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.InputActive = true
		vs.InputPrompt = m.inputHandler.Prompt()
		vs.InputView = ti.View()
	}

	return m.renderer.Render(vs)
}
