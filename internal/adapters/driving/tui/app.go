package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/views/doccontent"
	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/views/quiz"
	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// statusBar shows the library, today's progress and key hints.
	statusBar *status.Bar

	menuView      *menu.View
	quizView      *quiz.View
	documentsView *documents.View
	contentView   *doccontent.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// startView is shown first. Only ViewMenu and ViewQuiz are honoured.
	startView messages.ViewType

	// quizSize is the number of questions per quiz.
	quizSize int

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		statusBar:     status.NewBar(s, km),
		menuView:      menu.NewView(s),
		quizView:      quiz.NewView(s, ports.Study, ports.Library, ports.Speech),
		documentsView: documents.NewView(s, ports.Library, ports.Study, ports.Speech),
		contentView:   doccontent.NewView(s, ports.Speech),
		currentView:   messages.ViewMenu,
		startView:     messages.ViewMenu,
		quizSize:      domain.DefaultQuizQuestions,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithQuizSize sets the number of questions per quiz. Values below 1 are ignored.
func (a *App) WithQuizSize(n int) *App {
	if n > 0 {
		a.quizSize = n
	}
	return a
}

// WithStartView opens the app on the given view instead of the menu.
func (a *App) WithStartView(view messages.ViewType) *App {
	a.startView = view
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("SmartStudy"),
		a.loadProfile(),
	}
	if a.startView == messages.ViewQuiz {
		cmds = append(cmds, a.switchTo(messages.ViewQuiz))
	}
	return tea.Batch(cmds...)
}

func (a *App) loadProfile() tea.Cmd {
	library := a.ports.Library
	ctx := a.ctx
	return func() tea.Msg {
		profile, err := library.Profile(ctx)
		return messages.ProfileLoaded{Library: library.Current(), Profile: profile, Err: err}
	}
}

func (a *App) loadSummary() tea.Cmd {
	study := a.ports.Study
	ctx := a.ctx
	return func() tea.Msg {
		summary, err := study.Summary(ctx, domain.DefaultSummarySentences)
		return messages.SummaryLoaded{Title: "Library Summary", Summary: summary, Err: err}
	}
}

// switchTo activates a view and returns the command that fills it.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.statusBar.Clear()

	switch view {
	case messages.ViewQuiz:
		a.statusBar.SetState(status.StateQuiz)
		return a.quizView.Start(a.quizSize)
	case messages.ViewSummary:
		a.currentView = messages.ViewDocContent
		a.contentView.SetLoading("Library Summary", messages.ViewMenu)
		return a.loadSummary()
	case messages.ViewDocuments:
		return a.documentsView.Load()
	case messages.ViewHelp:
		a.statusBar.SetState(status.StateHelp)
	case messages.ViewMenu:
		return a.loadProfile()
	case messages.ViewDocContent:
	}
	return nil
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			if keymap.Matches(msg.String(), a.keymap.Help) {
				return a, a.switchTo(messages.ViewHelp)
			}
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewQuiz:
			a.quizView, cmd = a.quizView.Update(msg)
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
		case messages.ViewDocContent:
			a.contentView, cmd = a.contentView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				return a, a.switchTo(messages.ViewMenu)
			}
		case messages.ViewSummary:
		}
		return a, cmd

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.QuizLoaded, messages.AnswerChecked, messages.QuizFinished:
		a.quizView, cmd = a.quizView.Update(msg)
		return a, cmd

	case messages.QuizRecorded:
		a.quizView, cmd = a.quizView.Update(msg)
		return a, tea.Batch(cmd, a.loadProfile())

	case messages.SummaryLoaded:
		if a.currentView != messages.ViewDocContent {
			a.contentView.SetLoading(msg.Title, a.currentView)
			a.currentView = messages.ViewDocContent
		}
		a.contentView, cmd = a.contentView.Update(msg)
		return a, cmd

	case messages.DocumentsLoaded, messages.DocumentRemoved:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.DocumentSelected:
		a.contentView.SetDocument(msg.Document)
		a.currentView = messages.ViewDocContent
		return a, nil

	case messages.ProfileLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.statusBar.SetProfile(msg.Library, msg.Profile)
		a.menuView.SetProfile(msg.Profile)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		if msg.Err != nil {
			a.statusBar.SetMessage(msg.Err.Error())
		}
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewQuiz:
		a.quizView, cmd = a.quizView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewDocContent:
		a.contentView, cmd = a.contentView.Update(msg)
	case messages.ViewSummary, messages.ViewHelp:
	}
	return cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewQuiz:
		body = a.quizView.View()
	case messages.ViewDocuments:
		body = a.documentsView.View()
	case messages.ViewDocContent:
		body = a.contentView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	case messages.ViewMenu, messages.ViewSummary:
		body = a.menuView.View()
	default:
		body = a.menuView.View()
	}

	return body + "\n\n" + a.statusBar.View()
}

// viewHelp renders the help view from the key bindings.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))

	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// status bar takes the last two lines
	viewHeight := max(height-2, 1)
	a.menuView.SetDimensions(width, viewHeight)
	a.quizView.SetDimensions(width, viewHeight)
	a.documentsView.SetDimensions(width, viewHeight)
	a.contentView.SetDimensions(width, viewHeight)
	a.statusBar.SetWidth(width)
}
