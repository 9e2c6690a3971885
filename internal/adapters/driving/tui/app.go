package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/changelog-migrate/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/changelog-migrate/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/changelog-migrate/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/changelog-migrate/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driving"
)

const (
	// maxRecent is the number of entries listed under the progress bar.
	maxRecent = 8

	maxProgressWidth = 60
)

// App is the fetch dashboard following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// The fetch runs in its own goroutine; progress events reach Update as
// messages through a channel, one waitForUpdate command at a time.
type App struct {
	ports  *Ports
	ctx    context.Context
	cancel context.CancelFunc

	styles *styles.Styles
	keymap *keymap.KeyMap
	status *status.Bar

	spinner  spinner.Model
	progress progress.Model

	updates chan tea.Msg

	// stopped is closed by Stop; the fetch goroutine gives up sending once
	// nobody reads updates any more. worker is closed when it exits.
	stopped  chan struct{}
	stopOnce sync.Once
	worker   chan struct{}

	// events holds every processed entry in arrival order.
	events    []driving.FetchEvent
	processed int
	failed    int
	total     int

	showFailures bool
	showHelp     bool

	summary *domain.FetchSummary
	err     error
	done    bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a fetch dashboard for the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	a := &App{
		ports:   ports,
		ctx:     context.Background(),
		keymap:  keymap.DefaultKeyMap(),
		stopped: make(chan struct{}),
	}
	a.WithStyles(styles.DefaultStyles())
	return a, nil
}

// WithContext sets the context the fetch runs under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithStyles replaces the dashboard styles.
func (a *App) WithStyles(s *styles.Styles) *App {
	theme := s.Theme()
	a.styles = s
	a.status = status.NewBar(s, a.keymap)
	a.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(s.Heading),
	)
	a.progress = progress.New(
		progress.WithGradient(string(theme.Accent), string(theme.ProgressEnd)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)
	return a
}

// Init implements tea.Model. It starts the fetch.
// The dashboard stays on the main screen so its last frame is left in
// the terminal after exit.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("changelog-migrate - fetch"),
		a.start(),
		a.spinner.Tick,
	)
}

// start launches the fetch goroutine and returns the command that waits
// for its first message.
func (a *App) start() tea.Cmd {
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancel = cancel

	updates := make(chan tea.Msg, maxRecent)
	a.updates = updates
	worker := make(chan struct{})
	a.worker = worker
	stopped := a.stopped

	go func() {
		defer close(worker)
		defer close(updates)

		summary, err := a.ports.Fetch.Fetch(ctx, func(e driving.FetchEvent) {
			select {
			case updates <- messages.ItemFetched{Event: e}:
			case <-ctx.Done():
			case <-stopped:
			}
		})
		select {
		case updates <- messages.FetchDone{Summary: summary, Err: err}:
		case <-stopped:
		}
	}()

	return a.waitForUpdate
}

// waitForUpdate blocks until the fetch goroutine sends its next message.
func (a *App) waitForUpdate() tea.Msg {
	msg, ok := <-a.updates
	if !ok {
		return nil
	}
	return msg
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.status.SetWidth(msg.Width)
		a.progress.Width = max(10, min(msg.Width-12, maxProgressWidth))
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.ItemFetched:
		a.record(msg.Event)
		return a, a.waitForUpdate

	case messages.FetchDone:
		a.finish(msg)
		return a, tea.Quit

	case spinner.TickMsg:
		if a.done {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, a.keymap.Quit):
		if a.done {
			return tea.Quit
		}
		a.Cancel()
	case keymap.Matches(keyStr, a.keymap.Help):
		a.showHelp = !a.showHelp
	case keymap.Matches(keyStr, a.keymap.Failures):
		a.showFailures = !a.showFailures
	}
	return nil
}

// Cancel stops the running fetch. The dashboard exits once the fetch
// service has returned.
func (a *App) Cancel() {
	if a.done {
		return
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.status.SetState(status.StateCancelling)
}

// Stop cancels the fetch and releases its goroutine. Call it once the
// program has exited; it is safe to call more than once.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}
		close(a.stopped)
	})
}

func (a *App) record(e driving.FetchEvent) {
	a.events = append(a.events, e)
	a.processed++
	if e.Err != nil {
		a.failed++
	}
	a.total = e.Total
	a.status.SetProgress(a.processed, a.total)
}

func (a *App) finish(msg messages.FetchDone) {
	a.done = true
	a.summary = msg.Summary
	a.err = msg.Err
	if a.cancel != nil {
		a.cancel()
	}

	if msg.Err != nil {
		a.status.SetState(status.StateError)
		a.status.SetMessage(msg.Err.Error())
		return
	}

	succeeded, failed := a.processed-a.failed, a.failed
	if msg.Summary != nil {
		succeeded, failed = msg.Summary.Succeeded, msg.Summary.Failed
		a.total = msg.Summary.Total
	}
	text := fmt.Sprintf("%d downloaded, %d failed", succeeded, failed)
	if msg.Cancelled() {
		text += ", cancelled"
	}
	a.status.SetState(status.StateDone)
	a.status.SetMessage(text)
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	header := a.spinner.View() + " "
	if a.done {
		header = "  "
	}
	b.WriteString(header + a.styles.Heading.Render("Fetching changelog entries") + "\n\n")

	b.WriteString(a.progress.ViewAs(a.percent()))
	b.WriteString(a.styles.Detail.Render(fmt.Sprintf(" %d/%d", a.processed, a.total)))
	b.WriteString("\n\n")

	for _, e := range a.visibleEvents() {
		b.WriteString(a.renderEvent(e) + "\n")
	}

	if a.showHelp {
		b.WriteString("\n" + a.styles.Help.Render(a.fullHelp()) + "\n")
	}

	b.WriteString("\n" + a.status.View() + "\n")
	return b.String()
}

func (a *App) percent() float64 {
	if a.total == 0 {
		return 0
	}
	return float64(a.processed) / float64(a.total)
}

// visibleEvents returns the tail of the event list, or failures only.
func (a *App) visibleEvents() []driving.FetchEvent {
	events := a.events
	if a.showFailures {
		events = make([]driving.FetchEvent, 0, a.failed)
		for _, e := range a.events {
			if e.Err != nil {
				events = append(events, e)
			}
		}
	}
	if len(events) > maxRecent {
		events = events[len(events)-maxRecent:]
	}
	return events
}

func (a *App) renderEvent(e driving.FetchEvent) string {
	prefix := fmt.Sprintf("[%d/%d] %s ", e.Index, e.Total, e.Item.Slug)
	if e.Err != nil {
		return prefix + a.styles.Failed.Render("failed: "+e.Err.Error())
	}
	return prefix + a.styles.Detail.Render("-> "+e.Path)
}

func (a *App) fullHelp() string {
	groups := a.keymap.FullHelp()
	parts := make([]string, 0, len(groups))
	for _, group := range groups {
		hints := make([]string, 0, len(group))
		for _, binding := range group {
			hints = append(hints, helpHint(binding))
		}
		parts = append(parts, strings.Join(hints, "  "))
	}
	return strings.Join(parts, " | ")
}

func helpHint(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}

// Done reports whether the fetch has returned.
func (a *App) Done() bool {
	return a.done
}

// Result returns the fetch outcome once the dashboard has exited.
func (a *App) Result() (*domain.FetchSummary, error) {
	if !a.done {
		return nil, ErrNotFinished
	}
	return a.summary, a.err
}
