// Package tui shows a live progress screen while a conversion runs.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/ltfs2efu/internal/convert"
	"github.com/joe/ltfs2efu/internal/ltfs"
	"github.com/joe/ltfs2efu/internal/tui/shared"
)

// Runner is the part of convert.Engine the screen drives.
type Runner interface {
	SetEventEmitter(emitter convert.EventEmitter)
	Run(ctx context.Context) (*convert.Result, error)
}

// Model is the bubbletea model of the progress screen.
type Model struct {
	input  string
	output string

	runner Runner
	bridge *shared.EventBridge
	ctx    context.Context //nolint:containedctx // Lives as long as the program
	cancel context.CancelFunc

	spinner  spinner.Model
	progress progress.Model
	width    int

	phase      string
	compressed bool
	bytesRead  int64
	totalBytes int64
	loadTime   time.Duration
	currentDir string
	files      int
	dirs       int
	warnings   []ltfs.Warning

	started   time.Time
	now       time.Time
	cancelled bool
	done      bool
	result    *convert.Result
	err       error
}

// NewModel creates the screen for one conversion. The runner's events are
// routed to the screen; cancelling ctx (or pressing ctrl+c) stops the run.
func NewModel(ctx context.Context, runner Runner, input, output string) *Model {
	ctx, cancel := context.WithCancel(ctx)

	bridge := shared.NewEventBridge()
	runner.SetEventEmitter(bridge)

	now := time.Now()

	return &Model{
		input:    input,
		output:   output,
		runner:   runner,
		bridge:   bridge,
		ctx:      ctx,
		cancel:   cancel,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(shared.LabelStyle())),
		progress: shared.NewProgressModel(shared.ProgressBarWidth),
		phase:    shared.PhaseLoad,
		started:  now,
		now:      now,
	}
}

// Result returns the conversion result once the screen has finished.
func (m *Model) Result() *convert.Result {
	return m.result
}

// Err returns the conversion error once the screen has finished.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, shared.TickCmd(), m.bridge.ListenCmd(), m.runCmd())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(max(msg.Width/2, shared.ProgressBarWidth/2), shared.MaxProgressBarWidth)

		return m, nil
	case shared.EngineEventMsg:
		m.apply(msg.Event)

		return m, m.bridge.ListenCmd()
	case shared.ConversionDoneMsg:
		m.finish(msg)

		return m, tea.Quit
	case shared.TickMsg:
		m.now = time.Time(msg)
		if m.done {
			return m, nil
		}

		return m, shared.TickCmd()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case shared.KeyCtrlC, shared.KeyQuit:
		if m.done {
			return m, tea.Quit
		}

		m.cancelled = true
		m.cancel()
	}

	return m, nil
}

// apply folds one conversion event into the screen state.
func (m *Model) apply(event convert.Event) {
	switch ev := event.(type) {
	case convert.LoadStarted:
		m.phase = shared.PhaseLoad
		m.compressed = ev.Compressed
	case convert.LoadProgress:
		m.bytesRead, m.totalBytes = ev.BytesRead, ev.TotalBytes
	case convert.LoadComplete:
		m.phase = shared.PhaseConvert
		if ev.Stats != nil {
			m.bytesRead = ev.Stats.InputBytes
			m.loadTime = ev.Stats.ReadTime
		}
	case convert.ConvertStarted:
		m.phase = shared.PhaseConvert
	case convert.DirectoryEntered:
		m.currentDir = ev.Path
	case convert.RecordsProgress:
		m.files, m.dirs = ev.Files, ev.Directories
	case convert.WarningRaised:
		m.warnings = append(m.warnings, ev.Warning)
	case convert.ConvertComplete:
		m.phase = shared.PhaseDone
	case convert.ErrorOccurred:
		m.phase += "_error"
	}
}

func (m *Model) finish(msg shared.ConversionDoneMsg) {
	m.done = true
	m.cancel()
	m.result = msg.Result
	m.err = msg.Err

	if msg.Err != nil {
		if m.phase != shared.PhaseLoad && m.phase != shared.PhaseConvert {
			return
		}

		m.phase += "_error"

		return
	}

	m.phase = shared.PhaseDone

	if msg.Result != nil {
		m.files, m.dirs = msg.Result.Files, msg.Result.Directories
		// The bridge may have dropped warnings; the result has them all.
		m.warnings = msg.Result.Warnings
	}
}

// runCmd runs the conversion off the UI goroutine and reports its outcome.
func (m *Model) runCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := m.runner.Run(m.ctx)
		m.bridge.Close()

		return shared.ConversionDoneMsg{Result: result, Err: err}
	}
}
