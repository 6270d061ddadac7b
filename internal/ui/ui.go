// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/skychart/internal/astro"
	"github.com/litescript/skychart/internal/clock"
	"github.com/litescript/skychart/internal/logging"
	"github.com/litescript/skychart/internal/quiz"
	"github.com/litescript/skychart/internal/session"
	"github.com/litescript/skychart/internal/state"
	"github.com/litescript/skychart/internal/version"
	"github.com/litescript/skychart/internal/viewport"
)

// Rows above and below the sky canvas.
const (
	headerLines = 1
	footerLines = 2
)

// TickMsg advances the session by one frame.
type TickMsg time.Time

// Options configure the model.
type Options struct {
	SavePath     string
	PanStep      int
	ZoomStep     int
	TickInterval time.Duration
	Labels       LabelMode
	Log          *logging.Logger

	// Library, when set, backs the S/O keys. Sessions are stored there
	// under SessionName.
	Library     state.Store
	SessionName string
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx     context.Context
	session *state.Session
	opts    Options
	log     *logging.Logger

	skyView SkyViewModel

	width     int
	height    int
	ready     bool
	statusMsg string

	// previewing is set while a fast-forward start runs as an opening
	// preview; the first key press or click pauses the clock.
	previewing bool

	pointer    viewport.Point
	hasPointer bool
}

// New creates a new root UI model around a session.
func New(ctx context.Context, sess *state.Session, opts Options) Model {
	if opts.PanStep <= 0 {
		opts.PanStep = 2
	}
	if opts.ZoomStep <= 0 {
		opts.ZoomStep = 5
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = 100 * time.Millisecond
	}
	if opts.SavePath == "" {
		opts.SavePath = session.DefaultFile
	}
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}
	if opts.SessionName == "" {
		opts.SessionName = "default"
	}

	sky := NewSkyViewModel()
	sky.labelMode = opts.Labels
	sess.SetLabelWidth(labelWidth(sky.labelMode))

	return Model{
		ctx:        ctx,
		session:    sess,
		opts:       opts,
		log:        opts.Log.With("ui"),
		skyView:    sky,
		previewing: sess.Mode() == clock.FastForward,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.TickInterval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		canvasHeight := max(msg.Height-headerLines-footerLines, 1)
		m.skyView = m.skyView.SetSize(msg.Width, canvasHeight)
		m.dispatch(state.Resize{Width: msg.Width, Height: canvasHeight})

	case TickMsg:
		// A failed tick is kept as the session's LastError and shown in
		// the footer; the next tick retries.
		_ = m.session.Tick(m.ctx)
		return m, tickCmd(m.opts.TickInterval)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.statusMsg = ""
	step := m.opts.PanStep

	k := msg.String()
	if k == " " {
		m.previewing = false
	} else {
		m.endPreview()
	}

	switch k {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up":
		m.dispatch(state.Pan{DY: -step})
	case "down":
		m.dispatch(state.Pan{DY: step})
	case "left":
		m.dispatch(state.Pan{DX: -step})
	case "right":
		m.dispatch(state.Pan{DX: step})
	case "+", "=":
		m.dispatch(state.Zoom{Delta: m.opts.ZoomStep})
	case "-", "_":
		m.dispatch(state.Zoom{Delta: -m.opts.ZoomStep})
	case "0":
		m.dispatch(state.CenterView{})

	case "u":
		m.dispatch(state.Undo{})
	case "r":
		m.dispatch(state.Redo{})
	case "e":
		m.dispatch(state.ToggleErase{})
	case "x":
		m.dispatch(state.Clear{})
	case "esc":
		m.dispatch(state.CancelPending{})

	case " ":
		next := clock.Mode((int(m.session.Mode()) + 1) % 3)
		m.dispatch(state.SetMode{Mode: next})
	case "L":
		m.dispatch(state.SetLocation{Name: nextSite(m.session.Location().Name)})
	case "l":
		m.skyView = m.skyView.cycleLabelMode()
		m.session.SetLabelWidth(labelWidth(m.skyView.LabelMode()))

	case "s":
		m.save()
	case "o":
		m.load()
	case "S":
		m.saveToLibrary()
	case "O":
		m.loadFromLibrary()

	case "Q":
		if m.session.QuizActive() {
			m.dispatch(state.StopQuiz{})
		} else {
			m.dispatch(state.StartQuiz{})
		}
	case "enter":
		m.answer()
	case "n":
		if m.session.QuizActive() {
			m.dispatch(state.SkipQuiz{})
		}
	case "R":
		if m.session.QuizActive() {
			m.dispatch(state.RestartQuiz{})
		}
	}

	return m, nil
}

// answer checks the drawing; once it is correct the next press moves on,
// and after the last constellation it leaves the quiz.
func (m *Model) answer() {
	if !m.session.QuizActive() {
		return
	}
	if !m.session.QuizSolved() {
		m.dispatch(state.CheckQuiz{})
		return
	}
	if msg, _ := m.session.QuizStatus(); msg == quiz.CompletedMessage {
		m.dispatch(state.StopQuiz{})
		return
	}
	m.dispatch(state.NextQuiz{})
}

// endPreview pauses a fast-forward opening preview.
func (m *Model) endPreview() {
	if !m.previewing {
		return
	}
	m.previewing = false
	if m.session.Mode() == clock.FastForward {
		m.dispatch(state.SetMode{Mode: clock.Paused})
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	p := viewport.Point{X: msg.X, Y: msg.Y - headerLines}
	m.pointer, m.hasPointer = p, true

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.dispatch(state.Zoom{Delta: m.opts.ZoomStep})
		return m
	case tea.MouseButtonWheelDown:
		m.dispatch(state.Zoom{Delta: -m.opts.ZoomStep})
		return m
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		m.dispatch(state.MovePointer{At: p})
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.statusMsg = ""
			m.endPreview()
			m.dispatch(state.MovePointer{At: p})
			m.dispatch(state.ClickAt{At: p})
		case tea.MouseButtonRight:
			m.dispatch(state.CancelPending{})
		}
	}
	return m
}

func (m *Model) dispatch(cmd state.Command) {
	if err := m.session.Dispatch(m.ctx, cmd); err != nil {
		m.log.Warn("%T: %v", cmd, err)
		m.statusMsg = err.Error()
	}
}

func (m *Model) save() {
	if err := m.session.Save(m.opts.SavePath); err != nil {
		m.statusMsg = "save failed: " + err.Error()
		return
	}
	m.statusMsg = "saved to " + m.opts.SavePath
}

func (m *Model) load() {
	err := m.session.Load(m.ctx, m.opts.SavePath)
	switch {
	case errors.Is(err, session.ErrNotFound):
		m.statusMsg = "no save file at " + m.opts.SavePath
	case err != nil:
		m.statusMsg = "load failed: " + err.Error()
	default:
		m.statusMsg = "loaded " + m.opts.SavePath
	}
}

func (m *Model) saveToLibrary() {
	if m.opts.Library == nil {
		m.statusMsg = "no session library"
		return
	}
	if err := m.session.SaveTo(m.ctx, m.opts.Library, m.opts.SessionName); err != nil {
		m.log.Error("library save: %v", err)
		m.statusMsg = "library save failed: " + err.Error()
		return
	}
	m.statusMsg = "stored as " + m.opts.SessionName
}

func (m *Model) loadFromLibrary() {
	if m.opts.Library == nil {
		m.statusMsg = "no session library"
		return
	}
	err := m.session.LoadFrom(m.ctx, m.opts.Library, m.opts.SessionName)
	switch {
	case errors.Is(err, session.ErrNotFound):
		m.statusMsg = "no stored session " + m.opts.SessionName
	case err != nil:
		m.statusMsg = "library load failed: " + err.Error()
	default:
		m.statusMsg = "restored " + m.opts.SessionName
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.skyView.View(m.session) + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")) // violet
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))               // muted purple
	accentStyle := lipgloss.NewStyle().Foreground(colorLabel)

	tool := accentStyle.Render("draw")
	if m.session.Erasing() {
		tool = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Render("erase")
	}

	parts := []string{
		titleStyle.Render("skychart v" + version.Version),
		accentStyle.Render(m.session.Time().Format("2006-01-02 15:04") + " UTC"),
		dimStyle.Render(m.session.Mode().String()),
		accentStyle.Render(m.session.Location().Name),
		dimStyle.Render(m.session.Twilight().String()),
		dimStyle.Render(fmt.Sprintf("zoom %d", m.session.View().Scale())),
		tool,
		dimStyle.Render("labels " + m.skyView.LabelMode().String()),
	}
	return " " + strings.Join(parts, dimStyle.Render(" | "))
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	quizStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)

	var status string
	switch {
	case m.session.LastError() != nil:
		status = errorStyle.Render("ERROR: " + m.session.LastError().Error())
	case m.statusMsg != "":
		status = dimStyle.Render(m.statusMsg)
	default:
		if msg, ok := m.session.QuizStatus(); ok {
			n, total, _ := m.session.QuizProgress()
			status = quizStyle.Render(fmt.Sprintf("Quiz %d/%d: %s", n, total, msg))
		} else if line, _, ok := m.session.Pending(); ok {
			status = dimStyle.Render("drawing from " + line.Star1)
		} else if info, ok := m.hoverInfo(); ok {
			status = dimStyle.Render(info + " | " + m.lineSummary())
		} else {
			status = dimStyle.Render(m.lineSummary())
		}
	}

	var help string
	if m.session.QuizActive() {
		help = "click: star | enter: check/next | n: skip | R: restart | u/r: undo/redo | e: erase | Q: leave quiz | q: quit"
	} else {
		help = "click: star | arrows: pan | +/-: zoom | u/r: undo/redo | e: erase | x: clear | space: clock | L: site | l: labels | s/o: save/load | S/O: library | Q: quiz | q: quit"
	}
	return " " + status + "\n " + dimStyle.Render(help)
}

// lineSummary counts the lines and gives the angular length of the newest.
func (m Model) lineSummary() string {
	lines := m.session.Lines()
	if len(lines) == 0 {
		return "no lines"
	}
	last := lines[len(lines)-1]
	sep, ok := m.session.Separation(last.Star1, last.Star2)
	if !ok {
		return fmt.Sprintf("lines: %d", len(lines))
	}
	return fmt.Sprintf("lines: %d | last %s-%s %.1f°", len(lines), last.Star1, last.Star2, sep)
}

// hoverInfo describes the star under the pointer.
func (m Model) hoverInfo() (string, bool) {
	if !m.hasPointer {
		return "", false
	}
	star, ok := m.session.StarAt(m.pointer)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s mag %.2f %s", star.Name, star.Magnitude, star.Horizon), true
}

// nextSite returns the site after name in SiteNames order.
func nextSite(name string) string {
	names := astro.SiteNames()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
