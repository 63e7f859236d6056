package tui

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dos-defender/internal/config"
	"github.com/vovakirdan/dos-defender/internal/core"
	"github.com/vovakirdan/dos-defender/internal/games/defender"
	"github.com/vovakirdan/dos-defender/internal/storage"
)

// GameID identifies DOS Defender runs in the scores database.
const GameID = "defender"

// helpRows is the height reserved below the playfield for the key help.
const helpRows = 1

// SoundPlayer plays audio cues for simulation events.
type SoundPlayer interface {
	Play(e defender.Event)
	SetMuted(muted bool)
	Muted() bool
}

// Publisher receives every frame's snapshot, e.g. to stream it to spectators.
type Publisher interface {
	Publish(snap defender.Snapshot)
}

// Options configures a game model.
type Options struct {
	Config  config.DefenderConfig
	Runtime core.RuntimeConfig // Initial terminal size, tick rate and seed
	Store   *storage.Store     // Optional; scores are not persisted without it
	Sound   SoundPlayer        // Optional
	Feed    Publisher          // Optional
	Logger  *log.Logger
}

// Model is the Bubble Tea model that runs one DOS Defender session.
type Model struct {
	sim      *defender.Simulation
	field    *defender.Field
	screen   *core.Screen
	snap     defender.Snapshot
	keys     KeyMap
	held     *HeldKeys
	help     help.Model
	store    *storage.Store
	sound    SoundPlayer
	feed     Publisher
	logger   *log.Logger
	tickRate int
	width    int
	height   int
	lastTick time.Time
	quitting bool
}

// NewModel creates a game model sized for the given terminal.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	rt.Seed = rt.ResolveSeed(time.Now())
	if rt.TickRate <= 0 {
		rt.TickRate = DefaultTickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	rows := core.Max(rt.ScreenH-helpRows, 0)
	field := defender.NewField(FieldSize(rt.ScreenW, rows))

	simOpts := []defender.Option{
		defender.WithSeed(rt.Seed),
		defender.WithLogger(opts.Logger),
	}
	if opts.Store != nil {
		simOpts = append(simOpts, defender.WithStore(opts.Store))
	}
	sim := defender.New(opts.Config, field, simOpts...)

	m := Model{
		sim:      sim,
		field:    field,
		screen:   core.NewScreen(rt.ScreenW, rows),
		keys:     DefaultKeyMap(),
		held:     NewHeldKeys(DefaultReleaseTimeout),
		help:     help.New(),
		store:    opts.Store,
		sound:    opts.Sound,
		feed:     opts.Feed,
		logger:   opts.Logger,
		tickRate: rt.TickRate,
		width:    rt.ScreenW,
		height:   rt.ScreenH,
	}
	m.help.Width = rt.ScreenW
	sim.Subscribe(m.onEvent)
	m.snap = sim.Snapshot()
	return m
}

// onEvent forwards simulation events to audio and persists finished runs.
func (m Model) onEvent(e defender.Event) {
	if m.sound != nil {
		m.sound.Play(e)
	}
	if e.Type != defender.EventGameOver || m.store == nil || e.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(GameID, e.Score, e.Level); err != nil {
		m.logger.Warn("could not save score", "error", err)
	}
}

// Init starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
	case key.Matches(msg, m.keys.Mute):
		if m.sound != nil {
			m.sound.SetMuted(!m.sound.Muted())
		}
	case key.Matches(msg, m.keys.Left):
		m.apply(m.held.Press(dirLeft, now)...)
	case key.Matches(msg, m.keys.Right):
		m.apply(m.held.Press(dirRight, now)...)
	case key.Matches(msg, m.keys.Stop):
		m.apply(m.held.ReleaseAll()...)
	case key.Matches(msg, m.keys.Fire):
		m.apply(core.CommandFire)
	case key.Matches(msg, m.keys.Pause):
		m.apply(core.CommandPause)
	case key.Matches(msg, m.keys.Confirm):
		m.apply(m.held.ReleaseAll()...)
		m.apply(core.CommandConfirm)
	case key.Matches(msg, m.keys.Restart):
		m.apply(m.held.ReleaseAll()...)
		m.apply(core.CommandRestart)
	}

	m.snap = m.sim.Snapshot()
	return m, nil
}

func (m Model) apply(cmds ...core.Command) {
	for _, c := range cmds {
		m.sim.Command(c)
	}
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	rows := core.Max(msg.Height-helpRows, 0)
	m.screen.Resize(msg.Width, rows)
	m.field.Set(FieldSize(msg.Width, rows))
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	var deltaMs float64
	if !m.lastTick.IsZero() {
		deltaMs = float64(t.Sub(m.lastTick)) / float64(time.Millisecond)
	}
	m.lastTick = t

	m.apply(m.held.Expire(t)...)

	if TooSmall(m.width, m.height-helpRows) {
		if m.sim.State() == defender.StatePlaying {
			m.apply(m.held.ReleaseAll()...)
			m.apply(core.CommandPause)
		}
		m.snap = m.sim.Snapshot()
		return m, tickCmd(m.tickRate)
	}

	snap, err := m.sim.Tick(math.Max(deltaMs, 0))
	if err != nil {
		m.logger.Debug("tick rejected", "error", err)
	}
	m.snap = snap
	if m.feed != nil {
		m.feed.Publish(snap)
	}

	return m, tickCmd(m.tickRate)
}

// saveScreenshot writes the current frame as plain text.
func (m Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot: no home directory", "error", err)
		return
	}
	dir := filepath.Join(home, ".defender", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot: cannot create directory", "error", err)
		return
	}

	m.draw()
	name := fmt.Sprintf("%s_%s.txt", GameID, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot: write failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func (m Model) draw() {
	if TooSmall(m.width, m.height-helpRows) {
		DrawTooSmall(m.screen)
		return
	}
	DrawSnapshot(m.screen, m.snap)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current frame and the key help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Snapshot returns the most recent frame.
func (m Model) Snapshot() defender.Snapshot {
	return m.snap
}

// Run starts an interactive game in the current terminal.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
