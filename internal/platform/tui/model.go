package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/term2048/internal/config"
	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/engine"
	"github.com/vovakirdan/term2048/internal/game"
	"github.com/vovakirdan/term2048/internal/input"
	"github.com/vovakirdan/term2048/internal/share"
	"github.com/vovakirdan/term2048/internal/storage"
)

const (
	flashDuration = 3 * time.Second
	shareTimeout  = 5 * time.Second
)

// Options carries the collaborators of a Model. Everything except Config
// is optional.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Store   *storage.Store
	Sharer  share.Sharer
	Logger  *log.Logger
	// ScreenshotDir receives ctrl+s dumps. Empty means ~/.term2048/screenshots.
	ScreenshotDir string
}

// session collects what the dispatcher delivered during one Update.
type session struct {
	game *game.Game

	result  engine.Result
	moved   bool
	restart bool
	help    bool
	quit    bool
}

func (s *session) handle(a core.Action) {
	switch a {
	case core.ActionQuit:
		s.quit = true
	case core.ActionHelp:
		s.help = !s.help
	case core.ActionRestart:
		over := s.game.State().GameOver
		s.game.Apply(a)
		s.restart = over
	default:
		res := s.game.Apply(a)
		if res.Moved {
			s.moved = true
			s.result = res
		}
	}
}

// Model is the Bubble Tea model for a 2048 session.
type Model struct {
	game       *game.Game
	screen     *core.Screen
	dispatcher *input.Dispatcher
	release    func()
	sess       *session

	cfg     config.Config
	runtime core.RuntimeConfig
	store   *storage.Store
	sharer  share.Sharer
	logger  *log.Logger
	shotDir string

	help     help.Model
	flash    string
	flashID  int
	quitting bool
}

// NewModel creates a model, starts a game and subscribes it to key input.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := game.New(opts.Config.EngineOptions()...)
	g.Reset(cfg)

	sess := &session{game: g}
	d := input.NewDispatcher(input.DefaultKeyMap())

	h := help.New()
	h.Width = cfg.ScreenW

	logger.Debug("game started", "seed", cfg.Seed, "scoring", opts.Config.Game.Scoring)

	return Model{
		game:       g,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		dispatcher: d,
		release:    d.Subscribe(sess.handle),
		sess:       sess,
		cfg:        opts.Config,
		runtime:    cfg,
		store:      opts.Store,
		sharer:     opts.Sharer,
		logger:     logger,
		shotDir:    opts.ScreenshotDir,
		help:       h,
	}
}

// Init loads the best score in the background.
func (m Model) Init() tea.Cmd {
	return loadBestCmd(m.store, m.cfg.Game.Scoring)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case bestMsg:
		if msg.err != nil {
			m.logger.Warn("cannot load best score", "error", msg.err)
			return m, nil
		}
		m.game.SetBest(max(m.game.Best(), msg.score))
		return m, nil

	case sharedMsg:
		if msg.err != nil {
			m.logger.Error("share failed", "error", msg.err)
			return m.setFlash("Share failed")
		}
		return m.setFlash(msg.text)

	case flashExpiredMsg:
		if msg.id == m.flashID {
			m.flash = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey routes a key through the dispatcher.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		return m.saveScreenshot()
	}

	m.sess.moved, m.sess.restart = false, false
	if !m.dispatcher.Dispatch(msg.String()) {
		return m, nil
	}

	if m.sess.quit {
		m.quitting = true
		m.release()
		return m, tea.Quit
	}
	m.help.ShowAll = m.sess.help

	if m.sess.restart {
		m.logger.Debug("game restarted")
		return m, nil
	}
	if !m.sess.moved {
		return m, nil
	}

	res := m.sess.result
	m.logger.Debug("move",
		"dir", res.Direction,
		"score", res.State.Score,
		"spawned", fmt.Sprintf("%d,%d", res.Spawned.Row, res.Spawned.Col),
	)

	var cmds []tea.Cmd
	if res.JustWon {
		m.logger.Info("target reached", "target", m.game.Engine().WinTarget(), "moves", res.State.Moves)
		var cmd tea.Cmd
		m, cmd = m.setFlash(fmt.Sprintf("You reached %d!", m.game.Engine().WinTarget()))
		cmds = append(cmds, cmd)
	}
	if res.JustEnded {
		m.logger.Info("game over",
			"seed", m.game.Seed(),
			"score", res.State.Score,
			"max_tile", res.State.MaxTile,
			"moves", res.State.Moves,
		)
		cmds = append(cmds, shareCmd(m.sharer, m.shareResult(res.State)))
	}
	return m, tea.Batch(cmds...)
}

// shareResult builds the payload handed to sharers.
func (m Model) shareResult(st engine.State) share.Result {
	return share.Result{
		Scoring: m.cfg.Game.Scoring,
		Score:   st.Score,
		MaxTile: st.MaxTile,
		Moves:   st.Moves,
		Won:     st.Won,
		Message: m.cfg.ShareMessage(st.Score),
	}
}

// handleResize processes window resize events. The board is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// setFlash shows text below the board until it expires.
func (m Model) setFlash(text string) (Model, tea.Cmd) {
	m.flash = text
	m.flashID++
	return m, flashCmd(m.flashID, flashDuration)
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() (tea.Model, tea.Cmd) {
	m.game.Render(m.screen)

	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("cannot resolve home directory", "error", err)
			return m.setFlash("Screenshot failed")
		}
		dir = filepath.Join(home, ".term2048", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", dir, "error", err)
		return m.setFlash("Screenshot failed")
	}

	filename := fmt.Sprintf("%s_%s.txt", game.ID, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot write screenshot", "path", path, "error", err)
		return m.setFlash("Screenshot failed")
	}
	m.logger.Info("screenshot saved", "path", path)
	return m.setFlash("Saved " + filename)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)

	var footer []string
	if m.flash != "" {
		footer = append(footer, flashStyle.Render(m.flash))
	}
	if m.help.ShowAll {
		footer = append(footer, m.help.View(m.dispatcher.KeyMap()))
	}
	if len(footer) == 0 {
		return out
	}
	return overlayBottom(out, strings.Join(footer, "\n"), m.runtime.ScreenW)
}

// Game exposes the running game.
func (m Model) Game() *game.Game {
	return m.game
}

// Flash returns the message currently shown, if any.
func (m Model) Flash() string {
	return m.flash
}

// Subscribed reports whether the model still receives key input.
func (m Model) Subscribed() bool {
	return m.dispatcher.Subscribers() > 0
}

// Close releases the input subscription.
func (m Model) Close() {
	m.release()
}

var flashStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

// overlayBottom replaces the last lines of screen with footer, centered.
func overlayBottom(screen, footer string, width int) string {
	lines := strings.Split(screen, "\n")
	extra := strings.Split(footer, "\n")
	start := max(len(lines)-len(extra), 0)
	for i, line := range extra {
		if start+i >= len(lines) {
			break
		}
		lines[start+i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}
	return strings.Join(lines, "\n")
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model := NewModel(opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// loadBestCmd reads the stored high score for the scoring rule.
func loadBestCmd(store *storage.Store, scoring string) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shareTimeout)
		defer cancel()
		score, err := store.HighScore(ctx, scoring)
		return bestMsg{score: score, err: err}
	}
}

// shareCmd runs the sharers off the update loop.
func shareCmd(s share.Sharer, r share.Result) tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shareTimeout)
		defer cancel()
		if err := s.Share(ctx, r); err != nil {
			return sharedMsg{err: err}
		}
		return sharedMsg{text: fmt.Sprintf("Final score %d shared", r.Score)}
	}
}
