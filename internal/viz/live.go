package viz

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/poitune/internal/analysis"
	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/metrics"
	"github.com/san-kum/poitune/internal/sim"
	"github.com/san-kum/poitune/internal/store"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 240
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(40)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type screen int

const (
	screenMenu screen = iota
	screenLive
)

// FrameMsg carries a rendered frame from the loop goroutine.
type FrameMsg struct {
	View     string
	PoiX     float64
	FPS      float64
	OnCanvas float64
	Travel   float64
}

// Model is the terminal host: a scenario menu, then the live canvas with a
// parameter panel. Every edit goes through the store and restarts the loop.
type Model struct {
	ctx     context.Context
	store   *store.Store
	surface *Surface
	runner  *sim.Runner
	frames  chan FrameMsg
	logger  *log.Logger

	fps      *metrics.FrameRate
	onCanvas *metrics.OnCanvas
	travel   *metrics.Travel
	stats    FrameMsg

	screen    screen
	cursor    int
	scenarios []string
	paused    bool
	frame     string
	history   []float64
	err       error
	showHelp  bool
}

// NewModel builds a terminal host over st. The loop starts when the live screen is
// entered.
func NewModel(ctx context.Context, st *store.Store, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	m := &Model{
		ctx:       ctx,
		store:     st,
		surface:   NewSurface(width, height),
		frames:    make(chan FrameMsg, 1),
		logger:    logger,
		scenarios: config.ListScenarios(),
		history:   make([]float64, 0, historyCapacity),
		fps:       metrics.NewFrameRate(0),
		onCanvas:  metrics.NewOnCanvas(config.CanvasWidth, config.CanvasHeight),
		travel:    metrics.NewTravel(),
	}

	m.runner = sim.NewRunner(m.surface, sim.LoopOptions{
		Logger:  logger,
		OnFrame: m.publish,
		Metrics: []metrics.Metric{m.fps, m.onCanvas, m.travel},
	})

	return m
}

// publish runs on the loop goroutine. A frame the UI has not picked up yet is
// replaced by the newer one.
func (m *Model) publish(s *sim.Simulator) {
	msg := FrameMsg{
		View:     m.surface.Render(),
		FPS:      m.fps.Value(),
		OnCanvas: m.onCanvas.Value(),
		Travel:   m.travel.Value(),
	}
	if pos := s.Positions(); len(pos) > 0 {
		msg.PoiX = pos[0].Poi.X
	}

	select {
	case m.frames <- msg:
	default:
		select {
		case <-m.frames:
		default:
		}
		select {
		case m.frames <- msg:
		default:
		}
	}
}

func (m *Model) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-m.frames:
			return f
		case <-m.ctx.Done():
			return tea.Quit()
		}
	}
}

func (m *Model) Init() tea.Cmd {
	m.syncCursor()
	return m.waitForFrame()
}

// restart rebuilds the loop from the store unless the user paused it.
func (m *Model) restart() {
	if m.paused || m.screen != screenLive {
		return
	}
	m.history = m.history[:0]
	if err := m.runner.Restart(m.ctx, m.store.Params()); err != nil {
		m.err = err
		m.logger.Printf("restart: %v", err)
	}
}

// Stop ends the loop. No frame is painted after it returns.
func (m *Model) Stop() { m.runner.Stop() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Stop()
			return m, tea.Quit
		}
		if m.screen == screenMenu {
			return m.menuKey(msg)
		}
		return m.liveKey(msg)
	case FrameMsg:
		m.frame = msg.View
		m.stats = msg
		m.history = append(m.history, msg.PoiX)
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
		return m, m.waitForFrame()
	}
	return m, nil
}

func (m *Model) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.Stop()
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenarios)-1 {
			m.cursor++
		}
	case "enter":
		m.applyScenario(m.cursor)
		m.screen = screenLive
		m.restart()
	case "c":
		// keep the current parameters
		m.screen = screenLive
		m.restart()
	}
	return m, nil
}

func (m *Model) applyScenario(i int) {
	m.cursor = i
	if err := m.store.ApplyScenario(m.scenarios[i]); err != nil {
		m.err = err
	}
}

var liveKeys = map[string]store.Action{
	"n":    store.NextScenario,
	"p":    store.PrevScenario,
	"s":    store.ToggleSync,
	"1":    store.OneLocus,
	"2":    store.TwoLoci,
	"g":    store.ToggleGrid,
	"+":    store.LongerAfterimage,
	"=":    store.LongerAfterimage,
	"-":    store.ShorterAfterimage,
	"_":    store.ShorterAfterimage,
	"]":    store.Faster,
	"[":    store.Slower,
	"up":   store.GrowRadius,
	"k":    store.GrowRadius,
	"down": store.ShrinkRadius,
	"j":    store.ShrinkRadius,
	"r":    store.Reset,
}

func (m *Model) liveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.Stop()
		return m, tea.Quit
	case "esc":
		m.Stop()
		m.screen = screenMenu
		return m, nil
	case " ":
		m.paused = !m.paused
		if m.paused {
			m.Stop()
		} else {
			m.restart()
		}
		return m, nil
	case "t":
		names := ThemeNames()
		for i, name := range names {
			if name == CurrentTheme.Name {
				SetTheme(names[(i+1)%len(names)])
				break
			}
		}
		return m, nil
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	act, ok := liveKeys[msg.String()]
	if !ok {
		return m, nil
	}
	if err := m.store.Do(act); err != nil {
		m.err = err
		return m, nil
	}
	m.syncCursor()
	m.restart()
	return m, nil
}

// syncCursor points the menu at the store's scenario.
func (m *Model) syncCursor() {
	name := m.store.Scenario()
	for i, s := range m.scenarios {
		if s == name {
			m.cursor = i
		}
	}
}

func (m *Model) View() string {
	if m.screen == screenMenu {
		return m.viewMenu()
	}
	return m.viewLive()
}

func (m *Model) viewMenu() string {
	var s strings.Builder
	s.WriteString(GradientTitle.Render("POITUNE") + "  " + Subtle.Render("poi flower simulator") + "\n\n")

	for i, name := range m.scenarios {
		sc, _ := config.GetScenario(name)
		petals, _ := analysis.Petals(sc.Left.Rotation)
		line := fmt.Sprintf("%-16s %s", name, Subtle.Render(fmt.Sprintf("%d petals", petals)))
		if i == m.cursor {
			s.WriteString(NeonGlow.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	s.WriteString(KeyHint.Render("\n↑↓ select  enter load  c keep current  q quit"))
	return GlassPanel.Render(s.String())
}

func (m *Model) viewLive() string {
	p := m.store.Params()

	var s strings.Builder
	name := m.store.Scenario()
	if name == "" {
		name = "custom"
	}
	s.WriteString(HeaderStyle.Render(strings.ToUpper(name)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(StatusError.Render("ERROR "+m.err.Error()) + "\n\n")
	case m.paused:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	default:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Sync", onOff(p.Sync))
	row("Loci", fmt.Sprintf("%d", p.Common.NumberOfLocus))
	row("Afterimage", fmt.Sprintf("%.2f", p.Common.Afterimage))
	row("Speed", fmt.Sprintf("%.2fx", p.Common.SpeedRate))
	row("Grid", onOff(p.Common.Grid.Show))
	if m.stats.FPS > 0 {
		row("Measured", fmt.Sprintf("%.0f fps", m.stats.FPS))
		row("On canvas", fmt.Sprintf("%.0f%%", m.stats.OnCanvas*100))
		row("Travel", fmt.Sprintf("%.0f px", m.stats.Travel))
	}
	s.WriteString("\n")
	for _, side := range []struct {
		name string
		s    config.Side
	}{{"Left", p.Left}, {"Right", p.Right}} {
		r := side.s.Rotation
		row(side.name, fmt.Sprintf("r %.0f/%.0f  ω %.1f/%.1f", r.RadiusHand, r.RadiusPoi, r.OmegaHand, r.OmegaPoi))
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("poi x"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause n/p:Scenario s:Sync\n1/2:Loci g:Grid +/-:Trail\n[ ]:Speed ↑↓:Radius r:Reset\nt:Theme esc:Menu q:Quit"))

	canvasView := canvasStyle.Render(m.frame)
	statsView := statsStyle.BorderForeground(CurrentTheme.Border).Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return BoxWithTitle("Keys", helpText, 44) + "\n" + mainView
	}
	return mainView
}

const helpText = `Space    pause or resume
n / p    next or previous scenario
s        toggle left to right sync
1 / 2    one or two loci
g        toggle grid
+ / -    longer or shorter afterimage
[ / ]    slower or faster
Up/Down  left hand radius
r        reset parameters
t        cycle theme
Esc      back to the menu`

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Run shows the terminal host until the user quits or ctx is canceled.
func Run(ctx context.Context, st *store.Store, logger *log.Logger, skipMenu bool) error {
	m := NewModel(ctx, st, logger)
	if skipMenu {
		m.screen = screenLive
		m.restart()
	}
	defer m.Stop()

	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
