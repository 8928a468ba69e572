package gui

import (
	"fmt"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/poitune/internal/analysis"
	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/metrics"
	"github.com/san-kum/poitune/internal/sim"
	"github.com/san-kum/poitune/internal/store"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const (
	windowWidth  = 1280
	windowHeight = 720
	canvasZoom   = 2
)

var keyActions = []struct {
	keys []int32
	act  store.Action
}{
	{[]int32{rl.KeyN}, store.NextScenario},
	{[]int32{rl.KeyP}, store.PrevScenario},
	{[]int32{rl.KeyS}, store.ToggleSync},
	{[]int32{rl.KeyOne}, store.OneLocus},
	{[]int32{rl.KeyTwo}, store.TwoLoci},
	{[]int32{rl.KeyG}, store.ToggleGrid},
	{[]int32{rl.KeyEqual, rl.KeyKpAdd}, store.LongerAfterimage},
	{[]int32{rl.KeyMinus, rl.KeyKpSubtract}, store.ShorterAfterimage},
	{[]int32{rl.KeyRightBracket}, store.Faster},
	{[]int32{rl.KeyLeftBracket}, store.Slower},
	{[]int32{rl.KeyUp, rl.KeyK}, store.GrowRadius},
	{[]int32{rl.KeyDown, rl.KeyJ}, store.ShrinkRadius},
	{[]int32{rl.KeyR}, store.Reset},
}

type App struct {
	Store     *store.Store
	Surface   *TextureSurface
	Sim       *sim.Simulator
	Running   bool
	InMenu    bool
	Scenarios []string
	Selected  int
	Font      rl.Font
	Err       error

	onCanvas *metrics.OnCanvas
	logger   *log.Logger
	revision uint64
}

func initWindow() {
	rl.InitWindow(windowWidth, windowHeight, "poitune")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp wires a window host to st. It starts in the scenario menu when
// interactive is set, otherwise straight on the canvas.
func NewApp(st *store.Store, surface *TextureSurface, interactive bool, logger *log.Logger) *App {
	a := &App{
		Store:     st,
		Surface:   surface,
		Scenarios: config.ListScenarios(),
		InMenu:    interactive,
		Running:   !interactive,
		Font:      loadFont(),
		onCanvas:  metrics.NewOnCanvas(config.CanvasWidth, config.CanvasHeight),
		logger:    logger,
	}
	if !interactive {
		a.rebuild()
	}
	return a
}

// Run opens the window and blocks until it is closed. When no drawing surface can be
// acquired it logs once and returns without drawing.
func Run(st *store.Store, interactive bool, logger *log.Logger) error {
	initWindow()
	defer rl.CloseWindow()

	if !rl.IsWindowReady() {
		logger.Printf("gui: window not ready, %v", sim.ErrNoSurface)
		return nil
	}

	surface, ok := NewTextureSurface()
	if !ok {
		logger.Printf("gui: %v", sim.ErrNoSurface)
		return nil
	}
	defer surface.Unload()

	app := NewApp(st, surface, interactive, logger)
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// rebuild starts over from the store: a fresh snapshot and an opaque clear.
func (a *App) rebuild() {
	s, err := sim.New(a.Store.Params(), a.Surface)
	if err != nil {
		a.Err = err
		a.logger.Printf("gui: %v", err)
		return
	}
	a.Sim = s
	a.revision = a.Store.Revision()
	a.Err = nil
	a.onCanvas.Reset()

	rl.BeginTextureMode(a.Surface.Target)
	s.Prime()
	rl.EndTextureMode()
}

// Update handles input and advances one frame. It returns false when the user quits.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}

	if a.InMenu {
		a.updateMenu()
		return true
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		a.Running = false
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
		if a.Running {
			a.rebuild()
		}
	}

	for _, ka := range keyActions {
		for _, k := range ka.keys {
			if rl.IsKeyPressed(k) {
				if err := a.Store.Do(ka.act); err != nil {
					a.Err = err
				}
			}
		}
	}

	if a.Store.Revision() != a.revision && a.Running {
		a.rebuild()
	}

	if a.Running && a.Sim != nil {
		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		rl.BeginTextureMode(a.Surface.Target)
		a.Sim.Tick(dt)
		rl.EndTextureMode()

		a.onCanvas.Observe(dt, a.Sim.Positions())
	}
	return true
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected = (a.Selected + 1) % len(a.Scenarios)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected = (a.Selected - 1 + len(a.Scenarios)) % len(a.Scenarios)
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		if err := a.Store.ApplyScenario(a.Scenarios[a.Selected]); err != nil {
			a.Err = err
			return
		}
		a.InMenu = false
		a.Running = true
		a.rebuild()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.InMenu = false
		a.Running = true
		a.rebuild()
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		a.drawCanvas()
		a.DrawHUD()
	}

	rl.EndDrawing()
}

// drawCanvas shows the render texture. Texture rows are stored bottom up, hence the
// negative source height.
func (a *App) drawCanvas() {
	tex := a.Surface.Target.Texture
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	dst := rl.NewRectangle(0, 0, float32(tex.Width)*canvasZoom, float32(tex.Height)*canvasZoom)
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (a *App) DrawHUD() {
	p := a.Store.Params()
	y := int(config.CanvasHeight*canvasZoom) + 6

	name := a.Store.Scenario()
	if name == "" {
		name = "custom"
	}
	a.drawText("poitune", 20, y, 20, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", name), 120, y+3, 16, ColText)

	petals, _ := analysis.Petals(p.Left.Rotation)
	a.drawText(fmt.Sprintf("sync %v  loci %d  trail %.2f  speed %.2fx  petals %d",
		p.Sync, p.Common.NumberOfLocus, p.Common.Afterimage, p.Common.SpeedRate, petals), 320, y+3, 14, ColAccent)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	if a.Err != nil {
		status = a.Err.Error()
		col = rl.Red
	}
	a.drawText(status, 1150, y+3, 14, col)

	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 1180, 20, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%.0f%% on canvas", a.onCanvas.Value()*100), 1130, 40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawMenu() {
	a.drawText("poitune", 50, 50, 40, ColSelect)
	a.drawText("Select Scenario", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Scenarios {
		sc, _ := config.GetScenario(name)
		petals, _ := analysis.Petals(sc.Left.Rotation)
		line := fmt.Sprintf("%-16s %d petals", name, petals)
		if i == a.Selected {
			a.drawText("> "+line, 50, y, 20, ColSelect)
		} else {
			a.drawText("  "+line, 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: LOAD  C: KEEP CURRENT  Q: QUIT", 700, 680, 14, ColTextDim)
}
