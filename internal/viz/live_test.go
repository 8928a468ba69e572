package viz

import (
	"context"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/store"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// pausedModel is on the live screen with the loop stopped, so key handling can be
// checked without frames arriving.
func pausedModel(t *testing.T) (*Model, *store.Store) {
	t.Helper()
	st := store.New(nil)
	m := NewModel(context.Background(), st, nil)
	m.screen = screenLive
	m.paused = true
	t.Cleanup(m.Stop)
	return m, st
}

func TestLiveKeys_Common(t *testing.T) {
	m, st := pausedModel(t)

	m.Update(runes("1"))
	if st.Params().Common.NumberOfLocus != 1 {
		t.Error("1 should select a single locus")
	}
	m.Update(runes("g"))
	if st.Params().Common.Grid.Show {
		t.Error("g should hide the grid")
	}
	m.Update(runes("+"))
	if got := st.Params().Common.Afterimage; math.Abs(got-0.85) > 1e-9 {
		t.Errorf("afterimage = %v, want 0.85", got)
	}
	m.Update(runes("]"))
	if got := st.Params().Common.SpeedRate; math.Abs(got-1.25) > 1e-9 {
		t.Errorf("speed = %v, want 1.25", got)
	}
}

func TestLiveKeys_AfterimageClamped(t *testing.T) {
	m, st := pausedModel(t)
	for i := 0; i < 10; i++ {
		m.Update(runes("+"))
	}
	if st.Params().Common.Afterimage != 1 {
		t.Errorf("afterimage should stop at 1, got %v", st.Params().Common.Afterimage)
	}
}

func TestLiveKeys_SyncMirrorsRadius(t *testing.T) {
	m, st := pausedModel(t)

	m.Update(runes("s"))
	m.Update(tea.KeyMsg{Type: tea.KeyUp})

	p := st.Params()
	if p.Left.Rotation.RadiusHand != 75 || p.Right.Rotation.RadiusHand != 75 {
		t.Errorf("radius = %v / %v, want 75 on both", p.Left.Rotation.RadiusHand, p.Right.Rotation.RadiusHand)
	}
	if p.Right.Rotation.AngleHand != p.Left.Rotation.AngleHand+math.Pi {
		t.Error("mirrored right side should be half a turn ahead")
	}
}

func TestLiveKeys_Scenarios(t *testing.T) {
	m, st := pausedModel(t)

	names := config.ListScenarios()

	// custom parameters step onto the first scenario
	m.Update(runes("n"))
	if st.Scenario() != names[0] {
		t.Errorf("n from custom parameters should load %q, got %q", names[0], st.Scenario())
	}
	m.Update(runes("n"))
	if st.Scenario() != names[1] {
		t.Errorf("n should load the next scenario, got %q", st.Scenario())
	}
	m.Update(runes("p"))
	m.Update(runes("p"))
	if st.Scenario() != names[len(names)-1] {
		t.Errorf("p should wrap around, got %q", st.Scenario())
	}

	m.Update(runes("r"))
	if st.Params() != *config.DefaultParams() {
		t.Error("r should reset the parameters")
	}
}

func TestMenu_EnterStartsLoop(t *testing.T) {
	st := store.New(nil)
	m := NewModel(context.Background(), st, nil)
	defer m.Stop()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.screen != screenLive {
		t.Fatal("enter should open the live screen")
	}
	if !m.runner.Running() {
		t.Error("the loop should be running")
	}
	if st.Scenario() != config.ListScenarios()[1] {
		t.Errorf("enter should load the selected scenario, got %q", st.Scenario())
	}

	m.Update(runes(" "))
	if m.runner.Running() {
		t.Error("space should stop the loop")
	}
}

func TestView(t *testing.T) {
	m, _ := pausedModel(t)
	m.Update(FrameMsg{View: "frame", PoiX: 1})
	m.Update(FrameMsg{View: "frame", PoiX: 2})

	out := m.View()
	if !strings.Contains(out, "PAUSED") || !strings.Contains(out, "CUSTOM") {
		t.Errorf("live view missing status or title:\n%s", out)
	}

	m.screen = screenMenu
	if !strings.Contains(m.View(), "Clover") {
		t.Error("menu should list scenarios")
	}
}

func TestLiveKeys_ThemeCycles(t *testing.T) {
	m, _ := pausedModel(t)
	t.Cleanup(func() { SetTheme(ThemePoi.Name) })

	names := ThemeNames()
	start := CurrentTheme.Name
	for i := range names {
		m.Update(runes("t"))
		want := names[(indexOf(names, start)+i+1)%len(names)]
		if CurrentTheme.Name != want {
			t.Fatalf("after %d presses theme = %s, want %s", i+1, CurrentTheme.Name, want)
		}
	}
	if CurrentTheme.Name != start {
		t.Error("cycling through every theme should come back to the first")
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func TestGetTheme_Unknown(t *testing.T) {
	if got := GetTheme("nope"); got.Name != ThemePoi.Name {
		t.Errorf("unknown theme should fall back to poi, got %s", got.Name)
	}
}
