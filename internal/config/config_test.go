package config

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()

	if p.Common.Afterimage != DefaultAfterimage {
		t.Errorf("expected afterimage %v, got %v", DefaultAfterimage, p.Common.Afterimage)
	}
	if p.Common.NumberOfLocus != 2 {
		t.Errorf("expected 2 loci, got %d", p.Common.NumberOfLocus)
	}
	if p.Sync {
		t.Error("sync should start disabled")
	}
	if p.Right.Rotation.AngleHand != math.Pi || p.Right.Rotation.AnglePoi != math.Pi {
		t.Errorf("right side should start half a turn ahead, got %+v", p.Right.Rotation)
	}
	if p.Left.Rotation.OriginX != 320 || p.Left.Rotation.OriginY != 170 {
		t.Errorf("origin should be the canvas center, got (%v, %v)", p.Left.Rotation.OriginX, p.Left.Rotation.OriginY)
	}
}

func TestActive(t *testing.T) {
	p := DefaultParams()
	if got := len(p.Active()); got != 2 {
		t.Errorf("expected 2 active sides, got %d", got)
	}

	p.Common.NumberOfLocus = 1
	active := p.Active()
	if len(active) != 1 || active[0] != &p.Left {
		t.Error("single locus should only activate the left side")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	p := DefaultParams()
	p.Left.Rotation.RadiusHand = 42
	p.Common.Grid.Show = false
	p.Sync = true

	if err := Save(path, p); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(p, loaded) {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", p, loaded)
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, DefaultParams()); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	out := buf.String()
	for _, key := range []string{"left:", "right:", "common:", "radius_hand: 70", "afterimage: 0.8", "sync: false"} {
		if !strings.Contains(out, key) {
			t.Errorf("expected %q in output:\n%s", key, out)
		}
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCoerceClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		b    Bounds
		want float64
	}{
		{"nan", math.NaN(), AfterimageBounds, 0},
		{"inf", math.Inf(1), Unbounded, 0},
		{"below", -0.5, AfterimageBounds, 0},
		{"above", 1.5, AfterimageBounds, 1},
		{"inclusive max", 10, ScaleBounds, 10},
		{"inclusive min", 0.1, SpeedRateBounds, 0.1},
		{"speed floor", 0, SpeedRateBounds, 0.1},
		{"inside", 120, FPSBounds, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Apply(tt.in); got != tt.want {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	p := DefaultParams()
	p.Left.Rotation.OmegaHand = math.NaN()
	p.Right.ObjectColor.Poi = "not a color"
	p.Common.Afterimage = 3
	p.Common.NumberOfLocus = 7
	p.Common.BackgroundColor = ""

	p.Sanitize()

	if p.Left.Rotation.OmegaHand != 0 {
		t.Errorf("NaN omega should become 0, got %v", p.Left.Rotation.OmegaHand)
	}
	if p.Right.ObjectColor.Poi != "#ffcc00" {
		t.Errorf("bad color should fall back to default, got %q", p.Right.ObjectColor.Poi)
	}
	if p.Common.Afterimage != 1 {
		t.Errorf("afterimage should clamp to 1, got %v", p.Common.Afterimage)
	}
	if p.Common.NumberOfLocus != 2 {
		t.Errorf("unknown locus count should become 2, got %d", p.Common.NumberOfLocus)
	}
	if p.Common.BackgroundColor != DefaultBackground {
		t.Errorf("empty background should fall back, got %q", p.Common.BackgroundColor)
	}
}

func TestDegrees(t *testing.T) {
	if got := Degrees(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("Degrees(180) = %v", got)
	}
	if got := ToDegrees(math.Pi / 2); math.Abs(got-90) > 1e-12 {
		t.Errorf("ToDegrees(pi/2) = %v", got)
	}
}

func TestGetScenario(t *testing.T) {
	s, err := GetScenario("Clover")
	if err != nil {
		t.Fatalf("expected scenario, got %v", err)
	}
	if s.Name != "Clover" {
		t.Errorf("expected name Clover, got %q", s.Name)
	}
	if s.Left.Rotation.OmegaPoi != -3 {
		t.Errorf("expected omegaPoi -3, got %v", s.Left.Rotation.OmegaPoi)
	}
	if s.Right.Rotation.AngleHand != math.Pi {
		t.Errorf("expected right angleHand pi, got %v", s.Right.Rotation.AngleHand)
	}
}

func TestGetScenario_Idempotent(t *testing.T) {
	a, _ := GetScenario("Clover")
	a.Left.Rotation.AngleHand = 99

	b, _ := GetScenario("Clover")
	c, _ := GetScenario("Clover")
	if b.Left.Rotation.AngleHand != 0 {
		t.Error("scenario factory leaked state between calls")
	}
	if !reflect.DeepEqual(b, c) {
		t.Error("two loads of the same scenario differ")
	}
}

func TestGetScenario_NotFound(t *testing.T) {
	_, err := GetScenario("Nonexistent")
	if !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("expected ErrUnknownScenario, got %v", err)
	}
}

func TestListScenarios(t *testing.T) {
	names := ListScenarios()
	if len(names) != 9 {
		t.Fatalf("expected 9 scenarios, got %d", len(names))
	}
	if names[0] != "Clover" || names[8] != "Isolation" {
		t.Errorf("unexpected order: %v", names)
	}
	for _, n := range names {
		if _, err := GetScenario(n); err != nil {
			t.Errorf("listed scenario %q not loadable: %v", n, err)
		}
	}

	names[0] = "mutated"
	if ListScenarios()[0] != "Clover" {
		t.Error("ListScenarios should return a copy")
	}
}

func TestCommonOverrides_Merge(t *testing.T) {
	base := DefaultCommon()

	var none *CommonOverrides
	if got := none.Merge(base); got != base {
		t.Error("nil overrides should not change common")
	}

	scale := 2.0
	loci := 1
	o := &CommonOverrides{Scale: &scale, NumberOfLocus: &loci, Grid: &Grid{Show: false, Color: "#111111"}}
	got := o.Merge(base)

	if got.Scale != 2 || got.NumberOfLocus != 1 {
		t.Errorf("overrides not applied: %+v", got)
	}
	if got.Grid.Show || got.Grid.Color != "#111111" {
		t.Errorf("grid should be replaced wholesale, got %+v", got.Grid)
	}
	if got.Afterimage != base.Afterimage || got.BackgroundColor != base.BackgroundColor {
		t.Error("untouched fields should keep their value")
	}
}
