package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/render"
)

// TextureSurface draws into a render texture that survives between frames, so
// translucent fills leave a trail. Draw calls must happen inside
// BeginTextureMode/EndTextureMode on the window thread.
type TextureSurface struct {
	Target rl.RenderTexture2D
	alpha  float32
}

// NewTextureSurface allocates a texture the size of the logical canvas. It returns
// false when the GPU could not provide one.
func NewTextureSurface() (*TextureSurface, bool) {
	t := rl.LoadRenderTexture(int32(config.CanvasWidth), int32(config.CanvasHeight))
	if t.ID == 0 {
		return nil, false
	}
	return &TextureSurface{Target: t, alpha: 1}, true
}

func (s *TextureSurface) Unload() { rl.UnloadRenderTexture(s.Target) }

func (s *TextureSurface) Size() (float64, float64) {
	return config.CanvasWidth, config.CanvasHeight
}

func (s *TextureSurface) SetGlobalAlpha(a float64) {
	s.alpha = float32(config.Clamp(a, 0, 1))
}

func (s *TextureSurface) color(c render.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.ColorAlpha(rl.NewColor(r, g, b, 255), s.alpha)
}

func (s *TextureSurface) FillRect(x, y, w, h float64, c render.Color) {
	rl.DrawRectangleV(rl.NewVector2(float32(x), float32(y)), rl.NewVector2(float32(w), float32(h)), s.color(c))
}

func (s *TextureSurface) StrokeLine(x0, y0, x1, y1, width float64, c render.Color) {
	rl.DrawLineEx(rl.NewVector2(float32(x0), float32(y0)), rl.NewVector2(float32(x1), float32(y1)), float32(width), s.color(c))
}

func (s *TextureSurface) FillCircle(x, y, r float64, c render.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), s.color(c))
}
