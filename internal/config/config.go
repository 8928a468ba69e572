package config

import (
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	CanvasWidth  = 640.0
	CanvasHeight = 340.0

	DefaultFPS           = 30
	DefaultAfterimage    = 0.8
	DefaultSpeedRate     = 1.0
	DefaultScale         = 1.0
	DefaultNumberOfLocus = 2
	DefaultBackground    = "#000000"
	DefaultGridColor     = "#333333"

	DefaultOriginX = 320.0
	DefaultOriginY = 170.0
)

// Rotation is the kinematic state of one side. Angles are radians and are never
// wrapped; omegas are applied to them directly.
type Rotation struct {
	RadiusHand float64 `yaml:"radius_hand" json:"radiusHand"`
	RadiusPoi  float64 `yaml:"radius_poi" json:"radiusPoi"`
	OmegaHand  float64 `yaml:"omega_hand" json:"omegaHand"`
	OmegaPoi   float64 `yaml:"omega_poi" json:"omegaPoi"`
	AngleHand  float64 `yaml:"angle_hand" json:"angleHand"`
	AnglePoi   float64 `yaml:"angle_poi" json:"anglePoi"`
	OriginX    float64 `yaml:"origin_x" json:"originX"`
	OriginY    float64 `yaml:"origin_y" json:"originY"`
}

type Objects[T any] struct {
	Origin T `yaml:"origin" json:"origin"`
	Hand   T `yaml:"hand" json:"hand"`
	Poi    T `yaml:"poi" json:"poi"`
}

type Segments[T any] struct {
	Arm   T `yaml:"arm" json:"arm"`
	Chain T `yaml:"chain" json:"chain"`
}

// Style controls how a side is painted. Colors are hex strings.
type Style struct {
	ObjectVisible  Objects[bool]     `yaml:"object_visible" json:"objectVisible"`
	ObjectSize     Objects[float64]  `yaml:"object_size" json:"objectSize"`
	ObjectColor    Objects[string]   `yaml:"object_color" json:"objectColor"`
	SegmentVisible Segments[bool]    `yaml:"segment_visible" json:"segmentVisible"`
	SegmentSize    Segments[float64] `yaml:"segment_size" json:"segmentSize"`
	SegmentColor   Segments[string]  `yaml:"segment_color" json:"segmentColor"`
}

// Side is one independently configured mechanism. It holds only value fields, so a
// plain assignment is a deep copy.
type Side struct {
	Rotation Rotation `yaml:"rotation" json:"rotation"`
	Style    `yaml:",inline" json:"style"`
}

type Grid struct {
	Show  bool   `yaml:"show" json:"show"`
	Color string `yaml:"color" json:"color"`
}

type Common struct {
	FPS             float64 `yaml:"fps" json:"fps"`
	Afterimage      float64 `yaml:"afterimage" json:"afterimage"`
	SpeedRate       float64 `yaml:"speed_rate" json:"speedRate"`
	Scale           float64 `yaml:"scale" json:"scale"`
	NumberOfLocus   int     `yaml:"number_of_locus" json:"numberOfLocus"`
	BackgroundColor string  `yaml:"background_color" json:"backgroundColor"`
	Grid            Grid    `yaml:"grid" json:"grid"`
}

// Params is the whole user-facing parameter set.
type Params struct {
	Left   Side   `yaml:"left" json:"left"`
	Right  Side   `yaml:"right" json:"right"`
	Common Common `yaml:"common" json:"common"`
	Sync   bool   `yaml:"sync" json:"sync"`
}

func DefaultStyle() Style {
	return Style{
		ObjectVisible:  Objects[bool]{Origin: true, Hand: true, Poi: true},
		ObjectSize:     Objects[float64]{Origin: 2, Hand: 4, Poi: 10},
		ObjectColor:    Objects[string]{Origin: "#888888", Hand: "#00ffcc", Poi: "#ffcc00"},
		SegmentVisible: Segments[bool]{Arm: true, Chain: true},
		SegmentSize:    Segments[float64]{Arm: 2, Chain: 2},
		SegmentColor:   Segments[string]{Arm: "#ffffff", Chain: "#999999"},
	}
}

// DefaultSide builds a side with the default style centered on the canvas.
func DefaultSide(radiusHand, radiusPoi, omegaHand, omegaPoi, angleHand, anglePoi float64) Side {
	return Side{
		Rotation: Rotation{
			RadiusHand: radiusHand,
			RadiusPoi:  radiusPoi,
			OmegaHand:  omegaHand,
			OmegaPoi:   omegaPoi,
			AngleHand:  angleHand,
			AnglePoi:   anglePoi,
			OriginX:    DefaultOriginX,
			OriginY:    DefaultOriginY,
		},
		Style: DefaultStyle(),
	}
}

func DefaultCommon() Common {
	return Common{
		FPS:             DefaultFPS,
		Afterimage:      DefaultAfterimage,
		SpeedRate:       DefaultSpeedRate,
		Scale:           DefaultScale,
		NumberOfLocus:   DefaultNumberOfLocus,
		BackgroundColor: DefaultBackground,
		Grid:            Grid{Show: true, Color: DefaultGridColor},
	}
}

func DefaultParams() *Params {
	return &Params{
		Left:   DefaultSide(70, 70, 1, -3, 0, 0),
		Right:  DefaultSide(70, 70, 1, -3, math.Pi, math.Pi),
		Common: DefaultCommon(),
	}
}

// Active returns the sides that take part in integration and drawing, left first.
func (p *Params) Active() []*Side {
	if p.Common.NumberOfLocus == 1 {
		return []*Side{&p.Left}
	}
	return []*Side{&p.Left, &p.Right}
}

func Load(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := DefaultParams()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}
	p.Sanitize()
	return p, nil
}

// Encode writes p as YAML.
func Encode(w io.Writer, p *Params) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}

func Save(path string, p *Params) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
