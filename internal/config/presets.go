package config

import (
	"errors"
	"fmt"
	"math"
)

var ErrUnknownScenario = errors.New("config: unknown scenario")

// CommonOverrides holds the common fields a scenario wants to change. Nil fields keep
// the current value.
type CommonOverrides struct {
	FPS             *float64 `yaml:"fps,omitempty"`
	Afterimage      *float64 `yaml:"afterimage,omitempty"`
	SpeedRate       *float64 `yaml:"speed_rate,omitempty"`
	Scale           *float64 `yaml:"scale,omitempty"`
	NumberOfLocus   *int     `yaml:"number_of_locus,omitempty"`
	BackgroundColor *string  `yaml:"background_color,omitempty"`
	Grid            *Grid    `yaml:"grid,omitempty"`
}

// Merge applies the overrides shallowly on top of c.
func (o *CommonOverrides) Merge(c Common) Common {
	if o == nil {
		return c
	}
	if o.FPS != nil {
		c.FPS = *o.FPS
	}
	if o.Afterimage != nil {
		c.Afterimage = *o.Afterimage
	}
	if o.SpeedRate != nil {
		c.SpeedRate = *o.SpeedRate
	}
	if o.Scale != nil {
		c.Scale = *o.Scale
	}
	if o.NumberOfLocus != nil {
		c.NumberOfLocus = *o.NumberOfLocus
	}
	if o.BackgroundColor != nil {
		c.BackgroundColor = *o.BackgroundColor
	}
	if o.Grid != nil {
		c.Grid = *o.Grid
	}
	return c
}

type Scenario struct {
	Name   string
	Left   Side
	Right  Side
	Common *CommonOverrides
}

type scenarioFactory func() Scenario

const deg = math.Pi / 180

// scenarioOrder is the catalog order shown to users.
var scenarioOrder = []string{
	"Clover",
	"Negative Clover",
	"Pentagram",
	"Clear Pentagram",
	"Hexagram",
	"Clear Hexagram",
	"Cat Eye",
	"Linear Cat Eye",
	"Isolation",
}

var scenarios = map[string]scenarioFactory{
	"Clover": func() Scenario {
		return Scenario{
			Left:  DefaultSide(70, 70, 1, -3, 0, 0),
			Right: DefaultSide(70, 70, 1, -3, math.Pi, math.Pi),
		}
	},
	"Negative Clover": func() Scenario {
		return Scenario{
			Left:  DefaultSide(70, 70, 3, -1, 0, 0),
			Right: DefaultSide(70, 70, 3, -1, math.Pi, math.Pi),
		}
	},
	"Pentagram": func() Scenario {
		return Scenario{
			Left:  DefaultSide(70, 70, 1, -4, math.Pi/2*3, math.Pi/2*3),
			Right: DefaultSide(70, 70, 1, -4, 126*deg, 126*deg),
		}
	},
	"Clear Pentagram": func() Scenario {
		return Scenario{
			Left:  DefaultSide(70, 70, 2, -3, math.Pi/2*3, math.Pi/2*3),
			Right: DefaultSide(70, 70, 2, -3, 126*deg, 126*deg),
		}
	},
	"Hexagram": func() Scenario {
		return Scenario{
			Left:  DefaultSide(70, 70, 1, -5, math.Pi/2, math.Pi/2),
			Right: DefaultSide(70, 70, 1, -5, math.Pi/2*3, math.Pi/2*3),
		}
	},
	"Clear Hexagram": func() Scenario {
		return Scenario{
			Left:  DefaultSide(70, 70, 1, -2, math.Pi/2, math.Pi/2),
			Right: DefaultSide(70, 70, 1, -2, math.Pi/2*3, math.Pi/2*3),
		}
	},
	"Cat Eye": func() Scenario {
		return Scenario{
			Left:  DefaultSide(50, 100, 1, -1, math.Pi/2, math.Pi/2),
			Right: DefaultSide(50, 100, 1, -1, math.Pi/2*3, math.Pi/2*3),
		}
	},
	"Linear Cat Eye": func() Scenario {
		return Scenario{
			Left:  DefaultSide(70, 70, 1, -1, math.Pi/2, math.Pi/2),
			Right: DefaultSide(70, 70, 1, -1, math.Pi/2*3, math.Pi/2*3),
		}
	},
	"Isolation": func() Scenario {
		return Scenario{
			Left:  DefaultSide(70, 140, 1, 1, 0, math.Pi),
			Right: DefaultSide(70, 140, 1, 1, math.Pi, 2*math.Pi),
		}
	},
}

// GetScenario builds a fresh copy of the named scenario on every call.
func GetScenario(name string) (Scenario, error) {
	factory, ok := scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	s := factory()
	s.Name = name
	return s, nil
}

// ListScenarios returns scenario names in catalog order.
func ListScenarios() []string {
	names := make([]string, len(scenarioOrder))
	copy(names, scenarioOrder)
	return names
}
