package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/poitune/internal/analysis"
	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/storage"
	"github.com/san-kum/poitune/internal/store"
)

var ErrUnknownParam = errors.New("automation: unknown rotation parameter")

// Routine is a scripted sequence of traces. Steps share one parameter store, so each
// step starts from where the previous one left off.
type Routine struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single traced figure. Angles in Left are degrees.
type Step struct {
	Scenario string                  `yaml:"scenario"`
	Duration float64                 `yaml:"duration"`
	Step     float64                 `yaml:"step"`
	Sync     *bool                   `yaml:"sync"`
	Common   *config.CommonOverrides `yaml:"common"`
	Left     *RotationOverrides      `yaml:"left"`
	Right    *RotationOverrides      `yaml:"right"`
	SaveAs   string                  `yaml:"save_as"`
}

// RotationOverrides changes selected rotation fields. Nil fields are kept.
type RotationOverrides struct {
	RadiusHand *float64 `yaml:"radius_hand"`
	RadiusPoi  *float64 `yaml:"radius_poi"`
	OmegaHand  *float64 `yaml:"omega_hand"`
	OmegaPoi   *float64 `yaml:"omega_poi"`
	AngleHand  *float64 `yaml:"angle_hand"`
	AnglePoi   *float64 `yaml:"angle_poi"`
}

func (o *RotationOverrides) apply(s *config.Side) {
	if o == nil {
		return
	}
	r := &s.Rotation
	if o.RadiusHand != nil {
		r.RadiusHand = *o.RadiusHand
	}
	if o.RadiusPoi != nil {
		r.RadiusPoi = *o.RadiusPoi
	}
	if o.OmegaHand != nil {
		r.OmegaHand = *o.OmegaHand
	}
	if o.OmegaPoi != nil {
		r.OmegaPoi = *o.OmegaPoi
	}
	if o.AngleHand != nil {
		r.AngleHand = config.Degrees(*o.AngleHand)
	}
	if o.AnglePoi != nil {
		r.AnglePoi = config.Degrees(*o.AnglePoi)
	}
}

// StepResult is what one step produced. RunID is empty when nothing was stored.
type StepResult struct {
	Label    string
	RunID    string
	Duration float64
	Params   config.Params
	Traces   []storage.SideTrace
	Petals   int
}

const defaultSampleStep = 0.02

func LoadRoutine(path string) (*Routine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var routine Routine
	if err := yaml.Unmarshal(data, &routine); err != nil {
		return nil, err
	}

	return &routine, nil
}

// RunRoutine executes every step against st. When runs is not nil each step is saved
// as a run.
func RunRoutine(ctx context.Context, routine *Routine, st *store.Store, runs *storage.Store, logger *log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	results := make([]StepResult, 0, len(routine.Steps))

	for i, step := range routine.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		logger.Printf("step %d/%d: %s", i+1, len(routine.Steps), step.Scenario)

		if step.Scenario != "" {
			if err := st.ApplyScenario(step.Scenario); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if step.Common != nil {
			st.UpdateCommon(func(c *config.Common) { *c = step.Common.Merge(*c) })
		}
		if step.Sync != nil {
			st.SetSync(*step.Sync)
		}
		if step.Left != nil {
			st.UpdateLeft(step.Left.apply)
		}
		if step.Right != nil {
			st.UpdateRight(step.Right.apply)
		}

		res := traceParams(st.Params(), step.Duration, step.Step)
		res.Label = step.SaveAs
		if res.Label == "" {
			res.Label = st.Scenario()
		}

		if runs != nil {
			id, err := runs.Save(res.Label, res.Duration, stepOf(step.Step), res.Params, res.Traces)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			res.RunID = id
		}

		results = append(results, res)
	}

	return results, nil
}

func stepOf(step float64) float64 {
	if step <= 0 {
		return defaultSampleStep
	}
	return step
}

// traceParams samples every active side. A zero duration means one closed period of
// the left side, or 2π when the curve does not close.
func traceParams(p config.Params, duration, step float64) StepResult {
	step = stepOf(step)
	if duration <= 0 {
		duration = 2 * math.Pi
		if t, ok := analysis.Period(p.Left.Rotation); ok {
			duration = t
		}
	}

	names := []string{"left", "right"}
	res := StepResult{Params: p, Duration: duration}
	for i, side := range p.Active() {
		res.Traces = append(res.Traces, storage.SideTrace{
			Side:    names[i],
			Samples: analysis.SampleSide(*side, p.Common.Scale, duration, step),
		})
	}
	res.Petals, _ = analysis.Petals(p.Left.Rotation)
	return res
}

// ParameterSweep varies one left rotation parameter over an inclusive range.
type ParameterSweep struct {
	Scenario  string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Duration  float64
	Step      float64
}

// SweepResult describes the figure traced at one parameter value.
type SweepResult struct {
	ParamValue float64
	Petals     int
	Closed     bool
	Bounds     analysis.Bounds
}

var sweepSetters = map[string]func(r *config.Rotation, v float64){
	"radius_hand": func(r *config.Rotation, v float64) { r.RadiusHand = v },
	"radius_poi":  func(r *config.Rotation, v float64) { r.RadiusPoi = v },
	"omega_hand":  func(r *config.Rotation, v float64) { r.OmegaHand = v },
	"omega_poi":   func(r *config.Rotation, v float64) { r.OmegaPoi = v },
	"angle_hand":  func(r *config.Rotation, v float64) { r.AngleHand = config.Degrees(v) },
	"angle_poi":   func(r *config.Rotation, v float64) { r.AnglePoi = config.Degrees(v) },
}

// SweepParams lists the names RunSweep accepts.
func SweepParams() []string {
	return []string{"radius_hand", "radius_poi", "omega_hand", "omega_poi", "angle_hand", "angle_poi"}
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *log.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	set, ok := sweepSetters[sweep.ParamName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParam, sweep.ParamName)
	}
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("automation: sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	st := store.New(nil)
	if sweep.Scenario != "" {
		if err := st.ApplyScenario(sweep.Scenario); err != nil {
			return nil, err
		}
	}
	base := st.Params()

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		v := sweep.ParamMin + float64(i)*paramStep
		p := base
		set(&p.Left.Rotation, v)
		p.Left.Sanitize()

		res := traceParams(p, sweep.Duration, sweep.Step)
		_, closed := analysis.Period(p.Left.Rotation)
		results = append(results, SweepResult{
			ParamValue: v,
			Petals:     res.Petals,
			Closed:     closed,
			Bounds:     analysis.PoiBounds(res.Traces[0].Samples),
		})

		logger.Printf("sweep %d/%d: %s=%.4f", i+1, sweep.NumSteps, sweep.ParamName, v)
	}

	return results, nil
}
