package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/poitune/internal/analysis"
	"github.com/san-kum/poitune/internal/automation"
	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/export"
	"github.com/san-kum/poitune/internal/render/raster"
	"github.com/san-kum/poitune/internal/sim"
	"github.com/san-kum/poitune/internal/storage"
	"github.com/san-kum/poitune/internal/store"
)

// storeFor resolves the parameters for a command, with an optional scenario argument
// taking precedence over --scenario.
func storeFor(cmd *cobra.Command, args []string) (*store.Store, error) {
	if len(args) > 0 {
		scenario = args[0]
	}
	return buildStore(cmd)
}

type renderJob struct {
	name    string
	surface *raster.Surface
	rec     *raster.Recorder
}

func newRenderCmd() *cobra.Command {
	var (
		frames  int
		frameMs int
		out     string
		gifOut  bool
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "render [scenario]",
		Short: "render frames headlessly to png or gif",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := storeFor(cmd, args)
			if err != nil {
				return err
			}

			names := []string{st.Scenario()}
			if all {
				names = config.ListScenarios()
			}

			var (
				entries []sim.GalleryEntry
				jobs    []*renderJob
			)
			for _, name := range names {
				p := st.Params()
				if all {
					// each scenario starts from the resolved common settings
					tmp := store.New(&p)
					if err := tmp.ApplyScenario(name); err != nil {
						return err
					}
					p = tmp.Params()
				}

				job := &renderJob{
					name:    name,
					surface: raster.New(int(config.CanvasWidth), int(config.CanvasHeight)),
				}
				if gifOut {
					job.rec = raster.NewRecorder(frameMs)
				}
				jobs = append(jobs, job)

				entries = append(entries, sim.GalleryEntry{
					Name:    name,
					Params:  p,
					Surface: job.surface,
					Capture: func(int) {
						if job.rec != nil {
							job.rec.Capture(job.surface)
						}
					},
				})
			}

			start := time.Now()
			gallery := sim.NewGallery(frames, time.Duration(frameMs)*time.Millisecond)
			if _, err := gallery.Run(context.Background(), entries); err != nil {
				return err
			}
			logger.Printf("rendered %d scenario(s) x %d frames in %v", len(jobs), frames, time.Since(start))

			if err := os.MkdirAll(out, 0755); err != nil {
				return err
			}
			for _, job := range jobs {
				base := filepath.Join(out, storage.Slug(job.name))
				if err := writeFile(base+".png", job.surface.WritePNG); err != nil {
					return err
				}
				fmt.Printf("wrote %s.png\n", base)

				if job.rec != nil {
					if err := writeFile(base+".gif", job.rec.Encode); err != nil {
						return err
					}
					fmt.Printf("wrote %s.gif (%d frames)\n", base, job.rec.Len())
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&frames, "frames", 240, "number of frames")
	cmd.Flags().IntVar(&frameMs, "frame-ms", 33, fmt.Sprintf("wall time per frame in milliseconds (at most %d)", sim.MaxFrameDelta.Milliseconds()))
	cmd.Flags().StringVarP(&out, "out", "o", "renders", "output directory")
	cmd.Flags().BoolVar(&gifOut, "gif", false, "also write every frame as an animated gif")
	cmd.Flags().BoolVar(&all, "all", false, "render every scenario concurrently")
	return cmd
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func newTraceCmd() *cobra.Command {
	var (
		duration float64
		step     float64
	)

	cmd := &cobra.Command{
		Use:   "trace [scenario]",
		Short: "sample the poi paths and store a run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := storeFor(cmd, args)
			if err != nil {
				return err
			}
			p := st.Params()

			if !cmd.Flags().Changed("time") {
				if t, ok := analysis.Period(p.Left.Rotation); ok {
					duration = t
				}
			}

			names := []string{"left", "right"}
			var traces []storage.SideTrace
			for i, side := range p.Active() {
				traces = append(traces, storage.SideTrace{
					Side:    names[i],
					Samples: analysis.SampleSide(*side, p.Common.Scale, duration, step),
				})
			}

			runs := storage.New(dataDir)
			if err := runs.Init(); err != nil {
				return err
			}
			runID, err := runs.Save(st.Scenario(), duration, step, p, traces)
			if err != nil {
				return err
			}

			fmt.Printf("run id: %s\n", runID)
			fmt.Printf("duration: %.3f  step: %.3f  samples: %d\n", duration, step, len(traces[0].Samples))
			if n, ok := analysis.Petals(p.Left.Rotation); ok {
				fmt.Printf("petals: %d\n", n)
			}
			fmt.Println()
			plotTraces(traces)
			return nil
		},
	}

	cmd.Flags().Float64Var(&duration, "time", 2*math.Pi, "simulated duration (defaults to one period)")
	cmd.Flags().Float64Var(&step, "step", 0.02, "sample step")
	return cmd
}

func plotTraces(traces []storage.SideTrace) {
	for _, tr := range traces {
		if len(tr.Samples) == 0 {
			continue
		}
		xs, ys := analysis.Series(tr.Samples)
		for _, series := range []struct {
			data    []float64
			caption string
		}{{xs, tr.Side + " poi x"}, {ys, tr.Side + " poi y"}} {
			graph := asciigraph.Plot(series.data,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(series.caption),
			)
			fmt.Println(graph)
			fmt.Println()
		}
		fmt.Println(analysis.PathToASCII(tr.Samples, 60, 20))
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tSTEP\tSIDES")
			for _, run := range runs {
				name := run.Scenario
				if name == "" {
					name = "custom"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\t%.3f\t%s\n",
					run.ID,
					name,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Duration,
					run.Step,
					strings.Join(run.Sides, ","),
				)
			}
			return w.Flush()
		},
	}
}

func newPlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs := storage.New(dataDir)
			meta, err := runs.Load(args[0])
			if err != nil {
				return err
			}
			traces, err := runs.LoadTrace(args[0])
			if err != nil {
				return err
			}
			if len(traces) == 0 {
				return fmt.Errorf("no data to plot")
			}

			fmt.Printf("run: %s\n", meta.ID)
			fmt.Printf("scenario: %s\n", meta.Scenario)
			fmt.Printf("samples: %d\n\n", len(traces[0].Samples))
			plotTraces(traces)
			return nil
		},
	}
}

func newExportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a stored run's trace as csv to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).CopyTrace(args[0], os.Stdout)
		},
	}
}

func newExportSVGCmd() *cobra.Command {
	var (
		out string
		fit bool
	)

	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a stored run's poi paths as svg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs := storage.New(dataDir)
			meta, err := runs.Load(args[0])
			if err != nil {
				return err
			}
			traces, err := runs.LoadTrace(args[0])
			if err != nil {
				return err
			}

			colors := map[string]string{
				"left":  meta.Params.Left.ObjectColor.Poi,
				"right": meta.Params.Right.ObjectColor.Poi,
			}
			paths := make([]export.Path, 0, len(traces))
			for _, tr := range traces {
				paths = append(paths, export.Path{Color: colors[tr.Side], Samples: tr.Samples})
			}

			opts := export.DefaultSVGOptions()
			opts.Title = meta.ID
			opts.Background = meta.Params.Common.BackgroundColor
			opts.Grid = meta.Params.Common.Grid
			opts.Fit = fit

			if out == "" {
				return export.WriteSVG(os.Stdout, paths, opts)
			}
			if err := writeFile(out, func(w io.Writer) error { return export.WriteSVG(w, paths, opts) }); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&fit, "fit", false, "scale the paths to fill the picture")
	return cmd
}

func newRoutineCmd() *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "routine [file]",
		Short: "trace a scripted sequence of figures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			routine, err := automation.LoadRoutine(args[0])
			if err != nil {
				return fmt.Errorf("failed to load routine: %w", err)
			}

			st, err := buildStore(cmd)
			if err != nil {
				return err
			}

			var runs *storage.Store
			if !noSave {
				runs = storage.New(dataDir)
				if err := runs.Init(); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			results, err := automation.RunRoutine(ctx, routine, st, runs, logger)
			for i, res := range results {
				fmt.Printf("%d. %-18s petals %-3d duration %-8.3f %s\n", i+1, res.Label, res.Petals, res.Duration, res.RunID)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the traced runs")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var (
		steps    int
		duration float64
		step     float64
	)

	cmd := &cobra.Command{
		Use:   "sweep [param] [min] [max]",
		Short: "vary one left rotation parameter and report the figures",
		Long:  "Parameters: " + strings.Join(automation.SweepParams(), ", ") + ". Angles are degrees.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("min: %w", err)
			}
			hi, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("max: %w", err)
			}

			results, err := automation.RunSweep(context.Background(), &automation.ParameterSweep{
				Scenario:  scenario,
				ParamName: args[0],
				ParamMin:  lo,
				ParamMax:  hi,
				NumSteps:  steps,
				Duration:  duration,
				Step:      step,
			}, logger)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\tPETALS\tCLOSED\tWIDTH\tHEIGHT\n", strings.ToUpper(args[0]))
			for _, r := range results {
				petals := "-"
				if r.Closed {
					petals = strconv.Itoa(r.Petals)
				}
				fmt.Fprintf(w, "%.3f\t%s\t%v\t%.1f\t%.1f\n", r.ParamValue, petals, r.Closed, r.Bounds.Width(), r.Bounds.Height())
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 9, "number of values")
	cmd.Flags().Float64Var(&duration, "time", 0, "simulated duration (0 for one period)")
	cmd.Flags().Float64Var(&step, "step", 0.02, "sample step")
	return cmd
}
