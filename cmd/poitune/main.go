package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/poitune/internal/analysis"
	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/gui"
	"github.com/san-kum/poitune/internal/store"
	"github.com/san-kum/poitune/internal/viz"
)

var (
	dataDir    string
	configFile string
	verbose    bool

	// Common overrides
	afterimage float64
	speedRate  float64
	scale      float64
	loci       int
	fps        float64
	background string
	showGrid   bool
	gridColor  string
	syncSides  bool

	// Left rotation, angles in degrees
	leftRadiusHand float64
	leftRadiusPoi  float64
	leftOmegaHand  float64
	leftOmegaPoi   float64
	leftAngleHand  float64
	leftAnglePoi   float64

	scenario string
	skipMenu bool
)

var logger = log.New(io.Discard, "poitune: ", 0)

// main registers the command tree and runs the window host when no subcommand is
// given. It exits with status 1 when a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "poitune",
		Short: "poi flower simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetOutput(os.Stderr)
			}
		},
		RunE: runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".poitune", "data directory")
	pf.StringVar(&configFile, "config", "", "parameter file (yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	pf.StringVar(&scenario, "scenario", "", "start from a named scenario")
	pf.Float64Var(&afterimage, "afterimage", config.DefaultAfterimage, "trail persistence in [0,1]")
	pf.Float64Var(&speedRate, "speed", config.DefaultSpeedRate, "simulation speed multiplier")
	pf.Float64Var(&scale, "scale", config.DefaultScale, "drawing scale")
	pf.IntVar(&loci, "loci", config.DefaultNumberOfLocus, "number of sides drawn (1 or 2)")
	pf.Float64Var(&fps, "fps", config.DefaultFPS, "frame rate of the terminal loop")
	pf.StringVar(&background, "background", config.DefaultBackground, "background color")
	pf.BoolVar(&showGrid, "grid", true, "draw the grid")
	pf.StringVar(&gridColor, "grid-color", config.DefaultGridColor, "grid color")
	pf.BoolVar(&syncSides, "sync", false, "mirror left edits onto the right side")
	pf.Float64Var(&leftRadiusHand, "left-radius-hand", 70, "left hand radius")
	pf.Float64Var(&leftRadiusPoi, "left-radius-poi", 70, "left poi radius")
	pf.Float64Var(&leftOmegaHand, "left-omega-hand", 1, "left hand angular speed")
	pf.Float64Var(&leftOmegaPoi, "left-omega-poi", -3, "left poi angular speed")
	pf.Float64Var(&leftAngleHand, "left-angle-hand", 0, "left hand start angle (degrees)")
	pf.Float64Var(&leftAnglePoi, "left-angle-poi", 0, "left poi start angle (degrees)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the simulator in a window",
		RunE:  runGUI,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulator in the terminal",
		RunE:  runLive,
	}

	rootCmd.Flags().BoolVar(&skipMenu, "no-menu", false, "skip the scenario menu")
	guiCmd.Flags().BoolVar(&skipMenu, "no-menu", false, "skip the scenario menu")
	liveCmd.Flags().BoolVar(&skipMenu, "no-menu", false, "skip the scenario menu")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		RunE:  listScenarios,
	}

	rootCmd.AddCommand(guiCmd, liveCmd, scenariosCmd,
		newRenderCmd(), newTraceCmd(), newListCmd(), newPlotCmd(),
		newExportCSVCmd(), newExportSVGCmd(), newRoutineCmd(), newSweepCmd(),
		newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildStore layers the parameter sources: defaults, then the config file, then the
// scenario, then any flag the user set explicitly.
func buildStore(cmd *cobra.Command) (*store.Store, error) {
	var base *config.Params
	if configFile != "" {
		p, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		base = p
	}
	st := store.New(base)

	if scenario != "" {
		if err := st.ApplyScenario(scenario); err != nil {
			return nil, fmt.Errorf("%w: %s (available: %v)", err, scenario, config.ListScenarios())
		}
	}

	flags := cmd.Flags()
	st.UpdateCommon(func(c *config.Common) {
		if flags.Changed("afterimage") {
			c.Afterimage = afterimage
		}
		if flags.Changed("speed") {
			c.SpeedRate = speedRate
		}
		if flags.Changed("scale") {
			c.Scale = scale
		}
		if flags.Changed("loci") {
			c.NumberOfLocus = loci
		}
		if flags.Changed("fps") {
			c.FPS = fps
		}
		if flags.Changed("background") {
			c.BackgroundColor = background
		}
		if flags.Changed("grid") {
			c.Grid.Show = showGrid
		}
		if flags.Changed("grid-color") {
			c.Grid.Color = gridColor
		}
	})

	if flags.Changed("sync") {
		st.SetSync(syncSides)
	}

	leftChanged := false
	for _, name := range []string{"left-radius-hand", "left-radius-poi", "left-omega-hand", "left-omega-poi", "left-angle-hand", "left-angle-poi"} {
		if flags.Changed(name) {
			leftChanged = true
		}
	}
	if leftChanged {
		st.UpdateLeft(func(s *config.Side) {
			r := &s.Rotation
			if flags.Changed("left-radius-hand") {
				r.RadiusHand = leftRadiusHand
			}
			if flags.Changed("left-radius-poi") {
				r.RadiusPoi = leftRadiusPoi
			}
			if flags.Changed("left-omega-hand") {
				r.OmegaHand = leftOmegaHand
			}
			if flags.Changed("left-omega-poi") {
				r.OmegaPoi = leftOmegaPoi
			}
			if flags.Changed("left-angle-hand") {
				r.AngleHand = config.Degrees(leftAngleHand)
			}
			if flags.Changed("left-angle-poi") {
				r.AnglePoi = config.Degrees(leftAnglePoi)
			}
		})
	}

	logger.Printf("params: scenario=%q sync=%v rev=%d", st.Scenario(), st.Sync(), st.Revision())
	return st, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	st, err := buildStore(cmd)
	if err != nil {
		return err
	}
	return gui.Run(st, !skipMenu, logger)
}

func runLive(cmd *cobra.Command, args []string) error {
	st, err := buildStore(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return viz.Run(ctx, st, logger, skipMenu)
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tOMEGA\tPETALS\tPERIOD")

	for _, name := range config.ListScenarios() {
		sc, err := config.GetScenario(name)
		if err != nil {
			return err
		}
		r := sc.Left.Rotation
		petals, _ := analysis.Petals(r)
		period := "-"
		if t, ok := analysis.Period(r); ok {
			period = fmt.Sprintf("%.2f", t)
		}
		fmt.Fprintf(w, "%s\t%g/%g\t%d\t%s\n", name, r.OmegaHand, r.OmegaPoi, petals, period)
	}

	return w.Flush()
}

func newConfigCmd() *cobra.Command {
	var asJSON bool

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage parameter files",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved parameters to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := buildStore(cmd)
			if err != nil {
				return err
			}
			p := st.Params()
			if err := config.Save(args[0], &p); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "print the resolved parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := buildStore(cmd)
			if err != nil {
				return err
			}
			if asJSON {
				return st.ExportJSON(os.Stdout)
			}
			p := st.Params()
			return config.Encode(os.Stdout, &p)
		},
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "print as json")

	configCmd.AddCommand(initCmd, showCmd)
	return configCmd
}
