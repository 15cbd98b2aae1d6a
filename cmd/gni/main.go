package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gni/integrator"
	"github.com/san-kum/gni/internal/analysis"
	"github.com/san-kum/gni/internal/automation"
	"github.com/san-kum/gni/internal/config"
	"github.com/san-kum/gni/internal/dynamo"
	"github.com/san-kum/gni/internal/experiment"
	"github.com/san-kum/gni/internal/storage"
	"github.com/san-kum/gni/internal/telemetry"
	"github.com/san-kum/gni/internal/viz"
)

var (
	dataDir    string
	method     string
	dt         float64
	duration   float64
	sample     int
	size       int
	initState  []float64
	params     map[string]string
	configFile string
	preset     string
	saveConfig string
	metric     string
	maxPlots   int
	xAxis      int
	yAxis      int
	component  int
	section    bool
	sweepDt    float64
	sweepCount int
)

func main() {
	var logger *slog.Logger

	rootCmd := &cobra.Command{
		Use:           "gni",
		Short:         "compose and run geometric numerical integrators",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = telemetry.SetupLogger(os.Stderr)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gni", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a model with a method or composition recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, args, logger)
		},
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the effective config to this path")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run trajectory as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&maxPlots, "max", 6, "maximum number of state components to plot")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
	phaseCmd.Flags().BoolVar(&section, "poincare", false, "plot the upward zero crossings of the x-axis component instead")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "dominant frequency of each state component",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumRun,
	}
	spectrumCmd.Flags().IntVar(&component, "component", -1, "only this state component")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, logger)
		},
	}

	orderCmd := &cobra.Command{
		Use:   "order [model]",
		Short: "estimate the observed order of a method from a step size sweep",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return estimateOrder(cmd, args, logger)
		},
	}
	addRunFlags(orderCmd)
	orderCmd.Flags().StringVar(&metric, "metric", "energy_drift", "error metric")
	orderCmd.Flags().Float64Var(&sweepDt, "from", 0.04, "largest step size")
	orderCmd.Flags().IntVar(&sweepCount, "count", 4, "number of halvings")

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list methods and their compositions",
		RunE:  listMethods,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range experiment.NewRegistry().ListModels() {
				fmt.Println(name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				cfg := config.GetPreset(args[0], p)
				fmt.Printf("  %-10s %s dt=%g time=%g\n", p, cfg.MethodLabel(), cfg.Dt, cfg.Duration)
			}
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [model] [method1] [method2] ...",
		Short: "compare methods on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compareMethods(cmd, args, logger)
		},
	}
	addRunFlags(compareCmd)
	compareCmd.Flags().StringVar(&metric, "metric", "energy_drift", "metric to rank by")

	rootCmd.AddCommand(runCmd, listCmd, showCmd, exportCmd, plotCmd, phaseCmd, spectrumCmd, batchCmd, orderCmd, methodsCmd, modelsCmd, presetsCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&method, "method", config.DefaultMethod, "method name")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "step size")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "total time")
	cmd.Flags().IntVar(&sample, "sample", config.DefaultSample, "record every n-th step")
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "number of bodies (spring_chain)")
	cmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state")
	cmd.Flags().StringToStringVar(&params, "param", nil, "model parameter name=value")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func runSimulation(cmd *cobra.Command, args []string, logger *slog.Logger) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return err
		}
	}

	exp := experiment.New(cfg, experiment.WithLogger(logger))
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := exp.Run(ctx)
	if err != nil {
		var simErr *dynamo.SimulationError
		if errors.As(err, &simErr) && result != nil {
			fmt.Println(viz.Summary(result))
		}
		return err
	}

	st := storage.New(dataDir)
	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}
	telemetry.WithRunID(logger, runID).Debug("run saved", "dir", dataDir)

	fmt.Println(viz.Summary(result))
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tSTEPS\tMETHOD")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%g\t%d\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			run.Method,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return printJSON(meta)
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	result := &experiment.Result{
		Model:       meta.Model,
		Method:      meta.Method,
		Composition: meta.Composition,
		Times:       times,
		States:      make([]dynamo.State, len(states)),
		Metrics:     meta.Metrics,
		Steps:       meta.Steps,
	}
	for i, s := range states {
		result.States[i] = s
	}

	cfg := &config.Config{Model: meta.Model, Dt: meta.Dt, Duration: meta.Duration}
	return storage.ExportJSON(os.Stdout, cfg, result)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("method: %s\n", meta.Composition)
	fmt.Printf("samples: %d\n\n", len(states))

	numVars := min(len(states[0]), maxPlots)
	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(componentCaption(meta.Model, varIdx, len(states[0]))),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	portrait, err := analysis.NewPhasePortrait(states, xAxis, yAxis)
	if err != nil {
		return err
	}
	if section {
		portrait.Points = analysis.PoincareSection(states, xAxis, xAxis, yAxis, 0)
		if len(portrait.Points) == 0 {
			fmt.Println("no crossings detected")
			return nil
		}
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("model: %s, method: %s\n", meta.Model, meta.Composition)
	fmt.Printf("x-axis: %s, y-axis: %s, points: %d\n\n",
		componentCaption(meta.Model, xAxis, len(states[0])),
		componentCaption(meta.Model, yAxis, len(states[0])),
		len(portrait.Points))
	fmt.Print(portrait.ASCII(70, 20))
	return nil
}

func spectrumRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) < 2 {
		return fmt.Errorf("not enough samples for a spectrum")
	}
	interval := times[1] - times[0]

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tFREQUENCY\tPERIOD")
	for idx := range states[0] {
		if component >= 0 && idx != component {
			continue
		}
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][idx]
		}
		f := analysis.DominantFrequency(data, interval)
		period := "-"
		if f > 0 {
			period = fmt.Sprintf("%.6g", 1/f)
		}
		fmt.Fprintf(w, "%s\t%.6g\t%s\n", componentCaption(meta.Model, idx, len(states[0])), f, period)
	}
	return w.Flush()
}

func listMethods(cmd *cobra.Command, args []string) error {
	reg := experiment.NewRegistry()
	osc, err := reg.GetModel("oscillator", 0)
	if err != nil {
		return err
	}
	decay, err := reg.GetModel("decay", 0)
	if err != nil {
		return err
	}

	var rows []viz.MethodRow
	for _, info := range reg.ListMethods() {
		m, err := reg.GetMethod(info.Name, osc)
		if err != nil {
			m, err = reg.GetMethod(info.Name, decay)
		}
		composition := "-"
		if err == nil {
			composition = integrator.Label(m)
		}
		rows = append(rows, viz.MethodRow{
			Name:        info.Name,
			Description: info.Description,
			Composition: composition,
		})
	}

	fmt.Print(viz.MethodTable(rows))
	return nil
}

func compareMethods(cmd *cobra.Command, args []string, logger *slog.Logger) error {
	base, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	cfgs := make([]*config.Config, 0, len(args)-1)
	for _, name := range args[1:] {
		cfg := *base
		cfg.Method = name
		cfg.Recipe = nil
		cfgs = append(cfgs, &cfg)
	}

	fmt.Printf("comparing methods for %s (dt=%g, duration=%gs)\n\n", base.Model, base.Dt, base.Duration)

	ensemble := experiment.NewEnsemble(experiment.NewRegistry(), logger)
	results, errs := ensemble.RunEach(context.Background(), cfgs)
	for i, err := range errs {
		if err != nil {
			logger.Warn("method failed", "method", cfgs[i].Method, "err", err)
		}
	}

	fmt.Print(viz.Comparison(results, metric))
	return nil
}

func runBatch(cmd *cobra.Command, args []string, logger *slog.Logger) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), storage.New(dataDir), logger)
	for _, r := range results {
		fmt.Println(viz.Summary(r.Result))
		if r.RunID != "" {
			fmt.Printf("run id: %s\n", r.RunID)
		}
	}
	return err
}

func estimateOrder(cmd *cobra.Command, args []string, logger *slog.Logger) error {
	base, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	// only the metrics are needed
	base.Sample = max(base.Sample, 1<<20)

	sweep := &automation.StepSweep{
		Base:   base,
		Dts:    automation.Halving(sweepDt, sweepCount),
		Metric: metric,
	}
	points, err := sweep.Run(context.Background(), experiment.NewEnsemble(experiment.NewRegistry(), logger))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DT\t%s\n", metric)
	for _, p := range points {
		if p.Err != nil {
			fmt.Fprintf(w, "%g\t%v\n", p.Dt, p.Err)
			continue
		}
		fmt.Fprintf(w, "%g\t%.4e\n", p.Dt, p.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	order, err := automation.FitOrder(points)
	if err != nil {
		return err
	}
	fmt.Printf("\n%s on %s: observed order %.2f\n", base.MethodLabel(), base.Model, order)
	return nil
}
