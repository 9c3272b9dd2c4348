package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/oceanwave/hydrocore/internal/analysis"
	"github.com/oceanwave/hydrocore/internal/automation"
	"github.com/oceanwave/hydrocore/internal/config"
	"github.com/oceanwave/hydrocore/internal/dynamo"
	"github.com/oceanwave/hydrocore/internal/export"
	"github.com/oceanwave/hydrocore/internal/hostsim"
	"github.com/oceanwave/hydrocore/internal/storage"
	"github.com/oceanwave/hydrocore/internal/tui"
)

var (
	dataDir    string
	dtOverride float64
	durOverride float64
	integrator string
	seed       uint64

	// rao-sweep flags
	sweepBody     int
	sweepOmegaMin float64
	sweepOmegaMax float64
	sweepSteps    int

	// montecarlo flags
	mcTrials         int
	mcHsPerturbation float64

	// phase plot axes
	xAxis int
	yAxis int

	// watch flags
	watchTheme string
)

// main is the entry point for the dynsim CLI; it registers commands and
// flags and executes the root command. It exits the process with status
// 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "dynsim",
		Short: "time-domain hydrodynamic force engine for floating rigid bodies",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dynsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [config.yaml or preset]",
		Short: "run one hydrodynamic simulation and store the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dtOverride, "dt", 0, "override timestep")
	runCmd.Flags().Float64Var(&durOverride, "duration", 0, "override duration")
	runCmd.Flags().StringVar(&integrator, "integrator", "", "override integrator (euler|rk4|rk45|verlet|leapfrog)")

	batchCmd := &cobra.Command{
		Use:   "batch <scenario.yaml>",
		Short: "run every scenario in a YAML-scripted batch",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "rao-sweep <config.yaml or preset>",
		Short: "sweep regular-wave frequency and report steady-state heave amplitude",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepBody, "body", 1, "1-based body index to report")
	sweepCmd.Flags().Float64Var(&sweepOmegaMin, "omega-min", 0.5, "minimum wave frequency (rad/s)")
	sweepCmd.Flags().Float64Var(&sweepOmegaMax, "omega-max", 3.0, "maximum wave frequency (rad/s)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 20, "number of frequencies to sample")

	mcCmd := &cobra.Command{
		Use:   "montecarlo <config.yaml or preset>",
		Short: "perturb Hs across independent irregular-sea trials and check stability",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	mcCmd.Flags().IntVar(&mcTrials, "trials", 20, "number of trials")
	mcCmd.Flags().Float64Var(&mcHsPerturbation, "hs-perturbation", 0.5, "max +/- perturbation to significant wave height (m)")
	mcCmd.Flags().Uint64Var(&seed, "seed", 42, "base PCG seed")

	watchCmd := &cobra.Command{
		Use:   "watch <config.yaml or preset>",
		Short: "run a live terminal monitor of body1 heave, surge and sway",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	watchCmd.Flags().StringVar(&watchTheme, "theme", "cyberpunk", "color theme (cyberpunk|retro|minimal|ocean|sunset)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot <run-id>",
		Short: "plot a stored run's state trajectories in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze <run-id>",
		Short: "power-spectrum analysis of a stored run's body1 heave",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase <run-id>",
		Short: "ascii phase-space scatter plot of two state variables",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x", 2, "state index for the x-axis (default: body1 heave)")
	phaseCmd.Flags().IntVar(&yAxis, "y", 8, "state index for the y-axis (default: body1 heave velocity)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv <run-id>",
		Short: "export a stored run's state trajectory as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json <run-id>",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg <run-id> <out.svg>",
		Short: "export a stored run's body1 heave trace as an SVG polyline",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	compareCmd := &cobra.Command{
		Use:   "compare <config.yaml or preset> <integrator...>",
		Short: "run the same scenario under several integrators and compare",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in demo presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, batchCmd, sweepCmd, mcCmd, watchCmd, listCmd,
		plotCmd, analyzeCmd, phaseCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, compareCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveConfig loads a run configuration from a YAML file at path, or
// falls back to a built-in preset of that name.
func resolveConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.Load(path)
	}
	cfg := config.GetPreset(path)
	if cfg == nil {
		return nil, fmt.Errorf("no config file and no preset named %q (see 'dynsim presets')", path)
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config) {
	if dtOverride > 0 {
		cfg.Dt = dtOverride
	}
	if durOverride > 0 {
		cfg.Duration = durOverride
	}
	if integrator != "" {
		cfg.Integrator = integrator
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args[0])
	if err != nil {
		return err
	}
	applyOverrides(cfg)

	fmt.Printf("running %d-body %s scenario: integrator=%s dt=%.4f duration=%.1fs\n",
		cfg.NumBodies(), cfg.WaveMode, cfg.Integrator, cfg.Dt, cfg.Duration)

	start := time.Now()
	result, err := hostsim.Run(cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(string(cfg.WaveMode), cfg.Dt, cfg.Duration, int64(cfg.Irregular.Seed), cfg.Integrator, string(cfg.WaveMode), result)
	if err != nil {
		return err
	}

	fmt.Printf("stored run %s (%d steps, %v, %d error(s))\n", runID, result.StepsTaken, elapsed, len(result.Errors))
	if len(result.States) > 0 {
		final := result.States[len(result.States)-1]
		fmt.Printf("body1 final heave: %.4f m\n", hostsim.BodyPos(final, 1)[2])
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("scenario %q: %s (%d runs)\n", scenario.Name, scenario.Description, len(scenario.Runs))

	results, err := automation.RunScenario(context.Background(), scenario)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	for i, result := range results {
		runID, err := st.Save(scenario.Runs[i].Name, scenario.Runs[i].Config.Dt, scenario.Runs[i].Config.Duration,
			int64(scenario.Runs[i].Config.Irregular.Seed), scenario.Runs[i].Config.Integrator,
			string(scenario.Runs[i].Config.WaveMode), result)
		if err != nil {
			return err
		}
		fmt.Printf("  %s -> %s\n", scenario.Runs[i].Name, runID)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(args[0])
	if err != nil {
		return err
	}
	applyOverrides(base)

	sweep := &automation.OmegaSweep{
		Base:     base,
		Body:     sweepBody,
		OmegaMin: sweepOmegaMin,
		OmegaMax: sweepOmegaMax,
		NumSteps: sweepSteps,
	}
	results, err := automation.RunOmegaSweep(context.Background(), sweep)
	if err != nil {
		return err
	}

	amps := make([]float64, len(results))
	for i, r := range results {
		amps[i] = r.HeaveAmplitude
	}
	graph := asciigraph.Plot(amps,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("body%d heave RAO, omega in [%.2f, %.2f]", sweepBody, sweepOmegaMin, sweepOmegaMax)),
	)
	fmt.Println(graph)
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(args[0])
	if err != nil {
		return err
	}
	applyOverrides(base)

	mcCfg := &automation.MonteCarloConfig{
		Base:           base,
		NumTrials:      mcTrials,
		HsPerturbation: mcHsPerturbation,
		Seed:           seed,
	}
	results, err := automation.RunMonteCarlo(context.Background(), mcCfg)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("\n%d stable, %d unstable of %d trials\n", stable, unstable, len(results))
	for _, r := range results {
		if !r.Stable {
			fmt.Printf("  unstable: trial %d seed=%d hs=%.3f\n", r.TrialID, r.Seed, r.Hs)
		}
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args[0])
	if err != nil {
		return err
	}
	applyOverrides(cfg)
	return tui.Run(cfg, watchTheme)
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
	fmt.Fprintln(w, "ID\tMODEL\tWAVE MODE\tTIME\tDURATION\tDT\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%s\n",
			run.ID,
			run.Model,
			run.WaveMode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
		)
	}

	return w.Flush()
}

// stateCaption names the flat rigid-body state index in hostsim's
// per-body layout (pos[3], euler[3], vel[6]) if it falls within the
// first body, otherwise a generic x<i> label.
func stateCaption(idx int) string {
	labels := []string{"surge", "sway", "heave", "roll", "pitch", "yaw",
		"surge_vel", "sway_vel", "heave_vel", "roll_vel", "pitch_vel", "yaw_vel"}
	if idx < len(labels) {
		return "body1 " + labels[idx]
	}
	body := idx/12 + 1
	return fmt.Sprintf("body%d x%d", body, idx%12)
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
	fmt.Printf("wave mode: %s\n", meta.WaveMode)
	fmt.Printf("samples: %d\n\n", len(states))

	numVars := len(states[0])
	maxPlots := 6
	if numVars > maxPlots {
		numVars = maxPlots
	}

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
			asciigraph.Caption(stateCaption(varIdx)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
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

	if len(states) == 0 || len(states[0]) < 3 {
		return fmt.Errorf("no heave data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("wave mode: %s\n\n", meta.WaveMode)

	data := make([]float64, len(states))
	for i := range states {
		data[i] = states[i][2] // body1 heave
	}

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	ps := analysis.PowerSpectrum(padded)
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (body1 heave)"),
	)
	fmt.Println(graph)
	fmt.Println()

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(plotData); i++ {
		if plotData[i] > maxPower {
			maxPower = plotData[i]
			maxIdx = i
		}
	}

	freq := float64(maxIdx) / (float64(n) * meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
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
	if len(states[0]) <= xAxis || len(states[0]) <= yAxis {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("wave mode: %s\n", meta.WaveMode)
	fmt.Printf("x-axis: %s, y-axis: %s\n\n", stateCaption(xAxis), stateCaption(yAxis))

	xData := make([]float64, len(states))
	yData := make([]float64, len(states))
	for i := range states {
		xData[i] = states[i][xAxis]
		yData[i] = states[i][yAxis]
	}

	xMin, xMax := xData[0], xData[0]
	yMin, yMax := yData[0], yData[0]
	for i := range xData {
		if xData[i] < xMin {
			xMin = xData[i]
		}
		if xData[i] > xMax {
			xMax = xData[i]
		}
		if yData[i] < yMin {
			yMin = yData[i]
		}
		if yData[i] > yMax {
			yMax = yData[i]
		}
	}

	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	width, height := 70, 20
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i := range xData {
		px := int(float64(width-1) * (xData[i] - xMin) / xRange)
		py := int(float64(height-1) * (yData[i] - yMin) / yRange)
		py = height - 1 - py
		if px >= 0 && px < width && py >= 0 && py < height {
			switch {
			case i < len(xData)/3:
				canvas[py][px] = '.'
			case i < 2*len(xData)/3:
				canvas[py][px] = 'o'
			default:
				canvas[py][px] = '●'
			}
		}
	}

	fmt.Printf("  %.2f ┌", yMax)
	for i := 0; i < width; i++ {
		fmt.Print("─")
	}
	fmt.Println("┐")

	for i := range canvas {
		if i == height/2 {
			fmt.Printf("  %.2f │", (yMax+yMin)/2)
		} else {
			fmt.Print("       │")
		}
		fmt.Print(string(canvas[i]))
		fmt.Println("│")
	}

	fmt.Printf("  %.2f └", yMin)
	for i := 0; i < width; i++ {
		fmt.Print("─")
	}
	fmt.Println("┘")

	fmt.Printf("       %.2f", xMin)
	padding := width - 20
	for i := 0; i < padding; i++ {
		fmt.Print(" ")
	}
	fmt.Printf("%.2f\n", xMax)

	fmt.Printf("\nLegend: . = early, o = middle, ● = late\n")

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, stateCaption(i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
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

	result := &dynamo.Result{
		Times:   times,
		Metrics: meta.Metrics,
	}
	result.States = make([]dynamo.State, len(states))
	for i, s := range states {
		result.States[i] = s
	}

	payload := struct {
		Meta   *storage.RunMetadata `json:"meta"`
		Result *dynamo.Result       `json:"result"`
	}{Meta: meta, Result: result}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID, outPath := args[0], args[1]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 || len(states[0]) < 3 {
		return fmt.Errorf("no heave data to export")
	}

	points := make([]struct{ X, Y float64 }, len(states))
	for i := range states {
		points[i] = struct{ X, Y float64 }{X: times[i], Y: states[i][2]}
	}

	svg := export.TrajectoryToSVG(points, 800, 300, "#00ffaa")
	if svg == "" {
		return fmt.Errorf("not enough points to render a trace")
	}

	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(args[0])
	if err != nil {
		return err
	}
	applyOverrides(base)
	names := args[1:]

	fmt.Printf("comparing integrators for %d-body %s scenario (dt=%.4f, duration=%.1fs)\n\n",
		base.NumBodies(), base.WaveMode, base.Dt, base.Duration)
	fmt.Printf("%-12s  %-14s  %-10s  %-10s\n", "integrator", "final_heave", "steps", "time_ms")

	for _, name := range names {
		cfg := *base
		cfg.Integrator = name

		start := time.Now()
		result, err := hostsim.Run(&cfg)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		finalHeave := 0.0
		if len(result.States) > 0 {
			finalHeave = hostsim.BodyPos(result.States[len(result.States)-1], 1)[2]
		}

		fmt.Printf("%-12s  %14.6f  %10d  %10.2f\n", name, finalHeave, result.StepsTaken, float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Printf("%-16s  %d body(s), wave_mode=%s, duration=%.1fs\n", name, p.NumBodies(), p.WaveMode, p.Duration)
	}
	return nil
}
