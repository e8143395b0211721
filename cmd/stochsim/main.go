package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/stochsim/internal/analysis"
	"github.com/san-kum/stochsim/internal/config"
	"github.com/san-kum/stochsim/internal/dynsys"
	"github.com/san-kum/stochsim/internal/experiment"
	"github.com/san-kum/stochsim/internal/markov"
	"github.com/san-kum/stochsim/internal/metrics"
	"github.com/san-kum/stochsim/internal/storage"
	"github.com/san-kum/stochsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	seed       int64
	steps      int
	obsArg     string
	sampleLen  int
	startState string
	eps        float64
	maxSteps   int
	frameRate  int
	numRuns    int
	svgFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stochsim",
		Short: "finite-state stochastic model lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".stochsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "model file path (yaml)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "simulate a trajectory and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runModel,
	}
	runCmd.Flags().IntVar(&steps, "steps", 0, "trajectory steps (0 = model default)")

	stationaryCmd := &cobra.Command{
		Use:   "stationary [model]",
		Short: "compute the stationary distribution of a chain",
		Args:  cobra.MaximumNArgs(1),
		RunE:  stationaryDistribution,
	}

	decodeCmd := &cobra.Command{
		Use:   "decode [model]",
		Short: "viterbi-decode an observation sequence",
		Args:  cobra.MaximumNArgs(1),
		RunE:  decodeObservations,
	}
	decodeCmd.Flags().StringVar(&obsArg, "obs", "", "comma-separated observation symbols")

	loglikCmd := &cobra.Command{
		Use:   "loglik [model]",
		Short: "log-likelihood of an observation sequence",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sequenceLogLikelihood,
	}
	loglikCmd.Flags().StringVar(&obsArg, "obs", "", "comma-separated observation symbols")

	sampleCmd := &cobra.Command{
		Use:   "sample [model]",
		Short: "sample an observation sequence from an hmm",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sampleObservations,
	}
	sampleCmd.Flags().IntVar(&sampleLen, "len", 10, "sequence length")

	condCmd := &cobra.Command{
		Use:   "condprob [model] [eventA] [eventB]",
		Short: "conditional probability P(A|B) on a probability space",
		Long:  "events are comma-separated outcome lists, e.g. condprob die 2,4,6 1,2",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  conditionalProbability,
	}

	mixingCmd := &cobra.Command{
		Use:   "mixing [model]",
		Short: "estimate the mixing time of a chain",
		Args:  cobra.MaximumNArgs(1),
		RunE:  mixingTime,
	}
	mixingCmd.Flags().StringVar(&startState, "start", "", "starting state (default: first)")
	mixingCmd.Flags().Float64Var(&eps, "eps", config.DefaultEps, "total-variation threshold")
	mixingCmd.Flags().IntVar(&maxSteps, "max-steps", 1000, "step budget")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json, or the trajectory as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgFile, "svg", "", "write the trajectory to this svg file instead")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [model]",
		Short: "monte carlo estimate of a chain's stationary distribution",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 100, "independent walks")
	ensembleCmd.Flags().IntVar(&steps, "steps", 0, "walk length (0 = model default)")
	ensembleCmd.Flags().StringVar(&startState, "start", "", "starting state (default: first)")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "walk a chain with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&steps, "steps", 0, "walk length (0 = until quit)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 10, "draw rate")
	liveCmd.Flags().StringVar(&startState, "start", "", "starting state (default: first)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in models",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("%-12s %s\n", name, cfg.Kind)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, stationaryCmd, decodeCmd, loglikCmd, sampleCmd,
		condCmd, mixingCmd, ensembleCmd, listCmd, plotCmd, exportCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadModel resolves the model description: --config wins, otherwise the
// positional argument names a preset.
func loadModel(args []string) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no model given: pass a preset name or --config (presets: %s)",
			strings.Join(config.ListPresets(), ", "))
	}
	cfg := config.GetPreset(args[0])
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %s)", args[0],
			strings.Join(config.ListPresets(), ", "))
	}
	return cfg, nil
}

func splitObs(raw string) ([]string, error) {
	if raw == "" {
		return nil, fmt.Errorf("no observations given: use --obs a,b,c")
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func runModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadModel(args)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))
	n := steps
	if n <= 0 {
		n = cfg.Steps
	}
	if n <= 0 {
		n = config.DefaultSteps
	}

	var trajectory []string
	switch cfg.Kind {
	case config.KindChain:
		chain, err := experiment.BuildChain(cfg)
		if err != nil {
			return err
		}
		current := cfg.States[0]
		trajectory = append(trajectory, current)
		for i := 0; i < n; i++ {
			if current, err = chain.Step(rng, current); err != nil {
				return err
			}
			trajectory = append(trajectory, current)
		}

	case config.KindProcess:
		// the process horizon comes from its config, so the resolved step
		// count is threaded through a copy
		procCfg := *cfg
		procCfg.Steps = n
		process, err := experiment.BuildProcess(&procCfg, rng)
		if err != nil {
			return err
		}
		runner := dynsys.NewRunner()
		if _, err := runner.Run(context.Background(), process, 1); err != nil {
			return err
		}
		trajectory = process.Trajectory()

	case config.KindHMM:
		model, err := experiment.BuildHMM(cfg, rng)
		if err != nil {
			return err
		}
		if trajectory, err = model.Sample(n); err != nil {
			return err
		}

	default:
		return fmt.Errorf("model kind %q has no trajectory; use condprob for spaces", cfg.Kind)
	}

	visits := metrics.NewVisits()
	entropy := metrics.NewEntropy()
	metrics.ObserveAll(trajectory, visits, entropy)

	labels := cfg.States
	if cfg.Kind == config.KindHMM {
		labels = cfg.Observations
	}
	index := make(map[string]int, len(labels))
	for i, s := range labels {
		index[s] = i
	}
	indices := make([]int, len(trajectory))
	for i, s := range trajectory {
		indices[i] = index[s]
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Name, cfg.Kind, seed, n, metrics.Collect(visits, entropy), trajectory, indices)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("states visited: %d of %d\n", int(visits.Value()), len(labels))
	fmt.Printf("occupancy entropy: %.4f nats\n\n", entropy.Value())
	fmt.Println(viz.PlotTrajectory(trajectory, labels, fmt.Sprintf("%s trajectory", cfg.Name)))
	return nil
}

func stationaryDistribution(cmd *cobra.Command, args []string) error {
	cfg, err := loadModel(args)
	if err != nil {
		return err
	}
	chain, err := experiment.BuildChain(cfg)
	if err != nil {
		return err
	}
	pi, err := chain.StationaryDistribution()
	if err != nil {
		return err
	}
	fmt.Printf("stationary distribution of %s:\n\n", cfg.Name)
	fmt.Print(viz.PlotDistribution(chain.States(), pi))
	return nil
}

func decodeObservations(cmd *cobra.Command, args []string) error {
	cfg, err := loadModel(args)
	if err != nil {
		return err
	}
	observations, err := splitObs(obsArg)
	if err != nil {
		return err
	}
	model, err := experiment.BuildHMM(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	path, err := model.Viterbi(observations)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tOBSERVED\tDECODED")
	for t := range path {
		fmt.Fprintf(w, "%d\t%s\t%s\n", t, observations[t], path[t])
	}
	return w.Flush()
}

func sequenceLogLikelihood(cmd *cobra.Command, args []string) error {
	cfg, err := loadModel(args)
	if err != nil {
		return err
	}
	observations, err := splitObs(obsArg)
	if err != nil {
		return err
	}
	model, err := experiment.BuildHMM(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	p, err := model.SequenceProbability(observations)
	if err != nil {
		return err
	}
	fmt.Printf("P(obs) = %.6g\n", p)
	fmt.Printf("log P(obs) = %.6f\n", math.Log(p))
	return nil
}

func sampleObservations(cmd *cobra.Command, args []string) error {
	cfg, err := loadModel(args)
	if err != nil {
		return err
	}
	model, err := experiment.BuildHMM(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	sequence, err := model.Sample(sampleLen)
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(sequence, " "))
	return nil
}

func conditionalProbability(cmd *cobra.Command, args []string) error {
	var modelArgs []string
	var rawA, rawB string
	if len(args) == 3 {
		modelArgs, rawA, rawB = args[:1], args[1], args[2]
	} else {
		rawA, rawB = args[0], args[1]
	}

	cfg, err := loadModel(modelArgs)
	if err != nil {
		return err
	}
	space, err := experiment.BuildSpace(cfg)
	if err != nil {
		return err
	}

	eventA, err := splitObs(rawA)
	if err != nil {
		return err
	}
	eventB, err := splitObs(rawB)
	if err != nil {
		return err
	}

	p, err := space.ConditionalProbability(eventA, eventB)
	if err != nil {
		return err
	}
	fmt.Printf("P(A|B) = %.6f\n", p)
	return nil
}

func mixingTime(cmd *cobra.Command, args []string) error {
	cfg, err := loadModel(args)
	if err != nil {
		return err
	}
	chain, err := experiment.BuildChain(cfg)
	if err != nil {
		return err
	}
	start := startState
	if start == "" {
		start = cfg.States[0]
	}
	n, err := analysis.MixingTime(chain, start, eps, maxSteps)
	if err != nil {
		return err
	}
	if n >= maxSteps {
		fmt.Printf("not mixed within %d steps (eps=%.3g)\n", maxSteps, eps)
		return nil
	}
	fmt.Printf("mixing time from %s: %d steps (eps=%.3g)\n", start, n, eps)
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
	fmt.Fprintln(w, "ID\tMODEL\tKIND\tTIME\tSTEPS\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Model,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Seed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trajectory, _, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(trajectory) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s (%s)\n", meta.Model, meta.Kind)
	fmt.Printf("samples: %d\n\n", len(trajectory))

	labels := distinct(trajectory)
	fmt.Println(viz.PlotTrajectory(trajectory, labels, fmt.Sprintf("%s trajectory", meta.Model)))
	fmt.Print(viz.PlotDistribution(labels, analysis.Occupancy(trajectory, labels)))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	if svgFile != "" {
		trajectory, _, err := st.LoadTrajectory(args[0])
		if err != nil {
			return err
		}
		if err := viz.WriteTrajectorySVG(svgFile, trajectory, distinct(trajectory), 800, 300); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadModel(args)
	if err != nil {
		return err
	}
	chain, err := experiment.BuildChain(cfg)
	if err != nil {
		return err
	}

	start := startState
	if start == "" {
		start = cfg.States[0]
	}
	n := steps
	if n <= 0 {
		n = cfg.Steps
	}
	if n <= 0 {
		n = config.DefaultSteps
	}

	ensemble := markov.NewEnsemble(chain, numRuns, seed)
	trajectories, err := ensemble.Run(context.Background(), start, n)
	if err != nil {
		return err
	}

	empirical := markov.EmpiricalDistribution(trajectories, cfg.States)
	fmt.Printf("empirical occupancy over %d walks of %d steps:\n\n", numRuns, n)
	fmt.Print(viz.PlotDistribution(chain.States(), empirical))

	pi, err := chain.StationaryDistribution()
	if err != nil {
		return err
	}
	fmt.Printf("\ntotal variation from stationary: %.4f\n", analysis.TotalVariation(empirical, pi))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadModel(args)
	if err != nil {
		return err
	}
	chain, err := experiment.BuildChain(cfg)
	if err != nil {
		return err
	}
	start := startState
	if start == "" {
		start = cfg.States[0]
	}
	return viz.RunLive(chain, rand.New(rand.NewSource(seed)), start, steps, frameRate)
}

// distinct returns the unique states of a trajectory in first-seen order.
func distinct(trajectory []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, s := range trajectory {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
