package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/keagan/mementoize/internal/config"
	"github.com/keagan/mementoize/internal/edit"
	"github.com/keagan/mementoize/internal/logging"
	"github.com/keagan/mementoize/internal/pipeline"
	"github.com/keagan/mementoize/pkg/util"
)

// cliFlags mirrors the command line; cut options only override the config
// file when they were set explicitly
type cliFlags struct {
	configFile     string
	verbose        bool
	dryRun         bool
	skipStart      float64
	skipEnd        float64
	minSceneLength float64
	threshold      float64
	overlap        float64
	cuts           string
	output         string
	edlPath        string
}

var flags cliFlags

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("mementoize failed")
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mementoize [video]",
	Short: "Memento-ize a video",
	Long: `Cut a video into scenes, render the first half black-and-white and
interleave the two halves so the story is told out of order.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// dry run implies verbose
		logging.Init(flags.verbose || flags.dryRun)

		cfg, err := config.Load(flags.configFile)
		if err != nil {
			return err
		}
		applyOverrides(cmd.Flags(), cfg, flags)

		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func run(ctx context.Context, out io.Writer, input string) error {
	cfg := config.FromContext(ctx)
	if err := cfg.Validate(); err != nil {
		return &edit.ConfigError{Field: "options", Err: err}
	}

	manual, err := util.ParseCutList(flags.cuts)
	if err != nil {
		return &edit.ConfigError{Field: "cuts", Err: err}
	}

	if !util.FileExists(input) {
		return &edit.DetectionError{Input: input, Err: fmt.Errorf("file not found")}
	}

	cfg.Render.Progress = cfg.Render.Progress && logging.IsTerminal(os.Stderr)

	pipe, err := pipeline.New(log.Logger, cfg)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		SkipStart:      config.Seconds(cfg.Cuts.SkipStart),
		SkipEnd:        config.Seconds(cfg.Cuts.SkipEnd),
		MinSceneLength: config.Seconds(cfg.Cuts.MinSceneLength),
		Threshold:      cfg.Cuts.Threshold,
		Overlap:        config.Seconds(cfg.Cuts.Overlap),
		ManualCuts:     manual,
		DryRun:         flags.dryRun,
		Output:         flags.output,
		EDLPath:        flags.edlPath,
	}

	res, err := pipe.Run(ctx, input, opts)
	if err != nil {
		return err
	}

	if flags.verbose || flags.dryRun {
		printReport(out, res)
	}
	if res.Rendered {
		fmt.Fprintln(out, res.Output)
	}
	return nil
}

// printReport lists the detected and final cuts
func printReport(w io.Writer, res *pipeline.Result) {
	if !res.Manual {
		fmt.Fprintln(w, "cuts detected at")
		fmt.Fprintln(w, pipeline.FormatCuts(res.Detected))
	}

	fmt.Fprintln(w, len(res.Plan.Cuts), "final cuts at:")
	fmt.Fprintln(w, pipeline.FormatCuts(res.Plan.Cuts))

	for i, in := range res.Plan.List {
		fmt.Fprintf(w, "%3d  %-7s %-10s %s\n", i+1, in.Kind, in.Filter, in.Scene)
	}
}

func applyOverrides(fs *pflag.FlagSet, cfg *config.Config, f cliFlags) {
	if fs.Changed("skip-start") {
		cfg.Cuts.SkipStart = f.skipStart
	}
	if fs.Changed("skip-end") {
		cfg.Cuts.SkipEnd = f.skipEnd
	}
	if fs.Changed("min-scene-length") {
		cfg.Cuts.MinSceneLength = f.minSceneLength
	}
	if fs.Changed("threshold") {
		cfg.Cuts.Threshold = f.threshold
	}
	if fs.Changed("overlap") {
		cfg.Cuts.Overlap = f.overlap
	}
}

func bindCutFlags(fs *pflag.FlagSet, f *cliFlags) {
	def := config.Default().Cuts

	fs.Float64Var(&f.skipStart, "skip-start", def.SkipStart, "no scene cuts allowed for this many seconds after the start")
	fs.Float64Var(&f.skipEnd, "skip-end", def.SkipEnd, "no scene cuts allowed for this many seconds before the end")
	fs.Float64Var(&f.minSceneLength, "min-scene-length", def.MinSceneLength, "cuts closer together than this many seconds are merged")
	fs.Float64Var(&f.threshold, "threshold", def.Threshold, "scene detection threshold between 0 and 1; lower values detect more cuts (typical 0.4-0.6)")
	fs.Float64Var(&f.overlap, "overlap", def.Overlap, "seconds of footage repeated at the end of each clip")
	fs.StringVar(&f.cuts, "cuts", "", "comma separated cut timestamps in seconds (or MM:SS); disables detection")
	fs.BoolVar(&f.dryRun, "dry-run", false, "print cut timestamps and exit without rendering (implies --verbose)")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: <input>_mementized.<ext>)")
	fs.StringVar(&f.edlPath, "edl", "", "also write the edit list as a CMX3600 EDL to this path")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default: ./mementoize.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output, print every cut")

	bindCutFlags(rootCmd.Flags(), &flags)

	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Config management commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.FromContext(cmd.Context()).Encode(cmd.OutOrStdout())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration to a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "mementoize.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if util.FileExists(path) {
			return fmt.Errorf("%s already exists", path)
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("config written")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
