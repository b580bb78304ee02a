package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"golang.org/x/sync/errgroup"

	"fourbit/pkg/asm"
	"fourbit/pkg/config"
	"fourbit/pkg/cpu"
	"fourbit/pkg/utils"
)

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

type options struct {
	configPath string
	logLevel   string
	listing    bool
	run        bool
	trace      bool
	maxSteps   int
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "4bassm INPUT [OUTPUT|-]",
		Short: "Assembler for the custom four-bit CPU",
		Long: `4bassm translates 4-bit accumulator assembly into a hex digit stream.

With one argument the output is written next to the input with a .hex
extension. With "-" as OUTPUT the digits are printed to stdout followed by a
newline; any other OUTPUT is written as-is without a trailing newline.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd, stderr)
			if err != nil {
				return err
			}

			out := ""
			if len(args) == 2 {
				out = args[1]
			}
			return assembleOne(cmd.Context(), cfg, args[0], out, opts.run, stdout, stderr)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	flags.BoolVar(&opts.listing, "listing", false, "print listing and symbol tables to stderr")
	flags.IntVar(&opts.maxSteps, "max-steps", 256, "step budget for --run (0 = unlimited)")

	root.Flags().BoolVar(&opts.run, "run", false, "run the assembled program on the emulator")
	root.Flags().BoolVar(&opts.trace, "trace", false, "with --run, print an execution trace table")

	root.AddCommand(newBuildCmd(opts, stdout, stderr))

	return root
}

func newBuildCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "build INPUT...",
		Short: "Assemble several sources, each to its own .hex file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd, stderr)
			if err != nil {
				return err
			}
			return buildAll(cmd.Context(), cfg, args, stdout)
		},
	}
}

// resolve loads the config file and lets explicitly set flags override it.
// It also installs the default logger.
func (o *options) resolve(cmd *cobra.Command, stderr io.Writer) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("listing") {
		cfg.Listing = o.listing
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = o.maxSteps
	}
	if flags.Changed("trace") {
		cfg.Trace = o.trace
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	level, _ := utils.ParseLevel(cfg.LogLevel)
	utils.SetupLogger(stderr, level)

	return cfg, nil
}

// assembleFile reads path and runs every line through a fresh assembler.
func assembleFile(path string) (*asm.Assembler, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %q: %w", path, err)
	}

	a := asm.NewAssembler()
	for _, line := range strings.Split(string(source), "\n") {
		a.AssembleLine(line)
	}
	return a, nil
}

func assembleOne(
	ctx context.Context,
	cfg config.Config,
	in, out string,
	run bool,
	stdout, stderr io.Writer,
) error {
	a, err := assembleFile(in)
	if err != nil {
		return err
	}
	hex := a.Output()

	slog.DebugContext(ctx, "assembled",
		"input", in,
		"digits", a.Address(),
		"symbols", len(a.Symbols()))

	if cfg.Listing {
		asm.RenderListing(stderr, a.Listing())
		asm.RenderSymbols(stderr, a.Symbols())
	}

	path, toStdout := utils.ResolveOutput(in, out, cfg.OutputExtension)
	if toStdout {
		fmt.Fprintln(stdout, hex)
	} else {
		if err := writeHex(path, hex); err != nil {
			return err
		}
		slog.InfoContext(ctx, "wrote output", "path", path, "digits", a.Address())
	}

	if !run {
		return nil
	}
	return runHex(cfg, hex, stdout)
}

func writeHex(path, hex string) error {
	if err := os.WriteFile(path, []byte(hex), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %q: %w", path, err)
	}
	return nil
}

func runHex(cfg config.Config, hex string, stdout io.Writer) error {
	program, err := cpu.ParseHex(hex)
	if err != nil {
		return fmt.Errorf("cannot run output: %w", err)
	}

	b := cpu.NewBuilder().WithMaxSteps(cfg.MaxSteps)
	var trace *cpu.TraceTable
	if cfg.Trace {
		trace = &cpu.TraceTable{}
		b = b.WithHook(trace)
	}

	m := b.Build("FourBit", program)
	runErr := m.Run()

	if trace != nil {
		trace.Render(stdout)
	}
	fmt.Fprintf(stdout, "run complete: %s M=%s\n", m.CPU(), m.CPU().MemoryString())

	if runErr != nil {
		return fmt.Errorf("run failed: %w", runErr)
	}
	return nil
}

type buildJob struct {
	in, out string
	digits  int
}

var errOutputConflict = errors.New("output conflict")

// planBuild resolves every input and drops repeats of the same file. Two
// different sources that would write the same output are rejected.
func planBuild(inputs []string, ext string) ([]buildJob, error) {
	var jobs []buildJob
	sources := make(map[string]string)
	for _, in := range inputs {
		full, out, err := utils.GetPathInfo(in, ext)
		if err != nil {
			return nil, err
		}
		if prev, ok := sources[out]; ok {
			if prev == full {
				slog.Debug("duplicate input skipped", "input", in)
				continue
			}
			return nil, fmt.Errorf("%w: %s and %s both write %s", errOutputConflict, prev, full, out)
		}
		sources[out] = full
		jobs = append(jobs, buildJob{in: in, out: out})
	}
	return jobs, nil
}

// buildAll assembles every input concurrently. Each input gets its own
// Assembler, so no state is shared between goroutines.
func buildAll(ctx context.Context, cfg config.Config, inputs []string, stdout io.Writer) error {
	jobs, err := planBuild(inputs, cfg.OutputExtension)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range jobs {
		job := &jobs[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			a, err := assembleFile(job.in)
			if err != nil {
				return err
			}
			if err := writeHex(job.out, a.Output()); err != nil {
				return err
			}
			job.digits = a.Address()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, job := range jobs {
		fmt.Fprintf(stdout, "assembled %d digits: %s -> %s\n", job.digits, job.in, job.out)
	}
	return nil
}
