package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"fourbit/pkg/config"
	"fourbit/pkg/cpu"
	"fourbit/pkg/utils"
)

func main() {
	if err := newCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func newCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		configPath string
		logLevel   string
		maxSteps   int
		trace      bool
		snapshot   snapshotPaths
	)

	cmd := &cobra.Command{
		Use:           "4bemu [FILE.hex]",
		Short:         "Run an assembled hex file on the four-bit CPU emulator",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("max-steps") {
				cfg.MaxSteps = maxSteps
			}
			if cmd.Flags().Changed("trace") {
				cfg.Trace = trace
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			level, _ := utils.ParseLevel(cfg.LogLevel)
			utils.SetupLogger(stderr, level)

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" && snapshot.resume == "" {
				return errors.New("nothing to run: give a hex file or --resume")
			}
			return run(cfg, path, snapshot, stdout)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 256, "step budget (0 = unlimited)")
	cmd.Flags().BoolVar(&trace, "trace", false, "print an execution trace table")
	cmd.Flags().StringVar(&snapshot.resume, "resume", "", "restore machine state from a snapshot before running")
	cmd.Flags().StringVar(&snapshot.hibernate, "hibernate", "", "write the final machine state to a snapshot file")

	return cmd
}

type snapshotPaths struct {
	resume    string
	hibernate string
}

func loadProgram(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hex file %q: %w", path, err)
	}

	program, err := cpu.ParseHex(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return program, nil
}

func run(cfg config.Config, path string, snapshot snapshotPaths, stdout io.Writer) error {
	program, err := loadProgram(path)
	if err != nil {
		return err
	}

	b := cpu.NewBuilder().WithMaxSteps(cfg.MaxSteps)
	var table *cpu.TraceTable
	if cfg.Trace {
		table = &cpu.TraceTable{}
		b = b.WithHook(table)
	}

	m := b.Build("FourBit", program)
	if snapshot.resume != "" {
		if err := m.CPU().RestoreFromFile(snapshot.resume); err != nil {
			return fmt.Errorf("resume from %q: %w", snapshot.resume, err)
		}
		// A hex file given alongside the snapshot replaces its program.
		if program != nil {
			m.CPU().Program = program
		}
		slog.Info("resumed", "snapshot", snapshot.resume, "pc", m.CPU().PC, "steps", m.CPU().Steps)
	}

	runErr := m.Run()

	if table != nil {
		table.Render(stdout)
	}
	fmt.Fprintf(stdout, "run complete: %s M=%s\n", m.CPU(), m.CPU().MemoryString())

	if snapshot.hibernate != "" {
		if err := m.CPU().HibernateToFile(snapshot.hibernate); err != nil {
			return fmt.Errorf("hibernate to %q: %w", snapshot.hibernate, err)
		}
	}

	return runErr
}
