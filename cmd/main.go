package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"minilang/internal/config"
	"minilang/internal/logger"
	"minilang/internal/repl"
	"minilang/internal/runner"
	"minilang/pkg/color"

	"github.com/charmbracelet/log"
)

// Main entry point for the MiniLang interpreter.
func main() {
	os.Exit(run())
}

func run() int {
	options := runner.Runner{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode (debug logs, stack traces)")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.StringVar(&options.ConfigPath, "config", "", "YAML configuration file (default ./"+config.DefaultFile+" when present)")
	flag.StringVar(&options.Eval, "e", "", "Evaluate source and exit")
	flag.StringVar(&options.TestDir, "t", "", "Run the golden scripts (*.ml with *.out) in a directory")

	flag.Parse()
	args := flag.Args()

	if options.Help {
		fmt.Printf("Usage: %s [options] [file]\n", os.Args[0])
		fmt.Println("Without a file or -e, an interactive session is started.")
		fmt.Println("Options:")
		flag.PrintDefaults()
		return 0
	}

	cfg, err := config.Load(options.ConfigPath)
	if err != nil {
		logger.Init(options.Verbose, options.NoColor)
		log.Error("Invalid configuration", "error", err)
		return 1
	}
	options.ApplyConfig(cfg)

	logger.Init(options.Verbose, options.NoColor)
	if options.NoColor {
		color.EnableColor(false)
	}
	if cfg.Path != "" {
		log.Debug("Loaded configuration", "file", cfg.Path)
	}

	switch {
	case options.TestDir != "":
		return runGolden(&options)

	case options.Eval != "":
		if err := options.RunSource(options.Eval); err != nil {
			log.Debug("Evaluation failed", "error", err)
			return 1
		}

	case len(args) > 0:
		options.SourceFile = args[0]
		if err := options.RunFile(options.SourceFile); err != nil {
			log.Debug("Execution failed", "file", options.SourceFile, "error", err)
			if !runner.IsReported(err) {
				log.Error("Execution failed", "file", options.SourceFile, "error", err)
			}
			return 1
		}

	default:
		session, err := repl.New(&options, os.Stdout)
		if err != nil {
			log.Error("Could not start session", "error", err)
			return 1
		}
		if err := session.Run(cfg.HistoryPath()); err != nil {
			log.Error("Session failed", "error", err)
			return 1
		}
	}

	return 0
}

func runGolden(options *runner.Runner) int {
	// diagnostics are compared as text
	color.EnableColor(false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := options.RunGolden(ctx, options.TestDir, runtime.NumCPU())
	if err != nil {
		log.Error("Golden run failed", "dir", options.TestDir, "error", err)
		return 1
	}
	if options.ReportGolden(results) > 0 {
		return 1
	}
	return 0
}
