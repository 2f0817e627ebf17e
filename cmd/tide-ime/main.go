// cmd/tide-ime/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"

	"github.com/bethropolis/tide-ime/internal/app"
	"github.com/bethropolis/tide-ime/internal/config"
	"github.com/bethropolis/tide-ime/internal/logger"
	"github.com/bethropolis/tide-ime/internal/replay"
)

const usage = `usage: tide-ime [flags] [play] [file]
       tide-ime [flags] replay script.toml...

Flags:
`

func main() {
	fs := flag.NewFlagSet(config.AppName, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}

	var flags config.Flags
	args, err := flags.Parse(fs, os.Args[1:])
	if err != nil {
		stlog.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := config.Load(flags.ConfigFilePath, &flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	command := "play"
	if len(args) > 0 && (args[0] == "play" || args[0] == "replay") {
		command, args = args[0], args[1:]
	}

	logOutput, closeLog, err := openLog(cfg.Logger.LogFilePath, command == "play")
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", cfg.Logger.LogFilePath, err)
	}
	defer closeLog()
	logger.Init(cfg.Logger, logOutput)
	logger.Debugf("Starting %s %s (a11y=%v, emoji_hint=%s)", config.AppName, command, cfg.Accessibility.Enabled, cfg.Input.EmojiHint)

	switch command {
	case "replay":
		if len(args) == 0 {
			fs.Usage()
			os.Exit(2)
		}
		os.Exit(runReplay(os.Stdout, args))
	default:
		filePath := ""
		if len(args) > 0 {
			filePath = args[0]
		}
		playground, err := app.NewApp(cfg, filePath)
		if err != nil {
			logger.Errorf("Error initializing application: %v", err)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := playground.Run(); err != nil {
			logger.Errorf("Application exited with error: %v", err)
			os.Exit(1)
		}
		logger.Infof("%s finished.", config.AppName)
	}
}

// openLog resolves the configured log destination. With no path the
// playground logs nowhere (stderr belongs to the terminal UI) and replay
// logs to stderr.
func openLog(path string, interactive bool) (io.Writer, func(), error) {
	switch {
	case path == "" && interactive:
		return nil, func() {}, nil
	case path == "" || path == "-":
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// runReplay runs each script and prints per-step results. It returns the
// process exit code.
func runReplay(out io.Writer, paths []string) int {
	code := 0
	for _, path := range paths {
		script, err := replay.Load(path)
		if err != nil {
			logger.Errorf("replay: %v", err)
			fmt.Fprintln(out, err)
			code = 1
			continue
		}
		report := replay.Run(script)
		fmt.Fprintf(out, "%s\n", report.Name)
		for _, step := range report.Steps {
			fmt.Fprintf(out, "  %v\n", step)
			for _, failure := range step.Failures {
				fmt.Fprintf(out, "      %s\n", failure)
			}
		}
		if !report.Passed() {
			fmt.Fprintf(out, "  %d of %d steps failed\n", report.Failed(), len(report.Steps))
			code = 1
		}
	}
	return code
}
