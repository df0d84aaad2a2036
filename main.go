package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/adammathes/ssmlcheck/internal/config"
	"github.com/adammathes/ssmlcheck/pkg/probe"
	"github.com/adammathes/ssmlcheck/pkg/report"
	"github.com/adammathes/ssmlcheck/pkg/validate"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the exit code: 0=no errors, 1=errors,
// 2=fatal.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, nil)
	if err != nil {
		fmt.Fprintf(stderr, "Usage: ssmlcheck [flags] [file.ssml | -]\n%v\n", err)
		return 2
	}
	if cfg.ShowVersion {
		fmt.Fprintf(stdout, "ssmlcheck %s\n", version)
		return 0
	}
	if len(cfg.Files) > 1 {
		fmt.Fprintln(stderr, "Usage: ssmlcheck [flags] [file.ssml | -]")
		return 2
	}

	input := "-"
	if len(cfg.Files) == 1 {
		input = cfg.Files[0]
	}
	text, err := readInput(input, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Fatal: %v\n", err)
		return 2
	}

	logger := newLogger(stderr, cfg.LogLevel)
	reg := prometheus.NewRegistry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := validate.Check(ctx, text, validate.Options{
		Platform:           cfg.Platform,
		ValidateAudioFiles: cfg.ValidateAudio,
		LenientInterpretAs: cfg.LenientSayAs,
		Prober:             probe.NewFFProbe(probe.WithBinary(cfg.FFProbePath), probe.WithTimeout(cfg.ProbeTimeout)),
		Logger:             logger,
		Metrics:            validate.NewMetrics(reg),
	})

	// Text output to stderr, JSON to stdout for tool interop
	r.WriteText(stderr)
	if err := r.WriteJSON(stdout); err != nil {
		fmt.Fprintf(stderr, "Error writing JSON: %v\n", err)
		return 2
	}
	if cfg.JSONOutput != "" && cfg.JSONOutput != "-" {
		if err := writeJSON(r, cfg.JSONOutput); err != nil {
			fmt.Fprintf(stderr, "Error writing JSON: %v\n", err)
			return 2
		}
	}

	if cfg.MetricsDump {
		if err := dumpMetrics(reg, stderr); err != nil {
			level.Warn(logger).Log("msg", "failed to write metrics", "err", err)
		}
	}

	if r != nil {
		return 1
	}
	return 0
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func newLogger(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	var allow level.Option
	switch lvl {
	case "debug":
		allow = level.AllowDebug()
	case "info":
		allow = level.AllowInfo()
	case "error":
		allow = level.AllowError()
	default:
		allow = level.AllowWarn()
	}
	logger = level.NewFilter(logger, allow)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

func writeJSON(r *report.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.WriteJSON(f)
}

func dumpMetrics(g prometheus.Gatherer, w io.Writer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
