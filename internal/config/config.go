// Package config loads ssmlcheck command line configuration from defaults,
// an optional YAML file, the environment and flags, in that order.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/adammathes/ssmlcheck/pkg/probe"
)

// Env var names.
const (
	EnvPlatform      = "SSMLCHECK_PLATFORM"
	EnvValidateAudio = "SSMLCHECK_VALIDATE_AUDIO"
	EnvFFProbe       = "SSMLCHECK_FFPROBE"
	EnvProbeTimeout  = "SSMLCHECK_PROBE_TIMEOUT"
	EnvLogLevel      = "SSMLCHECK_LOG_LEVEL"
	EnvLenientSayAs  = "SSMLCHECK_SAY_AS_LENIENT"
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Config holds the settings of one ssmlcheck run.
type Config struct {
	Platform      string        `yaml:"platform"`
	ValidateAudio bool          `yaml:"validate_audio"`
	FFProbePath   string        `yaml:"ffprobe_path"`
	ProbeTimeout  time.Duration `yaml:"probe_timeout"`
	LogLevel      string        `yaml:"log_level"`
	LenientSayAs  bool          `yaml:"say_as_lenient"`

	// Per-run output settings; flags only.
	JSONOutput  string `yaml:"-"`
	MetricsDump bool   `yaml:"-"`
	ShowVersion bool   `yaml:"-"`

	// Input files; "-" or none means stdin.
	Files []string `yaml:"-"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Platform:     "all",
		FFProbePath:  "ffprobe",
		ProbeTimeout: probe.DefaultTimeout,
		LogLevel:     "warn",
	}
}

// Load builds the configuration for args (without the program name).
// A .env file in the working directory is read if present.
func Load(args []string, getenv func(string) string) (Config, error) {
	_ = godotenv.Load()
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Default()

	fs := pflag.NewFlagSet("ssmlcheck", pflag.ContinueOnError)
	configFile := fs.String("config.file", "", "YAML configuration file.")
	platform := fs.String("platform", "", `Target platform: "all", "amazon" or "google".`)
	validateAudio := fs.Bool("validate-audio", false, "Probe referenced audio files with ffprobe.")
	ffprobe := fs.String("ffprobe", "", "Path to the ffprobe binary.")
	timeout := fs.Duration("probe-timeout", 0, "Timeout for probing a single audio file.")
	logLevel := fs.String("log.level", "", "Log level: debug, info, warn or error.")
	lenientSayAs := fs.Bool("say-as.lenient", false, "Accept say-as interpret-as values of every platform.")
	fs.StringVar(&cfg.JSONOutput, "json", "", `Also write the JSON report to this file ("-" for stdout only).`)
	fs.BoolVar(&cfg.MetricsDump, "metrics.dump", false, "Write collected metrics to stderr on exit.")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print the version and exit.")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Files = fs.Args()

	if *configFile != "" {
		if err := cfg.loadFile(*configFile); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.loadEnv(getenv); err != nil {
		return Config{}, err
	}

	if fs.Changed("platform") {
		cfg.Platform = *platform
	}
	if fs.Changed("validate-audio") {
		cfg.ValidateAudio = *validateAudio
	}
	if fs.Changed("ffprobe") {
		cfg.FFProbePath = *ffprobe
	}
	if fs.Changed("probe-timeout") {
		cfg.ProbeTimeout = *timeout
	}
	if fs.Changed("log.level") {
		cfg.LogLevel = *logLevel
	}
	if fs.Changed("say-as.lenient") {
		cfg.LenientSayAs = *lenientSayAs
	}

	return cfg, cfg.Validate()
}

// Validate checks settings that would otherwise fail later. The platform
// is left to the validator, which reports unknown platforms itself.
func (c Config) Validate() error {
	if !logLevels[c.LogLevel] {
		return errors.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.ProbeTimeout <= 0 {
		return errors.Errorf("probe timeout must be positive, got %s", c.ProbeTimeout)
	}
	if c.FFProbePath == "" {
		return errors.New("ffprobe path must not be empty")
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parsing config file %s", path)
	}
	return nil
}

func (c *Config) loadEnv(getenv func(string) string) error {
	if v := getenv(EnvPlatform); v != "" {
		c.Platform = v
	}
	if v := getenv(EnvValidateAudio); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvValidateAudio)
		}
		c.ValidateAudio = b
	}
	if v := getenv(EnvFFProbe); v != "" {
		c.FFProbePath = v
	}
	if v := getenv(EnvProbeTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvProbeTimeout)
		}
		c.ProbeTimeout = d
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLenientSayAs); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvLenientSayAs)
		}
		c.LenientSayAs = b
	}
	return nil
}
