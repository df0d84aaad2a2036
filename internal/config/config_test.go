package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(kv map[string]string) func(string) string {
	return func(k string) string { return kv[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, envOf(nil))
	require.NoError(t, err)

	want := Default()
	assert.Equal(t, want.Platform, cfg.Platform)
	assert.False(t, cfg.ValidateAudio)
	assert.Equal(t, "ffprobe", cfg.FFProbePath)
	assert.Equal(t, 30*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.LenientSayAs)
	assert.Empty(t, cfg.Files)
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ssmlcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
platform: google
validate_audio: true
ffprobe_path: /usr/local/bin/ffprobe
probe_timeout: 5s
log_level: info
`), 0o644))

	// File only.
	cfg, err := Load([]string{"--config.file", path}, envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, "google", cfg.Platform)
	assert.True(t, cfg.ValidateAudio)
	assert.Equal(t, "/usr/local/bin/ffprobe", cfg.FFProbePath)
	assert.Equal(t, 5*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, "info", cfg.LogLevel)

	// Environment beats the file.
	env := envOf(map[string]string{
		EnvPlatform:      "amazon",
		EnvValidateAudio: "false",
		EnvProbeTimeout:  "10s",
	})
	cfg, err = Load([]string{"--config.file", path}, env)
	require.NoError(t, err)
	assert.Equal(t, "amazon", cfg.Platform)
	assert.False(t, cfg.ValidateAudio)
	assert.Equal(t, 10*time.Second, cfg.ProbeTimeout)

	// Flags beat both.
	cfg, err = Load([]string{"--config.file", path, "--platform", "all", "--validate-audio", "--log.level", "debug", "a.ssml", "b.ssml"}, env)
	require.NoError(t, err)
	assert.Equal(t, "all", cfg.Platform)
	assert.True(t, cfg.ValidateAudio)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"a.ssml", "b.ssml"}, cfg.Files)
}

func TestLoad_LenientSayAs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ssmlcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("say_as_lenient: true\n"), 0o644))

	cfg, err := Load([]string{"--config.file", path}, envOf(nil))
	require.NoError(t, err)
	assert.True(t, cfg.LenientSayAs)

	cfg, err = Load([]string{"--config.file", path}, envOf(map[string]string{EnvLenientSayAs: "false"}))
	require.NoError(t, err)
	assert.False(t, cfg.LenientSayAs)

	cfg, err = Load([]string{"--say-as.lenient"}, envOf(map[string]string{EnvLenientSayAs: "false"}))
	require.NoError(t, err)
	assert.True(t, cfg.LenientSayAs)

	_, err = Load(nil, envOf(map[string]string{EnvLenientSayAs: "sometimes"}))
	assert.Error(t, err)
}

func TestLoad_OutputFlags(t *testing.T) {
	cfg, err := Load([]string{"--json", "out.json", "--metrics.dump", "--version"}, envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, "out.json", cfg.JSONOutput)
	assert.True(t, cfg.MetricsDump)
	assert.True(t, cfg.ShowVersion)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load([]string{"--log.level", "loud"}, envOf(nil))
	assert.Error(t, err)

	_, err = Load([]string{"--probe-timeout", "0s"}, envOf(nil))
	assert.Error(t, err)

	_, err = Load(nil, envOf(map[string]string{EnvValidateAudio: "maybe"}))
	assert.Error(t, err)

	_, err = Load(nil, envOf(map[string]string{EnvProbeTimeout: "soon"}))
	assert.Error(t, err)

	_, err = Load([]string{"--config.file", filepath.Join(t.TempDir(), "missing.yaml")}, envOf(nil))
	assert.Error(t, err)

	_, err = Load([]string{"--no-such-flag"}, envOf(nil))
	assert.Error(t, err)
}

func TestLoad_UnknownPlatformPassesThrough(t *testing.T) {
	cfg, err := Load([]string{"--platform", "alexa"}, envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, "alexa", cfg.Platform)
}
