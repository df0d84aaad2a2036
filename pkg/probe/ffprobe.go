// Package probe inspects remote audio files with ffprobe and reports the
// technical properties of their streams.
package probe

import (
	"bytes"
	"context"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// ErrNoStreams is returned when ffprobe succeeds but reports no streams.
var ErrNoStreams = errors.New("no streams found")

// DefaultTimeout bounds a single ffprobe invocation.
const DefaultTimeout = 30 * time.Second

// Stream describes one decoded media stream.
type Stream struct {
	SampleRate int
	BitRate    int
	Duration   time.Duration
}

// Option configures an FFProbe.
type Option func(*FFProbe)

// WithBinary sets the ffprobe executable path.
func WithBinary(path string) Option {
	return func(p *FFProbe) {
		p.binary = path
	}
}

// WithTimeout sets the per-file probe timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(p *FFProbe) {
		p.timeout = d
	}
}

// runner executes a command and returns its standard output.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// FFProbe probes media by running the ffprobe command line tool.
type FFProbe struct {
	binary  string
	timeout time.Duration
	run     runner
}

// NewFFProbe returns an FFProbe that runs "ffprobe" from PATH.
func NewFFProbe(opts ...Option) *FFProbe {
	p := &FFProbe{
		binary:  "ffprobe",
		timeout: DefaultTimeout,
		run:     execRunner,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe returns the streams of the media at url.
func (p *FFProbe) Probe(ctx context.Context, url string) ([]Stream, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	out, err := p.run(ctx, p.binary,
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		url,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "probing %s", url)
	}

	streams, err := decodeStreams(out)
	if err != nil {
		return nil, errors.Wrapf(err, "probing %s", url)
	}
	return streams, nil
}

// ffprobe reports numbers as strings; absent fields stay empty.
type ffprobeOutput struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		SampleRate string `json:"sample_rate"`
		BitRate    string `json:"bit_rate"`
		Duration   string `json:"duration"`
	} `json:"streams"`
}

func decodeStreams(data []byte) ([]Stream, error) {
	var out ffprobeOutput
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, "decoding ffprobe output")
	}
	if len(out.Streams) == 0 {
		return nil, ErrNoStreams
	}

	streams := make([]Stream, 0, len(out.Streams))
	for i, s := range out.Streams {
		var (
			st  Stream
			err error
		)
		if st.SampleRate, err = atoiOrZero(s.SampleRate); err != nil {
			return nil, errors.Wrapf(err, "stream %d sample_rate", i)
		}
		if st.BitRate, err = atoiOrZero(s.BitRate); err != nil {
			return nil, errors.Wrapf(err, "stream %d bit_rate", i)
		}
		if s.Duration != "" && s.Duration != "N/A" {
			secs, err := strconv.ParseFloat(s.Duration, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "stream %d duration", i)
			}
			st.Duration = time.Duration(math.Round(secs * float64(time.Second)))
		}
		streams = append(streams, st)
	}
	return streams, nil
}

func atoiOrZero(s string) (int, error) {
	if s == "" || s == "N/A" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Wrap(err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
