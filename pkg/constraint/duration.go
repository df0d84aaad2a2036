// Package constraint turns SSML attribute values into normalized values.
// Every parser either returns a value or an error wrapping ErrInvalid.
package constraint

import (
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalid is the cause of every parse failure in this package.
var ErrInvalid = errors.New("invalid value")

// Duration is a parsed SSML time designation.
type Duration struct {
	Millis   int64
	Infinite bool
}

// AsDuration converts d to a time.Duration. Infinite and overlong durations
// convert to the largest representable value.
func (d Duration) AsDuration() time.Duration {
	const maxMillis = int64(1<<63-1) / int64(time.Millisecond)
	if d.Infinite || d.Millis > maxMillis {
		return time.Duration(1<<63 - 1)
	}
	return time.Duration(d.Millis) * time.Millisecond
}

var (
	millisRe  = regexp.MustCompile(`^(\d+)ms$`)
	secondsRe = regexp.MustCompile(`^(\d+)(\.\d+)?s$`)
)

// ParseDuration parses "Nms", "N[.M]s" or "infinity". Fractional seconds
// are dropped before conversion, so "1.9s" is 1000ms.
func ParseDuration(text string) (Duration, error) {
	if text == "infinity" {
		return Duration{Infinite: true}, nil
	}
	return parseFinite(text)
}

// ParseDurationMax is ParseDuration with an upper bound. "infinity" is
// never accepted when a bound is given.
func ParseDurationMax(text string, max time.Duration) (Duration, error) {
	d, err := parseFinite(text)
	if err != nil {
		return Duration{}, err
	}
	if d.Millis > max.Milliseconds() {
		return Duration{}, errors.Wrapf(ErrInvalid, "duration %q exceeds %s", text, max)
	}
	return d, nil
}

func parseFinite(text string) (Duration, error) {
	if m := millisRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return Duration{}, errors.Wrapf(ErrInvalid, "duration %q: %v", text, err)
		}
		return Duration{Millis: n}, nil
	}
	if m := secondsRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || n > (1<<63-1)/1000 {
			return Duration{}, errors.Wrapf(ErrInvalid, "duration %q out of range", text)
		}
		return Duration{Millis: n * 1000}, nil
	}
	return Duration{}, errors.Wrapf(ErrInvalid, "duration %q", text)
}
