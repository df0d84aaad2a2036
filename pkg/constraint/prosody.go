package constraint

import (
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// MinRatePercent is the slowest percentage rate accepted by ParseRate.
const MinRatePercent = 20

// Pitch bounds for percentage values.
const (
	MaxPitchRaise = 50.0
	MaxPitchDrop  = -33.3
)

var rateKeywords = map[string]float64{
	"x-slow": 0.3,
	"slow":   0.6,
	"medium": 1.0,
	"fast":   1.5,
	"x-fast": 2.0,
}

var pitchKeywords = map[string]bool{
	"x-low":  true,
	"low":    true,
	"medium": true,
	"high":   true,
	"x-high": true,
}

var volumeKeywords = map[string]bool{
	"silent": true,
	"x-soft": true,
	"soft":   true,
	"medium": true,
	"loud":   true,
	"x-loud": true,
}

var (
	ratePercentRe  = regexp.MustCompile(`^(\d+)%$`)
	pitchPercentRe = regexp.MustCompile(`^[+-]\d+(\.\d+)?%$`)
	volumeDBRe     = regexp.MustCompile(`^[+-]\d+(\.\d+)?dB$`)
)

// ParseRate returns the speaking-rate multiplier for a prosody rate value.
func ParseRate(text string) (float64, error) {
	if v, ok := rateKeywords[text]; ok {
		return v, nil
	}
	m := ratePercentRe.FindStringSubmatch(text)
	if m == nil {
		return 0, errors.Wrapf(ErrInvalid, "rate %q", text)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < MinRatePercent {
		return 0, errors.Wrapf(ErrInvalid, "rate %q below %d%%", text, MinRatePercent)
	}
	return float64(n) / 100, nil
}

// ParsePitch returns the signed percentage for a prosody pitch value.
// Keywords are relative to the voice and map to 0.
func ParsePitch(text string) (float64, error) {
	if pitchKeywords[text] {
		return 0, nil
	}
	if !pitchPercentRe.MatchString(text) {
		return 0, errors.Wrapf(ErrInvalid, "pitch %q", text)
	}
	n, err := strconv.ParseFloat(text[:len(text)-1], 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalid, "pitch %q: %v", text, err)
	}
	if n > MaxPitchRaise || n < MaxPitchDrop {
		return 0, errors.Wrapf(ErrInvalid, "pitch %q out of range", text)
	}
	return n, nil
}

// ParseVolume returns the signed dB change for a prosody volume value.
// Keywords map to 0.
func ParseVolume(text string) (float64, error) {
	if volumeKeywords[text] {
		return 0, nil
	}
	if !volumeDBRe.MatchString(text) {
		return 0, errors.Wrapf(ErrInvalid, "volume %q", text)
	}
	n, err := strconv.ParseFloat(text[:len(text)-2], 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalid, "volume %q: %v", text, err)
	}
	return n, nil
}
