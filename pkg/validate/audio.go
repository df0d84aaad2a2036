package validate

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/adammathes/ssmlcheck/pkg/probe"
	"github.com/adammathes/ssmlcheck/pkg/report"
	"github.com/adammathes/ssmlcheck/pkg/ssml"
)

// Audio limits enforced on referenced files.
const (
	MaxAudioFiles    = 5
	RequiredBitRate  = 48000
	MaxAudioDuration = 240 * time.Second
)

var allowedSampleRates = map[int]bool{
	16000: true,
	22050: true,
	24000: true,
}

var mp3OverHTTPS = regexp.MustCompile(`(?i)^https://.*\.mp3$`)

// Prober reports the streams of a remote media file.
type Prober interface {
	Probe(ctx context.Context, url string) ([]probe.Stream, error)
}

// ExtractAudio returns the src of every audio element under root in
// document order. Duplicates are kept.
func ExtractAudio(root *ssml.Element) []string {
	var refs []string
	root.Walk(func(e *ssml.Element) bool {
		if e.Name == "audio" {
			if src, ok := e.Attr("src"); ok {
				refs = append(refs, src)
			}
		}
		return true
	})
	return refs
}

// checkAudioCount raises AUD-001 when more than MaxAudioFiles are referenced.
func checkAudioCount(refs []string) []report.Message {
	if len(refs) <= MaxAudioFiles {
		return nil
	}
	return []report.Message{{
		Type:    report.TooManyAudioFiles,
		CheckID: "AUD-001",
		Message: "Too many audio files",
		Detail:  fmt.Sprintf("%d audio files referenced, at most %d allowed", len(refs), MaxAudioFiles),
	}}
}

// audioChecker validates referenced audio files against the platform limits.
type audioChecker struct {
	prober  Prober
	logger  log.Logger
	metrics *Metrics
}

// checkAll validates every reference concurrently and waits for all of them.
// Findings are returned in reference order.
func (a *audioChecker) checkAll(ctx context.Context, refs []string) []report.Message {
	results := make([][]report.Message, len(refs))

	var g errgroup.Group
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			// A panic here would escape Check's recover; keep it on this file.
			defer func() {
				if p := recover(); p != nil {
					results[i] = []report.Message{audioMessage("AUD-006", "Can't access file", ref,
						fmt.Sprintf("check panicked: %v", p))}
				}
			}()
			results[i] = a.checkFile(ctx, ref)
			return nil
		})
	}
	_ = g.Wait()

	var msgs []report.Message
	for _, r := range results {
		msgs = append(msgs, r...)
	}
	return msgs
}

func (a *audioChecker) checkFile(ctx context.Context, ref string) []report.Message {
	if !mp3OverHTTPS.MatchString(ref) {
		return []report.Message{audioMessage("AUD-002", "Not MP3 on HTTPS", ref, "")}
	}

	start := time.Now()
	streams, err := a.probe(ctx, ref)
	a.metrics.observeProbe(err, time.Since(start))
	if err != nil {
		level.Warn(a.logger).Log("msg", "failed to probe audio file", "src", ref, "err", err)
		return []report.Message{audioMessage("AUD-006", "Can't access file", ref, err.Error())}
	}

	var msgs []report.Message
	for _, s := range streams {
		if !allowedSampleRates[s.SampleRate] {
			msgs = append(msgs, audioMessage("AUD-003", "Invalid sample rate", ref,
				fmt.Sprintf("sample rate is %d Hz, must be 16000, 22050 or 24000 Hz", s.SampleRate)))
		}
		if s.BitRate != RequiredBitRate {
			msgs = append(msgs, audioMessage("AUD-004", "Invalid bit rate", ref,
				fmt.Sprintf("bit rate is %d bps, must be %d bps", s.BitRate, RequiredBitRate)))
		}
		if s.Duration > MaxAudioDuration {
			msgs = append(msgs, audioMessage("AUD-005", "Audio file is too long", ref,
				fmt.Sprintf("duration is %s, must not exceed %s", s.Duration, MaxAudioDuration)))
		}
	}
	return msgs
}

// probe calls the prober, turning a panic into an error so one bad file
// cannot take down the batch.
func (a *audioChecker) probe(ctx context.Context, ref string) (streams []probe.Stream, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Errorf("probe panicked: %v", p)
		}
	}()
	return a.prober.Probe(ctx, ref)
}

func audioMessage(checkID, msg, ref, detail string) report.Message {
	return report.Message{
		Type:      report.Audio,
		CheckID:   checkID,
		Message:   msg,
		Tag:       "audio",
		Attribute: "src",
		Value:     report.Invalid(ref),
		Detail:    detail,
	}
}
