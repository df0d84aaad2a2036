package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/adammathes/ssmlcheck/pkg/probe"
	"github.com/adammathes/ssmlcheck/pkg/report"
	"github.com/adammathes/ssmlcheck/pkg/ssml"
)

// Options configures validation behavior.
type Options struct {
	// Platform is "all", "amazon" or "google". Empty means "all".
	Platform string

	// ValidateAudioFiles probes every referenced audio file and checks its
	// format, sample rate, bit rate and duration.
	ValidateAudioFiles bool

	// Prober inspects audio files. When nil and ValidateAudioFiles is set,
	// ffprobe from PATH is used.
	Prober Prober

	// LenientInterpretAs accepts every platform's say-as interpret-as
	// extensions regardless of Platform. By default only the extensions of
	// the selected platform are accepted.
	LenientInterpretAs bool

	Logger  log.Logger
	Metrics *Metrics
}

func (o Options) logger() log.Logger {
	if o.Logger == nil {
		return log.NewNopLogger()
	}
	return o.Logger
}

func (o Options) prober() Prober {
	if o.Prober == nil {
		return probe.NewFFProbe()
	}
	return o.Prober
}

// CheckString is Check with a background context.
func CheckString(text string, opts Options) *report.Report {
	return Check(context.Background(), text, opts)
}

// Check validates SSML text and returns its findings, or nil when the
// document has none. A returned report always holds at least one message.
// Check never panics; unexpected failures are reported as UNK-001.
func Check(ctx context.Context, text string, opts Options) (result *report.Report) {
	logger := opts.logger()
	r := report.NewReport()
	platformLabel := "invalid"

	defer func() {
		if p := recover(); p != nil {
			level.Error(logger).Log("msg", "unexpected failure while checking ssml", "panic", p)
			r = report.NewReport()
			r.Add(report.Message{
				Type:    report.Unknown,
				CheckID: "UNK-001",
				Message: "Unknown error",
				Detail:  fmt.Sprint(p),
			})
		}
		opts.Metrics.observeCheck(platformLabel, r)
		result = r.OrNil()
	}()

	// PLT-001: platform must be known before anything else is looked at.
	platform, ok := ParsePlatform(opts.Platform)
	if !ok {
		r.Add(report.Message{
			Type:    report.InvalidPlatform,
			CheckID: "PLT-001",
			Message: "Invalid platform",
			Value:   report.Invalid(opts.Platform),
		})
		return
	}
	platformLabel = platform.String()
	logger = log.With(logger, "platform", platformLabel)

	// Phase 1: parse
	root, fatal := parse(text)
	if fatal != nil {
		level.Debug(logger).Log("msg", "ssml rejected before schema validation", "check_id", fatal.CheckID)
		r.Add(*fatal)
		return
	}

	// Phase 2: schema
	r.Add(checkElement(root, checkContext{
		platform:           platform,
		lenientInterpretAs: opts.LenientInterpretAs,
	})...)
	level.Debug(logger).Log("msg", "schema validation finished", "errors", r.Len())

	// Phase 3: audio references
	refs := ExtractAudio(root)
	r.Add(checkAudioCount(refs)...)

	// Phase 4: audio content (opt-in)
	if opts.ValidateAudioFiles && len(refs) > 0 {
		a := &audioChecker{
			prober:  opts.prober(),
			logger:  logger,
			metrics: opts.Metrics,
		}
		r.Add(a.checkAll(ctx, refs)...)
		level.Debug(logger).Log("msg", "audio validation finished", "files", len(refs))
	}
	return
}

// parse builds the element tree and checks the document shape. A non-nil
// message ends validation.
func parse(text string) (*ssml.Element, *report.Message) {
	doc, err := ssml.Parse(text)
	if err != nil {
		// PRS-001: a bare '&' is the usual culprit. Only the first one
		// is escaped for the retry.
		if _, retryErr := ssml.Parse(strings.Replace(text, "&", "&amp;", 1)); retryErr == nil {
			return nil, &report.Message{
				Type:    report.ParseFailure,
				CheckID: "PRS-001",
				Message: "Invalid & character",
			}
		}
		return nil, &report.Message{
			Type:    report.ParseFailure,
			CheckID: "PRS-002",
			Message: "Can't parse SSML",
			Detail:  err.Error(),
		}
	}

	// TAG-006: exactly one top-level <speak>
	root := doc.Root()
	if root == nil || root.Name != "speak" {
		return nil, &report.Message{
			Type:    report.Tag,
			CheckID: "TAG-006",
			Message: "Document must have a single <speak> root element",
			Tag:     "speak",
		}
	}
	return root, nil
}
