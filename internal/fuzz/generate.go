// Package fuzz generates randomized SSML documents with known injected
// faults, for exercising the validator end to end.
package fuzz

import (
	"fmt"
	"math/rand"
	"strings"
)

// Fault describes a single mutation applied to a generated document.
type Fault struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CheckID     string `json:"check_id"`
}

// Sample is one generated document.
type Sample struct {
	ID       int     `json:"id"`
	Platform string  `json:"platform"`
	Faults   []Fault `json:"faults"`
	Filename string  `json:"filename"`
	Text     string  `json:"-"`
}

// Terminal reports whether the sample carries a fault that stops
// validation, in which case it is the sample's only fault.
func (s Sample) Terminal() bool {
	return len(s.Faults) == 1 && terminalChecks[s.Faults[0].CheckID]
}

var terminalChecks = map[string]bool{
	"PLT-001": true,
	"PRS-001": true,
	"PRS-002": true,
	"TAG-006": true,
}

// builder accumulates the pieces of a document.
type builder struct {
	platform string
	root     string
	body     []string
	prefix   string
}

func (b *builder) add(fragment string) {
	b.body = append(b.body, fragment)
}

// insert places fragment at a random position among the body fragments.
func (b *builder) insert(rng *rand.Rand, fragment string) {
	i := rng.Intn(len(b.body) + 1)
	b.body = append(b.body[:i], append([]string{fragment}, b.body[i:]...)...)
}

func (b *builder) build() string {
	return fmt.Sprintf("%s<%s>\n  %s\n</%s>\n", b.prefix, b.root, strings.Join(b.body, "\n  "), b.root)
}

// faultFunc mutates a builder to inject a fault.
type faultFunc struct {
	Fault
	weight    int
	platforms []string // nil means any platform
	apply     func(b *builder, rng *rand.Rand)
}

func (f faultFunc) allows(platform string) bool {
	if f.platforms == nil {
		return true
	}
	for _, p := range f.platforms {
		if p == platform {
			return true
		}
	}
	return false
}

var terminalFaults = []faultFunc{
	{
		Fault:  Fault{"invalid_platform", "Request a platform that does not exist", "PLT-001"},
		weight: 1,
		apply: func(b *builder, rng *rand.Rand) {
			b.platform = []string{"alexa", "cortana", "Amazon"}[rng.Intn(3)]
		},
	},
	{
		Fault:  Fault{"bare_ampersand", "Use an unescaped '&' in text", "PRS-001"},
		weight: 3,
		apply: func(b *builder, rng *rand.Rand) {
			b.insert(rng, "<s>Fish & chips</s>")
		},
	},
	{
		Fault:  Fault{"unclosed_element", "Leave an element open", "PRS-002"},
		weight: 2,
		apply: func(b *builder, rng *rand.Rand) {
			b.insert(rng, "<p><s>never closed</p>")
		},
	},
	{
		Fault:  Fault{"wrong_root", "Use a root element other than speak", "TAG-006"},
		weight: 2,
		apply: func(b *builder, rng *rand.Rand) {
			b.root = []string{"ssml", "p", "Speak"}[rng.Intn(3)]
		},
	},
	{
		Fault:  Fault{"second_root", "Append a second top-level element", "TAG-006"},
		weight: 1,
		apply: func(b *builder, rng *rand.Rand) {
			b.prefix = "<speak/>\n"
		},
	},
}

var faults = []faultFunc{
	{
		Fault:  Fault{"unknown_tag", "Use a tag no platform supports", "TAG-001"},
		weight: 3,
		apply: func(b *builder, rng *rand.Rand) {
			b.insert(rng, `<video src="clip.mp4"><s>inside</s></video>`)
		},
	},
	{
		Fault:     Fault{"amazon_tag_elsewhere", "Use an Amazon-only tag on another platform", "TAG-001"},
		weight:    2,
		platforms: []string{"all", "google"},
		apply: func(b *builder, rng *rand.Rand) {
			b.insert(rng, `<amazon:effect name="whispered">psst</amazon:effect>`)
		},
	},
	{
		Fault:     Fault{"google_tag_elsewhere", "Use a Google-only tag on another platform", "TAG-001"},
		weight:    2,
		platforms: []string{"all", "amazon"},
		apply: func(b *builder, rng *rand.Rand) {
			b.insert(rng, `<par><media begin="0s"><s>layered</s></media></par>`)
		},
	},
	{
		Fault:  Fault{"long_break", "Request a pause longer than ten seconds", "TAG-002"},
		weight: 3,
		apply: func(b *builder, rng *rand.Rand) {
			b.insert(rng, fmt.Sprintf(`<break time="%ds"/>`, 11+rng.Intn(50)))
		},
	},
	{
		Fault:  Fault{"slow_rate", "Use a prosody rate below 20%", "TAG-002"},
		weight: 2,
		apply: func(b *builder, rng *rand.Rand) {
			b.insert(rng, fmt.Sprintf(`<prosody rate="%d%%">slowly</prosody>`, rng.Intn(20)))
		},
	},
	{
		Fault:  Fault{"bad_interpret_as", "Use an unknown say-as interpretation", "TAG-002"},
		weight: 2,
		apply: func(b *builder, rng *rand.Rand) {
			b.insert(rng, `<say-as interpret-as="colour">red</say-as>`)
		},
	},
	{
		Fault:     Fault{"unknown_voice", "Name a voice that does not exist", "TAG-002"},
		weight:    2,
		platforms: []string{"amazon"},
		apply: func(b *builder, rng *rand.Rand) {
			b.insert(rng, `<voice name="Bob">hello</voice>`)
		},
	},
	{
		Fault:  Fault{"missing_required", "Omit the only attribute of emphasis", "TAG-003"},
		weight: 2,
		apply: func(b *builder, rng *rand.Rand) {
			b.insert(rng, `<emphasis>really</emphasis>`)
		},
	},
	{
		Fault:  Fault{"paragraph_attribute", "Put an attribute on p", "TAG-004"},
		weight: 2,
		apply: func(b *builder, rng *rand.Rand) {
			b.insert(rng, `<p id="intro"><s>Hi.</s></p>`)
		},
	},
	{
		Fault:     Fault{"par_child", "Put a sentence directly inside seq", "TAG-005"},
		weight:    1,
		platforms: []string{"google"},
		apply: func(b *builder, rng *rand.Rand) {
			b.insert(rng, `<seq><media><s>ok</s></media><s>not ok</s></seq>`)
		},
	},
	{
		Fault:  Fault{"too_many_audio", "Reference more than five audio files", "AUD-001"},
		weight: 2,
		apply: func(b *builder, rng *rand.Rand) {
			for i := 0; i < 6+rng.Intn(3); i++ {
				b.insert(rng, fmt.Sprintf(`<audio src="https://example.com/clip%d.mp3"/>`, i))
			}
		},
	},
}

// validFragments holds markup accepted on each platform.
var validFragments = map[string][]string{
	"all": {
		`<p><s>Welcome back.</s><s>It is good to see you.</s></p>`,
		`<break strength="strong"/>`,
		`<break time="750ms"/>`,
		`<emphasis level="moderate">please</emphasis>`,
		`<prosody rate="x-slow" pitch="-10%" volume="+2dB">carefully</prosody>`,
		`<say-as interpret-as="ordinal">3</say-as>`,
		`<say-as interpret-as="date" format="dmy">01-02-2024</say-as>`,
		`<sub alias="aluminium">Al</sub>`,
	},
	"amazon": {
		`<amazon:effect name="whispered">a secret</amazon:effect>`,
		`<lang xml:lang="fr-FR">bonjour</lang>`,
		`<phoneme alphabet="ipa" ph="pɪˈkɑːn">pecan</phoneme>`,
		`<voice name="Brian">Cheers.</voice>`,
		`<w role="amazon:VBD">read</w>`,
		`<say-as interpret-as="digits">2024</say-as>`,
	},
	"google": {
		`<par><media xml:id="q" begin="0.5s"><s>first</s></media><media begin="q.end+1s"><s>second</s></media></par>`,
		`<audio src="https://example.com/bell.mp3" clipBegin="1s" soundLevel="+1dB"/>`,
		`<emphasis level="none">flat</emphasis>`,
		`<say-as interpret-as="date" format="ymd" detail="1">2024-01-02</say-as>`,
	},
}

var platforms = []string{"all", "amazon", "google"}

// Generate builds one random sample.
func Generate(id int, rng *rand.Rand) Sample {
	platform := platforms[rng.Intn(len(platforms))]
	b := &builder{platform: platform, root: "speak"}

	// Valid base content: 2-5 fragments from the shared and platform sets.
	pool := append([]string{}, validFragments["all"]...)
	if platform != "all" {
		pool = append(pool, validFragments[platform]...)
	}
	for n := 2 + rng.Intn(4); n > 0; n-- {
		b.add(pool[rng.Intn(len(pool))])
	}

	sample := Sample{ID: id, Filename: fmt.Sprintf("synth_%03d.ssml", id)}

	// 10% terminal faults, 20% valid, the rest 1-3 accumulating faults
	r := rng.Float64()
	switch {
	case r < 0.10:
		f := pick(terminalFaults, nil, rng)
		f.apply(b, rng)
		sample.Faults = []Fault{f.Fault}
	case r < 0.30:
	default:
		used := map[string]bool{}
		for n := 1 + rng.Intn(3); n > 0; n-- {
			var applicable []faultFunc
			for _, f := range faults {
				if f.allows(platform) && !used[f.Name] {
					applicable = append(applicable, f)
				}
			}
			if len(applicable) == 0 {
				break
			}
			f := pick(applicable, used, rng)
			used[f.Name] = true
			f.apply(b, rng)
			sample.Faults = append(sample.Faults, f.Fault)
		}
	}

	sample.Platform = b.platform
	sample.Text = b.build()
	return sample
}

// pick chooses a fault by weight, skipping used ones.
func pick(from []faultFunc, used map[string]bool, rng *rand.Rand) faultFunc {
	total := 0
	for _, f := range from {
		if !used[f.Name] {
			total += f.weight
		}
	}
	n := rng.Intn(total)
	for _, f := range from {
		if used[f.Name] {
			continue
		}
		if n < f.weight {
			return f
		}
		n -= f.weight
	}
	return from[len(from)-1]
}
