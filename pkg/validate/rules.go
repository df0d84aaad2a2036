package validate

import (
	"time"

	"github.com/adammathes/ssmlcheck/pkg/constraint"
)

// MaxBreakTime is the longest pause a break element may request.
const MaxBreakTime = 10 * time.Second

// checkContext carries the per-call settings rules may consult.
type checkContext struct {
	platform           Platform
	lenientInterpretAs bool
}

// attrRule is the validity rule for one attribute. gate restricts the
// attribute to one platform; All means it is accepted everywhere. A nil
// valid func accepts any value.
type attrRule struct {
	gate  Platform
	valid func(value string, c checkContext) bool
}

// tagRule describes the attributes and children a tag may carry.
type tagRule struct {
	// required is reported missing when the element has no attributes.
	required string
	attrs    map[string]attrRule
	// children, when set, restricts the names of direct children.
	children map[string]bool
	// open tags carry no attribute rules at all.
	open bool
}

var (
	breakStrengths = tagSet("none", "x-weak", "weak", "medium", "strong", "x-strong")
	emphasisLevels = tagSet("strong", "moderate", "reduced")
	alphabets      = tagSet("ipa", "x-sampa")
	wordRoles      = tagSet("amazon:VB", "amazon:VBD", "amazon:NN", "amazon:SENSE_1")
	sayAsDetails   = tagSet("1", "2")
	dateFormats    = tagSet("mdy", "dmy", "ymd", "md", "dm", "ym", "my", "d", "m", "y")

	locales = tagSet(
		"en-US", "en-GB", "en-IN", "en-AU", "en-CA",
		"de-DE", "es-ES", "it-IT", "ja-JP", "fr-FR",
	)

	voices = tagSet(
		"Ivy", "Joanna", "Joey", "Justin", "Kendra", "Kimberly", "Matthew", "Salli",
		"Nicole", "Russell", "Amy", "Brian", "Emma", "Aditi", "Raveena",
		"Hans", "Marlene", "Vicki", "Conchita", "Enrique", "Carla", "Giorgio",
		"Mizuki", "Takumi", "Celine", "Lea", "Mathieu",
	)

	interpretAs = tagSet(
		"characters", "spell-out", "cardinal", "ordinal", "fraction",
		"unit", "date", "time", "telephone", "expletive",
	)
	interpretAsExtensions = map[Platform]map[string]bool{
		Amazon: tagSet("number", "digits", "address", "interjection"),
		Google: tagSet("bleep", "verbatim"),
	}

	mediaChildren = tagSet("par", "seq", "media")
)

// rules is the schema table. It is built once and never modified.
var rules = map[string]tagRule{
	"amazon:effect": {
		required: "name",
		attrs: map[string]attrRule{
			"name": {valid: oneOf(tagSet("whispered"))},
		},
	},
	"audio": {
		required: "src",
		attrs: map[string]attrRule{
			"src":         {},
			"clipBegin":   {gate: Google, valid: duration},
			"clipEnd":     {gate: Google, valid: duration},
			"repeatDur":   {gate: Google, valid: duration},
			"speed":       {gate: Google, valid: matches(constraint.IsNumber)},
			"repeatCount": {gate: Google, valid: matches(constraint.IsNumber)},
			"soundLevel":  {gate: Google, valid: matches(constraint.IsSoundLevel)},
		},
	},
	"break": {
		attrs: map[string]attrRule{
			"strength": {valid: oneOf(breakStrengths)},
			"time":     {valid: durationUpTo(MaxBreakTime)},
		},
	},
	"emphasis": {
		required: "level",
		attrs: map[string]attrRule{
			"level": {valid: emphasisLevel},
		},
	},
	"lang": {
		required: "xml:lang",
		attrs: map[string]attrRule{
			"xml:lang": {valid: oneOf(locales)},
		},
	},
	"media": {
		attrs: map[string]attrRule{
			"xml:id":      {gate: Google, valid: matches(constraint.IsXMLID)},
			"begin":       {gate: Google, valid: matches(constraint.IsMediaOffset)},
			"end":         {gate: Google, valid: matches(constraint.IsMediaOffset)},
			"repeatCount": {gate: Google, valid: matches(constraint.IsNumber)},
			"repeatDur":   {gate: Google, valid: duration},
			"fadeInDur":   {gate: Google, valid: duration},
			"fadeOutDur":  {gate: Google, valid: duration},
			"soundLevel":  {gate: Google, valid: matches(constraint.IsSoundLevel)},
		},
	},
	"p":   {},
	"par": {open: true, children: mediaChildren},
	"seq": {open: true, children: mediaChildren},
	"phoneme": {
		attrs: map[string]attrRule{
			"ph":       {},
			"alphabet": {valid: oneOf(alphabets)},
		},
	},
	"prosody": {
		attrs: map[string]attrRule{
			"rate":   {valid: parses(constraint.ParseRate)},
			"pitch":  {valid: parses(constraint.ParsePitch)},
			"volume": {valid: parses(constraint.ParseVolume)},
		},
	},
	"s": {},
	"say-as": {
		required: "interpret-as",
		attrs: map[string]attrRule{
			"interpret-as": {valid: sayAsInterpretation},
			"format":       {valid: oneOf(dateFormats)},
			"detail":       {gate: Google, valid: oneOf(sayAsDetails)},
		},
	},
	"speak": {open: true},
	"sub": {
		attrs: map[string]attrRule{
			"alias": {},
		},
	},
	"voice": {
		required: "name",
		attrs: map[string]attrRule{
			"name": {valid: oneOf(voices)},
		},
	},
	"w": {
		required: "role",
		attrs: map[string]attrRule{
			"role": {valid: oneOf(wordRoles)},
		},
	},
}

func oneOf(set map[string]bool) func(string, checkContext) bool {
	return func(v string, _ checkContext) bool {
		return set[v]
	}
}

func matches(fn func(string) bool) func(string, checkContext) bool {
	return func(v string, _ checkContext) bool {
		return fn(v)
	}
}

func parses(fn func(string) (float64, error)) func(string, checkContext) bool {
	return func(v string, _ checkContext) bool {
		_, err := fn(v)
		return err == nil
	}
}

func duration(v string, _ checkContext) bool {
	_, err := constraint.ParseDuration(v)
	return err == nil
}

func durationUpTo(max time.Duration) func(string, checkContext) bool {
	return func(v string, _ checkContext) bool {
		_, err := constraint.ParseDurationMax(v, max)
		return err == nil
	}
}

func emphasisLevel(v string, c checkContext) bool {
	return emphasisLevels[v] || (v == "none" && c.platform == Google)
}

// sayAsInterpretation accepts the shared interpret-as values plus the
// extension list of the platform being checked. In lenient mode every
// platform's extensions are accepted regardless of platform.
func sayAsInterpretation(v string, c checkContext) bool {
	if interpretAs[v] {
		return true
	}
	if c.lenientInterpretAs {
		for _, ext := range interpretAsExtensions {
			if ext[v] {
				return true
			}
		}
		return false
	}
	return interpretAsExtensions[c.platform][v]
}
