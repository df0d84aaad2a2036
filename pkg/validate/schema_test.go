package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adammathes/ssmlcheck/pkg/report"
	"github.com/adammathes/ssmlcheck/pkg/ssml"
)

// el builds an element with attributes given as name/value pairs.
func el(name string, attrs ...string) *ssml.Element {
	e := &ssml.Element{Name: name}
	for i := 0; i+1 < len(attrs); i += 2 {
		e.Attributes = append(e.Attributes, ssml.Attr{Name: attrs[i], Value: attrs[i+1]})
	}
	return e
}

func with(parent *ssml.Element, children ...*ssml.Element) *ssml.Element {
	parent.Children = append(parent.Children, children...)
	return parent
}

func checkIDs(msgs []report.Message) []string {
	var ids []string
	for _, m := range msgs {
		ids = append(ids, m.CheckID)
	}
	return ids
}

func TestPlatform(t *testing.T) {
	for name, want := range map[string]Platform{"": All, "all": All, "amazon": Amazon, "google": Google} {
		p, ok := ParsePlatform(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, p, name)
	}
	for _, name := range []string{"alexa", "Amazon", "ALL", " google"} {
		_, ok := ParsePlatform(name)
		assert.False(t, ok, name)
	}

	assert.True(t, Amazon.Allows(All))
	assert.True(t, Amazon.Allows(Amazon))
	assert.False(t, Amazon.Allows(Google))
	assert.False(t, All.Allows(Amazon))
	assert.False(t, All.Allows(Google))
}

func TestAllowsTag(t *testing.T) {
	base := []string{"audio", "break", "emphasis", "p", "prosody", "s", "say-as", "speak", "sub"}
	amazon := []string{"amazon:effect", "lang", "phoneme", "voice", "w"}
	google := []string{"par", "seq", "media"}

	for _, p := range []Platform{All, Amazon, Google} {
		for _, tag := range base {
			assert.True(t, p.AllowsTag(tag), "%s/%s", p, tag)
		}
	}
	for _, tag := range amazon {
		assert.True(t, Amazon.AllowsTag(tag), tag)
		assert.False(t, All.AllowsTag(tag), tag)
		assert.False(t, Google.AllowsTag(tag), tag)
	}
	for _, tag := range google {
		assert.True(t, Google.AllowsTag(tag), tag)
		assert.False(t, All.AllowsTag(tag), tag)
		assert.False(t, Amazon.AllowsTag(tag), tag)
	}
	assert.False(t, Amazon.AllowsTag("video"))
}

func TestRuleTable(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		el       *ssml.Element
		want     []string
	}{
		{"effect whispered", Amazon, el("amazon:effect", "name", "whispered"), nil},
		{"effect shouted", Amazon, el("amazon:effect", "name", "shouted"), []string{"TAG-002"}},
		{"effect no attributes", Amazon, el("amazon:effect"), []string{"TAG-003"}},

		{"audio src", All, el("audio", "src", "anything"), nil},
		{"audio no attributes", All, el("audio"), []string{"TAG-003"}},
		{"audio clipBegin google", Google, el("audio", "src", "x", "clipBegin", "5s", "clipEnd", "infinity"), nil},
		{"audio clipBegin all", All, el("audio", "src", "x", "clipBegin", "5s"), []string{"TAG-004"}},
		{"audio bad clipEnd", Google, el("audio", "src", "x", "clipEnd", "5"), []string{"TAG-002"}},
		{"audio speed", Google, el("audio", "src", "x", "speed", "+1.5", "repeatCount", "2"), nil},
		{"audio bad speed", Google, el("audio", "src", "x", "speed", "-1"), []string{"TAG-002"}},
		{"audio soundLevel", Google, el("audio", "src", "x", "soundLevel", "+2.5dB"), nil},
		{"audio bad soundLevel", Google, el("audio", "src", "x", "soundLevel", "2dB"), []string{"TAG-002"}},
		// Only zero attributes count as missing.
		{"audio other attribute only", All, el("audio", "alt", "x"), []string{"TAG-004"}},

		{"break strength", All, el("break", "strength", "x-strong"), nil},
		{"break bad strength", All, el("break", "strength", "loud"), []string{"TAG-002"}},
		{"break 5s", All, el("break", "time", "5s"), nil},
		{"break 10000ms", All, el("break", "time", "10000ms"), nil},
		{"break 20s", All, el("break", "time", "20s"), []string{"TAG-002"}},
		{"break infinity", All, el("break", "time", "infinity"), []string{"TAG-002"}},
		{"break no attributes", All, el("break"), nil},

		{"emphasis strong", All, el("emphasis", "level", "strong"), nil},
		{"emphasis none all", All, el("emphasis", "level", "none"), []string{"TAG-002"}},
		{"emphasis none amazon", Amazon, el("emphasis", "level", "none"), []string{"TAG-002"}},
		{"emphasis none google", Google, el("emphasis", "level", "none"), nil},
		{"emphasis no attributes", All, el("emphasis"), []string{"TAG-003"}},

		{"lang en-GB", Amazon, el("lang", "xml:lang", "en-GB"), nil},
		{"lang pt-BR", Amazon, el("lang", "xml:lang", "pt-BR"), []string{"TAG-002"}},
		{"lang no attributes", Amazon, el("lang"), []string{"TAG-003"}},

		{"media full", Google, el("media", "xml:id", "bg_1", "begin", "intro.end+0.5s", "end", "30s",
			"repeatCount", "2", "repeatDur", "infinity", "fadeInDur", "2s", "fadeOutDur", "500ms", "soundLevel", "-3dB"), nil},
		{"media bad id", Google, el("media", "xml:id", "bg.1"), []string{"TAG-002"}},
		{"media bad begin", Google, el("media", "begin", "soon"), []string{"TAG-002"}},
		{"media unknown", Google, el("media", "src", "x"), []string{"TAG-004"}},

		{"p plain", All, el("p"), nil},
		{"p attribute", All, el("p", "class", "x"), []string{"TAG-004"}},
		{"s attribute", All, el("s", "id", "x"), []string{"TAG-004"}},

		{"par attributes unchecked", Google, el("par", "anything", "x"), nil},

		{"phoneme ipa", Amazon, el("phoneme", "alphabet", "ipa", "ph", "pɪˈkɑːn"), nil},
		{"phoneme x-sampa", Amazon, el("phoneme", "alphabet", "x-sampa", "ph", "pI\"kA:n"), nil},
		{"phoneme bad alphabet", Amazon, el("phoneme", "alphabet", "arpabet"), []string{"TAG-002"}},

		{"prosody all", All, el("prosody", "rate", "20%", "pitch", "-33.3%", "volume", "+6dB"), nil},
		{"prosody slow rate", All, el("prosody", "rate", "19%"), []string{"TAG-002"}},
		{"prosody high pitch", All, el("prosody", "pitch", "+51%"), []string{"TAG-002"}},
		{"prosody bad volume", All, el("prosody", "volume", "11"), []string{"TAG-002"}},
		{"prosody unknown", All, el("prosody", "duration", "1s"), []string{"TAG-004"}},

		{"say-as cardinal", All, el("say-as", "interpret-as", "cardinal"), nil},
		{"say-as date format", All, el("say-as", "interpret-as", "date", "format", "ymd"), nil},
		{"say-as bad format", All, el("say-as", "interpret-as", "date", "format", "yyyy"), []string{"TAG-002"}},
		{"say-as digits amazon", Amazon, el("say-as", "interpret-as", "digits"), nil},
		{"say-as digits google", Google, el("say-as", "interpret-as", "digits"), []string{"TAG-002"}},
		{"say-as bleep google", Google, el("say-as", "interpret-as", "bleep"), nil},
		{"say-as bleep all", All, el("say-as", "interpret-as", "bleep"), []string{"TAG-002"}},
		{"say-as detail google", Google, el("say-as", "interpret-as", "date", "detail", "2"), nil},
		{"say-as bad detail", Google, el("say-as", "interpret-as", "date", "detail", "3"), []string{"TAG-002"}},
		{"say-as detail amazon", Amazon, el("say-as", "interpret-as", "date", "detail", "1"), []string{"TAG-004"}},
		{"say-as no attributes", All, el("say-as"), []string{"TAG-003"}},

		{"speak unchecked", All, el("speak", "version", "1.1", "xml:lang", "en-US"), nil},

		{"sub alias", All, el("sub", "alias", "World Wide Web"), nil},
		{"sub bare", All, el("sub"), nil},
		{"sub other", All, el("sub", "title", "x"), []string{"TAG-004"}},

		{"voice Joanna", Amazon, el("voice", "name", "Joanna"), nil},
		{"voice Bob", Amazon, el("voice", "name", "Bob"), []string{"TAG-002"}},
		{"voice no attributes", Amazon, el("voice"), []string{"TAG-003"}},

		{"w role", Amazon, el("w", "role", "amazon:VBD"), nil},
		{"w bad role", Amazon, el("w", "role", "amazon:JJ"), []string{"TAG-002"}},
		{"w no attributes", Amazon, el("w"), []string{"TAG-003"}},

		{"several attribute errors", All, el("break", "strength", "loud", "time", "1h", "foo", "bar"),
			[]string{"TAG-002", "TAG-002", "TAG-004"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkElement(tt.el, checkContext{platform: tt.platform})
			assert.Equal(t, tt.want, checkIDs(got))
		})
	}
}

func TestCheckElement_MessageFields(t *testing.T) {
	msgs := checkElement(el("voice", "name", "Bob"), checkContext{platform: Amazon})
	require.Len(t, msgs, 1)
	assert.Equal(t, report.Tag, msgs[0].Type)
	assert.Equal(t, "voice", msgs[0].Tag)
	assert.Equal(t, "name", msgs[0].Attribute)
	assert.Equal(t, report.Invalid("Bob"), msgs[0].Value)

	msgs = checkElement(el("audio"), checkContext{platform: All})
	require.Len(t, msgs, 1)
	assert.Equal(t, "src", msgs[0].Attribute)
	assert.True(t, msgs[0].Value.IsMissing())

	msgs = checkElement(el("video", "src", "x"), checkContext{platform: All})
	require.Len(t, msgs, 1)
	assert.Equal(t, "TAG-001", msgs[0].CheckID)
	assert.Equal(t, "video", msgs[0].Tag)
	assert.Empty(t, msgs[0].Attribute)
	assert.Equal(t, report.ValueAbsent, msgs[0].Value.Kind())
}

func TestCheckElement_IllegalSubtreeStillChecked(t *testing.T) {
	root := with(el("speak"),
		with(el("voice", "name", "Joanna"),
			el("break", "time", "20s"),
		),
		el("p", "id", "x"),
	)

	msgs := checkElement(root, checkContext{platform: All})
	assert.Equal(t, []string{"TAG-001", "TAG-002", "TAG-004"}, checkIDs(msgs))
	assert.Equal(t, "voice", msgs[0].Tag)
	assert.Equal(t, "break", msgs[1].Tag)
	assert.Equal(t, "p", msgs[2].Tag)
}

func TestCheckElement_ParSeqChildren(t *testing.T) {
	root := with(el("speak"),
		with(el("par"),
			el("media"),
			with(el("seq"), el("media"), el("s")),
			el("audio", "src", "x"),
		),
	)

	msgs := checkElement(root, checkContext{platform: Google})
	require.Equal(t, []string{"TAG-005", "TAG-005"}, checkIDs(msgs))

	// The parent comes first since its own findings precede its subtree's.
	assert.Equal(t, "par", msgs[0].Tag)
	assert.Equal(t, report.Invalid("audio"), msgs[0].Value)
	assert.Equal(t, "seq", msgs[1].Tag)
	assert.Equal(t, report.Invalid("s"), msgs[1].Value)
}

func TestSayAsInterpretation_Lenient(t *testing.T) {
	strict := checkContext{platform: All}
	lenient := checkContext{platform: All, lenientInterpretAs: true}

	assert.False(t, sayAsInterpretation("digits", strict))
	assert.True(t, sayAsInterpretation("digits", lenient))
	assert.True(t, sayAsInterpretation("verbatim", lenient))
	assert.False(t, sayAsInterpretation("colour", lenient))
	assert.True(t, sayAsInterpretation("ordinal", strict))
}
