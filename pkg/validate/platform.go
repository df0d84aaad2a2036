package validate

// Platform selects which SSML dialect a document is checked against.
type Platform int

const (
	// All is the subset every supported platform understands.
	All Platform = iota
	Amazon
	Google
)

var platformNames = map[string]Platform{
	"all":    All,
	"amazon": Amazon,
	"google": Google,
}

// ParsePlatform resolves a platform name. The empty string means All.
func ParsePlatform(name string) (Platform, bool) {
	if name == "" {
		return All, true
	}
	p, ok := platformNames[name]
	return p, ok
}

func (p Platform) String() string {
	switch p {
	case Amazon:
		return "amazon"
	case Google:
		return "google"
	}
	return "all"
}

// Allows reports whether a rule gated on gate applies when checking for p.
// Rules gated on All apply everywhere; platform-gated rules only apply to
// their own platform, never to All.
func (p Platform) Allows(gate Platform) bool {
	return gate == All || gate == p
}

var baseTags = tagSet("audio", "break", "emphasis", "p", "prosody", "s", "say-as", "speak", "sub")

var extensionTags = map[Platform]map[string]bool{
	Amazon: tagSet("amazon:effect", "lang", "phoneme", "voice", "w"),
	Google: tagSet("par", "seq", "media"),
}

// AllowsTag reports whether the named tag is legal for p.
func (p Platform) AllowsTag(name string) bool {
	return baseTags[name] || extensionTags[p][name]
}

func tagSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
