package constraint

import "regexp"

var (
	numberRe     = regexp.MustCompile(`^\+?\d+(\.\d+)?$`)
	soundLevelRe = regexp.MustCompile(`^[+-]\d+(\.\d+)?dB$`)
	xmlIDRe      = regexp.MustCompile(`^[A-Za-z0-9_#-]+$`)

	// Clock values accepted by media begin/end, absolute or relative to
	// another element's begin or end.
	absoluteOffsetRe = regexp.MustCompile(`^\d+(\.\d+)?(h|min|s|ms)$`)
	relativeOffsetRe = regexp.MustCompile(`^[A-Za-z0-9_#-]+\.(begin|end)([+-]\d+(\.\d+)?(h|min|s|ms))?$`)
)

// IsNumber reports whether text is an unsigned or '+'-signed decimal.
func IsNumber(text string) bool {
	return numberRe.MatchString(text)
}

// IsSoundLevel reports whether text is a signed decibel value such as "+6dB".
func IsSoundLevel(text string) bool {
	return soundLevelRe.MatchString(text)
}

// IsXMLID reports whether text is usable as a media xml:id.
func IsXMLID(text string) bool {
	return xmlIDRe.MatchString(text)
}

// IsMediaOffset reports whether text is a valid media begin or end value.
func IsMediaOffset(text string) bool {
	return absoluteOffsetRe.MatchString(text) || relativeOffsetRe.MatchString(text)
}
