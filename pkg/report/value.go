package report

import "strconv"

// ValueKind discriminates the states of a Message value.
type ValueKind int

const (
	// ValueAbsent means the finding has no value to report.
	ValueAbsent ValueKind = iota
	// ValuePresent carries the offending text, which may be empty.
	ValuePresent
	// ValueMissing marks a required attribute that was not supplied.
	ValueMissing
)

// Value is the value slot of a Message. The zero Value is absent.
type Value struct {
	kind ValueKind
	text string
}

// NoValue returns an absent value.
func NoValue() Value { return Value{} }

// Invalid returns a present value holding the offending text.
func Invalid(text string) Value { return Value{kind: ValuePresent, text: text} }

// Missing returns the marker for a required attribute that is absent.
func Missing() Value { return Value{kind: ValueMissing} }

// Kind reports which state v is in.
func (v Value) Kind() ValueKind { return v.kind }

// Text returns the offending text and whether v is present.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == ValuePresent
}

// IsMissing reports whether v marks a missing required attribute.
func (v Value) IsMissing() bool { return v.kind == ValueMissing }

func (v Value) String() string {
	switch v.kind {
	case ValuePresent:
		return strconv.Quote(v.text)
	case ValueMissing:
		return "(missing)"
	}
	return ""
}
