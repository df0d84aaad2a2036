package report

import (
	"fmt"
	"strings"
)

// Type is the kind of a validation finding.
type Type string

const (
	InvalidPlatform   Type = "invalid platform"
	ParseFailure      Type = "parse"
	Tag               Type = "tag"
	TooManyAudioFiles Type = "too many audio files"
	Audio             Type = "audio"
	Unknown           Type = "unknown error"
)

// Message represents a single validation finding.
type Message struct {
	Type      Type   `json:"type"`
	CheckID   string `json:"check_id"`
	Message   string `json:"message"`
	Tag       string `json:"tag,omitempty"`
	Attribute string `json:"attribute,omitempty"`
	Value     Value  `json:"-"`
	Detail    string `json:"detail,omitempty"`
}

func (m Message) String() string {
	var loc []string
	if m.Tag != "" {
		loc = append(loc, "<"+m.Tag+">")
	}
	if m.Attribute != "" {
		loc = append(loc, "@"+m.Attribute)
	}
	if v := m.Value.String(); v != "" {
		loc = append(loc, v)
	}
	s := fmt.Sprintf("%s(%s): %s", m.Type, m.CheckID, m.Message)
	if len(loc) > 0 {
		s += " [" + strings.Join(loc, " ") + "]"
	}
	if m.Detail != "" {
		s += ": " + m.Detail
	}
	return s
}

// Report collects all messages from a validation run.
type Report struct {
	Messages []Message `json:"messages"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// Add appends messages to the report.
func (r *Report) Add(msgs ...Message) {
	r.Messages = append(r.Messages, msgs...)
}

// Len returns the number of messages. A nil report has none.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Messages)
}

// Count returns the number of messages of the given type.
func (r *Report) Count(t Type) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, m := range r.Messages {
		if m.Type == t {
			n++
		}
	}
	return n
}

// CountCheck returns the number of messages with the given check ID.
func (r *Report) CountCheck(checkID string) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, m := range r.Messages {
		if m.CheckID == checkID {
			n++
		}
	}
	return n
}

// IsValid returns true if the report holds no messages.
func (r *Report) IsValid() bool {
	return r.Len() == 0
}

// OrNil returns r, or nil when r has no messages. Callers use nil as the
// "no errors" result.
func (r *Report) OrNil() *Report {
	if r.Len() == 0 {
		return nil
	}
	return r
}
