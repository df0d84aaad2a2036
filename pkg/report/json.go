package report

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONOutput is the JSON structure written to output files.
type JSONOutput struct {
	Valid      bool      `json:"valid"`
	Messages   []Message `json:"messages"`
	ErrorCount int       `json:"error_count"`
}

// jsonMessage spreads the tri-state Value over two fields so that a present
// empty string, a missing attribute and "no value" all stay distinct.
type jsonMessage struct {
	messageFields
	Value        *string `json:"value,omitempty"`
	ValueMissing bool    `json:"value_missing,omitempty"`
}

// messageFields drops Message's methods so embedding it does not recurse
// into MarshalJSON.
type messageFields Message

// MarshalJSON implements json.Marshaler.
func (m Message) MarshalJSON() ([]byte, error) {
	out := jsonMessage{messageFields: messageFields(m)}
	if text, ok := m.Value.Text(); ok {
		out.Value = &text
	}
	out.ValueMissing = m.Value.IsMissing()
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Message) UnmarshalJSON(data []byte) error {
	var in jsonMessage
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*m = Message(in.messageFields)
	switch {
	case in.Value != nil:
		m.Value = Invalid(*in.Value)
	case in.ValueMissing:
		m.Value = Missing()
	default:
		m.Value = NoValue()
	}
	return nil
}

// WriteJSON writes the report in JSON format to w. A nil report is written
// as a valid result with no messages.
func (r *Report) WriteJSON(w io.Writer) error {
	out := JSONOutput{
		Valid:      r.IsValid(),
		ErrorCount: r.Len(),
	}
	if r != nil {
		out.Messages = r.Messages
	}
	if out.Messages == nil {
		out.Messages = []Message{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
