package ssml

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmpty is returned when the input holds no markup at all.
var ErrEmpty = errors.New("empty document")

// Parse builds the element tree for SSML text. Any well-formedness problem,
// including a bare '&', is returned as an error.
//
// Namespace prefixes are not resolved: "amazon:effect" and "xml:lang" keep
// the names they were written with, whether or not the prefix is declared.
func Parse(text string) (*Document, error) {
	decoder := xml.NewDecoder(strings.NewReader(text))
	decoder.Strict = true

	doc := &Document{}
	var stack []*Element
	seen := false

	for {
		// RawToken leaves prefixes alone; end tags are matched against the
		// stack below instead.
		tok, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "parsing ssml")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			seen = true
			el := &Element{Name: qualifiedName(t.Name)}
			for _, a := range t.Attr {
				name := qualifiedName(a.Name)
				if _, dup := el.Attr(name); dup {
					return nil, errors.Errorf("parsing ssml: attribute %s repeated on <%s>", name, el.Name)
				}
				el.Attributes = append(el.Attributes, Attr{Name: name, Value: a.Value})
			}
			if len(stack) == 0 {
				doc.Roots = append(doc.Roots, el)
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(stack) == 0 {
				return nil, errors.Errorf("parsing ssml: unexpected end element </%s>", name)
			}
			open := stack[len(stack)-1]
			if open.Name != name {
				return nil, errors.Errorf("parsing ssml: element <%s> closed by </%s>", open.Name, name)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 && strings.TrimSpace(string(t)) != "" {
				doc.StrayText = true
			}
		}
	}

	if len(stack) > 0 {
		return nil, errors.Errorf("parsing ssml: element <%s> not closed", stack[len(stack)-1].Name)
	}
	if !seen {
		return nil, ErrEmpty
	}
	return doc, nil
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
