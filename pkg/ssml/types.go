package ssml

// Element is one element of a parsed SSML document. Text content is not kept;
// only the element structure matters to validation.
type Element struct {
	Name       string
	Attributes []Attr
	Children   []*Element
}

// Attr is a single attribute in document order. Names keep their prefix as
// written, e.g. "xml:lang".
type Attr struct {
	Name  string
	Value string
}

// Document is the result of parsing SSML text.
type Document struct {
	// Roots holds every top-level element in document order. A well-shaped
	// SSML document has exactly one, named "speak".
	Roots []*Element

	// StrayText is true when non-whitespace character data appears outside
	// any element.
	StrayText bool
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Root returns the single top-level element, or nil when the document has
// zero or several of them or stray text at the top level.
func (d *Document) Root() *Element {
	if d == nil || d.StrayText || len(d.Roots) != 1 {
		return nil
	}
	return d.Roots[0]
}

// Walk visits e and all of its descendants depth-first in document order.
// Returning false from fn skips the element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}
