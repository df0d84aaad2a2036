package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adammathes/ssmlcheck/pkg/report"
	"github.com/adammathes/ssmlcheck/pkg/ssml"
)

// checkElement validates el and its subtree in document order. Each call
// returns its own findings: the element's first, then each child's.
func checkElement(el *ssml.Element, c checkContext) []report.Message {
	var msgs []report.Message

	if !c.platform.AllowsTag(el.Name) {
		// TAG-001: attributes of an unknown tag are not evaluated, but
		// its subtree still is.
		msgs = append(msgs, report.Message{
			Type:    report.Tag,
			CheckID: "TAG-001",
			Message: fmt.Sprintf("Tag is not supported for platform %s", c.platform),
			Tag:     el.Name,
		})
	} else if rule, ok := rules[el.Name]; ok {
		msgs = append(msgs, rule.check(el, c)...)
	}

	for _, child := range el.Children {
		msgs = append(msgs, checkElement(child, c)...)
	}
	return msgs
}

func (r tagRule) check(el *ssml.Element, c checkContext) []report.Message {
	var msgs []report.Message

	if !r.open {
		// TAG-003: only raised when no attributes are present at all.
		if r.required != "" && len(el.Attributes) == 0 {
			msgs = append(msgs, report.Message{
				Type:      report.Tag,
				CheckID:   "TAG-003",
				Message:   "Missing required attribute",
				Tag:       el.Name,
				Attribute: r.required,
				Value:     report.Missing(),
			})
		}

		for _, a := range el.Attributes {
			ar, ok := r.attrs[a.Name]
			if !ok || !c.platform.Allows(ar.gate) {
				msgs = append(msgs, report.Message{
					Type:      report.Tag,
					CheckID:   "TAG-004",
					Message:   "Attribute is not allowed",
					Tag:       el.Name,
					Attribute: a.Name,
					Value:     report.Invalid(a.Value),
				})
				continue
			}
			if ar.valid != nil && !ar.valid(a.Value, c) {
				msgs = append(msgs, report.Message{
					Type:      report.Tag,
					CheckID:   "TAG-002",
					Message:   "Invalid attribute value",
					Tag:       el.Name,
					Attribute: a.Name,
					Value:     report.Invalid(a.Value),
				})
			}
		}
	}

	if r.children != nil {
		for _, child := range el.Children {
			if r.children[child.Name] {
				continue
			}
			msgs = append(msgs, report.Message{
				Type:    report.Tag,
				CheckID: "TAG-005",
				Message: fmt.Sprintf("Tag may only contain %s", joinNames(r.children)),
				Tag:     el.Name,
				Value:   report.Invalid(child.Name),
			})
		}
	}

	return msgs
}

func joinNames(set map[string]bool) string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
