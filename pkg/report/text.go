package report

import (
	"fmt"
	"io"
)

// WriteText writes human-readable validation output to w.
func (r *Report) WriteText(w io.Writer) {
	if r.IsValid() {
		fmt.Fprintln(w, "No errors detected.")
		return
	}
	for _, m := range r.Messages {
		fmt.Fprintln(w, m.String())
	}
	fmt.Fprintf(w, "Check finished. Errors: %d\n", r.Len())
}
