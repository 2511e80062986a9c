package viz

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/springlab/internal/experiment"
)

// Table renders the scene's quantities in display order. Read-only
// quantities are marked with "=".
func Table(scene *experiment.Scene) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, q := range scene.Quantities() {
		mark := " "
		if !q.Writable {
			mark = "="
		}
		span := ""
		if q.Range != nil {
			span = q.Range().String()
		}
		fmt.Fprintf(w, "%s %s\t%s\t%.6g\t%s\t%s\n", mark, q.Name, q.Label, q.Property.Get(), q.Unit, span)
	}
	w.Flush()
	return b.String()
}
