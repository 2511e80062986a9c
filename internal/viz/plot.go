package viz

import (
	"github.com/guptarohit/asciigraph"
)

// Plot draws data as an ascii line chart. It returns an empty string when
// there is nothing to draw.
func Plot(data []float64, caption string, width, height int) string {
	if len(data) == 0 {
		return ""
	}
	opts := []asciigraph.Option{asciigraph.Height(height), asciigraph.Caption(caption)}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.Plot(data, opts...)
}
