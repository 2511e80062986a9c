package sweep

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAxis reads "name=lo:hi:n" or "name=v1,v2,...".
func ParseAxis(s string) (Axis, error) {
	name, def, ok := strings.Cut(s, "=")
	if !ok || name == "" || def == "" {
		return Axis{}, fmt.Errorf("axis %q: want name=lo:hi:n or name=v1,v2", s)
	}

	if parts := strings.Split(def, ":"); len(parts) == 3 {
		lo, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return Axis{}, fmt.Errorf("axis %s: lo: %w", name, err)
		}
		hi, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return Axis{}, fmt.Errorf("axis %s: hi: %w", name, err)
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 1 {
			return Axis{}, fmt.Errorf("axis %s: count must be a positive integer, got %q", name, parts[2])
		}
		return Axis{Name: name, Values: Linspace(lo, hi, n)}, nil
	}

	var values []float64
	for _, f := range strings.Split(def, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("axis %s: %w", name, err)
		}
		values = append(values, v)
	}
	return Axis{Name: name, Values: values}, nil
}
