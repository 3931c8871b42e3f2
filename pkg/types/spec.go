package types

import "sort"

// Dataset maps a series label to its values
type Dataset map[string][]float64

// IsEmpty reports whether the dataset carries no series
func (d Dataset) IsEmpty() bool {
	return len(d) == 0
}

// Labels returns the series labels in sorted order
func (d Dataset) Labels() []string {
	labels := make([]string, 0, len(d))
	for label := range d {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Clone returns a deep copy of the dataset
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	for label, values := range d {
		out[label] = append([]float64(nil), values...)
	}
	return out
}

// Options are opaque rendering options handed to the engine untouched
type Options map[string]interface{}

// Spec is the declarative description of a chart
type Spec struct {
	// Type is the chart category understood by the engine (bar, line, ...)
	Type string

	// Data is the dataset, or a function producing it
	Data Value[Dataset]

	// Options are the rendering options, or a function producing them
	Options Value[Options]
}

// IsStructural reports whether applying the spec to a live chart requires
// tearing it down: the engine cannot change type or options in place.
func (s Spec) IsStructural() bool {
	return s.Type != "" || s.Options.IsSet()
}

// ChartConfig is the fully resolved input for creating a chart
type ChartConfig struct {
	Type    string
	Data    Dataset
	Options Options
}
