package output

import (
	"sort"

	"github.com/arthur-debert/chartify/pkg/types"
)

// Instance is the printable view of a live chart
type Instance struct {
	Key    string   `json:"key"`
	Type   string   `json:"type"`
	Series []string `json:"series"`
	Points int      `json:"points"`
	Frame  string   `json:"frame,omitempty"`
}

// framer is implemented by handles that can render without drawing
type framer interface {
	Frame() (string, error)
}

// Instances converts a registry snapshot into rows sorted by key
func Instances(handles map[string]types.Handle) []Instance {
	rows := make([]Instance, 0, len(handles))
	for key, h := range handles {
		data := h.Data()
		row := Instance{
			Key:    key,
			Type:   h.Type(),
			Series: data.Labels(),
		}
		for _, values := range data {
			row.Points += len(values)
		}
		if f, ok := h.(framer); ok {
			if frame, err := f.Frame(); err == nil {
				row.Frame = frame
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}
