package engine

import (
	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/types"
	"github.com/go-viper/mapstructure/v2"
)

// Settings are the engine-wide defaults
type Settings struct {
	Width   int
	Height  int
	Colours []string
}

// DefaultSettings returns the built-in defaults
func DefaultSettings() Settings {
	return Settings{
		Width:   40,
		Height:  8,
		Colours: []string{"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f", "#edc948"},
	}
}

// RenderOptions are the rendering options the engine understands, merged
// over its Settings
type RenderOptions struct {
	Title     string   `mapstructure:"title"`
	Width     int      `mapstructure:"width"`
	Height    int      `mapstructure:"height"`
	Colours   []string `mapstructure:"colours"`
	DataOrder []string `mapstructure:"dataOrder"`
	Labels    []string `mapstructure:"labels"`
}

// decodeOptions merges rendering options over the engine settings.
// Unknown keys are left for other engines and ignored here.
func decodeOptions(settings Settings, opts types.Options) (RenderOptions, error) {
	out := RenderOptions{
		Width:  settings.Width,
		Height: settings.Height,
		// copied so decoding never writes into the shared palette
		Colours: append([]string(nil), settings.Colours...),
	}
	if len(opts) == 0 {
		return out, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return out, errors.Wrap(err, errors.ErrInternal, "failed to build options decoder")
	}
	if err := decoder.Decode(map[string]interface{}(opts)); err != nil {
		return out, errors.Wrap(err, errors.ErrConfiguration, "invalid chart options")
	}

	if out.Width <= 0 {
		out.Width = settings.Width
	}
	if out.Height <= 0 {
		out.Height = settings.Height
	}
	if len(out.Colours) == 0 {
		out.Colours = settings.Colours
	}
	return out, nil
}

// seriesOrder lists the dataset labels: dataOrder first, then the rest sorted
func (o RenderOptions) seriesOrder(data types.Dataset) []string {
	seen := make(map[string]bool, len(data))
	order := make([]string, 0, len(data))
	for _, label := range o.DataOrder {
		if _, ok := data[label]; ok && !seen[label] {
			order = append(order, label)
			seen[label] = true
		}
	}
	for _, label := range data.Labels() {
		if !seen[label] {
			order = append(order, label)
		}
	}
	return order
}

// colour returns the colour of the i-th series
func (o RenderOptions) colour(i int) string {
	if len(o.Colours) == 0 {
		return ""
	}
	return o.Colours[i%len(o.Colours)]
}

// label returns the label of the i-th value position
func (o RenderOptions) label(i int) string {
	if i < len(o.Labels) {
		return o.Labels[i]
	}
	return ""
}
