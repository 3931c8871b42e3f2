package engine

import (
	"fmt"
	"math"

	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/types"
)

// Chart is a live chart drawn on a surface
type Chart struct {
	engine    *Engine
	renderer  Renderer
	surface   types.Surface
	chartType string
	data      types.Dataset
	options   types.Options
	destroyed bool
}

// Type returns the chart type
func (c *Chart) Type() string {
	return c.chartType
}

// Data returns the current dataset
func (c *Chart) Data() types.Dataset {
	return c.data
}

// Options returns the rendering options the chart was built with
func (c *Chart) Options() types.Options {
	return c.options
}

// SetData replaces the dataset; call Update to redraw
func (c *Chart) SetData(data types.Dataset) {
	c.data = data
}

// Frame renders the chart without drawing it
func (c *Chart) Frame() (string, error) {
	opts, err := decodeOptions(c.engine.settings, c.options)
	if err != nil {
		return "", err
	}
	return c.renderer.Render(c.data, opts), nil
}

// Update redraws the chart
func (c *Chart) Update() error {
	if c.destroyed {
		return errors.Newf(errors.ErrRender, "%s chart has been destroyed", c.chartType)
	}
	return c.draw()
}

// Destroy clears the surface. Destroying twice is a no-op.
func (c *Chart) Destroy() error {
	if c.destroyed {
		return nil
	}
	c.destroyed = true
	if err := c.surface.Clear(); err != nil {
		return errors.Wrap(err, errors.ErrRender, "failed to clear surface")
	}
	return nil
}

func (c *Chart) draw() error {
	if err := checkFinite(c.data); err != nil {
		return err
	}
	frame, err := c.Frame()
	if err != nil {
		return err
	}
	if err := c.surface.Draw(frame); err != nil {
		return errors.Wrap(err, errors.ErrRender, "failed to draw chart")
	}
	return nil
}

// checkFinite rejects datasets no renderer can scale
func checkFinite(data types.Dataset) error {
	for series, values := range data {
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.Newf(errors.ErrConfiguration, "series %q has a non-finite value at position %d", series, i).
					WithDetail("series", series).
					WithDetail("value", fmt.Sprint(v))
			}
		}
	}
	return nil
}
