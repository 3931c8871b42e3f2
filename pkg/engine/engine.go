package engine

import (
	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/logging"
	"github.com/arthur-debert/chartify/pkg/registry"
	"github.com/arthur-debert/chartify/pkg/types"
	"github.com/rs/zerolog"
)

// Built-in chart types
const (
	TypeBar           = "bar"
	TypeHorizontalBar = "horizontalBar"
	TypeLine          = "line"
	TypePie           = "pie"
)

// Engine implements types.Engine for terminal output
type Engine struct {
	renderers *registry.Registry[Renderer]
	settings  Settings
	logger    zerolog.Logger
}

// New creates an engine with the built-in chart types registered
func New(settings Settings) *Engine {
	defaults := DefaultSettings()
	if settings.Width <= 0 {
		settings.Width = defaults.Width
	}
	if settings.Height <= 0 {
		settings.Height = defaults.Height
	}
	if len(settings.Colours) == 0 {
		settings.Colours = defaults.Colours
	}

	e := &Engine{
		renderers: registry.New[Renderer](),
		settings:  settings,
		logger:    logging.GetLogger("engine"),
	}
	registry.MustRegister[Renderer](e.renderers, TypeBar, RendererFunc(renderBar))
	registry.MustRegister[Renderer](e.renderers, TypeHorizontalBar, RendererFunc(renderHorizontalBar))
	registry.MustRegister[Renderer](e.renderers, TypeLine, RendererFunc(renderLine))
	registry.MustRegister[Renderer](e.renderers, TypePie, RendererFunc(renderPie))
	return e
}

// Register adds a chart type
func (e *Engine) Register(chartType string, r Renderer) error {
	return e.renderers.Register(chartType, r)
}

// Types lists the registered chart types
func (e *Engine) Types() []string {
	return e.renderers.List()
}

// Settings returns the engine defaults
func (e *Engine) Settings() Settings {
	return e.settings
}

// New creates a chart on surface and draws its first frame
func (e *Engine) New(surface types.Surface, cfg types.ChartConfig) (types.Handle, error) {
	renderer, err := e.renderers.Get(cfg.Type)
	if err != nil {
		return nil, errors.Newf(errors.ErrConfiguration, "unknown chart type %q", cfg.Type).
			WithDetail("known", e.Types())
	}
	if surface == nil {
		return nil, errors.New(errors.ErrConfiguration, "chart needs a drawing surface")
	}

	chart := &Chart{
		engine:    e,
		renderer:  renderer,
		surface:   surface,
		chartType: cfg.Type,
		data:      cfg.Data,
		options:   cfg.Options,
	}
	if err := chart.draw(); err != nil {
		return nil, err
	}

	e.logger.Debug().Str("type", cfg.Type).Int("series", len(cfg.Data)).Msg("Chart drawn")
	return chart, nil
}
