package controller

import (
	"fmt"
	"strings"
	"sync"

	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/logging"
	"github.com/arthur-debert/chartify/pkg/registry"
	"github.com/arthur-debert/chartify/pkg/types"
	"github.com/rs/zerolog"
)

// CreatePolicy decides what an explicit create does on a live element
type CreatePolicy string

const (
	// CreateUpdates degrades create-on-existing to an update with the new spec
	CreateUpdates CreatePolicy = "update"
	// CreateIgnores leaves the live chart untouched
	CreateIgnores CreatePolicy = "ignore"
)

// ParseCreatePolicy parses a policy name
func ParseCreatePolicy(s string) (CreatePolicy, error) {
	switch CreatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case CreateUpdates, "":
		return CreateUpdates, nil
	case CreateIgnores:
		return CreateIgnores, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown create policy %q (want %q or %q)", s, CreateUpdates, CreateIgnores)
	}
}

// Controller dispatches lifecycle actions for elements and keeps the
// instance registry consistent with the charts the engine holds.
type Controller struct {
	mu       sync.Mutex
	registry *registry.Instances
	engine   types.Engine
	binder   types.Binder
	policy   CreatePolicy
	logger   zerolog.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithCreatePolicy sets the create-on-existing policy
func WithCreatePolicy(policy CreatePolicy) Option {
	return func(c *Controller) {
		c.policy = policy
	}
}

// WithLogger replaces the component logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates a controller over an explicitly owned registry
func New(reg *registry.Instances, engine types.Engine, binder types.Binder, opts ...Option) *Controller {
	c := &Controller{
		registry: reg,
		engine:   engine,
		binder:   binder,
		policy:   CreateUpdates,
		logger:   logging.GetLogger("controller"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the registry the controller maintains
func (c *Controller) Registry() *registry.Instances {
	return c.registry
}

// identity is the resolved instance key of an element
type identity struct {
	Key string
	// Tagged is false when Key was generated and not yet stored on the element
	Tagged bool
}

func (c *Controller) resolve(el types.Element) identity {
	if key, ok := c.binder.Tag(el); ok && key != "" {
		return identity{Key: key, Tagged: true}
	}
	return identity{Key: c.registry.GenerateKey()}
}

// ApplyToken parses an action token and applies it. Unknown tokens are
// logged and ignored.
func (c *Controller) ApplyToken(el types.Element, token string, spec types.Spec) (Result, error) {
	return c.Apply(el, types.ParseAction(token, spec))
}

// Apply runs one action against one element. Lookups of the whole registry
// accept a nil element.
func (c *Controller) Apply(el types.Element, action types.Action) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	logger := c.logger.With().Str("action", action.Name()).Logger()
	done := logging.LogOperationStart(logger, "apply")
	defer done()

	switch a := action.(type) {
	case types.GetAllInstances:
		return Result{Outcome: OutcomeLookup, Instances: c.registry.All()}, nil
	case types.Unrecognized:
		logger.Warn().
			Str("code", string(errors.ErrUnrecognizedAction)).
			Str("token", a.Token).
			Msg("Unrecognized action, ignoring")
		return Result{Outcome: OutcomeNoop}, nil
	}

	if el == nil {
		if _, ok := action.(types.GetInstance); ok {
			return Result{Outcome: OutcomeLookup, Instances: c.registry.All()}, nil
		}
		return Result{}, errors.Newf(errors.ErrInvalidInput, "action %s requires an element", action.Name())
	}

	id := c.resolve(el)
	logger = logger.With().Str("element", el.Describe()).Str("key", id.Key).Logger()
	current, live := c.registry.Get(id.Key)

	switch a := action.(type) {
	case types.Configure:
		if live {
			return c.update(el, id, current, a.Spec, logger)
		}
		return c.create(el, id, a.Spec, logger)

	case types.Create:
		if !live {
			return c.create(el, id, a.Spec, logger)
		}
		if c.policy == CreateIgnores {
			logger.Debug().Msg("Chart already live, create ignored")
			return Result{Key: id.Key, Outcome: OutcomeIgnored, Handle: current}, nil
		}
		return c.update(el, id, current, a.Spec, logger)

	case types.Update:
		if live {
			return c.update(el, id, current, a.Spec, logger)
		}
		return c.create(el, id, a.Spec, logger)

	case types.Destroy:
		if !live {
			return Result{Key: id.Key, Outcome: OutcomeNoop}, nil
		}
		c.destroy(id.Key, current, logger)
		return Result{Key: id.Key, Outcome: OutcomeDestroyed}, nil

	case types.GetInstance:
		if !live {
			return Result{Key: id.Key, Outcome: OutcomeLookup}, nil
		}
		return Result{Key: id.Key, Outcome: OutcomeLookup, Handle: current}, nil
	}

	return Result{}, errors.Newf(errors.ErrInternal, "unhandled action %T", action)
}

// ApplyAll applies the action to each element in order. A failing element
// never stops its siblings.
func (c *Controller) ApplyAll(elements []types.Element, action types.Action) Batch {
	batch := Batch{Results: make([]ElementResult, 0, len(elements))}
	for _, el := range elements {
		res, err := c.applyIsolated(el, action)
		if err != nil {
			c.logger.Error().Err(err).Str("element", describe(el)).Str("action", action.Name()).Msg("Action failed for element")
		}
		batch.Results = append(batch.Results, ElementResult{Element: el, Result: res, Err: err})
	}
	return batch
}

func (c *Controller) applyIsolated(el types.Element, action types.Action) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if cause, ok := r.(error); ok {
				err = withCode(cause, errors.ErrInternal, fmt.Sprintf("panic while applying %s", action.Name()))
				return
			}
			err = errors.Newf(errors.ErrInternal, "panic while applying %s: %v", action.Name(), r)
		}
	}()
	return c.Apply(el, action)
}

func (c *Controller) create(el types.Element, id identity, spec types.Spec, logger zerolog.Logger) (Result, error) {
	surface, err := c.binder.Surface(el)
	if err != nil {
		return Result{}, withCode(err, errors.ErrConfiguration, fmt.Sprintf("element %s cannot provide a drawing surface", el.Describe()))
	}

	if spec.Type == "" {
		return Result{}, errors.Newf(errors.ErrConfiguration, "chart type is required to create a chart on %s", el.Describe())
	}

	if !id.Tagged {
		if err := c.binder.SetTag(el, id.Key); err != nil {
			return Result{}, withCode(err, errors.ErrMissingIdentity, fmt.Sprintf("element %s cannot be tagged", el.Describe()))
		}
	}

	handle, err := c.engine.New(surface, types.ChartConfig{
		Type:    spec.Type,
		Data:    spec.Data.Resolve(),
		Options: spec.Options.Resolve(),
	})
	if err != nil {
		return Result{}, withCode(err, errors.ErrRender, fmt.Sprintf("failed to create %s chart", spec.Type))
	}

	c.registry.Put(id.Key, handle)
	logger.Info().Str("type", spec.Type).Msg("Chart created")
	return Result{Key: id.Key, Outcome: OutcomeCreated, Handle: handle}, nil
}

func (c *Controller) update(el types.Element, id identity, current types.Handle, spec types.Spec, logger zerolog.Logger) (Result, error) {
	data := spec.Data.Resolve()
	if data.IsEmpty() {
		data = current.Data()
	}

	if !spec.IsStructural() {
		current.SetData(data)
		if err := current.Update(); err != nil {
			return Result{}, withCode(err, errors.ErrRender, "failed to redraw chart")
		}
		logger.Info().Msg("Chart data updated in place")
		return Result{Key: id.Key, Outcome: OutcomeUpdated, Handle: current}, nil
	}

	chartType := spec.Type
	if chartType == "" {
		chartType = current.Type()
	}
	options := current.Options()
	if spec.Options.IsSet() {
		options = spec.Options.Resolve()
	}

	surface, err := c.binder.Surface(el)
	if err != nil {
		return Result{}, withCode(err, errors.ErrConfiguration, fmt.Sprintf("element %s cannot provide a drawing surface", el.Describe()))
	}

	c.destroy(id.Key, current, logger)

	handle, err := c.engine.New(surface, types.ChartConfig{
		Type:    chartType,
		Data:    data,
		Options: options,
	})
	if err != nil {
		return Result{}, withCode(err, errors.ErrRender, fmt.Sprintf("failed to rebuild %s chart", chartType))
	}

	c.registry.Put(id.Key, handle)
	logger.Info().Str("type", chartType).Msg("Chart rebuilt")
	return Result{Key: id.Key, Outcome: OutcomeReplaced, Handle: handle}, nil
}

// destroy tears down a live handle. Engine failures are logged; the entry
// is removed regardless.
func (c *Controller) destroy(key string, handle types.Handle, logger zerolog.Logger) {
	if err := handle.Destroy(); err != nil {
		logger.Warn().Err(err).Msg("Engine failed to destroy chart, dropping it")
	}
	c.registry.Remove(key)
	logger.Info().Msg("Chart destroyed")
}

// withCode keeps errors that already carry a code and wraps the rest
func withCode(err error, code errors.ErrorCode, message string) error {
	if errors.GetErrorCode(err) != errors.ErrUnknown {
		return err
	}
	return errors.Wrap(err, code, message)
}
