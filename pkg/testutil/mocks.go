package testutil

import (
	"fmt"

	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/types"
)

// FakeElement is an element of an in-memory document
type FakeElement struct {
	Name string

	// NoSurface makes the binder refuse to provide a drawing surface
	NoSurface bool

	// Frozen makes the binder refuse to tag the element
	Frozen bool
}

// Describe returns the element locator
func (e *FakeElement) Describe() string {
	return "#" + e.Name
}

// FakeSurface records what was drawn on it
type FakeSurface struct {
	Frames  []string
	Cleared int
}

// Draw records a frame
func (s *FakeSurface) Draw(frame string) error {
	s.Frames = append(s.Frames, frame)
	return nil
}

// Clear records a reset
func (s *FakeSurface) Clear() error {
	s.Cleared++
	s.Frames = nil
	return nil
}

// FakeBinder binds FakeElements
type FakeBinder struct {
	tags     map[*FakeElement]string
	surfaces map[*FakeElement]*FakeSurface

	SetTagCalls int
}

// NewFakeBinder creates an empty binder
func NewFakeBinder() *FakeBinder {
	return &FakeBinder{
		tags:     make(map[*FakeElement]string),
		surfaces: make(map[*FakeElement]*FakeSurface),
	}
}

// Surface returns the element's surface, creating it on first use
func (b *FakeBinder) Surface(el types.Element) (types.Surface, error) {
	fe, err := b.element(el)
	if err != nil {
		return nil, err
	}
	if fe.NoSurface {
		return nil, errors.Newf(errors.ErrConfiguration, "element %s has no drawing surface", fe.Describe())
	}
	return b.SurfaceOf(fe), nil
}

// SurfaceOf exposes the fake surface of an element to tests
func (b *FakeBinder) SurfaceOf(el *FakeElement) *FakeSurface {
	s, ok := b.surfaces[el]
	if !ok {
		s = &FakeSurface{}
		b.surfaces[el] = s
	}
	return s
}

// Tag reads the element's key
func (b *FakeBinder) Tag(el types.Element) (string, bool) {
	fe, err := b.element(el)
	if err != nil {
		return "", false
	}
	key, ok := b.tags[fe]
	return key, ok
}

// SetTag stores the element's key
func (b *FakeBinder) SetTag(el types.Element, key string) error {
	b.SetTagCalls++
	fe, err := b.element(el)
	if err != nil {
		return err
	}
	if fe.Frozen {
		return errors.Newf(errors.ErrMissingIdentity, "element %s cannot be tagged", fe.Describe())
	}
	b.tags[fe] = key
	return nil
}

func (b *FakeBinder) element(el types.Element) (*FakeElement, error) {
	fe, ok := el.(*FakeElement)
	if !ok || fe == nil {
		return nil, errors.Newf(errors.ErrMissingIdentity, "foreign element %T", el)
	}
	return fe, nil
}

// FakeHandle is a chart handle that records calls
type FakeHandle struct {
	ChartType    string
	Dataset      types.Dataset
	RenderOpts   types.Options
	Surface      types.Surface
	UpdateCalls  int
	DestroyCalls int

	UpdateErr  error
	DestroyErr error
}

func (h *FakeHandle) Type() string               { return h.ChartType }
func (h *FakeHandle) Data() types.Dataset        { return h.Dataset }
func (h *FakeHandle) Options() types.Options     { return h.RenderOpts }
func (h *FakeHandle) SetData(data types.Dataset) { h.Dataset = data }

// Update records a redraw
func (h *FakeHandle) Update() error {
	h.UpdateCalls++
	if h.UpdateErr != nil {
		return h.UpdateErr
	}
	return h.Surface.Draw(fmt.Sprintf("%s %v", h.ChartType, h.Dataset))
}

// Destroy records a teardown
func (h *FakeHandle) Destroy() error {
	h.DestroyCalls++
	if h.DestroyErr != nil {
		return h.DestroyErr
	}
	return h.Surface.Clear()
}

// FakeEngine creates FakeHandles
type FakeEngine struct {
	Created []*FakeHandle

	// NewErr fails every New call when set
	NewErr error

	// DestroyErr is copied into every created handle
	DestroyErr error
}

// New creates a handle and draws its first frame
func (e *FakeEngine) New(surface types.Surface, cfg types.ChartConfig) (types.Handle, error) {
	if e.NewErr != nil {
		return nil, e.NewErr
	}
	h := &FakeHandle{
		ChartType:  cfg.Type,
		Dataset:    cfg.Data,
		RenderOpts: cfg.Options,
		Surface:    surface,
		DestroyErr: e.DestroyErr,
	}
	e.Created = append(e.Created, h)
	if err := surface.Draw(fmt.Sprintf("%s %v", cfg.Type, cfg.Data)); err != nil {
		return nil, err
	}
	return h, nil
}

// Destroyed counts Destroy calls across every created handle
func (e *FakeEngine) Destroyed() int {
	total := 0
	for _, h := range e.Created {
		total += h.DestroyCalls
	}
	return total
}
