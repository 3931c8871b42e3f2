package dom

import (
	"strings"

	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/types"
	"github.com/beevik/etree"
	"github.com/charmbracelet/x/ansi"
)

// DefaultTagAttribute holds the instance key on bound elements
const DefaultTagAttribute = "data-chartify-id"

// renderedAttribute marks canvases that currently show a chart
const renderedAttribute = "data-chartify-rendered"

// Binder implements types.Binder for one Document
type Binder struct {
	doc  *Document
	attr string
}

// NewBinder creates a binder storing keys in attr
func NewBinder(doc *Document, attr string) *Binder {
	if attr == "" {
		attr = DefaultTagAttribute
	}
	return &Binder{doc: doc, attr: attr}
}

// Attribute returns the attribute that stores instance keys
func (b *Binder) Attribute() string {
	return b.attr
}

// Surface returns the drawing surface of a canvas element
func (b *Binder) Surface(el types.Element) (types.Surface, error) {
	e, err := b.own(el)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(e.el.Tag, "canvas") {
		return nil, errors.Newf(errors.ErrConfiguration, "element %s is not a canvas and has no 2d context", e.Describe()).
			WithDetail("tag", e.el.Tag)
	}
	return &Canvas{el: e.el}, nil
}

// Tag reads the instance key of an element. A key copied onto several
// elements belongs to the first of them in document order; the others read
// as untagged so that creating a chart on them assigns a fresh key.
func (b *Binder) Tag(el types.Element) (string, bool) {
	e, err := b.own(el)
	if err != nil {
		return "", false
	}
	attr := e.el.SelectAttr(b.attr)
	if attr == nil || attr.Value == "" {
		return "", false
	}
	if owner := b.owner(attr.Value); owner != nil && owner != e.el {
		return "", false
	}
	return attr.Value, true
}

// owner returns the first element in document order tagged with key
func (b *Binder) owner(key string) *etree.Element {
	var walk func(el *etree.Element) *etree.Element
	walk = func(el *etree.Element) *etree.Element {
		if el.SelectAttrValue(b.attr, "") == key {
			return el
		}
		for _, child := range el.ChildElements() {
			if found := walk(child); found != nil {
				return found
			}
		}
		return nil
	}
	if root := b.doc.doc.Root(); root != nil {
		return walk(root)
	}
	return nil
}

// SetTag stores the instance key on an element
func (b *Binder) SetTag(el types.Element, key string) error {
	e, err := b.own(el)
	if err != nil {
		return err
	}
	e.el.CreateAttr(b.attr, key)
	return nil
}

// own checks that el is an element attached to the binder's document
func (b *Binder) own(el types.Element) (*Element, error) {
	e, ok := el.(*Element)
	if !ok || e == nil {
		return nil, errors.Newf(errors.ErrMissingIdentity, "element of type %T cannot be bound", el)
	}
	if e.doc != b.doc || !b.doc.contains(e.el) {
		return nil, errors.Newf(errors.ErrMissingIdentity, "element %s does not belong to page %s", e.Describe(), b.doc.Name())
	}
	return e, nil
}

// Canvas is the drawing surface of a <canvas> element
type Canvas struct {
	el *etree.Element
}

// Draw replaces the canvas text with frame. Terminal escape sequences are
// stripped since XML cannot carry them.
func (c *Canvas) Draw(frame string) error {
	c.el.SetText(ansi.Strip(frame))
	c.el.CreateAttr(renderedAttribute, "true")
	return nil
}

// Clear empties the canvas
func (c *Canvas) Clear() error {
	c.el.SetText("")
	c.el.RemoveAttr(renderedAttribute)
	return nil
}
