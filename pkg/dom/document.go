package dom

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/beevik/etree"
)

// Document is a parsed page
type Document struct {
	doc  *etree.Document
	name string
}

func newEtreeDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	doc.ReadSettings.Entity = xml.HTMLEntity
	return doc
}

// Load reads a page from disk
func Load(path string) (*Document, error) {
	doc := newEtreeDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDocumentLoad, "failed to read page %s", path)
	}
	if doc.Root() == nil {
		return nil, errors.Newf(errors.ErrDocumentLoad, "page %s has no root element", path)
	}
	return &Document{doc: doc, name: path}, nil
}

// Parse reads a page from memory
func Parse(data []byte) (*Document, error) {
	doc := newEtreeDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrDocumentLoad, "failed to parse page")
	}
	if doc.Root() == nil {
		return nil, errors.New(errors.ErrDocumentLoad, "page has no root element")
	}
	return &Document{doc: doc, name: "<memory>"}, nil
}

// Name returns where the document was loaded from
func (d *Document) Name() string {
	return d.name
}

// Select returns the elements matching selector, in document order
func (d *Document) Select(selector string) ([]*Element, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, errors.New(errors.ErrInvalidInput, "selector cannot be empty")
	}

	var found []*etree.Element
	switch {
	case strings.HasPrefix(selector, "#"):
		path, err := etree.CompilePath(fmt.Sprintf("//*[@id='%s']", selector[1:]))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid selector %q", selector)
		}
		found = d.doc.FindElementsPath(path)
	case strings.HasPrefix(selector, "."):
		found = d.byClass(selector[1:])
	default:
		expr := selector
		if !strings.ContainsAny(expr, "/[") {
			expr = "//" + expr
		}
		path, err := etree.CompilePath(expr)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid selector %q", selector)
		}
		found = d.doc.FindElementsPath(path)
	}

	if len(found) == 0 {
		return nil, errors.Newf(errors.ErrElementNotFound, "no element matches %q", selector).
			WithDetail("selector", selector).
			WithDetail("page", d.name)
	}

	elements := make([]*Element, 0, len(found))
	for _, el := range found {
		elements = append(elements, &Element{el: el, doc: d})
	}
	return elements, nil
}

func (d *Document) byClass(class string) []*etree.Element {
	var found []*etree.Element
	for _, el := range d.doc.FindElements("//*") {
		for _, c := range strings.Fields(el.SelectAttrValue("class", "")) {
			if c == class {
				found = append(found, el)
				break
			}
		}
	}
	return found
}

// contains reports whether el is attached to this document
func (d *Document) contains(el *etree.Element) bool {
	for p := el; p != nil; p = p.Parent() {
		if p == &d.doc.Element {
			return true
		}
	}
	return false
}

// WriteTo serializes the page
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}

// createFile opens the destination of Save
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// Save writes the page to path
func (d *Document) Save(path string) (err error) {
	f, err := createFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, errors.ErrInternal, "failed to close %s", path)
		}
	}()

	if _, err := d.WriteTo(f); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to write %s", path)
	}
	return nil
}

// String returns the serialized page
func (d *Document) String() string {
	s, err := d.doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

// Element is an element of a Document
type Element struct {
	el  *etree.Element
	doc *Document
}

// Detached returns an element that belongs to no document
func Detached(tag string) *Element {
	return &Element{el: etree.NewElement(tag)}
}

// ID returns the element's id attribute
func (e *Element) ID() string {
	return e.el.SelectAttrValue("id", "")
}

// TagName returns the element's tag
func (e *Element) TagName() string {
	return e.el.Tag
}

// Text returns the element's text content
func (e *Element) Text() string {
	return e.el.Text()
}

// Attr returns an attribute value
func (e *Element) Attr(name string) (string, bool) {
	attr := e.el.SelectAttr(name)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

// Describe implements types.Element
func (e *Element) Describe() string {
	if id := e.ID(); id != "" {
		return e.el.Tag + "#" + id
	}
	return e.el.GetPath()
}
