package types

// Element is a document node a chart can be bound to
type Element interface {
	// Describe returns a short locator used in logs and errors
	Describe() string
}

// Binder is the document binding layer
type Binder interface {
	// Surface returns the drawing surface of an element
	Surface(el Element) (Surface, error)

	// Tag reads the instance key stored on an element
	Tag(el Element) (string, bool)

	// SetTag stores an instance key on an element
	SetTag(el Element, key string) error
}
