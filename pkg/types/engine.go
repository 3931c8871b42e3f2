package types

// Surface is a drawing target obtained from a document element
type Surface interface {
	// Draw replaces the surface content with a rendered frame
	Draw(frame string) error

	// Clear returns the surface to its pre-init state
	Clear() error
}

// Handle is a live chart owned by the instance registry
type Handle interface {
	Type() string
	Data() Dataset
	Options() Options

	// SetData replaces the dataset without redrawing
	SetData(data Dataset)

	// Update redraws the chart in place
	Update() error

	// Destroy releases the chart and clears its surface
	Destroy() error
}

// Engine creates chart handles bound to a surface
type Engine interface {
	New(surface Surface, cfg ChartConfig) (Handle, error)
}
