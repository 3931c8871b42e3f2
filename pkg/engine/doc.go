// Package engine is a terminal chart renderer.
//
// Charts are drawn as text frames with lipgloss and written to a
// types.Surface. Chart types are pluggable renderers looked up by name;
// bar, horizontalBar, line and pie are built in.
//
// Recognized options (all optional):
//
//	title      string    heading above the chart
//	width      int       bar length / column count budget
//	height     int       rows of a vertical bar chart
//	colours    []string  series colours, in series order
//	dataOrder  []string  explicit series order; unlisted series follow sorted
//	labels     []string  labels of the value positions (x axis)
package engine
