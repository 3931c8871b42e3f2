package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/arthur-debert/chartify/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// Renderer draws one chart type into a text frame
type Renderer interface {
	Render(data types.Dataset, opts RenderOptions) string
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(data types.Dataset, opts RenderOptions) string

// Render calls f
func (f RendererFunc) Render(data types.Dataset, opts RenderOptions) string {
	return f(data, opts)
}

const (
	fullBlock = "█"
	noData    = "(no data)"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
	sparks     = []rune("▁▂▃▄▅▆▇█")
)

func seriesStyle(opts RenderOptions, i int) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c := opts.colour(i); c != "" {
		style = style.Foreground(lipgloss.Color(c))
	}
	return style
}

// frame stacks the optional title over the chart body
func frame(opts RenderOptions, body string) string {
	if opts.Title == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(opts.Title), body)
}

func maxValue(data types.Dataset) float64 {
	peak := 0.0
	for _, values := range data {
		for _, v := range values {
			if v > peak {
				peak = v
			}
		}
	}
	return peak
}

// scale maps v onto 0..size, clamping negatives to zero
func scale(v, peak float64, size int) int {
	if peak <= 0 || v <= 0 {
		return 0
	}
	return clamp(v/peak*float64(size), size)
}

// clamp rounds f into 0..limit. NaN maps to zero.
func clamp(f float64, limit int) int {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= float64(limit):
		return limit
	}
	return int(math.Round(f))
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func labelWidth(labels []string) int {
	width := 0
	for _, l := range labels {
		if w := lipgloss.Width(l); w > width {
			width = w
		}
	}
	return width
}

// renderHorizontalBar draws one row per value, grouped by series
func renderHorizontalBar(data types.Dataset, opts RenderOptions) string {
	order := opts.seriesOrder(data)
	if len(order) == 0 {
		return frame(opts, mutedStyle.Render(noData))
	}

	type row struct {
		label string
		value float64
		style lipgloss.Style
	}
	var rows []row
	for i, series := range order {
		style := seriesStyle(opts, i)
		for j, v := range data[series] {
			label := series
			if l := opts.label(j); l != "" {
				label = series + " " + l
			}
			rows = append(rows, row{label: label, value: v, style: style})
		}
	}

	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.label
	}
	labelStyle := lipgloss.NewStyle().Width(labelWidth(labels)).Align(lipgloss.Right)

	peak := maxValue(data)
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		bar := r.style.Render(strings.Repeat(fullBlock, scale(r.value, peak, opts.Width)))
		lines = append(lines, fmt.Sprintf("%s │%s %s", labelStyle.Render(r.label), bar, formatValue(r.value)))
	}
	return frame(opts, strings.Join(lines, "\n"))
}

// renderBar draws vertical columns, one group per value position
func renderBar(data types.Dataset, opts RenderOptions) string {
	order := opts.seriesOrder(data)
	if len(order) == 0 {
		return frame(opts, mutedStyle.Render(noData))
	}

	positions := 0
	for _, series := range order {
		if n := len(data[series]); n > positions {
			positions = n
		}
	}
	if positions == 0 {
		return frame(opts, mutedStyle.Render(noData))
	}

	peak := maxValue(data)
	var columns []string
	for p := 0; p < positions; p++ {
		if p > 0 {
			columns = append(columns, " ")
		}
		for i, series := range order {
			v := 0.0
			if p < len(data[series]) {
				v = data[series][p]
			}
			filled := scale(v, peak, opts.Height)
			cells := make([]string, opts.Height)
			for row := range cells {
				if row >= opts.Height-filled {
					cells[row] = seriesStyle(opts, i).Render(fullBlock)
				} else {
					cells[row] = " "
				}
			}
			columns = append(columns, strings.Join(cells, "\n"))
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Bottom, columns...)
	return frame(opts, lipgloss.JoinVertical(lipgloss.Left, body, legend(order, opts)))
}

// renderLine draws one sparkline per series
func renderLine(data types.Dataset, opts RenderOptions) string {
	order := opts.seriesOrder(data)
	if len(order) == 0 {
		return frame(opts, mutedStyle.Render(noData))
	}

	labelStyle := lipgloss.NewStyle().Width(labelWidth(order))
	lines := make([]string, 0, len(order))
	for i, series := range order {
		values := data[series]
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}

		var spark strings.Builder
		for _, v := range values {
			idx := 0
			if hi > lo {
				idx = clamp((v-lo)/(hi-lo)*float64(len(sparks)-1), len(sparks)-1)
			}
			spark.WriteRune(sparks[idx])
		}

		summary := ""
		if len(values) > 0 {
			summary = fmt.Sprintf(" %s..%s", formatValue(lo), formatValue(hi))
		}
		lines = append(lines, fmt.Sprintf("%s %s%s",
			labelStyle.Render(series),
			seriesStyle(opts, i).Render(spark.String()),
			mutedStyle.Render(summary)))
	}
	return frame(opts, strings.Join(lines, "\n"))
}

// renderPie draws each series' share of the total
func renderPie(data types.Dataset, opts RenderOptions) string {
	order := opts.seriesOrder(data)
	totals := make([]float64, len(order))
	sum := 0.0
	for i, series := range order {
		for _, v := range data[series] {
			if v > 0 {
				totals[i] += v
			}
		}
		sum += totals[i]
	}
	if sum <= 0 {
		return frame(opts, mutedStyle.Render(noData))
	}

	labelStyle := lipgloss.NewStyle().Width(labelWidth(order)).Align(lipgloss.Right)
	lines := make([]string, 0, len(order))
	for i, series := range order {
		share := totals[i] / sum
		bar := seriesStyle(opts, i).Render(strings.Repeat(fullBlock, scale(share, 1, opts.Width)))
		lines = append(lines, fmt.Sprintf("%s │%s %.1f%%", labelStyle.Render(series), bar, share*100))
	}
	return frame(opts, strings.Join(lines, "\n"))
}

func legend(order []string, opts RenderOptions) string {
	parts := make([]string, 0, len(order))
	for i, series := range order {
		parts = append(parts, seriesStyle(opts, i).Render(fullBlock)+" "+series)
	}
	return strings.Join(parts, "  ")
}
