package engine_test

import (
	"math"
	"strings"
	"testing"

	"github.com/arthur-debert/chartify/pkg/engine"
	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/testutil"
	"github.com/arthur-debert/chartify/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChart(t *testing.T, cfg types.ChartConfig) (*engine.Chart, *testutil.FakeSurface) {
	t.Helper()
	surface := &testutil.FakeSurface{}
	h, err := engine.New(engine.Settings{}).New(surface, cfg)
	require.NoError(t, err)
	require.Len(t, surface.Frames, 1, "creating a chart draws it")
	return h.(*engine.Chart), surface
}

func TestBuiltInTypes(t *testing.T) {
	e := engine.New(engine.Settings{})
	assert.Equal(t, []string{"bar", "horizontalBar", "line", "pie"}, e.Types())
	assert.Equal(t, engine.DefaultSettings(), e.Settings())
}

func TestUnknownType(t *testing.T) {
	_, err := engine.New(engine.Settings{}).New(&testutil.FakeSurface{}, types.ChartConfig{Type: "radar"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
}

func TestNilSurface(t *testing.T) {
	_, err := engine.New(engine.Settings{}).New(nil, types.ChartConfig{Type: "bar"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
}

func TestBarChart(t *testing.T) {
	_, surface := newChart(t, types.ChartConfig{
		Type:    engine.TypeBar,
		Data:    types.Dataset{"a": {1, 2}, "b": {2, 4}},
		Options: types.Options{"title": "Sales", "height": 4},
	})

	frame := surface.Frames[0]
	lines := strings.Split(frame, "\n")
	assert.Equal(t, "Sales", strings.TrimSpace(lines[0]))
	// title + 4 rows + legend
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[len(lines)-1], "█ a")
	assert.Contains(t, lines[len(lines)-1], "█ b")
	// the tallest column fills the top row
	assert.Contains(t, lines[1], "█")
}

func TestHorizontalBarChart(t *testing.T) {
	_, surface := newChart(t, types.ChartConfig{
		Type: engine.TypeHorizontalBar,
		Data: types.Dataset{"visits": {5, 10}},
		Options: types.Options{
			"width":  10,
			"labels": []interface{}{"mon", "tue"},
		},
	})

	lines := strings.Split(surface.Frames[0], "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "visits mon")
	assert.Contains(t, lines[0], strings.Repeat("█", 5)+" 5")
	assert.Contains(t, lines[1], strings.Repeat("█", 10)+" 10")
}

func TestLineChart(t *testing.T) {
	_, surface := newChart(t, types.ChartConfig{
		Type: engine.TypeLine,
		Data: types.Dataset{"temp": {1, 3, 5}},
	})

	frame := surface.Frames[0]
	assert.Contains(t, frame, "▁")
	assert.Contains(t, frame, "█")
	assert.Contains(t, frame, "1..5")
}

func TestPieChart(t *testing.T) {
	_, surface := newChart(t, types.ChartConfig{
		Type: engine.TypePie,
		Data: types.Dataset{"a": {1}, "b": {3}},
	})

	frame := surface.Frames[0]
	assert.Contains(t, frame, "25.0%")
	assert.Contains(t, frame, "75.0%")
}

func TestEmptyData(t *testing.T) {
	for _, chartType := range []string{"bar", "horizontalBar", "line", "pie"} {
		t.Run(chartType, func(t *testing.T) {
			_, surface := newChart(t, types.ChartConfig{Type: chartType})
			assert.Contains(t, surface.Frames[0], "(no data)")
		})
	}
}

func TestDataOrder(t *testing.T) {
	_, surface := newChart(t, types.ChartConfig{
		Type:    engine.TypeHorizontalBar,
		Data:    types.Dataset{"a": {1}, "b": {2}, "c": {3}},
		Options: types.Options{"dataOrder": []string{"c", "missing", "a"}},
	})

	frame := surface.Frames[0]
	c := strings.Index(frame, "c │")
	a := strings.Index(frame, "a │")
	b := strings.Index(frame, "b │")
	require.True(t, c >= 0 && a >= 0 && b >= 0, frame)
	assert.Less(t, c, a)
	assert.Less(t, a, b)
}

func TestInvalidOptions(t *testing.T) {
	_, err := engine.New(engine.Settings{}).New(&testutil.FakeSurface{}, types.ChartConfig{
		Type:    engine.TypeBar,
		Data:    types.Dataset{"a": {1}},
		Options: types.Options{"width": "wide"},
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
}

func TestChartLifecycle(t *testing.T) {
	chart, surface := newChart(t, types.ChartConfig{
		Type:    engine.TypeHorizontalBar,
		Data:    types.Dataset{"a": {1}},
		Options: types.Options{"title": "T"},
	})

	assert.Equal(t, "horizontalBar", chart.Type())
	assert.Equal(t, types.Options{"title": "T"}, chart.Options())

	chart.SetData(types.Dataset{"z": {7}})
	assert.Len(t, surface.Frames, 1, "SetData does not redraw")
	require.NoError(t, chart.Update())
	require.Len(t, surface.Frames, 2)
	assert.Contains(t, surface.Frames[1], "z │")
	assert.Equal(t, types.Dataset{"z": {7}}, chart.Data())

	require.NoError(t, chart.Destroy())
	assert.Equal(t, 1, surface.Cleared)
	require.NoError(t, chart.Destroy())
	assert.Equal(t, 1, surface.Cleared)

	err := chart.Update()
	assert.True(t, errors.IsErrorCode(err, errors.ErrRender))
}

func TestRegisterCustomType(t *testing.T) {
	e := engine.New(engine.Settings{Width: 5})
	require.NoError(t, e.Register("count", engine.RendererFunc(func(data types.Dataset, opts engine.RenderOptions) string {
		return strings.Repeat("#", opts.Width)
	})))
	assert.Error(t, e.Register("count", nil))

	surface := &testutil.FakeSurface{}
	_, err := e.New(surface, types.ChartConfig{Type: "count"})
	require.NoError(t, err)
	assert.Equal(t, "#####", surface.Frames[0])
}

func TestColourOptionsLeavePaletteAlone(t *testing.T) {
	e := engine.New(engine.Settings{})
	_, err := e.New(&testutil.FakeSurface{}, types.ChartConfig{
		Type:    "bar",
		Data:    types.Dataset{"a": {1}},
		Options: types.Options{"colours": []interface{}{"#000000"}},
	})
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultSettings().Colours, e.Settings().Colours)
}

func TestNonFiniteValuesAreRejected(t *testing.T) {
	datasets := map[string]types.Dataset{
		"inf":    {"a": {1, math.Inf(1)}},
		"negInf": {"a": {math.Inf(-1), 2}},
		"nan":    {"a": {math.NaN()}},
	}

	e := engine.New(engine.Settings{})
	for _, typ := range e.Types() {
		for name, data := range datasets {
			t.Run(typ+"/"+name, func(t *testing.T) {
				surface := &testutil.FakeSurface{}
				var err error
				assert.NotPanics(t, func() {
					_, err = e.New(surface, types.ChartConfig{Type: typ, Data: data})
				})
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
				assert.Empty(t, surface.Frames)
			})
		}
	}
}

func TestUpdateRejectsNonFiniteData(t *testing.T) {
	chart, surface := newChart(t, types.ChartConfig{
		Type: engine.TypeLine,
		Data: types.Dataset{"a": {1, 2}},
	})

	chart.SetData(types.Dataset{"a": {1, math.NaN()}})
	err := chart.Update()
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
	assert.Len(t, surface.Frames, 1)

	assert.NotPanics(t, func() {
		_, _ = chart.Frame()
	})
}
