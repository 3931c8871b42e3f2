package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/arthur-debert/chartify/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int
	}{
		{"zero", 0, 0},
		{"negative", -3, 0},
		{"rounds", 2.6, 3},
		{"max", 10, 10},
		{"above max", 11, 10},
		{"inf", math.Inf(1), 10},
		{"neg inf", math.Inf(-1), 0},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clamp(tt.in, 10))
		})
	}
}

func TestScaleStaysInRange(t *testing.T) {
	assert.Equal(t, 5, scale(1, 2, 10))
	assert.Equal(t, 0, scale(math.Inf(1), math.Inf(1), 10))
	assert.Equal(t, 10, scale(math.Inf(1), 2, 10))
	assert.Equal(t, 0, scale(math.NaN(), 2, 10))
}

func TestRenderersSurviveNonFiniteValues(t *testing.T) {
	opts := RenderOptions{Width: 10, Height: 4}
	renderers := map[string]RendererFunc{
		TypeBar:           renderBar,
		TypeHorizontalBar: renderHorizontalBar,
		TypeLine:          renderLine,
		TypePie:           renderPie,
	}
	data := types.Dataset{"a": {1, math.Inf(1)}, "b": {math.NaN(), 2}}

	for name, render := range renderers {
		t.Run(name, func(t *testing.T) {
			var frame string
			assert.NotPanics(t, func() { frame = render(data, opts) })
			assert.NotEmpty(t, strings.TrimSpace(frame))
		})
	}
}
