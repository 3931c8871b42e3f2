package types_test

import (
	"testing"

	"github.com/arthur-debert/chartify/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	spec := types.Spec{Type: "bar"}

	tests := []struct {
		token string
		want  types.Action
	}{
		{"", types.Configure{Spec: spec}},
		{"create", types.Create{Spec: spec}},
		{"update", types.Update{Spec: spec}},
		{"destroy", types.Destroy{}},
		{"instance", types.GetInstance{}},
		{"getInstance", types.GetInstance{}},
		{"getInstances", types.GetAllInstances{}},
		{"explode", types.Unrecognized{Token: "explode"}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got := types.ParseAction(tt.token, spec)
			assert.IsType(t, tt.want, got)
			switch want := tt.want.(type) {
			case types.Create:
				assert.Equal(t, want.Spec.Type, got.(types.Create).Spec.Type)
			case types.Unrecognized:
				assert.Equal(t, want.Token, got.Name())
			}
		})
	}
}

func TestTokensAreParseable(t *testing.T) {
	for _, token := range types.Tokens() {
		_, unknown := types.ParseAction(token, types.Spec{}).(types.Unrecognized)
		assert.False(t, unknown, "token %q should be recognized", token)
	}
}
