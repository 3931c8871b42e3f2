package script_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/chartify/pkg/controller"
	"github.com/arthur-debert/chartify/pkg/dom"
	"github.com/arthur-debert/chartify/pkg/engine"
	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/registry"
	"github.com/arthur-debert/chartify/pkg/script"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runnerPage = `<html><body>
  <canvas id="sales" class="chart"></canvas>
  <canvas id="visits" class="chart"></canvas>
  <p id="note">not a canvas</p>
</body></html>`

type harness struct {
	doc    *dom.Document
	reg    *registry.Instances
	runner *script.Runner
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	doc, err := dom.Parse([]byte(runnerPage))
	require.NoError(t, err)

	reg := registry.NewInstances()
	ctrl := controller.New(reg,
		engine.New(engine.DefaultSettings()),
		dom.NewBinder(doc, dom.DefaultTagAttribute),
		controller.WithLogger(zerolog.Nop()))

	return &harness{doc: doc, reg: reg, runner: script.NewRunner(ctrl, doc)}
}

func (h *harness) canvas(t *testing.T, id string) *dom.Element {
	t.Helper()
	els, err := h.doc.Select("#" + id)
	require.NoError(t, err)
	return els[0]
}

func TestRunLifecycle(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "q2.yaml"), []byte("q1: [9, 9, 9]\n"), 0644))

	s := &script.Script{
		BaseDir: dir,
		Steps: []script.Step{
			{Select: ".chart", Type: "bar", Data: map[string]interface{}{"q1": []interface{}{1, 2, 3}}},
			{Select: "#sales", Action: "update", DataFile: "q2.yaml"},
			{Select: "#visits", Action: "destroy"},
			{Action: "getInstances"},
		},
	}

	report := h.runner.Run(s)

	require.NoError(t, report.Err())
	require.Len(t, report.Steps, 4)
	assert.Len(t, report.Steps[0].Batch.Results, 2)
	assert.Equal(t, controller.OutcomeUpdated, report.Steps[1].Batch.Results[0].Result.Outcome)
	assert.Equal(t, controller.OutcomeDestroyed, report.Steps[2].Batch.Results[0].Result.Outcome)

	instances := report.Steps[3].Batch.Results[0].Result.Instances
	assert.Len(t, instances, 1)
	assert.Equal(t, 1, h.reg.Len())

	assert.NotEmpty(t, h.canvas(t, "sales").Text())
	assert.Empty(t, h.canvas(t, "visits").Text())

	key, ok := h.canvas(t, "sales").Attr(dom.DefaultTagAttribute)
	require.True(t, ok)
	handle, live := h.reg.Get(key)
	require.True(t, live)
	assert.Equal(t, []float64{9, 9, 9}, handle.Data()["q1"])
}

func TestRunIsolatesFailingSteps(t *testing.T) {
	h := newHarness(t)
	s := &script.Script{
		BaseDir: t.TempDir(),
		Steps: []script.Step{
			{Select: "#missing", Type: "bar"},
			{Select: "#note", Type: "bar"},
			{Select: "#sales", Type: "line", DataFile: "absent.yaml"},
			{Select: "#visits", Type: "pie", Data: map[string]interface{}{"a": []interface{}{1}}},
		},
	}

	report := h.runner.Run(s)

	require.Len(t, report.Steps, 4)
	assert.True(t, errors.IsErrorCode(report.Steps[0].Err, errors.ErrElementNotFound))
	assert.True(t, errors.IsErrorCode(report.Steps[1].Batch.Err(), errors.ErrConfiguration))
	assert.True(t, errors.IsErrorCode(report.Steps[2].Batch.Err(), errors.ErrScriptParse))
	assert.False(t, report.Steps[3].Failed())

	assert.Len(t, report.Failed(), 3)
	err := report.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1 (#missing)")
	assert.Equal(t, 1, h.reg.Len())
}

func TestRunIgnoresUnknownActions(t *testing.T) {
	h := newHarness(t)
	report := h.runner.Run(&script.Script{Steps: []script.Step{
		{Select: "#sales", Action: "explode"},
	}})

	require.NoError(t, report.Err())
	assert.Equal(t, controller.OutcomeNoop, report.Steps[0].Batch.Results[0].Result.Outcome)
	assert.Equal(t, 0, h.reg.Len())
}

func TestRunSeparatesCopiedTags(t *testing.T) {
	doc, err := dom.Parse([]byte(`<html><body>
  <canvas id="a" class="chart" data-chartify-id="chart-old"></canvas>
  <canvas id="b" class="chart" data-chartify-id="chart-old"></canvas>
</body></html>`))
	require.NoError(t, err)

	reg := registry.NewInstances()
	ctrl := controller.New(reg,
		engine.New(engine.DefaultSettings()),
		dom.NewBinder(doc, dom.DefaultTagAttribute),
		controller.WithLogger(zerolog.Nop()))

	report := script.NewRunner(ctrl, doc).Run(&script.Script{Steps: []script.Step{
		{Select: ".chart", Type: "line", Data: map[string]interface{}{"a": []interface{}{1, 2}}},
	}})
	require.NoError(t, report.Err())
	assert.Equal(t, 2, reg.Len())

	keys := map[string]bool{}
	for _, id := range []string{"a", "b"} {
		els, err := doc.Select("#" + id)
		require.NoError(t, err)
		key, ok := els[0].Attr(dom.DefaultTagAttribute)
		require.True(t, ok)
		keys[key] = true
	}
	assert.Len(t, keys, 2)
	assert.True(t, keys["chart-old"])
}
