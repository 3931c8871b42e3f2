package chartify

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/output"
	"github.com/arthur-debert/chartify/pkg/testutil"
	"github.com/arthur-debert/chartify/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<html><body>
  <canvas id="sales"></canvas>
  <canvas id="visits"></canvas>
  <p id="note"></p>
</body></html>`

const testScript = `
steps:
  - select: "#sales"
    type: bar
    data: {q1: [3, 5, 2]}
    options: {title: Sales}
  - select: "#visits"
    type: line
    data: {daily: [1, 4, 2, 8]}
  - select: "#visits"
    action: update
    data: {daily: [2, 2]}
`

// setupEnv isolates config and log files and writes the page and script
func setupEnv(t *testing.T) (env *testutil.TestEnvironment, page, scriptPath string) {
	t.Helper()
	env = testutil.NewTestEnvironment(t)
	page = env.WriteFile("page.html", testPage)
	scriptPath = env.WriteFile("run.yaml", testScript)
	return env, page, scriptPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunPrintsFramesAndWritesPage(t *testing.T) {
	env, page, scriptPath := setupEnv(t)

	out, err := execute(t, "run", page, scriptPath, "--out", env.Path("out.html"))
	require.NoError(t, err)
	assert.Contains(t, out, "(bar)")
	assert.Contains(t, out, "(line)")
	assert.Contains(t, out, "Sales")

	written := env.ReadFile("out.html")
	assert.Contains(t, written, `data-chartify-id="chart-`)
	assert.Contains(t, written, `data-chartify-rendered="true"`)
}

func TestRunJSON(t *testing.T) {
	_, page, scriptPath := setupEnv(t)

	out, err := execute(t, "run", page, scriptPath, "--format", "json")
	require.NoError(t, err)

	var run output.RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &run))
	require.Len(t, run.Steps, 3)
	assert.Equal(t, []string{"created"}, run.Steps[0].Outcomes)
	assert.Equal(t, []string{"updated"}, run.Steps[2].Outcomes)
	require.Len(t, run.Instances, 2)
	assert.Equal(t, 0, run.Failed())
}

func TestRunReport(t *testing.T) {
	_, page, scriptPath := setupEnv(t)

	out, err := execute(t, "run", page, scriptPath, "--report")
	require.NoError(t, err)
	assert.Contains(t, out, "chartify run")
	assert.Contains(t, out, "#sales")
}

func TestRunReportsFailedSteps(t *testing.T) {
	env, page, _ := setupEnv(t)
	scriptPath := env.WriteFile("bad.toml", `
[[steps]]
select = "#note"
type = "bar"

[[steps]]
select = "#sales"
type = "pie"
[steps.data]
a = [1, 3]
`)

	out, err := execute(t, "run", page, scriptPath, "--format", "json")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
	assert.Contains(t, err.Error(), "1 of 2 steps failed")

	var run output.RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &run))
	assert.Equal(t, 1, run.Failed())
	assert.Len(t, run.Instances, 1)
}

func TestRunMissingInputs(t *testing.T) {
	env, page, scriptPath := setupEnv(t)

	_, err := execute(t, "run", env.Path("nope.html"), scriptPath)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDocumentLoad))

	_, err = execute(t, "run", page, env.Path("nope.yaml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptParse))

	_, err = execute(t, "run", page)
	assert.Error(t, err)
}

func TestRunHonoursConfigFile(t *testing.T) {
	env, page, scriptPath := setupEnv(t)
	cfgFile := env.WriteFile("custom.toml", "[identity]\nprefix = \"w-\"\nattribute = \"data-key\"\n")

	_, err := execute(t, "--config", cfgFile, "run", page, scriptPath, "--out", env.Path("out.html"))
	require.NoError(t, err)
	assert.Contains(t, env.ReadFile("out.html"), `data-key="w-`)
}

func TestRender(t *testing.T) {
	_, page, _ := setupEnv(t)

	out, err := execute(t, "render", page, "--select", "#sales", "--type", "horizontalBar",
		"--data", "q1=3,5", "--data", "q2=1", "--title", "Quarterly", "--format", "json")
	require.NoError(t, err)

	var rows []output.Instance
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "horizontalBar", rows[0].Type)
	assert.Equal(t, []string{"q1", "q2"}, rows[0].Series)
	assert.Equal(t, 3, rows[0].Points)
	assert.Contains(t, rows[0].Frame, "Quarterly")
}

func TestRenderErrors(t *testing.T) {
	_, page, _ := setupEnv(t)

	_, err := execute(t, "render", page, "--data", "broken")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = execute(t, "render", page, "--type", "radar", "--data", "a=1")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
	assert.Contains(t, err.Error(), "2 of 2 elements failed")
}

func TestFlagSpec(t *testing.T) {
	spec, err := flagSpec("pie", []string{"a=1,2.5", "empty="}, "Share", map[string]string{"width": "20"})
	require.NoError(t, err)

	assert.Equal(t, "pie", spec.Type)
	data := spec.Data.Resolve()
	assert.Equal(t, []float64{1, 2.5}, data["a"])
	assert.Contains(t, data, "empty")
	assert.Empty(t, data["empty"])
	assert.Equal(t, types.Options{"title": "Share", "width": "20"}, spec.Options.Resolve())

	_, err = flagSpec("bar", []string{"a=x"}, "", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = flagSpec("line", []string{"a=1,Inf"}, "", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestActions(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "actions")
	require.NoError(t, err)
	for _, token := range types.Tokens() {
		assert.Contains(t, out, token)
	}

	out, err = execute(t, "actions", "--format", "json")
	require.NoError(t, err)
	var tokens []string
	require.NoError(t, json.Unmarshal([]byte(out), &tokens))
	assert.Equal(t, types.Tokens(), tokens)
}

func TestConfigCommands(t *testing.T) {
	env, _, _ := setupEnv(t)

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[engine]")
	assert.Contains(t, out, "create_on_existing")

	target := filepath.Join(env.ConfigDir, "config.toml")
	out, err = execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, target)
	assert.FileExists(t, target)

	_, err = execute(t, "config", "init")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	_, err = execute(t, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestVersionAndCompletion(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "chartify version dev")

	out, err = execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "chartify")
}

func TestNoCommand(t *testing.T) {
	setupEnv(t)
	_, err := execute(t)
	assert.Error(t, err)
}

func TestGenManPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenManPage(&buf))
	assert.Contains(t, buf.String(), "CHARTIFY")
	assert.Contains(t, buf.String(), "run")
}
