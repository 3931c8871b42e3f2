package chartify

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Drive chart lifecycles on XML and XHTML pages"
	MsgRunShort        = "Apply a chart script to a page"
	MsgRenderShort     = "Create charts on a page from flags"
	MsgActionsShort    = "List the accepted action tokens"
	MsgConfigShort     = "Show or initialize configuration"
	MsgConfigShowShort = "Print the effective configuration"
	MsgConfigInitShort = "Write a starter config file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgPageWritten    = "Wrote %s"
	MsgConfigWritten  = "Wrote starter config to %s"
	MsgConfigExists   = "config file %s already exists (use --force to overwrite)"
	MsgStepsFailed    = "%d of %d steps failed"
	MsgElementsFailed = "%d of %d elements failed"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Config file (default is $XDG_CONFIG_HOME/chartify/config.toml)"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagOut     = "Write the updated page to this file"
	MsgFlagReport  = "Print a markdown report instead of chart frames"
	MsgFlagSelect  = "Elements to chart (#id, .class, tag or etree path)"
	MsgFlagType    = "Chart type"
	MsgFlagData    = "Series as name=v1,v2,... (repeatable)"
	MsgFlagTitle   = "Chart title"
	MsgFlagOption  = "Engine option as key=value (repeatable)"
	MsgFlagForce   = "Overwrite an existing config file"
)

// Long messages
const (
	MsgRootLong = `chartify binds charts to elements of a page. Each element gets a stable
instance key, stored in an attribute, and lives through create, update and
destroy actions. Charts are rendered as text into <canvas> elements.`

	MsgRunLong = `Run applies each step of a YAML or TOML script to the page, in order.
A failing step is reported and the remaining steps still run.`

	MsgRenderLong = `Render creates (or updates) a chart on every element matching --select
and prints the rendered frames.

  chartify render page.html --select '#sales' --type bar \
    --data q1=3,5,2 --data q2=1,4,6 --title Sales`
)

// actionDescriptions document the action tokens for the actions command
var actionDescriptions = map[string]string{
	"create":       "create a chart; on a live element the create policy decides",
	"update":       "update the live chart, creating it when absent",
	"destroy":      "tear down the live chart",
	"instance":     "look up the chart bound to an element",
	"getInstance":  "alias of instance",
	"getInstances": "list every live chart",
}
