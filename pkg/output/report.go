package output

import (
	"fmt"
	"strings"
)

// StepSummary is one line of a run report
type StepSummary struct {
	Step     int      `json:"step"`
	Select   string   `json:"select,omitempty"`
	Action   string   `json:"action"`
	Outcomes []string `json:"outcomes,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// RunReport is everything a run produced
type RunReport struct {
	Page      string        `json:"page"`
	Script    string        `json:"script"`
	Steps     []StepSummary `json:"steps"`
	Instances []Instance    `json:"instances"`
}

// Failed counts steps with errors
func (r RunReport) Failed() int {
	n := 0
	for _, s := range r.Steps {
		if len(s.Errors) > 0 {
			n++
		}
	}
	return n
}

// Markdown renders the report as a markdown document
func (r RunReport) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# chartify run\n\n")
	fmt.Fprintf(&b, "- **page:** `%s`\n", r.Page)
	fmt.Fprintf(&b, "- **script:** `%s`\n", r.Script)
	fmt.Fprintf(&b, "- **steps:** %d (%d failed)\n\n", len(r.Steps), r.Failed())

	b.WriteString("## Steps\n\n")
	b.WriteString("| # | select | action | result |\n")
	b.WriteString("|---|--------|--------|--------|\n")
	for _, s := range r.Steps {
		result := strings.Join(s.Outcomes, ", ")
		if len(s.Errors) > 0 {
			result = "**failed**"
		}
		if result == "" {
			result = "-"
		}
		fmt.Fprintf(&b, "| %d | `%s` | %s | %s |\n", s.Step, escapeCell(s.Select), s.Action, result)
	}

	if r.Failed() > 0 {
		b.WriteString("\n## Errors\n\n")
		for _, s := range r.Steps {
			for _, e := range s.Errors {
				fmt.Fprintf(&b, "- step %d: %s\n", s.Step, e)
			}
		}
	}

	b.WriteString("\n## Instances\n\n")
	if len(r.Instances) == 0 {
		b.WriteString(MsgNoInstances + "\n")
		return b.String()
	}
	for _, inst := range r.Instances {
		fmt.Fprintf(&b, "- `%s` %s, %d series, %d points\n", inst.Key, inst.Type, len(inst.Series), inst.Points)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
