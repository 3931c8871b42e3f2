package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/logging"
	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// Printer writes instances, frames and reports in one format
type Printer struct {
	w      io.Writer
	format Format
	logger zerolog.Logger
}

// NewPrinter creates a printer. FormatAuto is treated as text; resolve it
// against the destination first with Format.Resolve.
func NewPrinter(w io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = FormatText
	}
	return &Printer{
		w:      w,
		format: format,
		logger: logging.GetLogger("output"),
	}
}

// Format returns the format the printer writes
func (p *Printer) Format() Format {
	return p.format
}

// Instances prints one row per live chart
func (p *Printer) Instances(rows []Instance) error {
	if p.format == FormatJSON {
		return p.json(rows)
	}
	if len(rows) == 0 {
		return p.write(pterm.FgGray.Sprint(MsgNoInstances) + "\n")
	}

	data := pterm.TableData{{"KEY", "TYPE", "SERIES", "POINTS"}}
	for _, row := range rows {
		data = append(data, []string{row.Key, row.Type, strings.Join(row.Series, ", "), strconv.Itoa(row.Points)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render instance table")
	}
	return p.write(table + "\n")
}

// Frames prints the rendered chart of every instance
func (p *Printer) Frames(rows []Instance) error {
	if p.format == FormatJSON {
		return p.json(rows)
	}
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pterm.Bold.Sprintf("%s (%s)", row.Key, row.Type))
		b.WriteString("\n")
		b.WriteString(row.Frame)
		b.WriteString("\n")
	}
	return p.write(b.String())
}

// Markdown renders a markdown document. Terminal output goes through
// glamour; text output uses glamour's no-tty style; JSON wraps the source.
func (p *Printer) Markdown(content string) error {
	switch p.format {
	case FormatJSON:
		return p.json(map[string]string{"report": content})
	case FormatTerminal:
		return p.write(renderMarkdown(content, glamour.WithAutoStyle()))
	default:
		return p.write(renderMarkdown(content, glamour.WithStandardStyle("notty")))
	}
}

// Message prints a one-line message
func (p *Printer) Message(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if p.format == FormatJSON {
		return p.json(map[string]string{"message": msg})
	}
	return p.write(msg + "\n")
}

// JSON encodes any value regardless of format
func (p *Printer) JSON(v interface{}) error {
	return p.json(v)
}

func (p *Printer) json(v interface{}) error {
	encoder := json.NewEncoder(p.w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode JSON output")
	}
	return nil
}

func (p *Printer) write(s string) error {
	if p.format == FormatText {
		s = pterm.RemoveColorFromString(s)
	}
	if _, err := io.WriteString(p.w, s); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to write output")
	}
	return nil
}

// renderMarkdown falls back to the source when glamour cannot render it
func renderMarkdown(content string, style glamour.TermRendererOption) string {
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
