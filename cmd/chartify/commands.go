package chartify

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/chartify/pkg/dom"
	"github.com/arthur-debert/chartify/pkg/engine"
	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/output"
	"github.com/arthur-debert/chartify/pkg/script"
	"github.com/arthur-debert/chartify/pkg/types"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		out    string
		report bool
	)

	cmd := &cobra.Command{
		Use:     "run <page> <script>",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pagePath, scriptPath := args[0], args[1]

			doc, err := dom.Load(pagePath)
			if err != nil {
				return err
			}
			s, err := script.Load(scriptPath)
			if err != nil {
				return err
			}

			sess := newSession(opts.cfg, doc)
			result := script.NewRunner(sess.ctrl, doc).Run(s)
			run := summarize(pagePath, scriptPath, result, sess.instances())

			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}
			switch {
			case p.Format() == output.FormatJSON:
				err = p.JSON(run)
			case report:
				err = p.Markdown(run.Markdown())
			default:
				err = p.Frames(run.Instances)
			}
			if err != nil {
				return err
			}

			if out != "" {
				if err := doc.Save(out); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), MsgPageWritten+"\n", out)
			}

			if err := result.Err(); err != nil {
				return errors.Wrapf(err, errors.GetErrorCode(err), MsgStepsFailed, len(result.Failed()), len(result.Steps))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)
	cmd.Flags().BoolVar(&report, "report", false, MsgFlagReport)
	return cmd
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		selector  string
		chartType string
		data      []string
		title     string
		options   map[string]string
		out       string
	)

	cmd := &cobra.Command{
		Use:     "render <page>",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := dom.Load(args[0])
			if err != nil {
				return err
			}

			spec, err := flagSpec(chartType, data, title, options)
			if err != nil {
				return err
			}

			matches, err := doc.Select(selector)
			if err != nil {
				return err
			}
			elements := make([]types.Element, len(matches))
			for i, el := range matches {
				elements[i] = el
			}

			sess := newSession(opts.cfg, doc)
			batch := sess.ctrl.ApplyAll(elements, types.Configure{Spec: spec})

			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}
			if err := p.Frames(sess.instances()); err != nil {
				return err
			}

			if out != "" {
				if err := doc.Save(out); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), MsgPageWritten+"\n", out)
			}

			if err := batch.Err(); err != nil {
				return errors.Wrapf(err, errors.GetErrorCode(err), MsgElementsFailed, len(batch.Failed()), len(batch.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&selector, "select", "s", "canvas", MsgFlagSelect)
	cmd.Flags().StringVarP(&chartType, "type", "t", "bar", MsgFlagType)
	cmd.Flags().StringArrayVarP(&data, "data", "d", nil, MsgFlagData)
	cmd.Flags().StringVar(&title, "title", "", MsgFlagTitle)
	cmd.Flags().StringToStringVar(&options, "option", nil, MsgFlagOption)
	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)

	_ = cmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return chartTypes(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// flagSpec builds a spec from render flags
func flagSpec(chartType string, data []string, title string, options map[string]string) (types.Spec, error) {
	raw := make(map[string]interface{}, len(data))
	for _, d := range data {
		name, values, ok := strings.Cut(d, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return types.Spec{}, errors.Newf(errors.ErrInvalidInput, "invalid --data %q (want name=v1,v2,...)", d)
		}
		var series []string
		if values != "" {
			series = strings.Split(values, ",")
		}
		raw[strings.TrimSpace(name)] = series
	}
	dataset, err := script.DecodeDataset(raw)
	if err != nil {
		return types.Spec{}, errors.Wrap(err, errors.ErrInvalidInput, "invalid --data values")
	}

	chartOpts := types.Options{}
	for k, v := range options {
		chartOpts[k] = v
	}
	if title != "" {
		chartOpts["title"] = title
	}

	return types.Spec{
		Type:    chartType,
		Data:    types.Literal(dataset),
		Options: types.Literal(chartOpts),
	}, nil
}

func newActionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "actions",
		Short:   MsgActionsShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}
			tokens := types.Tokens()
			if p.Format() == output.FormatJSON {
				return p.JSON(tokens)
			}
			var b strings.Builder
			for _, token := range tokens {
				fmt.Fprintf(&b, "  %-13s %s\n", token, actionDescriptions[token])
			}
			b.WriteString("\nA step without an action creates the chart, or updates it when live.")
			return p.Message("%s", b.String())
		},
	}
}

// chartTypes lists the built-in chart types for completion
func chartTypes() []string {
	return engine.New(engine.DefaultSettings()).Types()
}
