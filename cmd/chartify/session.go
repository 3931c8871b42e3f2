package chartify

import (
	"github.com/arthur-debert/chartify/pkg/config"
	"github.com/arthur-debert/chartify/pkg/controller"
	"github.com/arthur-debert/chartify/pkg/dom"
	"github.com/arthur-debert/chartify/pkg/engine"
	"github.com/arthur-debert/chartify/pkg/output"
	"github.com/arthur-debert/chartify/pkg/registry"
	"github.com/arthur-debert/chartify/pkg/script"
)

// session wires one page to a fresh registry, engine and controller
type session struct {
	doc  *dom.Document
	reg  *registry.Instances
	ctrl *controller.Controller
}

func newSession(cfg *config.Config, doc *dom.Document) *session {
	reg := registry.NewInstances(registry.WithKeyPrefix(cfg.Identity.Prefix))
	ctrl := controller.New(reg,
		engine.New(cfg.EngineSettings()),
		dom.NewBinder(doc, cfg.Identity.Attribute),
		controller.WithCreatePolicy(cfg.CreatePolicy()))
	return &session{doc: doc, reg: reg, ctrl: ctrl}
}

func (s *session) instances() []output.Instance {
	return output.Instances(s.reg.All())
}

// summarize flattens a script report for printing
func summarize(page, scriptPath string, report script.Report, instances []output.Instance) output.RunReport {
	run := output.RunReport{
		Page:      page,
		Script:    scriptPath,
		Steps:     make([]output.StepSummary, 0, len(report.Steps)),
		Instances: instances,
	}
	for _, step := range report.Steps {
		action, err := step.Step.ToAction("")
		name := step.Step.Action
		if err == nil {
			name = action.Name()
		}
		summary := output.StepSummary{
			Step:   step.Index + 1,
			Select: step.Step.Select,
			Action: name,
		}
		if step.Err != nil {
			summary.Errors = append(summary.Errors, step.Err.Error())
		}
		for _, res := range step.Batch.Results {
			if res.Err != nil {
				summary.Errors = append(summary.Errors, res.Err.Error())
				continue
			}
			summary.Outcomes = append(summary.Outcomes, string(res.Result.Outcome))
		}
		run.Steps = append(run.Steps, summary)
	}
	return run
}
