package script

import (
	"github.com/arthur-debert/chartify/pkg/controller"
	"github.com/arthur-debert/chartify/pkg/dom"
	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/logging"
	"github.com/arthur-debert/chartify/pkg/types"
	"github.com/rs/zerolog"
)

// StepResult is the outcome of one step
type StepResult struct {
	Index int
	Step  Step
	Batch controller.Batch
	// Err is set when the step could not run at all (bad selector, bad data)
	Err error
}

// Failed reports whether the step or any of its elements failed
func (r StepResult) Failed() bool {
	return r.Err != nil || r.Batch.Err() != nil
}

// Report collects the results of a run
type Report struct {
	Steps []StepResult
}

// Failed returns the steps with errors
func (r Report) Failed() []StepResult {
	var failed []StepResult
	for _, step := range r.Steps {
		if step.Failed() {
			failed = append(failed, step)
		}
	}
	return failed
}

// Err joins every step error, or returns nil
func (r Report) Err() error {
	var errs []error
	for _, step := range r.Failed() {
		err := step.Err
		if err == nil {
			err = step.Batch.Err()
		}
		errs = append(errs, errors.Wrapf(err, errors.GetErrorCode(err), "step %d (%s)", step.Index+1, step.Step.Select))
	}
	return errors.Join(errs...)
}

// Runner applies scripts to a page through a controller
type Runner struct {
	ctrl   *controller.Controller
	doc    *dom.Document
	logger zerolog.Logger
}

// NewRunner creates a runner for one page
func NewRunner(ctrl *controller.Controller, doc *dom.Document) *Runner {
	return &Runner{
		ctrl:   ctrl,
		doc:    doc,
		logger: logging.GetLogger("script"),
	}
}

// Run applies every step in order. A failing step never stops the next one.
func (r *Runner) Run(s *Script) Report {
	done := logging.LogOperationStart(r.logger.With().Int("steps", len(s.Steps)).Logger(), "run")
	defer done()

	report := Report{Steps: make([]StepResult, 0, len(s.Steps))}
	for i, step := range s.Steps {
		res := r.runStep(i, step, s.BaseDir)
		if res.Failed() {
			r.logger.Warn().Int("step", i+1).Str("select", step.Select).Msg("Step failed")
		}
		report.Steps = append(report.Steps, res)
	}
	return report
}

func (r *Runner) runStep(i int, step Step, baseDir string) StepResult {
	res := StepResult{Index: i, Step: step}

	action, err := step.ToAction(baseDir)
	if err != nil {
		res.Err = err
		return res
	}

	if step.global() {
		result, err := r.ctrl.Apply(nil, action)
		res.Batch = controller.Batch{Results: []controller.ElementResult{{Result: result, Err: err}}}
		return res
	}

	matches, err := r.doc.Select(step.Select)
	if err != nil {
		res.Err = err
		return res
	}

	elements := make([]types.Element, len(matches))
	for j, el := range matches {
		elements[j] = el
	}
	r.logger.Debug().
		Str("select", step.Select).
		Str("action", action.Name()).
		Int("elements", len(elements)).
		Msgf("Applying step %d", i+1)

	res.Batch = r.ctrl.ApplyAll(elements, action)
	return res
}
