package controller

import (
	"fmt"

	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/types"
)

// Outcome names the transition an Apply call performed
type Outcome string

const (
	// OutcomeCreated means a new chart was created on an absent key
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means the live chart was redrawn in place with new data
	OutcomeUpdated Outcome = "updated"
	// OutcomeReplaced means the live chart was destroyed and rebuilt
	OutcomeReplaced Outcome = "replaced"
	// OutcomeDestroyed means the live chart was torn down
	OutcomeDestroyed Outcome = "destroyed"
	// OutcomeIgnored means a create hit a live chart under the ignore policy
	OutcomeIgnored Outcome = "ignored"
	// OutcomeLookup means handles were looked up without mutation
	OutcomeLookup Outcome = "lookup"
	// OutcomeNoop means nothing happened
	OutcomeNoop Outcome = "noop"
)

// Result describes what Apply did
type Result struct {
	Key     string
	Outcome Outcome

	// Handle is the live handle after the call, nil when none exists
	Handle types.Handle

	// Instances is set by whole-registry lookups
	Instances map[string]types.Handle
}

// ElementResult is one element's share of a batch
type ElementResult struct {
	Element types.Element
	Result  Result
	Err     error
}

// Batch collects per-element results of ApplyAll
type Batch struct {
	Results []ElementResult
}

// Failed returns the results that carry an error
func (b Batch) Failed() []ElementResult {
	var failed []ElementResult
	for _, r := range b.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Err joins every element failure, or returns nil when all succeeded
func (b Batch) Err() error {
	var errs []error
	for _, r := range b.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", describe(r.Element), r.Err))
	}
	return errors.Join(errs...)
}

func describe(el types.Element) string {
	if el == nil {
		return "<nil>"
	}
	return el.Describe()
}
