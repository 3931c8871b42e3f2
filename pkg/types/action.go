package types

import "strings"

// Action tokens accepted at the string boundary (CLI, scripts)
const (
	TokenCreate       = "create"
	TokenUpdate       = "update"
	TokenDestroy      = "destroy"
	TokenInstance     = "instance"
	TokenGetInstance  = "getInstance"
	TokenGetInstances = "getInstances"
)

// Action is what the controller is asked to do with an element.
// The set of implementations is closed.
type Action interface {
	Name() string
	isAction()
}

// Configure is a bare spec: create the chart, or update it when live
type Configure struct{ Spec Spec }

// Create creates a chart; on a live element the create policy decides
type Create struct{ Spec Spec }

// Update updates a live chart, creating it when absent
type Update struct{ Spec Spec }

// Destroy tears down a live chart
type Destroy struct{}

// GetInstance looks up the handle bound to an element
type GetInstance struct{}

// GetAllInstances returns every live handle
type GetAllInstances struct{}

// Unrecognized carries a token no action matched; applying it is a no-op
type Unrecognized struct{ Token string }

func (Configure) Name() string       { return "configure" }
func (Create) Name() string          { return TokenCreate }
func (Update) Name() string          { return TokenUpdate }
func (Destroy) Name() string         { return TokenDestroy }
func (GetInstance) Name() string     { return TokenGetInstance }
func (GetAllInstances) Name() string { return TokenGetInstances }
func (u Unrecognized) Name() string  { return u.Token }

func (Configure) isAction()       {}
func (Create) isAction()          {}
func (Update) isAction()          {}
func (Destroy) isAction()         {}
func (GetInstance) isAction()     {}
func (GetAllInstances) isAction() {}
func (Unrecognized) isAction()    {}

// ParseAction resolves a token into an Action once, at the call boundary.
// An empty token means the spec alone was given. Unknown tokens yield
// Unrecognized rather than an error.
func ParseAction(token string, spec Spec) Action {
	switch strings.TrimSpace(token) {
	case "":
		return Configure{Spec: spec}
	case TokenCreate:
		return Create{Spec: spec}
	case TokenUpdate:
		return Update{Spec: spec}
	case TokenDestroy:
		return Destroy{}
	case TokenInstance, TokenGetInstance:
		return GetInstance{}
	case TokenGetInstances:
		return GetAllInstances{}
	default:
		return Unrecognized{Token: token}
	}
}

// Tokens lists the accepted action tokens
func Tokens() []string {
	return []string{
		TokenCreate,
		TokenUpdate,
		TokenDestroy,
		TokenInstance,
		TokenGetInstance,
		TokenGetInstances,
	}
}
