package models

import "strings"

type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionApprove
	ActionReject
)

// Action is an admin decision decoded from a callback payload. Payloads are
// "approve_<id>" or "reject_<id>"; anything else decodes to ActionUnknown
// and is treated as a no-op.
type Action struct {
	Kind   ActionKind
	UserID string
}

// ParseAction decodes a callback payload once at the boundary so the rest of
// the flow never touches the raw string.
func ParseAction(data string) Action {
	if id, ok := strings.CutPrefix(data, "approve_"); ok && id != "" {
		return Action{Kind: ActionApprove, UserID: id}
	}
	if id, ok := strings.CutPrefix(data, "reject_"); ok && id != "" {
		return Action{Kind: ActionReject, UserID: id}
	}
	return Action{Kind: ActionUnknown}
}

// Status returns the user status this action transitions to.
func (a Action) Status() string {
	switch a.Kind {
	case ActionApprove:
		return StatusApproved
	case ActionReject:
		return StatusRejected
	default:
		return ""
	}
}
