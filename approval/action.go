package approval

import (
	"strconv"
	"strings"
)

// Decision is the approver's choice on a request.
type Decision string

const (
	Approve Decision = "approve"
	Reject  Decision = "reject"
)

// Action is a decision button, parsed once at the callback boundary.
// Fingerprint is set for branch-change actions: the requested branch id the
// button was rendered for, checked against the live payload to detect a
// button that outlived its request.
type Action struct {
	Kind        Kind
	Decision    Decision
	SubjectID   int64
	Fingerprint string
}

// Encode renders the action as callback data. Wire formats:
//
//	registration:   approve_<id> / reject_<id>
//	name change:    settings:name:approve:<id>
//	branch change:  settings:branch:approve:<id>:<branch>
func (a Action) Encode() string {
	id := strconv.FormatInt(a.SubjectID, 10)
	switch a.Kind {
	case KindRegistration:
		return string(a.Decision) + "_" + id
	case KindNameChange:
		return "settings:name:" + string(a.Decision) + ":" + id
	case KindBranchChange:
		return "settings:branch:" + string(a.Decision) + ":" + id + ":" + a.Fingerprint
	}
	return ""
}

// ParseAction decodes callback data into an Action. ok=false when the data is
// not a decision action (other callbacks, e.g. menu buttons, fall through).
func ParseAction(data string) (Action, bool) {
	switch {
	case strings.HasPrefix(data, "approve_"), strings.HasPrefix(data, "reject_"):
		dec, rest, _ := strings.Cut(data, "_")
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return Action{}, false
		}
		return Action{Kind: KindRegistration, Decision: Decision(dec), SubjectID: id}, true

	case strings.HasPrefix(data, "settings:name:"):
		parts := strings.Split(data, ":")
		if len(parts) != 4 {
			return Action{}, false
		}
		dec := Decision(parts[2])
		if dec != Approve && dec != Reject {
			return Action{}, false
		}
		id, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil {
			return Action{}, false
		}
		return Action{Kind: KindNameChange, Decision: dec, SubjectID: id}, true

	case strings.HasPrefix(data, "settings:branch:"):
		parts := strings.Split(data, ":")
		if len(parts) != 5 {
			return Action{}, false
		}
		dec := Decision(parts[2])
		if dec != Approve && dec != Reject {
			return Action{}, false
		}
		id, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil {
			return Action{}, false
		}
		return Action{Kind: KindBranchChange, Decision: dec, SubjectID: id, Fingerprint: parts[4]}, true
	}
	return Action{}, false
}
