package approval

import "context"

const (
	RoleCourier = "courier"
	RoleSenior  = "senior"
	RoleAdmin   = "admin"
)

// Principal is a user identity that can request or decide.
type Principal struct {
	ID     int64
	ChatID int64
	Role   string
	Branch string
}

// Directory lists potential approvers. Backed by the user-record service.
type Directory interface {
	Admins(ctx context.Context) ([]Principal, error)
	SeniorsByBranch(ctx context.Context, branch string) ([]Principal, error)
}

// relevantBranches returns the branches whose seniors may decide the request.
// A branch change concerns both the current and the requested branch, so
// seniors of either may decide.
func relevantBranches(kind Kind, p Payload) []string {
	if kind == KindBranchChange && p.PrevBranch != "" && p.PrevBranch != p.Branch {
		return []string{p.Branch, p.PrevBranch}
	}
	return []string{p.Branch}
}

// Authorized reports whether actor may decide a request of the given kind and
// payload. Admins always may. Seniors may only when they hold a branch
// assignment matching one of the request's relevant branches; a senior with
// no branch must escalate to an admin.
func Authorized(kind Kind, p Payload, actor Principal) bool {
	if actor.Role == RoleAdmin {
		return true
	}
	if actor.Role != RoleSenior || actor.Branch == "" {
		return false
	}
	for _, b := range relevantBranches(kind, p) {
		if actor.Branch == b {
			return true
		}
	}
	return false
}

// recipients computes the fanout set: admins plus seniors of the relevant
// branches, deduplicated by id, never the requester itself.
func (e *Engine) recipients(ctx context.Context, kind Kind, p Payload) ([]Principal, error) {
	admins, err := e.dir.Admins(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{})
	var out []Principal
	add := func(list []Principal) {
		for _, pr := range list {
			if pr.ID == p.SubjectID {
				continue
			}
			if _, ok := seen[pr.ID]; ok {
				continue
			}
			seen[pr.ID] = struct{}{}
			out = append(out, pr)
		}
	}
	add(admins)
	for _, b := range relevantBranches(kind, p) {
		seniors, err := e.dir.SeniorsByBranch(ctx, b)
		if err != nil {
			return nil, err
		}
		add(seniors)
	}
	return out, nil
}
