package approval

import "testing"

func TestAuthorized(t *testing.T) {
	branchChange := Payload{SubjectID: 1, Branch: "surgut_2", PrevBranch: "surgut_1"}
	nameChange := Payload{SubjectID: 1, Branch: "surgut_1"}
	registration := Payload{SubjectID: 1, Branch: "surgut_1"}

	tests := []struct {
		name  string
		kind  Kind
		p     Payload
		actor Principal
		want  bool
	}{
		{"admin any branch", KindRegistration, registration, Principal{ID: 9, Role: RoleAdmin}, true},
		{"admin on branch change", KindBranchChange, branchChange, Principal{ID: 9, Role: RoleAdmin, Branch: "surgut_3"}, true},
		{"senior of target branch", KindRegistration, registration, Principal{ID: 9, Role: RoleSenior, Branch: "surgut_1"}, true},
		{"senior of other branch", KindRegistration, registration, Principal{ID: 9, Role: RoleSenior, Branch: "surgut_2"}, false},
		{"senior without branch", KindRegistration, registration, Principal{ID: 9, Role: RoleSenior}, false},
		{"courier never", KindRegistration, registration, Principal{ID: 9, Role: RoleCourier, Branch: "surgut_1"}, false},
		{"name change: senior of recorded branch", KindNameChange, nameChange, Principal{ID: 9, Role: RoleSenior, Branch: "surgut_1"}, true},
		{"name change: senior of other branch", KindNameChange, nameChange, Principal{ID: 9, Role: RoleSenior, Branch: "surgut_2"}, false},
		{"branch change: senior of current branch", KindBranchChange, branchChange, Principal{ID: 9, Role: RoleSenior, Branch: "surgut_1"}, true},
		{"branch change: senior of requested branch", KindBranchChange, branchChange, Principal{ID: 9, Role: RoleSenior, Branch: "surgut_2"}, true},
		{"branch change: senior of third branch", KindBranchChange, branchChange, Principal{ID: 9, Role: RoleSenior, Branch: "surgut_3"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorized(tt.kind, tt.p, tt.actor); got != tt.want {
				t.Errorf("Authorized(%s, %+v) = %v, want %v", tt.kind, tt.actor, got, tt.want)
			}
		})
	}
}

func TestRelevantBranches(t *testing.T) {
	p := Payload{Branch: "surgut_2", PrevBranch: "surgut_1"}
	got := relevantBranches(KindBranchChange, p)
	if len(got) != 2 || got[0] != "surgut_2" || got[1] != "surgut_1" {
		t.Errorf("relevantBranches(branch change) = %v, want [surgut_2 surgut_1]", got)
	}

	same := Payload{Branch: "surgut_1", PrevBranch: "surgut_1"}
	if got := relevantBranches(KindBranchChange, same); len(got) != 1 {
		t.Errorf("same-branch change should have one relevant branch, got %v", got)
	}

	if got := relevantBranches(KindNameChange, Payload{Branch: "surgut_1"}); len(got) != 1 || got[0] != "surgut_1" {
		t.Errorf("relevantBranches(name change) = %v, want [surgut_1]", got)
	}
}
