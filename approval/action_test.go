package approval

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		data string
		want Action
		ok   bool
	}{
		{"approve_123", Action{Kind: KindRegistration, Decision: Approve, SubjectID: 123}, true},
		{"reject_123", Action{Kind: KindRegistration, Decision: Reject, SubjectID: 123}, true},
		{"settings:name:approve:42", Action{Kind: KindNameChange, Decision: Approve, SubjectID: 42}, true},
		{"settings:name:reject:42", Action{Kind: KindNameChange, Decision: Reject, SubjectID: 42}, true},
		{"settings:branch:approve:42:surgut_2", Action{Kind: KindBranchChange, Decision: Approve, SubjectID: 42, Fingerprint: "surgut_2"}, true},
		{"settings:branch:reject:42:surgut_2", Action{Kind: KindBranchChange, Decision: Reject, SubjectID: 42, Fingerprint: "surgut_2"}, true},
		{"approve_abc", Action{}, false},
		{"settings:name:maybe:42", Action{}, false},
		{"settings:branch:approve:42", Action{}, false},
		{"settings:branch:approve:xx:surgut_2", Action{}, false},
		{"order_status:1:ready", Action{}, false},
		{"", Action{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseAction(tt.data)
		if ok != tt.ok {
			t.Errorf("ParseAction(%q) ok = %v, want %v", tt.data, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseAction(%q) = %+v, want %+v", tt.data, got, tt.want)
		}
	}
}

func TestActionEncodeRoundTrip(t *testing.T) {
	actions := []Action{
		{Kind: KindRegistration, Decision: Approve, SubjectID: 7},
		{Kind: KindRegistration, Decision: Reject, SubjectID: 7},
		{Kind: KindNameChange, Decision: Approve, SubjectID: 7},
		{Kind: KindBranchChange, Decision: Reject, SubjectID: 7, Fingerprint: "surgut_1"},
	}
	for _, a := range actions {
		got, ok := ParseAction(a.Encode())
		if !ok || got != a {
			t.Errorf("round trip %+v -> %q -> %+v (ok=%v)", a, a.Encode(), got, ok)
		}
	}
}
