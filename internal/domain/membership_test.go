package domain

import "testing"

func TestRoleRankOrder(t *testing.T) {
	if !(RoleViewer.Rank() < RoleMember.Rank() &&
		RoleMember.Rank() < RoleAdmin.Rank() &&
		RoleAdmin.Rank() < RoleOwner.Rank()) {
		t.Fatalf("rank order broken: viewer=%d member=%d admin=%d owner=%d",
			RoleViewer.Rank(), RoleMember.Rank(), RoleAdmin.Rank(), RoleOwner.Rank())
	}
}

func TestRoleUnknownRanksZero(t *testing.T) {
	if got := Role("SUPERUSER").Rank(); got != 0 {
		t.Errorf("unknown role rank = %d, want 0", got)
	}
	if Role("").Valid() {
		t.Error("empty role should not be valid")
	}
	if Role("owner").Valid() {
		t.Error("lowercase role should not be valid; roles are case sensitive")
	}
}

func TestRoleOutranks(t *testing.T) {
	cases := []struct {
		a, b Role
		want bool
	}{
		{RoleOwner, RoleAdmin, true},
		{RoleAdmin, RoleMember, true},
		{RoleMember, RoleViewer, true},
		{RoleAdmin, RoleAdmin, false},
		{RoleViewer, RoleOwner, false},
		{RoleOwner, Role("UNKNOWN"), true},
		{Role("UNKNOWN"), RoleViewer, false},
	}
	for _, c := range cases {
		if got := c.a.Outranks(c.b); got != c.want {
			t.Errorf("%s.Outranks(%s) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestPriorityValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical} {
		if !p.Valid() {
			t.Errorf("%s should be valid", p)
		}
	}
	if Priority("URGENT").Valid() {
		t.Error("URGENT should not be valid")
	}
}

func TestProjectStatusValid(t *testing.T) {
	if !ProjectActive.Valid() || !ProjectArchived.Valid() {
		t.Error("defined statuses should be valid")
	}
	if ProjectStatus("PAUSED").Valid() {
		t.Error("PAUSED should not be valid")
	}
}
