package authz

import (
	"testing"

	"careerhub/internal/database"
	"careerhub/internal/httperr"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name       string
		callerID   uint
		callerRole string
		ownerID    uint
		allowed    bool
		reason     string
	}{
		{"owner", 1, database.RoleUser, 1, true, ReasonOwner},
		{"admin on foreign record", 2, database.RoleAdmin, 1, true, ReasonAdmin},
		{"stranger", 3, database.RoleUser, 1, false, ReasonNotOwner},
		{"empty role stranger", 3, "", 1, false, ReasonNotOwner},
		{"admin who is also owner", 1, database.RoleAdmin, 1, true, ReasonAdmin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(tc.callerID, tc.callerRole, tc.ownerID)
			if d.Allowed != tc.allowed {
				t.Fatalf("allowed: got %v, want %v", d.Allowed, tc.allowed)
			}
			if d.Reason != tc.reason {
				t.Fatalf("reason: got %q, want %q", d.Reason, tc.reason)
			}
		})
	}
}

func TestAuthorizeReturnsAuthorizationKind(t *testing.T) {
	err := Authorize(3, database.RoleUser, 1)
	if err == nil {
		t.Fatal("expected authorization error")
	}
	if httperr.KindOf(err) != httperr.KindAuthorization {
		t.Fatalf("expected authorization kind, got %v", httperr.KindOf(err))
	}

	if err := Authorize(1, database.RoleUser, 1); err != nil {
		t.Fatalf("owner must pass: %v", err)
	}
}
