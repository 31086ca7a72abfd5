package auth

import "testing"

func TestRoleHierarchy(t *testing.T) {
	ordered := []Role{RoleEmployee, RoleManager, RoleHR, RoleAdmin}

	for i, lower := range ordered {
		for j, higher := range ordered {
			identity := Identity{UserID: "u1", Role: lower}
			err := RequireRole(identity, higher)
			if i >= j && err != nil {
				t.Fatalf("role %s should satisfy %s, got %v", lower, higher, err)
			}
			if i < j && err != ErrForbidden {
				t.Fatalf("role %s should be forbidden for %s, got %v", lower, higher, err)
			}
		}
	}
}

func TestRequireRoleUnknownRole(t *testing.T) {
	identity := Identity{UserID: "u1", Role: ParseRole("superuser")}
	for _, required := range []Role{RoleEmployee, RoleManager, RoleHR, RoleAdmin} {
		if err := RequireRole(identity, required); err != ErrForbidden {
			t.Fatalf("unknown role must fail %s, got %v", required, err)
		}
	}
}

func TestRequireRoleNoIdentity(t *testing.T) {
	if err := RequireRole(Identity{}, RoleEmployee); err != ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireOwnership(t *testing.T) {
	cases := []struct {
		name    string
		role    Role
		caller  string
		owner   string
		wantErr error
	}{
		{"self access", RoleEmployee, "e1", "e1", nil},
		{"other employee denied", RoleEmployee, "e1", "e2", ErrForbidden},
		{"manager denied for other", RoleManager, "e1", "e2", ErrForbidden},
		{"hr override", RoleHR, "e1", "e2", nil},
		{"admin override", RoleAdmin, "e1", "e2", nil},
		{"missing owner denied", RoleEmployee, "e1", "", ErrForbidden},
	}

	for _, tc := range cases {
		err := RequireOwnership(Identity{UserID: tc.caller, Role: tc.role}, tc.owner)
		if err != tc.wantErr {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestParseRoleRoundTrip(t *testing.T) {
	for _, role := range []Role{RoleEmployee, RoleManager, RoleHR, RoleAdmin} {
		if parsed := ParseRole(role.String()); parsed != role {
			t.Fatalf("round trip failed for %s: got %s", role, parsed)
		}
	}
	if ParseRole("unknown") != RoleUnknown {
		t.Fatal("expected RoleUnknown for unknown name")
	}
}
