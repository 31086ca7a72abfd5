package auth

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient permissions")
)

// RequireRole is the hierarchical role guard. It must run before the
// protected operation; failure means nothing else is touched.
func RequireRole(identity Identity, required Role) error {
	if identity.UserID == "" {
		return ErrUnauthenticated
	}
	if !identity.Role.Satisfies(required) {
		return ErrForbidden
	}
	return nil
}

// RequireOwnership is the resource-ownership guard: HR and admin callers
// pass unconditionally, everyone else only for their own records.
func RequireOwnership(identity Identity, ownerID string) error {
	if identity.UserID == "" {
		return ErrUnauthenticated
	}
	if identity.Role == RoleHR || identity.Role == RoleAdmin {
		return nil
	}
	if ownerID == "" || ownerID != identity.UserID {
		return ErrForbidden
	}
	return nil
}
