package auth

// Role is the ordered privilege level carried in token claims. The numeric
// value is the rank used for hierarchical comparisons: a caller satisfies a
// requirement iff its rank is at least the required rank.
type Role int

const (
	RoleUnknown  Role = 0
	RoleEmployee Role = 1
	RoleManager  Role = 2
	RoleHR       Role = 3
	RoleAdmin    Role = 4
)

var roleNames = map[Role]string{
	RoleEmployee: "employee",
	RoleManager:  "manager",
	RoleHR:       "hr",
	RoleAdmin:    "admin",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole maps a claim or payload string to a Role. Anything unrecognized
// ranks as RoleUnknown, which fails every requirement.
func ParseRole(name string) Role {
	for role, candidate := range roleNames {
		if candidate == name {
			return role
		}
	}
	return RoleUnknown
}

// Satisfies reports whether a caller with role r meets the required minimum.
// An invalid requirement is never satisfied.
func (r Role) Satisfies(required Role) bool {
	if !required.Valid() {
		return false
	}
	return r >= required
}
