package domain

import "strings"

// Role is the closed set of user roles. Role values arrive as free-text
// strings from storage and tokens; ParseRole is the single normalization
// point, so nothing downstream ever compares role strings.
type Role int

const (
	RoleUnknown Role = iota
	RoleSuperAdmin
	RolePlanetAdmin
	RoleViewer1
	RoleViewer2
	// RoleViewer is the generic viewer fallback: assignment-based access,
	// unlike the fixed-set Viewer1/Viewer2 variants.
	RoleViewer
)

var roleNames = map[Role]string{
	RoleUnknown:     "unknown",
	RoleSuperAdmin:  "superadmin",
	RolePlanetAdmin: "planetadmin",
	RoleViewer1:     "viewer1",
	RoleViewer2:     "viewer2",
	RoleViewer:      "viewer",
}

// String returns the canonical lowercase role name.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseRole normalizes a stored role string into a Role.
// Comparison is case-insensitive because persisted role values drift in
// casing between writers. Unrecognized values map to RoleUnknown, which
// the access policy denies everything.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "superadmin":
		return RoleSuperAdmin
	case "planetadmin":
		return RolePlanetAdmin
	case "viewer1":
		return RoleViewer1
	case "viewer2":
		return RoleViewer2
	case "viewer":
		return RoleViewer
	default:
		return RoleUnknown
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(b []byte) error {
	*r = ParseRole(string(b))
	return nil
}
