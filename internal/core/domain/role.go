package domain

const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
	RoleClient     = "client"
)

// IsValidRole reports whether role belongs to the fixed role enumeration.
func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleUser, RoleClient:
		return true
	default:
		return false
	}
}

// Authorize decides whether principal may access a route declaring required.
//
// An empty requirement always passes. Otherwise the principal must be present
// and carry a roles list; superadmin passes unconditionally, and any single
// matching entry is enough. Non-string entries in the list are ignored.
// Denials are returned as *AccessDeniedError.
func Authorize(principal Claims, required []string) error {
	if len(required) == 0 {
		return nil
	}

	if principal == nil {
		return &AccessDeniedError{Principal: "unknown", Required: required, Reason: "principal not found"}
	}

	if principal.HasRole(RoleSuperAdmin) {
		return nil
	}

	if !principal.HasRoleList() {
		return &AccessDeniedError{Principal: principal.Name(), Required: required, Reason: "principal has no valid roles"}
	}

	for _, want := range required {
		if principal.HasRole(want) {
			return nil
		}
	}

	return &AccessDeniedError{Principal: principal.Name(), Required: required}
}
