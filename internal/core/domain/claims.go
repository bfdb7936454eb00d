package domain

// Standard claim names managed by the token issuer.
const (
	ClaimRoles     = "roles"
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
	ClaimTokenID   = "jti"
	ClaimSubject   = "sub"
	ClaimUsername  = "username"
)

// Claims is the payload embedded in a signed token: a "roles" list plus any
// caller-defined fields.
type Claims map[string]any

// Clone returns a shallow copy of the claims.
func (c Claims) Clone() Claims {
	if c == nil {
		return nil
	}
	out := make(Claims, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Without returns a copy of the claims with the given keys removed.
func (c Claims) Without(keys ...string) Claims {
	out := c.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Roles returns the role list. ok is false when the claim is absent or is not
// a list of strings. Decoded tokens carry []any, which is accepted as long as
// every element is a string.
func (c Claims) Roles() (roles []string, ok bool) {
	raw, present := c[ClaimRoles]
	if !present {
		return nil, false
	}

	switch v := raw.(type) {
	case []string:
		return v, true
	case []any:
		roles = make([]string, 0, len(v))
		for _, item := range v {
			s, isString := item.(string)
			if !isString {
				return nil, false
			}
			roles = append(roles, s)
		}
		return roles, true
	default:
		return nil, false
	}
}

// HasRole reports whether the roles list contains role. Unlike Roles, it
// tolerates non-string entries alongside the match.
func (c Claims) HasRole(role string) bool {
	switch v := c[ClaimRoles].(type) {
	case []string:
		for _, r := range v {
			if r == role {
				return true
			}
		}
	case []any:
		for _, r := range v {
			if s, ok := r.(string); ok && s == role {
				return true
			}
		}
	}
	return false
}

// HasRoleList reports whether the roles claim is a list at all.
func (c Claims) HasRoleList() bool {
	switch c[ClaimRoles].(type) {
	case []string, []any:
		return true
	default:
		return false
	}
}

// Name returns a display name for diagnostics: the username claim, then the
// subject, then "unknown".
func (c Claims) Name() string {
	for _, key := range []string{ClaimUsername, ClaimSubject} {
		if s, ok := c[key].(string); ok && s != "" {
			return s
		}
	}
	return "unknown"
}
