package domain

import "strings"

// CredentialStatus represents the lifecycle state of a credential.
type CredentialStatus string

const (
	StatusActive   CredentialStatus = "active"
	StatusInactive CredentialStatus = "inactive"
	StatusLocked   CredentialStatus = "locked"
	StatusDeleted  CredentialStatus = "deleted"
)

// IsValid reports whether s is one of the known statuses.
func (s CredentialStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusLocked, StatusDeleted:
		return true
	default:
		return false
	}
}

// Credential is the stored identity record of a principal.
// Timestamps are unix milliseconds.
type Credential struct {
	ID           string           `json:"id"`
	Email        string           `json:"email,omitempty"`
	Username     string           `json:"username,omitempty"`
	PasswordHash string           `json:"-"`
	RefreshToken string           `json:"refresh_token,omitempty"`
	Status       CredentialStatus `json:"status"`
	CreatedAt    int64            `json:"created_at"`
	UpdatedAt    int64            `json:"updated_at"`
}

// Sanitized returns a copy of the credential without the password digest.
func (c *Credential) Sanitized() *Credential {
	if c == nil {
		return nil
	}
	clone := *c
	clone.PasswordHash = ""
	return &clone
}

// IsEmailIdentifier classifies a login identifier: anything containing "@" is
// looked up as an email, everything else as a username.
func IsEmailIdentifier(identifier string) bool {
	return strings.Contains(identifier, "@")
}
