package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrInvalidWindow        = errors.New("invalid window")
	ErrInvalidScope         = errors.New("invalid scope")
)

// Context keys for error values
const (
	OrgIDKey   = "org_id"
	ScopeIDKey = "scope_id"
)
