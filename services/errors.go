package services

import "errors"

// Shared sentinel errors mapped to HTTP statuses in the handlers layer.
var (
	// Not found. A missing roster snapshot is a normal outcome ("no
	// import yet"), never a fatal one; callers branch on it.
	ErrNotFound         = errors.New("requested resource not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDefenseNotFound  = errors.New("defense team not found")
	ErrCounterNotFound  = errors.New("counter team not found")
	ErrBuildNotFound    = errors.New("build not found")
	ErrRosterNotFound   = errors.New("no roster snapshot has been imported")

	// Validation and business rules.
	ErrValidationFailed     = errors.New("validation failed")
	ErrPasswordTooShort     = errors.New("password must be at least 8 characters")
	ErrEmailRequired        = errors.New("email is required")
	ErrTeamMonstersInvalid  = errors.New("a team requires exactly 3 valid monsters")
	ErrCounterUnknown       = errors.New("counter team does not exist")
	ErrSnapshotInvalid      = errors.New("snapshot is not a valid game export")
	ErrInvalidRole          = errors.New("invalid role")

	// Conflicts. Never silently retried: re-submitting reproduces them.
	ErrUserEmailConflict   = errors.New("email address is already in use")
	ErrDefenseSlugConflict = errors.New("a defense team with these monsters already exists")
	ErrBuildConflict       = errors.New("a build already exists for this counter team")

	// Authentication and access.
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrUserNotApproved        = errors.New("account is awaiting approval")

	// The backing store or object storage is unreachable. Safe to retry
	// the whole operation; distinct from not-found by contract.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)
