package application

import "errors"

// Service-level sentinel errors. Handlers map these onto HTTP statuses; the
// wording is safe to show to callers.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email address is not verified")
	ErrEmailTaken         = errors.New("email address is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyVerified    = errors.New("email address is already verified")
	ErrInvalidResetToken  = errors.New("password reset token is invalid or has expired")
	ErrNotProjectOwner    = errors.New("only the project owner can modify it")
	ErrProjectURLTaken    = errors.New("a project with this GitHub URL already exists")
	ErrGitHubNotLinked    = errors.New("no linked GitHub account")
	ErrInvalidTagName     = errors.New("tag name must not be empty")
	ErrTagExists          = errors.New("a tag with this name already exists")
	ErrForbidden          = errors.New("not allowed")
)
