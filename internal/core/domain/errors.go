package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password at
	// login so callers cannot tell which field was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken covers every token failure: malformed, bad signature,
	// wrong issuer, expired. The cause is never exposed to the client.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidPassword is the errors.Is target for PasswordError.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrAccessDenied is the errors.Is target for AccessError.
	ErrAccessDenied = errors.New("access denied")

	ErrEmailExists     = errors.New("email already exists")
	ErrDocumentExists  = errors.New("document already exists")
	ErrSamePassword    = errors.New("passwords must not be the same")
	ErrInvalidRole     = errors.New("invalid user role")
	ErrInvalidStatus   = errors.New("invalid project status")
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
)

// PasswordError is returned on a failed password check. The message is chosen
// by the call site so that, for example, a login failure and a profile
// mutation failure can surface different text.
type PasswordError struct {
	Message string
}

func (e *PasswordError) Error() string { return e.Message }

func (e *PasswordError) Is(target error) bool { return target == ErrInvalidPassword }

// AccessError is returned when the authenticated identity is missing or does
// not own the target resource. Messages differ internally (missing identity,
// malformed subject, not the owner) but all map to the same HTTP status.
type AccessError struct {
	Message string
}

func (e *AccessError) Error() string { return e.Message }

func (e *AccessError) Is(target error) bool { return target == ErrAccessDenied }

// DeniedAccess builds an AccessError with the default external message.
func DeniedAccess() error { return &AccessError{Message: "Access denied."} }
