package domain

import "errors"

// ErrorKind classifies a client-visible failure. Handlers map kinds to HTTP
// status codes; anything that is not a *Error is treated as unexpected (500)
// with the raw message passed through.
type ErrorKind string

const (
	KindInvalidInput       ErrorKind = "invalid_input"
	KindConflict           ErrorKind = "conflict"
	KindNotFound           ErrorKind = "not_found"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindInvalidToken       ErrorKind = "invalid_token"
	KindUpdateFailed       ErrorKind = "update_failed"
	KindDeleteFailed       ErrorKind = "delete_failed"
)

// Error is a classified, client-facing error.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// NewInvalidInput reports malformed or missing input.
func NewInvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// NewConflict reports a uniqueness violation (duplicate email or handle).
func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewNotFound reports a missing account or resource.
func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewInvalidCredentials reports a failed password comparison.
func NewInvalidCredentials(message string) *Error {
	return &Error{Kind: KindInvalidCredentials, Message: message}
}

// NewInvalidToken reports a missing, malformed or expired bearer token.
func NewInvalidToken(message string) *Error {
	return &Error{Kind: KindInvalidToken, Message: message}
}

// NewUpdateFailed reports an update that affected no row.
func NewUpdateFailed(message string) *Error {
	return &Error{Kind: KindUpdateFailed, Message: message}
}

// NewDeleteFailed reports a delete that affected no row.
func NewDeleteFailed(message string) *Error {
	return &Error{Kind: KindDeleteFailed, Message: message}
}

// KindOf extracts the kind of a classified error. The second return is false
// for unclassified (unexpected) errors.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a classified error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
