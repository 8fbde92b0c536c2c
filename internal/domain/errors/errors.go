// Package errors defines the failure kinds the core raises. Every failure is
// one of these kinds and is surfaced unchanged to the HTTP boundary, which maps
// it to a status code.
package errors

import "errors"

// Kind classifies a core failure.
type Kind int

const (
	// KindNotFound: the referenced entity does not exist or is outside the expected parent scope.
	KindNotFound Kind = iota + 1
	// KindNotAMember: the caller has no membership in the target project.
	KindNotAMember
	// KindInsufficientPermission: the caller is a member but rank/ownership rules forbid the action.
	KindInsufficientPermission
	// KindConflict: the action would violate a uniqueness or cardinality invariant.
	KindConflict
	// KindInvalidRequest: structurally well-formed but semantically invalid input.
	KindInvalidRequest
)

// Error is a classified core failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound builds a KindNotFound error.
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

// NotAMember builds a KindNotAMember error.
func NotAMember(msg string) error { return &Error{Kind: KindNotAMember, Message: msg} }

// InsufficientPermission builds a KindInsufficientPermission error.
func InsufficientPermission(msg string) error {
	return &Error{Kind: KindInsufficientPermission, Message: msg}
}

// Conflict builds a KindConflict error.
func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

// InvalidRequest builds a KindInvalidRequest error.
func InvalidRequest(msg string) error { return &Error{Kind: KindInvalidRequest, Message: msg} }

// KindOf returns the kind of err, or 0 when err is not a core error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsNotFound reports whether err is a KindNotFound error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsNotAMember reports whether err is a KindNotAMember error.
func IsNotAMember(err error) bool { return KindOf(err) == KindNotAMember }

// IsInsufficientPermission reports whether err is a KindInsufficientPermission error.
func IsInsufficientPermission(err error) bool { return KindOf(err) == KindInsufficientPermission }

// IsConflict reports whether err is a KindConflict error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsInvalidRequest reports whether err is a KindInvalidRequest error.
func IsInvalidRequest(err error) bool { return KindOf(err) == KindInvalidRequest }
