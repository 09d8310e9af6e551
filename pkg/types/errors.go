package types

import (
	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to categorized errors. Transports use them to render
// stable error identifiers.
const (
	TextCodeInvalidArgument = "INVALID_ARGUMENT"
	TextCodeUnauthorized    = "UNAUTHORIZED"
	TextCodeForbidden       = "FORBIDDEN"
	TextCodeNotFound        = "NOT_FOUND"
	TextCodeConflict        = "CONFLICT"
	TextCodeUnexpected      = "UNEXPECTED"
)

// InvalidArgument reports malformed caller input.
func InvalidArgument(message string, fields ...goerrors.FieldError) *goerrors.Error {
	return goerrors.NewValidation(message, fields...).
		WithCode(goerrors.CodeBadRequest).
		WithTextCode(TextCodeInvalidArgument)
}

// Unauthorized reports a missing or invalid caller identity.
func Unauthorized(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryAuth).
		WithCode(goerrors.CodeUnauthorized).
		WithTextCode(TextCodeUnauthorized)
}

// Forbidden reports a caller lacking permission for the requested scope.
func Forbidden(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryAuthz).
		WithCode(goerrors.CodeForbidden).
		WithTextCode(TextCodeForbidden)
}

// NotFound reports a missing record or one outside the caller's scope.
func NotFound(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryNotFound).
		WithCode(goerrors.CodeNotFound).
		WithTextCode(TextCodeNotFound)
}

// Conflict reports a uniqueness or referential integrity violation.
func Conflict(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryConflict).
		WithCode(goerrors.CodeConflict).
		WithTextCode(TextCodeConflict)
}

// Unexpected wraps an internal failure. The cause is kept as the error
// source for logging but the message stays generic.
func Unexpected(cause error) *goerrors.Error {
	if cause == nil {
		return goerrors.New("unexpected error", goerrors.CategoryInternal).
			WithCode(goerrors.CodeInternal).
			WithTextCode(TextCodeUnexpected)
	}
	return goerrors.Wrap(cause, goerrors.CategoryInternal, "unexpected error").
		WithCode(goerrors.CodeInternal).
		WithTextCode(TextCodeUnexpected)
}

// HasTextCode reports whether err carries the supplied text code.
func HasTextCode(err error, code string) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == code
}

// IsCategorized reports whether err already carries a go-errors category and
// can be surfaced to callers as-is.
func IsCategorized(err error) bool {
	var rich *goerrors.Error
	return goerrors.As(err, &rich)
}
