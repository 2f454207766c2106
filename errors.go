package auth

import "github.com/goliatone/go-errors"

const (
	TextCodeTokenExpired     = "auth_token_expired"
	TextCodeTokenMalformed   = "auth_token_malformed"
	TextCodeMalformedSubject = "auth_malformed_subject"
	TextCodeUnauthenticated  = "auth_unauthenticated"
)

// ErrTokenExpired is returned when a token was well formed and correctly
// signed but its expiry has passed.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for any non-expiry validation failure: bad
// encoding, wrong signature, missing claims, unexpected algorithm.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrMalformedSubject is returned when a valid token carries a subject that
// is not a positive integer identity.
var ErrMalformedSubject = errors.New("token subject is not a valid identity", errors.CategoryAuth).
	WithTextCode(TextCodeMalformedSubject).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthenticated is the generic rejection surfaced to clients by the
// request gate, regardless of the underlying cause.
var ErrUnauthenticated = errors.New("authentication required", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// IsTokenExpiredError reports whether err is the expiry rejection, wrapped
// or not.
func IsTokenExpiredError(err error) bool {
	return hasTextCode(err, TextCodeTokenExpired)
}

// IsTokenMalformedError reports whether err is a malformed-token rejection,
// wrapped or not.
func IsTokenMalformedError(err error) bool {
	return hasTextCode(err, TextCodeTokenMalformed)
}

// IsMalformedSubjectError reports whether err is a bad-subject rejection.
func IsMalformedSubjectError(err error) bool {
	return hasTextCode(err, TextCodeMalformedSubject)
}

func hasTextCode(err error, textCode string) bool {
	var rich *errors.Error
	if !errors.As(err, &rich) || rich == nil {
		return false
	}
	return rich.TextCode == textCode
}
