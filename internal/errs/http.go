// Package errs defines the error shapes the HTTP API returns.
//
// Every non-2xx JSON response is an HTTPError, so clients can rely on one
// body format whether the failure came from validation, the database or a
// missing route.
package errs

import "strings"

// FieldError is a validation problem on a single request field.
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the body of every error response.
//
//   - Code: stable machine-readable code, e.g. "BAD_REQUEST".
//   - Message: human-readable text.
//   - Status: HTTP status code.
//   - Override: the client may show Message to the user verbatim.
//   - Errors: per-field validation problems.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError of any code, so
// errors.Is(err, &HTTPError{}) tells API errors apart from internal ones.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e carrying message.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// MakeUpperCaseWithUnderscores turns "Too Many Requests" into "TOO_MANY_REQUESTS".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
