package generation

import "errors"

// FailureKind classifies why a round could not use a generated word.
type FailureKind string

const (
	NetworkError         FailureKind = "network_error"
	MalformedEnvelope    FailureKind = "malformed_envelope"
	UnrecoverableContent FailureKind = "unrecoverable_content"
	InvalidFields        FailureKind = "invalid_fields"
)

var (
	// ErrNetwork wraps every transport-level fault.
	ErrNetwork = errors.New("generation endpoint unavailable")

	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("generation endpoint returned non-success status")

	// ErrInvalidConfig is returned by NewClient for unusable settings.
	ErrInvalidConfig = errors.New("invalid generation configuration")
)

// Outcome is either Success(rawText) or Failure(kind).
type Outcome struct {
	raw  string
	kind FailureKind
	err  error
}

// Success wraps the raw response body.
func Success(raw string) Outcome { return Outcome{raw: raw} }

// Failure records why the call produced nothing usable. cause may be nil.
func Failure(kind FailureKind, cause error) Outcome {
	return Outcome{kind: kind, err: cause}
}

// OK reports whether the outcome carries text.
func (o Outcome) OK() bool { return o.kind == "" }

// Text returns the raw body of a successful outcome.
func (o Outcome) Text() string { return o.raw }

// Kind returns the failure kind, empty on success.
func (o Outcome) Kind() FailureKind { return o.kind }

// Err returns the underlying cause of a failure, if any.
func (o Outcome) Err() error { return o.err }
