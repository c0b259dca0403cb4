package ai

import "fmt"

// ErrorKind classifies generation failures. Every error that leaves the
// orchestrator is an *Error with one of these kinds; callers only need to
// branch on success versus failure, the kind exists for logs and metrics.
type ErrorKind int

const (
	// ErrMissingCredential means the provider API key is absent from the
	// configuration. Detected before any network call.
	ErrMissingCredential ErrorKind = iota
	// ErrUnsupportedProvider means the registry produced a provider with no
	// adapter. Unreachable with the default-fallback rule, handled anyway.
	ErrUnsupportedProvider
	// ErrProvider means the provider answered with a non-2xx status.
	ErrProvider
	// ErrNetwork means the request never produced an HTTP response.
	ErrNetwork
)

// Error is the uniform failure shape for the generation pipeline.
type Error struct {
	Kind     ErrorKind
	Provider string
	Status   int
	Err      error
}

// Error implements the error interface with a human-readable message.
func (e *Error) Error() string {
	switch e.Kind {
	case ErrMissingCredential:
		return fmt.Sprintf("API key for %s not configured", e.Provider)
	case ErrUnsupportedProvider:
		return fmt.Sprintf("no adapter registered for provider %s", e.Provider)
	case ErrProvider:
		return fmt.Sprintf("%s request failed with status %d", e.Provider, e.Status)
	case ErrNetwork:
		if e.Err != nil {
			return fmt.Sprintf("network error calling %s: %v", e.Provider, e.Err)
		}
		return fmt.Sprintf("network error calling %s", e.Provider)
	}
	return "unknown generation error"
}

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

func missingCredential(provider Provider) *Error {
	return &Error{Kind: ErrMissingCredential, Provider: provider.String()}
}

func providerError(provider Provider, status int) *Error {
	return &Error{Kind: ErrProvider, Provider: provider.String(), Status: status}
}

func networkError(provider Provider, err error) *Error {
	return &Error{Kind: ErrNetwork, Provider: provider.String(), Err: err}
}
