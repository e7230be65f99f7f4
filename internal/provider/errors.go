package provider

import "fmt"

// ConfigurationError indicates an unknown provider id was requested from the
// registry. It is fatal for the call and never retried.
type ConfigurationError struct {
	ProviderID string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("AI provider not registered: %s", e.ProviderID)
}

// NotImplementedError indicates a registered provider does not implement an
// operation yet. Callers must not treat this as transient: either fall back
// to a different provider or surface the failure.
type NotImplementedError struct {
	Provider  string
	Operation string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s provider does not implement %s", e.Provider, e.Operation)
}

// MalformedResponseError indicates the AI backend returned content that could
// not be parsed even after one code-fence-stripping retry. It must propagate;
// converting it into a zero score would penalize applicants for backend
// outages.
type MalformedResponseError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed %s response: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed %s response: %s", e.Provider, e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// APICallError represents a transport-level failure talking to an AI backend.
type APICallError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s API call failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s API call failed: %s", e.Provider, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
