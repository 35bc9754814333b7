package provider

import "fmt"

// ProviderError wraps any failure reported by a data provider.
// Callers only distinguish "provider failed" from everything else.
type ProviderError struct {
	Provider string
	API      string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.API, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
