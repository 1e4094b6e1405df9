package coingecko

import "fmt"

// RetrievalError indicates the upstream API answered with a non-2xx status.
// The fetch is aborted and nothing is cached.
type RetrievalError struct {
	StatusCode int
	Body       string
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("upstream request failed with status %d: %s", e.StatusCode, e.Body)
}

// MalformedResponseError indicates the upstream payload was not valid JSON
// or an entry was missing an expected field.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed upstream response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed upstream response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
