package homeassistant

import "fmt"

// StatusError reports a non-success HTTP status from Home Assistant.
type StatusError struct {
	// Op is the operation that failed, e.g. "service_call" or "webhook".
	Op string

	// StatusCode is the HTTP status code returned.
	StatusCode int

	// Status is the HTTP status text returned.
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("home assistant %s failed: %s", e.Op, e.Status)
}
