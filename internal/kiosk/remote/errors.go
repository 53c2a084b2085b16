package remote

import "fmt"

// ServiceError is a non-success response from the backend. The body is kept
// verbatim as diagnostic text and surfaced to the operator unchanged.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service returned %d: %s", e.Status, e.Body)
}
