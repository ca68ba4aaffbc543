package provision

import (
	"errors"
	"fmt"
)

// ResourceKind identifies the kind of shared resource being provisioned.
type ResourceKind string

// Resource kinds
const (
	KindNetwork ResourceKind = "network"
	KindVolume  ResourceKind = "volume"
)

// InspectError indicates an existence check failed for a reason other than
// the resource being absent (daemon unreachable, permission denied). It is
// fatal: the provisioner never assumes absence from such a failure.
type InspectError struct {
	Kind ResourceKind
	Name string
	Err  error
}

// Error returns the error message.
func (e *InspectError) Error() string {
	return fmt.Sprintf("failed to inspect %s %q: %v", e.Kind, e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *InspectError) Unwrap() error {
	return e.Err
}

// IsInspectError checks if an error is an InspectError.
func IsInspectError(err error) bool {
	var ie *InspectError
	return errors.As(err, &ie)
}
