package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ValidationError reports a user-supplied value that could not be interpreted,
// such as a URL that carries no recognizable identifier.
type ValidationError struct {
	Node  string // name of the node the value was configured on
	Input string
	Cause string
}

func (e *ValidationError) Error() string {
	if e.Node == "" {
		return fmt.Sprintf("%s: %q", e.Cause, e.Input)
	}
	return fmt.Sprintf("%s: %q (node %q)", e.Cause, e.Input, e.Node)
}

// RemoteError reports a failed call to the remote service. Status is 0 when
// the request never produced a response.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return "remote request failed: " + e.Message
	}
	return fmt.Sprintf("remote request failed with status %d: %s", e.Status, e.Message)
}

// UnsupportedOperationError reports a resource/operation pair with no handler.
type UnsupportedOperationError struct {
	Resource  string
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("the operation %q is not supported for resource %q", e.Operation, e.Resource)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsRemote(err error) bool {
	var r *RemoteError
	return errors.As(err, &r)
}

func IsUnsupportedOperation(err error) bool {
	var u *UnsupportedOperationError
	return errors.As(err, &u)
}
