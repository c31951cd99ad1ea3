package entity

import "errors"

// Sentinel errors for the four failure kinds repositories can report.
// Callers distinguish them with errors.Is; repositories wrap them with
// fmt.Errorf("%w: ...") to carry detail.
var (
	// ErrInvalidArgument indicates a required input is absent or structurally
	// invalid (nil record, blank email). Always a caller bug.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates an operation referenced a key that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a business-rule violation such as a duplicate
	// email address or a declined payment.
	ErrConflict = errors.New("conflict")

	// ErrGatewayFailure indicates the notification or payment gateway itself
	// failed to complete, as opposed to returning a negative business verdict.
	ErrGatewayFailure = errors.New("gateway failure")
)
