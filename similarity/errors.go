package similarity

import "errors"

// ValidationError marks a malformed report that was rejected before any
// collaborator call. The HTTP layer reports these as client errors, not
// system faults.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// IsValidation reports whether err is a report validation failure
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
