package records

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrMissingFile   = errors.New("missing source file")
)

// InvalidSelectionError is returned when a caller asks for a combination the
// catalog does not know, e.g. a metric that is not recorded at the chosen
// granularity. Unknown users are not invalid selections, they yield empty results.
type InvalidSelectionError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s [%s]", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s [%s]: %s", e.Field, e.Value, e.Reason)
}

// IsInvalidSelection reports whether err, or any error it wraps, is an InvalidSelectionError.
func IsInvalidSelection(err error) bool {
	var selErr *InvalidSelectionError
	return errors.As(err, &selErr)
}
