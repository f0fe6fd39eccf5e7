// internal/service/judgment/errors.go

package judgment

import "errors"

// Judgment failures are never fatal to a pipeline run; callers match on
// these sentinels to enter degraded mode.
var (
	// ErrMalformed marks provider output whose structured payload could
	// not be extracted or validated, even after one retry.
	ErrMalformed = errors.New("judgment response is malformed")

	// ErrTimeout marks a batch whose provider call did not complete
	// within the configured deadline.
	ErrTimeout = errors.New("judgment provider timed out")
)
