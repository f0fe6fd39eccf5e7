// internal/domain/trend/errors.go

package trend

import "errors"

// ErrNotFound is returned by stores when no record matches the lookup.
var ErrNotFound = errors.New("not found")
