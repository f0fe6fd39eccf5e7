// internal/service/relevance/errors.go

package relevance

import "errors"

var (
	errMissingID        = errors.New("post is missing an id")
	errNegativeCounters = errors.New("post has negative engagement counters")
)
