package feed

import (
	"errors"

	"github.com/umputun/feedreader/pkg/metrics"
)

// fetch failure kinds, errors returned by Fetcher.Fetch wrap exactly one of them
var (
	// ErrFeedMalformed means the document was received but is not a valid feed
	ErrFeedMalformed = errors.New("feed malformed")
	// ErrFeedUnreachable means the document could not be retrieved
	ErrFeedUnreachable = errors.New("feed unreachable")
	// ErrFeedShape means the parser produced a structure the fetcher can't read
	ErrFeedShape = errors.New("unexpected feed structure")
	// ErrFeedUnexpected covers everything outside of the known failures
	ErrFeedUnexpected = errors.New("unexpected feed error")
)

// IsExpected reports whether err is one of the known feed failures,
// as opposed to ErrFeedUnexpected or an unrelated error
func IsExpected(err error) bool {
	return errors.Is(err, ErrFeedMalformed) || errors.Is(err, ErrFeedUnreachable) || errors.Is(err, ErrFeedShape)
}

// status returns metrics status label for the fetch error
func status(err error) string {
	switch {
	case err == nil:
		return metrics.StatusOK
	case errors.Is(err, ErrFeedMalformed):
		return metrics.StatusMalformed
	case errors.Is(err, ErrFeedUnreachable):
		return metrics.StatusUnreachable
	case errors.Is(err, ErrFeedShape):
		return metrics.StatusShape
	default:
		return metrics.StatusUnexpected
	}
}
