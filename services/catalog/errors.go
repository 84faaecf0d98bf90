package catalog

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmptyQuery = errors.New("empty query")
)

// APIError is a failure reported by the catalog itself, its message is safe to show.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Kind int

const (
	KindNone Kind = iota
	KindEmptyQuery
	KindNotFound
	KindTransport
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindEmptyQuery:
		return "empty_query"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	case KindCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Classify maps an error returned by a Catalog to its kind.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, ErrEmptyQuery):
		return KindEmptyQuery
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindTransport
	}
}

// Message returns a user-visible message for err. notFound and failed are
// shown for missing records and transport failures.
func Message(err error, notFound string, failed string) string {
	switch Classify(err) {
	case KindNone, KindCancelled, KindEmptyQuery:
		return ""
	case KindNotFound:
		return notFound
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return failed
}
