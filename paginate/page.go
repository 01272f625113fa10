package paginate

import "fmt"

// Kind tags the shape of a decoded page response.
type Kind int

const (
	KindOK        Kind = iota // A list of records, possibly empty
	KindAuthError             // The service rejected the API key; rotate and try again
	KindMalformed             // Neither records nor a recognised error
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindAuthError:
		return "auth_error"
	case KindMalformed:
		return "malformed"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// PageResult is one page of a listing as decoded at the transport boundary.
type PageResult[T any] struct {
	Kind    Kind
	Records []T
	Message string // Error message for KindAuthError and KindMalformed
}

func OK[T any](records []T) PageResult[T] {
	return PageResult[T]{Kind: KindOK, Records: records}
}

func AuthError[T any](message string) PageResult[T] {
	return PageResult[T]{Kind: KindAuthError, Message: message}
}

func Malformed[T any](message string) PageResult[T] {
	return PageResult[T]{Kind: KindMalformed, Message: message}
}

// End reports whether the page terminates the listing.
func (p PageResult[T]) End() bool {
	return p.Kind == KindOK && len(p.Records) == 0
}
