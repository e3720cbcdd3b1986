package checkout

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated means the caller holds no credential, or the backend
// rejected the one presented. The HTTP edge translates it to a 401 so the
// storefront clears its stored token and redirects to login.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrPriceTableInvalid marks a delivery price table with no default entry for
// a method. Checkout is rejected outright rather than rendering an undefined
// total.
var ErrPriceTableInvalid = errors.New("delivery price table misconfigured")

// ValidationError reports an incomplete delivery form. It is raised before
// any backend call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UpstreamError carries a non-2xx backend response (other than 401, which
// maps to ErrUnauthenticated). Message is the backend-supplied message when
// one was present.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}
