package pkce

import (
	"errors"
	"fmt"
)

var (
	// ErrRandomGeneration is returned by an OctetSource when the underlying
	// random facility fails to produce the requested octets.
	ErrRandomGeneration = errors.New("pkce: failed to generate random octets")

	// ErrInvalidVerifierEncoding is returned when a code verifier cannot be
	// used to derive a challenge.
	ErrInvalidVerifierEncoding = errors.New("pkce: improperly formatted code verifier")
)

// VerifierError describes the first offending character of a verifier.
type VerifierError struct {
	Offset int
	Char   rune
}

func (e *VerifierError) Error() string {
	return fmt.Sprintf("%s: non-ASCII character %q at offset %d", ErrInvalidVerifierEncoding, e.Char, e.Offset)
}

func (e *VerifierError) Unwrap() error {
	return ErrInvalidVerifierEncoding
}
