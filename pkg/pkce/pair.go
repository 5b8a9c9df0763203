package pkce

import (
	"fmt"
	"log/slog"
)

// Pair holds a code verifier and the challenge derived from it. The zero
// value is empty; use New, FromVerifier or a Generator to create one.
type Pair struct {
	verifier  string
	challenge string
}

// Verifier returns the code_verifier to send with the token request.
func (p Pair) Verifier() string {
	return p.verifier
}

// Challenge returns the code_challenge to send with the authorization request.
func (p Pair) Challenge() string {
	return p.challenge
}

// Method returns the code_challenge_method, always S256.
func (p Pair) Method() string {
	return MethodS256
}

// String omits the verifier.
func (p Pair) String() string {
	return fmt.Sprintf("pkce.Pair{method=%s challenge=%s}", p.Method(), p.challenge)
}

// LogValue omits the verifier.
func (p Pair) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("method", p.Method()),
		slog.String("challenge", p.challenge),
	)
}
