// Package pkce generates Proof Key for Code Exchange values (RFC 7636) for
// OAuth 2.0 clients using the S256 transform.
package pkce

const (
	// MethodS256 is the only code_challenge_method produced by this package.
	MethodS256 = "S256"

	// VerifierOctets is the number of random octets behind a verifier.
	VerifierOctets = 32
	// VerifierLength is the length of every generated verifier.
	VerifierLength = 43

	// MinVerifierLength is the shortest verifier RFC 7636 allows.
	MinVerifierLength = 43
	// MaxVerifierLength is the longest verifier RFC 7636 allows.
	MaxVerifierLength = 128

	// ChallengeLength is the length of an encoded SHA-256 digest.
	ChallengeLength = 43
)

var defaultGenerator = NewGenerator()

// New creates a Pair using the default generator.
func New() (Pair, error) {
	return defaultGenerator.NewPair()
}

// FromVerifier creates a Pair for a caller supplied verifier using the
// default generator.
func FromVerifier(verifier string) (Pair, error) {
	return defaultGenerator.PairFromVerifier(verifier)
}

// GenerateVerifier returns a new 43 character code verifier.
func GenerateVerifier() string {
	return defaultGenerator.GenerateVerifier()
}
