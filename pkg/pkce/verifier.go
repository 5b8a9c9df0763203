package pkce

import (
	"fmt"
	"log/slog"
)

const fallbackAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateVerifier returns a 43 character code verifier. It prefers octets
// from the secure source and falls back to sampling fallbackAlphabet when the
// source fails. It never fails.
func (g *Generator) GenerateVerifier() string {
	octets, err := g.source.Octets(VerifierOctets)
	if err == nil && len(octets) != VerifierOctets {
		err = fmt.Errorf("%w: got %d octets, want %d", ErrRandomGeneration, len(octets), VerifierOctets)
	}

	if err != nil {
		g.log().Warn("secure random source failed, using fallback verifier generator",
			slog.Any("error", err))
		g.observer.VerifierGenerated(SourceFallback)
		return g.sampleVerifier(VerifierLength)
	}

	g.observer.VerifierGenerated(SourceSecure)
	return EncodeBase64URL(octets)
}

// sampleVerifier draws length characters independently from fallbackAlphabet.
// Unpredictability depends on intN and is best effort.
func (g *Generator) sampleVerifier(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = fallbackAlphabet[g.intN(len(fallbackAlphabet))]
	}
	return string(b)
}
