package pkce

import (
	"log/slog"
	"math/rand/v2"
)

// VerifierSource identifies which path produced a verifier.
type VerifierSource string

const (
	SourceSecure   VerifierSource = "secure"
	SourceFallback VerifierSource = "fallback"
)

// Observer receives generation and derivation events. Implementations must be
// safe for concurrent use.
type Observer interface {
	VerifierGenerated(source VerifierSource)
	ChallengeDerived(err error)
}

type nopObserver struct{}

func (nopObserver) VerifierGenerated(VerifierSource) {}
func (nopObserver) ChallengeDerived(error)           {}

// Generator creates code verifiers and pairs. A Generator is immutable once
// built and may be shared between goroutines.
type Generator struct {
	source   OctetSource
	intN     func(n int) int
	logger   *slog.Logger
	observer Observer
	strict   bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithOctetSource replaces the secure octet source.
func WithOctetSource(source OctetSource) Option {
	return func(g *Generator) {
		g.source = source
	}
}

// WithFallbackIntN replaces the random function used by the fallback path.
// intN must return a value in [0, n) and be safe for concurrent use if the
// Generator is shared.
func WithFallbackIntN(intN func(n int) int) Option {
	return func(g *Generator) {
		g.intN = intN
	}
}

// WithLogger sets the logger used to report fallback events. Without it the
// Generator logs to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithObserver sets the Observer notified of generation events.
func WithObserver(observer Observer) Option {
	return func(g *Generator) {
		g.observer = observer
	}
}

// WithStrictVerifiers makes PairFromVerifier reject verifiers that do not
// satisfy ValidateVerifier.
func WithStrictVerifiers() Option {
	return func(g *Generator) {
		g.strict = true
	}
}

// NewGenerator creates a Generator backed by the operating system CSPRNG.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		source:   NewCryptoOctetSource(),
		intN:     rand.IntN,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.source == nil {
		g.source = NewCryptoOctetSource()
	}
	if g.intN == nil {
		g.intN = rand.IntN
	}
	if g.observer == nil {
		g.observer = nopObserver{}
	}
	return g
}

// NewPair generates a verifier and derives its challenge.
func (g *Generator) NewPair() (Pair, error) {
	return g.pairFor(g.GenerateVerifier())
}

// PairFromVerifier derives the challenge for an externally supplied verifier.
func (g *Generator) PairFromVerifier(verifier string) (Pair, error) {
	if g.strict {
		if err := ValidateVerifier(verifier); err != nil {
			g.observer.ChallengeDerived(err)
			return Pair{}, err
		}
	}
	return g.pairFor(verifier)
}

func (g *Generator) pairFor(verifier string) (Pair, error) {
	challenge, err := DeriveChallenge(verifier)
	g.observer.ChallengeDerived(err)
	if err != nil {
		return Pair{}, err
	}
	return Pair{verifier: verifier, challenge: challenge}, nil
}

func (g *Generator) log() *slog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return slog.Default()
}
