package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pkce-go/pkg/pkce"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// PKCEMetrics holds the counters for PKCE generation and the OAuth flow that
// consumes it. It implements pkce.Observer.
type PKCEMetrics struct {
	// VerifiersGenerated counts verifiers by the path that produced them.
	VerifiersGenerated *prometheus.CounterVec

	// ChallengeDerivations counts challenge derivations by result.
	ChallengeDerivations *prometheus.CounterVec

	// AuthorizationRequests counts authorization URLs handed out.
	AuthorizationRequests prometheus.Counter

	// TokenExchanges counts code-for-token exchanges by result.
	TokenExchanges *prometheus.CounterVec
}

// NewPKCEMetrics registers the PKCE collectors with reg. A nil reg creates
// unregistered collectors.
func NewPKCEMetrics(reg prometheus.Registerer) *PKCEMetrics {
	factory := promauto.With(reg)

	return &PKCEMetrics{
		VerifiersGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pkce_verifiers_generated_total",
				Help: "The total number of code verifiers generated.",
			},
			[]string{"source"},
		),
		ChallengeDerivations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pkce_challenge_derivations_total",
				Help: "The total number of S256 code challenge derivations.",
			},
			[]string{"result"},
		),
		AuthorizationRequests: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pkce_authorization_requests_total",
				Help: "The total number of authorization URLs issued with a code challenge.",
			},
		),
		TokenExchanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pkce_token_exchanges_total",
				Help: "The total number of authorization code exchanges.",
			},
			[]string{"result"},
		),
	}
}

// VerifierGenerated implements pkce.Observer.
func (m *PKCEMetrics) VerifierGenerated(source pkce.VerifierSource) {
	m.VerifiersGenerated.WithLabelValues(string(source)).Inc()
}

// ChallengeDerived implements pkce.Observer.
func (m *PKCEMetrics) ChallengeDerived(err error) {
	m.ChallengeDerivations.WithLabelValues(result(err)).Inc()
}

// TokenExchanged records the outcome of a token exchange.
func (m *PKCEMetrics) TokenExchanged(err error) {
	m.TokenExchanges.WithLabelValues(result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
