package auth

// PKCEStore keeps code verifiers between the authorization request and the
// token exchange, keyed by OAuth state.
type PKCEStore interface {
	StoreVerifier(state, verifier string) error
	// GetVerifier returns and removes the verifier for state.
	GetVerifier(state string) (string, error)
	// DeleteVerifier drops the verifier for a state that will never be
	// redeemed.
	DeleteVerifier(state string)
}
