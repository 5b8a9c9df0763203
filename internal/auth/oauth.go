package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/oauth2"

	"pkce-go/internal/config"
	"pkce-go/internal/metrics"
	"pkce-go/pkg/pkce"
)

var (
	// ErrInvalidState is returned when a callback state does not match the
	// state issued to the user.
	ErrInvalidState = errors.New("invalid state parameter")

	// ErrVerifierNotFound is returned when no live verifier exists for a state.
	ErrVerifierNotFound = errors.New("no code verifier found")
)

// OAuthManager runs the authorization code flow with PKCE
type OAuthManager struct {
	config     *oauth2.Config
	generator  *pkce.Generator
	pkceStore  PKCEStore
	stateStore StateStore
	metrics    *metrics.PKCEMetrics
	logger     *slog.Logger
}

// StateStore manages OAuth state parameter. StoreState returns the live
// state it replaced, or "" if there was none.
type StateStore interface {
	StoreState(userID, state string) (string, error)
	ValidateState(userID, state string) bool
	DeleteState(userID string)
}

// NewOAuthManager creates a new OAuthManager instance
func NewOAuthManager(oauthConfig *oauth2.Config, generator *pkce.Generator, pkceStore PKCEStore, stateStore StateStore) *OAuthManager {
	return &OAuthManager{
		config:     oauthConfig,
		generator:  generator,
		pkceStore:  pkceStore,
		stateStore: stateStore,
		logger:     slog.Default(),
	}
}

// NewOAuthManagerFromConfig wires an OAuthManager from cfg. Metrics are
// registered with reg. A nil logger logs to stderr at cfg.LogLevel.
func NewOAuthManagerFromConfig(cfg *config.Config, reg prometheus.Registerer, logger *slog.Logger) *OAuthManager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	}
	m := metrics.NewPKCEMetrics(reg)

	opts := []pkce.Option{
		pkce.WithObserver(m),
		pkce.WithLogger(logger),
	}
	if cfg.StrictVerifier {
		opts = append(opts, pkce.WithStrictVerifiers())
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURL:  cfg.OAuth.RedirectURL,
		Scopes:       cfg.OAuth.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.OAuth.AuthURL,
			TokenURL: cfg.OAuth.TokenURL,
		},
	}

	manager := NewOAuthManager(
		oauthConfig,
		pkce.NewGenerator(opts...),
		NewInMemoryPKCEStore(cfg.VerifierTTL.Duration),
		NewInMemoryStateStore(cfg.VerifierTTL.Duration),
	)
	manager.SetMetrics(m)
	manager.SetLogger(logger)
	return manager
}

// SetMetrics sets the metrics recorded by the manager.
func (m *OAuthManager) SetMetrics(pm *metrics.PKCEMetrics) {
	m.metrics = pm
}

// SetLogger sets the manager's logger.
func (m *OAuthManager) SetLogger(logger *slog.Logger) {
	m.logger = logger
}

// GetAuthURL generates the OAuth authorization URL with PKCE. It returns the
// URL and the state the callback must carry.
func (m *OAuthManager) GetAuthURL(userID string) (string, string, error) {
	if userID == "" {
		return "", "", fmt.Errorf("user ID cannot be empty")
	}

	pair, err := m.generator.NewPair()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate PKCE pair: %w", err)
	}

	state := uuid.NewString()
	previous, err := m.stateStore.StoreState(userID, state)
	if err != nil {
		return "", "", fmt.Errorf("failed to store state: %w", err)
	}
	if previous != "" {
		m.pkceStore.DeleteVerifier(previous)
	}
	if err := m.pkceStore.StoreVerifier(state, pair.Verifier()); err != nil {
		m.stateStore.DeleteState(userID)
		return "", "", fmt.Errorf("failed to store code verifier: %w", err)
	}

	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("code_challenge", pair.Challenge()),
		oauth2.SetAuthURLParam("code_challenge_method", pair.Method()),
	}

	if m.metrics != nil {
		m.metrics.AuthorizationRequests.Inc()
	}
	m.logger.Debug("issued authorization url",
		slog.String("user_id", userID),
		slog.String("state", state),
		slog.Any("pkce", pair))

	return m.config.AuthCodeURL(state, opts...), state, nil
}

// HandleCallback validates the callback state and exchanges the code for a
// token, proving possession of the stored code verifier.
func (m *OAuthManager) HandleCallback(ctx context.Context, code, state, userID string) (*oauth2.Token, error) {
	if code == "" {
		return nil, fmt.Errorf("authorization code cannot be empty")
	}
	if state == "" {
		return nil, fmt.Errorf("state parameter cannot be empty")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}

	if !m.stateStore.ValidateState(userID, state) {
		return nil, ErrInvalidState
	}
	defer m.stateStore.DeleteState(userID)

	verifier, err := m.pkceStore.GetVerifier(state)
	if err != nil {
		return nil, fmt.Errorf("failed to load code verifier: %w", err)
	}

	token, err := m.config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if m.metrics != nil {
		m.metrics.TokenExchanged(err)
	}
	if err != nil {
		m.logger.Warn("token exchange failed",
			slog.String("user_id", userID),
			slog.Any("error", err))
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	m.logger.Info("token exchange succeeded", slog.String("user_id", userID))
	return token, nil
}
