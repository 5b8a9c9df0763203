package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"pkce-go/pkg/pkce"
)

// mockPKCEStore fails every write with storeErr and records deletions.
type mockPKCEStore struct {
	storeErr error
	deleted  []string
}

func (m *mockPKCEStore) StoreVerifier(state, verifier string) error {
	return m.storeErr
}

func (m *mockPKCEStore) GetVerifier(state string) (string, error) {
	return "", ErrVerifierNotFound
}

func (m *mockPKCEStore) DeleteVerifier(state string) {
	m.deleted = append(m.deleted, state)
}

// mockStateStore keeps one state per user with no expiry and counts rollbacks.
type mockStateStore struct {
	issued  map[string]string
	deletes int
}

func newMockStateStore() *mockStateStore {
	return &mockStateStore{issued: make(map[string]string)}
}

func (m *mockStateStore) StoreState(userID, state string) (string, error) {
	previous := m.issued[userID]
	m.issued[userID] = state
	return previous, nil
}

func (m *mockStateStore) ValidateState(userID, state string) bool {
	issued, ok := m.issued[userID]
	return ok && issued == state
}

func (m *mockStateStore) DeleteState(userID string) {
	m.deletes++
	delete(m.issued, userID)
}

// tokenServer is a fake token endpoint that only issues a token when the
// posted code_verifier matches the challenge it was told to expect.
type tokenServer struct {
	*httptest.Server

	mu         sync.Mutex
	challenges map[string]string // code -> expected challenge
	verifiers  []string
}

func newTokenServer(t *testing.T) *tokenServer {
	t.Helper()

	ts := &tokenServer{challenges: make(map[string]string)}
	ts.Server = httptest.NewServer(http.HandlerFunc(ts.handle))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *tokenServer) expect(code, challenge string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.challenges[code] = challenge
}

func (ts *tokenServer) receivedVerifiers() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]string(nil), ts.verifiers...)
}

func (ts *tokenServer) handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	code := r.PostForm.Get("code")
	verifier := r.PostForm.Get("code_verifier")

	ts.mu.Lock()
	ts.verifiers = append(ts.verifiers, verifier)
	challenge, ok := ts.challenges[code]
	ts.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.PostForm.Get("grant_type") != "authorization_code" || !ok || !pkce.VerifyChallenge(challenge, verifier) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token":  "test-access-token",
		"refresh_token": "test-refresh-token",
		"token_type":    "Bearer",
		"expires_in":    3600,
	})
}

var errStoreUnavailable = errors.New("store unavailable")
