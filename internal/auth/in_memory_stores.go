package auth

import (
	"fmt"
	"sync"
	"time"
)

type issuedState struct {
	state   string
	expires time.Time
}

// InMemoryStateStore provides an in-memory implementation of the StateStore
// interface. States older than the TTL no longer validate.
type InMemoryStateStore struct {
	mu     sync.Mutex
	states map[string]issuedState
	ttl    time.Duration
	now    func() time.Time
}

// NewInMemoryStateStore creates a new InMemoryStateStore. A ttl of zero or
// less keeps states until they are validated or replaced.
func NewInMemoryStateStore(ttl time.Duration) *InMemoryStateStore {
	return &InMemoryStateStore{
		states: make(map[string]issuedState),
		ttl:    ttl,
		now:    time.Now,
	}
}

// StoreState stores the state for a given user ID and returns the live state
// it replaced, if any.
func (s *InMemoryStateStore) StoreState(userID, state string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var previous string
	if old, ok := s.states[userID]; ok && !s.expired(old.expires) {
		previous = old.state
	}
	s.sweep()

	s.states[userID] = issuedState{state: state, expires: expiry(s.now(), s.ttl)}
	return previous, nil
}

// ValidateState validates and then deletes the state for a given user ID.
func (s *InMemoryStateStore) ValidateState(userID, state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	issued, ok := s.states[userID]
	if !ok {
		return false
	}
	if s.expired(issued.expires) {
		delete(s.states, userID)
		return false
	}
	if issued.state != state {
		return false
	}
	delete(s.states, userID)
	return true
}

// DeleteState removes the state for a given user ID.
func (s *InMemoryStateStore) DeleteState(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}

// Len returns the number of users with a stored state.
func (s *InMemoryStateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

// sweep drops expired states. Callers hold s.mu.
func (s *InMemoryStateStore) sweep() {
	for userID, issued := range s.states {
		if s.expired(issued.expires) {
			delete(s.states, userID)
		}
	}
}

func (s *InMemoryStateStore) expired(expires time.Time) bool {
	return !expires.IsZero() && s.now().After(expires)
}

type storedVerifier struct {
	verifier string
	expires  time.Time
}

// InMemoryPKCEStore provides an in-memory implementation of the PKCEStore
// interface. Verifiers older than the TTL are treated as missing and are
// swept on every write.
type InMemoryPKCEStore struct {
	mu        sync.Mutex
	verifiers map[string]storedVerifier
	ttl       time.Duration
	now       func() time.Time
}

// NewInMemoryPKCEStore creates a new InMemoryPKCEStore. A ttl of zero or less
// keeps verifiers until they are read or deleted.
func NewInMemoryPKCEStore(ttl time.Duration) *InMemoryPKCEStore {
	return &InMemoryPKCEStore{
		verifiers: make(map[string]storedVerifier),
		ttl:       ttl,
		now:       time.Now,
	}
}

// StoreVerifier stores the code verifier for a given state.
func (s *InMemoryPKCEStore) StoreVerifier(state, verifier string) error {
	if state == "" {
		return fmt.Errorf("state cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	s.verifiers[state] = storedVerifier{verifier: verifier, expires: expiry(s.now(), s.ttl)}
	return nil
}

// GetVerifier retrieves and deletes the code verifier for a given state.
func (s *InMemoryPKCEStore) GetVerifier(state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.verifiers[state]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrVerifierNotFound, state)
	}
	delete(s.verifiers, state)

	if s.expired(entry) {
		return "", fmt.Errorf("%w: verifier for state %s expired", ErrVerifierNotFound, state)
	}
	return entry.verifier, nil
}

// DeleteVerifier removes the verifier for state, if present.
func (s *InMemoryPKCEStore) DeleteVerifier(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.verifiers, state)
}

// Cleanup removes expired verifiers and returns how many were removed.
func (s *InMemoryPKCEStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweep()
}

// Len returns the number of stored verifiers, expired or not.
func (s *InMemoryPKCEStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.verifiers)
}

// sweep drops expired verifiers. Callers hold s.mu.
func (s *InMemoryPKCEStore) sweep() int {
	removed := 0
	for state, entry := range s.verifiers {
		if s.expired(entry) {
			delete(s.verifiers, state)
			removed++
		}
	}
	return removed
}

func (s *InMemoryPKCEStore) expired(entry storedVerifier) bool {
	return !entry.expires.IsZero() && s.now().After(entry.expires)
}

func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}
