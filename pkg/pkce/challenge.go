package pkce

import (
	"crypto/sha256"
	"crypto/subtle"
	"unicode"
)

// DeriveChallenge returns BASE64URL(SHA256(ASCII(verifier))). It fails with
// a *VerifierError wrapping ErrInvalidVerifierEncoding when verifier contains
// a character outside the ASCII range.
func DeriveChallenge(verifier string) (string, error) {
	if err := checkASCII(verifier); err != nil {
		return "", err
	}

	sum := sha256.Sum256([]byte(verifier))
	return EncodeBase64URL(sum[:]), nil
}

// VerifyChallenge reports whether challenge is the S256 transform of verifier.
func VerifyChallenge(challenge, verifier string) bool {
	derived, err := DeriveChallenge(verifier)
	if err != nil || challenge == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(derived), []byte(challenge)) == 1
}

func checkASCII(s string) error {
	// invalid UTF-8 decodes to utf8.RuneError, which is above MaxASCII
	for i, r := range s {
		if r > unicode.MaxASCII {
			return &VerifierError{Offset: i, Char: r}
		}
	}
	return nil
}
