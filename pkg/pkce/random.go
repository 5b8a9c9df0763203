package pkce

import (
	"crypto/rand"
	"fmt"
	"io"
)

// OctetSource produces random octets for code verifiers.
type OctetSource interface {
	Octets(count int) ([]byte, error)
}

// CryptoOctetSource reads octets from a cryptographically secure reader.
type CryptoOctetSource struct {
	reader io.Reader
}

// NewCryptoOctetSource returns a source backed by the operating system CSPRNG.
func NewCryptoOctetSource() *CryptoOctetSource {
	return &CryptoOctetSource{reader: rand.Reader}
}

// NewOctetSource returns a source backed by r.
func NewOctetSource(r io.Reader) *CryptoOctetSource {
	return &CryptoOctetSource{reader: r}
}

// Octets returns exactly count random octets. Any failure of the underlying
// reader, including a short read, is reported as ErrRandomGeneration.
func (s *CryptoOctetSource) Octets(count int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrRandomGeneration, count)
	}

	octets := make([]byte, count)
	if _, err := io.ReadFull(s.reader, octets); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomGeneration, err)
	}
	return octets, nil
}
