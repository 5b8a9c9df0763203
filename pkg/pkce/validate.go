package pkce

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const unreservedChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

var verifierValidate = newVerifierValidator()

func newVerifierValidator() *validator.Validate {
	validate := validator.New()

	// registration only fails for an empty tag or nil func
	_ = validate.RegisterValidation("pkce_verifier", func(fl validator.FieldLevel) bool {
		return isUnreserved(fl.Field().String())
	})

	return validate
}

// ValidateVerifier checks verifier against RFC 7636 section 4.1: ASCII only,
// 43 to 128 characters long, drawn from [A-Za-z0-9-._~]. Failures wrap
// ErrInvalidVerifierEncoding.
func ValidateVerifier(verifier string) error {
	if err := checkASCII(verifier); err != nil {
		return err
	}

	tag := fmt.Sprintf("min=%d,max=%d,pkce_verifier", MinVerifierLength, MaxVerifierLength)
	if err := verifierValidate.Var(verifier, tag); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidVerifierEncoding, err)
	}
	return nil
}

func isUnreserved(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(unreservedChars, r) {
			return false
		}
	}
	return true
}
