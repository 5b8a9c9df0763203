package pkce

import "encoding/base64"

// EncodeBase64URL returns the unpadded, URL-safe base64 form of data as used
// by RFC 7636 Appendix A: no '=' padding, '+' becomes '-' and '/' becomes '_'.
func EncodeBase64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}
