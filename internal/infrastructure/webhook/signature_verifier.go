package webhook

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strings"
)

// SignatureVerifier provides HMAC signature verification for inbound
// webhooks.
type SignatureVerifier struct{}

// NewSignatureVerifier creates a new SignatureVerifier.
func NewSignatureVerifier() *SignatureVerifier {
	return &SignatureVerifier{}
}

// VerifyGitHubSignature verifies a GitHub-style signature header of the
// form "<algorithm>=<hex>" over the raw request body. GitHub's legacy
// X-Hub-Signature header uses sha1; X-Hub-Signature-256 uses sha256. Both
// are accepted. Returns false on a missing header, missing secret, unknown
// algorithm, or mismatch.
func (v *SignatureVerifier) VerifyGitHubSignature(payload []byte, signatureHeader, secret string) bool {
	if signatureHeader == "" || secret == "" {
		return false
	}

	parts := strings.SplitN(signatureHeader, "=", 2)
	if len(parts) != 2 {
		return false
	}

	var h hash.Hash
	switch parts[0] {
	case "sha1":
		h = hmac.New(sha1.New, []byte(secret))
	case "sha256":
		h = hmac.New(sha256.New, []byte(secret))
	default:
		return false
	}

	h.Write(payload)
	expected := hex.EncodeToString(h.Sum(nil))

	// Constant-time comparison to prevent timing attacks
	return hmac.Equal([]byte(expected), []byte(parts[1]))
}
