package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Verifier checks that a payment confirmation genuinely originated from the
// gateway, using the shared key secret. The secret is held only here and is
// never logged or transmitted.
type Verifier struct {
	secret []byte
}

// NewVerifier returns a Verifier bound to the gateway key secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify reports whether signature is the hex HMAC-SHA256 of
// "orderID|paymentID" under the shared secret. It is deterministic, does no
// I/O, and never errors on malformed input: anything that is not the exact
// expected digest simply fails to match. The comparison is constant time.
func (v *Verifier) Verify(orderID, paymentID, signature string) bool {
	if signature == "" {
		return false
	}
	// Compare the hex renderings, not decoded bytes, so an uppercase digest
	// does not sneak past the exact-match contract.
	return hmac.Equal([]byte(signature), []byte(v.sign(orderID, paymentID)))
}

func (v *Verifier) sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
