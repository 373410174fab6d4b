package xenditwebhook

import (
	"crypto/subtle"
)

// VerifyCallbackToken checks the shared-secret token the gateway sends with
// every webhook. Fails closed: an unset secret or a missing token is always
// rejected. The comparison is constant-time so token content cannot be probed
// through response timing.
func VerifyCallbackToken(secret, token string) bool {
	if secret == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(token)) == 1
}
