package service

import (
	"crypto/subtle"

	"github.com/unidesk/campus/pkg/cryptox"
)

// Credentials validates the single configured administrative credential.
// The values are loaded once at startup and never change, so the struct is
// safe to share across requests without locking.
type Credentials struct {
	Username string

	// Password is the plaintext admin password. Ignored when PasswordHash is
	// set.
	Password string

	// PasswordHash, when set, is an Argon2id PHC string and replaces the
	// plaintext comparison.
	PasswordHash string
}

// Authenticate reports whether the presented pair matches the configured
// credential. Wrong username and wrong password are indistinguishable to the
// caller, and the comparison does not short-circuit on the username, so
// timing reveals nothing either.
func (c Credentials) Authenticate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1

	var passOK bool
	if c.PasswordHash != "" {
		passOK = cryptox.VerifyPassword(password, c.PasswordHash) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	}

	return userOK && passOK
}
