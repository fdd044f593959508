// Package domain contains core concepts of the chat system.
// This file defines user identities and related rules.
package domain

// Identity is the secret-free view of a user, safe to expose to
// other users and to the wire.
type Identity struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

// Account is the full user record, including the credential hash.
// It never leaves the repository layer.
type Account struct {
	Login      string
	Name       string
	SecretHash string
}

// Identity strips the credential from an Account.
func (a Account) Identity() Identity {
	return Identity{Login: a.Login, Name: a.Name}
}
