package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHashSecret_And_CompareSecret(t *testing.T) {
	req := require.New(t)

	hash, err := HashSecret("pw1")
	req.NoError(err)
	req.Contains(hash, "$argon2id$")

	match, err := CompareSecret("pw1", hash)
	req.NoError(err)
	req.True(match)

	match, err = CompareSecret("wrong", hash)
	req.NoError(err)
	req.False(match)
}

func TestHashSecret_SaltsDiffer(t *testing.T) {
	req := require.New(t)

	first, err := HashSecret("pw1")
	req.NoError(err)
	second, err := HashSecret("pw1")
	req.NoError(err)
	req.NotEqual(first, second)
}

func TestCompareSecret_MalformedHash(t *testing.T) {
	req := require.New(t)

	_, err := CompareSecret("pw1", "not-a-hash")
	req.Error(err)
}

func TestTokenSigner_RoundTrip(t *testing.T) {
	req := require.New(t)
	signer := NewTokenSigner("test-secret", time.Hour)

	token, err := signer.Generate("alice")
	req.NoError(err)

	claims, err := signer.Validate(token)
	req.NoError(err)
	req.Equal("alice", claims.Login)
	req.NotEmpty(claims.ID)
}

func TestTokenSigner_RejectsForeignSignature(t *testing.T) {
	req := require.New(t)
	signer := NewTokenSigner("test-secret", time.Hour)
	other := NewTokenSigner("other-secret", time.Hour)

	token, err := other.Generate("alice")
	req.NoError(err)

	_, err = signer.Validate(token)
	req.Error(err)
}

func TestTokenSigner_RejectsExpired(t *testing.T) {
	req := require.New(t)
	signer := NewTokenSigner("test-secret", -time.Minute)

	token, err := signer.Generate("alice")
	req.NoError(err)

	_, err = signer.Validate(token)
	req.Error(err)
}

func TestValidateRegister(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateRegister(RegisterRequest{Login: "alice", Name: "Alice", Secret: "pw1"}))
	req.Error(ValidateRegister(RegisterRequest{Login: "", Name: "Alice", Secret: "pw1"}))
	req.Error(ValidateRegister(RegisterRequest{Login: "alice", Name: "", Secret: "pw1"}))
	req.Error(ValidateRegister(RegisterRequest{Login: "alice", Name: "Alice", Secret: ""}))
}
