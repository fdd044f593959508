package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"

	"parley/errors"
)

func TestUserRepository_CreateUser(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository()

	req.NoError(repo.CreateUser("alice", "Alice", "hash-1"))

	t.Run("duplicate login fails and leaves the first account untouched", func(t *testing.T) {
		err := repo.CreateUser("alice", "Alice2", "hash-2")
		req.ErrorIs(err, errors.ErrUserAlreadyExists)

		account, err := repo.GetUserByLogin("alice")
		req.NoError(err)
		req.Equal("Alice", account.Name)
		req.Equal("hash-1", account.SecretHash)
	})

	t.Run("distinct logins coexist", func(t *testing.T) {
		req.NoError(repo.CreateUser("bob", "Bob", "hash-3"))
		req.Equal(2, repo.Len())
	})
}

func TestUserRepository_GetUserByLogin_Absent(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository()

	_, err := repo.GetUserByLogin("ghost")
	req.ErrorIs(err, errors.ErrUserNotFound)
}
