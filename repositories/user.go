//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"sync"

	"parley/domain"
	"parley/errors"
)

type IUserRepository interface {
	CreateUser(login, name, secretHash string) error
	GetUserByLogin(login string) (domain.Account, error)
}

// UserRepository keeps accounts in process memory, keyed by login.
// Logins are globally unique; a second create for the same login
// fails and leaves the first account untouched.
type UserRepository struct {
	mu      sync.RWMutex
	byLogin map[string]domain.Account
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byLogin: make(map[string]domain.Account)}
}

func (u *UserRepository) CreateUser(login, name, secretHash string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.byLogin[login]; ok {
		return errors.ErrUserAlreadyExists
	}
	u.byLogin[login] = domain.Account{
		Login:      login,
		Name:       name,
		SecretHash: secretHash,
	}
	return nil
}

func (u *UserRepository) GetUserByLogin(login string) (domain.Account, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	account, ok := u.byLogin[login]
	if !ok {
		return domain.Account{}, errors.ErrUserNotFound
	}
	return account, nil
}

// Len reports the number of registered accounts.
func (u *UserRepository) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.byLogin)
}
