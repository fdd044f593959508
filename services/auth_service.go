package services

import (
	"fmt"

	"parley/auth"
	"parley/domain"
	"parley/errors"
	"parley/repositories"
)

type IAuthService interface {
	Register(login, name, secret string) (domain.Identity, error)
	Login(login, secret string) (Token, domain.Identity, error)
	Revalidate(login string) (domain.Identity, bool)
}

type AuthService struct {
	userRepository repositories.IUserRepository
	signer         *auth.TokenSigner
}

type Token string

func (t Token) String() string {
	return string(t)
}

func NewAuthService(repo repositories.IUserRepository, signer *auth.TokenSigner) IAuthService {
	return &AuthService{userRepository: repo, signer: signer}
}

// Register creates an account and returns its secret-free identity.
// The caller still has to log in afterwards; registering does not
// open a session.
func (s *AuthService) Register(login, name, secret string) (domain.Identity, error) {
	valReq := auth.RegisterRequest{
		Login:  login,
		Name:   name,
		Secret: secret,
	}

	// 1. Validate input before any expensive cryptographic operation.
	if err := auth.ValidateRegister(valReq); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}

	// 2. Hash the secret using Argon2id.
	// Done in the service layer to keep the repository unaware of plain secrets.
	hashedSecret, err := auth.HashSecret(secret)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Persist the account with the generated hash.
	if err := s.userRepository.CreateUser(login, name, hashedSecret); err != nil {
		return domain.Identity{}, err // Propagates ErrUserAlreadyExists if the login is taken
	}

	return domain.Identity{Login: login, Name: name}, nil
}

// Login authenticates a login/secret pair and issues a session token.
// Unknown login and wrong secret fail identically so callers cannot
// probe which field was wrong.
func (s *AuthService) Login(login, secret string) (Token, domain.Identity, error) {
	account, err := s.userRepository.GetUserByLogin(login)
	if err != nil {
		return "", domain.Identity{}, errors.ErrInvalidCredentials
	}

	match, err := auth.CompareSecret(secret, account.SecretHash)
	if err != nil || !match {
		return "", domain.Identity{}, errors.ErrInvalidCredentials
	}

	token, err := s.signer.Generate(login)
	if err != nil {
		return "", domain.Identity{}, errors.ErrTokenGeneration
	}

	return Token(token), account.Identity(), nil
}

// Revalidate maps a session-carried login back to an identity. A
// login that vanished from the directory means the session is stale.
func (s *AuthService) Revalidate(login string) (domain.Identity, bool) {
	account, err := s.userRepository.GetUserByLogin(login)
	if err != nil {
		return domain.Identity{}, false
	}
	return account.Identity(), true
}
