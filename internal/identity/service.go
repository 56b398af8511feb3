package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mergington/school-activities/internal/credential"
	"github.com/mergington/school-activities/internal/token"
)

const minPasswordLength = 8

var (
	// ErrInvalidCredentials is returned for unknown email, missing credential
	// hash and wrong password alike, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrPasswordTooShort rejects registration passwords under 8 characters.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

// Session is the result of a successful login.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Service manages account registration and authentication.
type Service struct {
	repo   Repository
	tokens *token.Issuer
}

// NewService creates a new identity service.
func NewService(repo Repository, tokens *token.Issuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register hashes the password and stores a new student account. The email
// uniqueness check is the repository insert itself, so concurrent duplicate
// registrations resolve to one success and ErrAlreadyExists for the rest.
func (s *Service) Register(ctx context.Context, email, password string) (Account, error) {
	if len(password) < minPasswordLength {
		return Account{}, ErrPasswordTooShort
	}

	hash, err := credential.Hash(password)
	if err != nil {
		return Account{}, err
	}

	account := Account{
		ID:             uuid.New().String(),
		Email:          email,
		Role:           RoleStudent,
		CredentialHash: hash,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return Account{}, err
	}

	return account, nil
}

// Login verifies the password against the stored credential hash and issues a
// bearer token for the account email.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if account.CredentialHash == "" || !credential.Verify(password, account.CredentialHash) {
		return Session{}, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(account.Email)
	if err != nil {
		return Session{}, err
	}

	return Session{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}
