// Package auth owns the credential lifecycle: registration, login and the
// password hashing in between. Tokens themselves live in the token package.
package auth

import (
	"errors"
	"fmt"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/models"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password; the caller must not be able to tell which.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrDuplicateEmail re-exports the store sentinel so handlers only deal with
// this package.
var ErrDuplicateEmail = store.ErrDuplicateEmail

// Users is the slice of the user store this service needs.
type Users interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
}

// TokenIssuer mints a bearer token for an identity.
type TokenIssuer interface {
	Issue(userID uint, email string) (string, error)
}

// Service registers accounts and authenticates login attempts.
type Service struct {
	users      Users
	tokens     TokenIssuer
	bcryptCost int
}

func NewService(users Users, tokens TokenIssuer, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates an account and returns it together with a fresh token.
// Fails with ErrDuplicateEmail when the email already owns an account.
func (s *Service) Register(name, email, password string) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// Authenticate checks an email/password pair and issues a new token on
// success. An unknown email and a failed hash check both come back as
// ErrInvalidCredentials.
func (s *Service) Authenticate(email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}
