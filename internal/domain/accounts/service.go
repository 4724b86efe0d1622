package accounts

import (
	"context"
	"errors"
	"strings"

	"animal-shelter-manager/internal/ports/auth"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// LoginResult is the tri-state outcome of a login attempt, so the UI can tell
// a wrong password from an unknown account.
type LoginResult string

const (
	LoginSuccess         LoginResult = "success"
	LoginInvalidPassword LoginResult = "invalid-password"
	LoginUserNotFound    LoginResult = "user-not-found"
)

type Service struct {
	repo   Repository
	issuer auth.TokenIssuer
}

// NewService builds the account service. issuer may be nil in dev mode, in
// which case sign-up and log-in return empty tokens and the debug headers
// carry the identity instead.
func NewService(repo Repository, issuer auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		issuer: issuer,
	}
}

// SignUp creates the account and logs the new user straight in.
func (s *Service) SignUp(ctx context.Context, username, password string, role auth.Role) (User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, "", ErrInvalidInput
	}
	if len(password) < 6 {
		return User{}, "", ErrInvalidInput
	}
	if !role.Valid() {
		return User{}, "", ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", err
	}

	u := User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, "", err
	}

	token, err := s.issueToken(ctx, u)
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

// LogIn verifies the credentials. Only LoginSuccess comes with a token.
func (s *Service) LogIn(ctx context.Context, username, password string) (LoginResult, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", "", ErrInvalidInput
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return LoginUserNotFound, "", nil
	}
	if err != nil {
		return "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return LoginInvalidPassword, "", nil
	}

	token, err := s.issueToken(ctx, u)
	if err != nil {
		return "", "", err
	}
	return LoginSuccess, token, nil
}

// Me resolves the authenticated claims back to the stored account.
func (s *Service) Me(ctx context.Context, actor auth.Claims) (User, error) {
	if strings.TrimSpace(actor.Username) == "" {
		return User{}, ErrInvalidInput
	}
	return s.repo.GetByUsername(ctx, actor.Username)
}

func (s *Service) issueToken(ctx context.Context, u User) (string, error) {
	if s.issuer == nil {
		return "", nil
	}
	return s.issuer.Issue(ctx, auth.Claims{Username: u.Username, Role: u.Role})
}
