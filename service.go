package access

import (
	"context"

	"github.com/goliatone/go-errors"
)

// LoginResult is what a successful login hands back to the boundary layer.
type LoginResult struct {
	AccessToken string  `json:"access_token"`
	User        Profile `json:"user"`
}

// Service orchestrates the credential flows: store lookup plus hash compare
// for login, hash-and-persist for registration, token issuance on success.
type Service struct {
	store  UserStore
	hasher PasswordHasher
	issuer TokenIssuer
	logger Logger
}

func NewService(store UserStore, hasher PasswordHasher, issuer TokenIssuer) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		issuer: issuer,
		logger: defLogger{},
	}
}

func (s *Service) WithLogger(logger Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Login verifies the email/password pair and issues a bearer token carrying
// the user's id, email, and role. An unknown email and a wrong password
// produce the identical ErrInvalidCredentials so responses cannot be used to
// enumerate accounts. Store failures other than "not found" propagate as
// internal errors and are never retried here.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up user during login")
	}

	if err := s.hasher.Compare(ctx, password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "password verification failed")
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		s.logger.Error("login token issuance failed", "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to issue token")
	}

	return &LoginResult{
		AccessToken: token,
		User:        user.Redact(),
	}, nil
}

// Register hashes the password and persists a new user with the least
// privileged role. An already registered email fails with ErrDuplicateEmail
// and leaves the existing record untouched.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Profile, error) {
	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) && richErr.Category == errors.CategoryValidation {
			return nil, richErr
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Name:         name,
		Email:        NormalizeEmail(email),
		Role:         RoleCustomer,
		PasswordHash: hash,
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to persist user")
	}

	profile := created.Redact()
	return &profile, nil
}
