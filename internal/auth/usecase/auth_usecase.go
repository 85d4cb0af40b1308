package usecase

import (
	"context"
	"log"
	"sync"

	authdomain "todo-backend/internal/auth/domain"
	authdto "todo-backend/internal/auth/dto"
	"todo-backend/internal/auth/repository"
)

// AuthUsecase defines signup, login and profile operations
type AuthUsecase interface {
	Signup(ctx context.Context, req *authdto.SignupRequest) error
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	GetProfile(ctx context.Context, subject string) (*authdto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, subject, name string) error
	// ValidateToken resolves the subject of a bearer token.
	ValidateToken(token string) (string, error)
}

// TokenIssuer issues and verifies bearer tokens.
type TokenIssuer interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	hasher   repository.PasswordHasher
	tokens   TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, hasher repository.PasswordHasher, tokens TokenIssuer) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

func (u *authUsecase) Signup(ctx context.Context, req *authdto.SignupRequest) error {
	email := authdomain.NormalizeEmail(req.Email)

	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return authdomain.ErrDuplicateEmail
	}

	hashedPassword, err := u.hasher.Hash(req.Password)
	if err != nil {
		return err
	}

	user := &authdomain.User{
		Email:    email,
		Password: hashedPassword,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return err
	}

	log.Printf("[Auth] New user registered: %s", user.ID)
	return nil
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, authdomain.NormalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}

	if user == nil {
		// Burn a comparison so unknown emails take as long as wrong passwords.
		u.hasher.Verify(req.Password, u.fallbackHash())
		return nil, authdomain.ErrInvalidCredentials
	}

	if !u.hasher.Verify(req.Password, user.Password) {
		return nil, authdomain.ErrInvalidCredentials
	}

	accessToken, err := u.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

func (u *authUsecase) GetProfile(ctx context.Context, subject string) (*authdto.ProfileResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}

	return &authdto.ProfileResponse{
		Email: user.Email,
		Name:  user.Name,
	}, nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, subject, name string) error {
	return u.userRepo.UpdateName(ctx, subject, name)
}

func (u *authUsecase) ValidateToken(token string) (string, error) {
	return u.tokens.Verify(token)
}

func (u *authUsecase) fallbackHash() string {
	u.dummyOnce.Do(func() {
		hash, err := u.hasher.Hash("dummy-password-for-timing")
		if err != nil {
			log.Printf("[Auth] Failed to prepare fallback hash: %v", err)
			return
		}
		u.dummyHash = hash
	})
	return u.dummyHash
}
