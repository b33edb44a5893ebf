package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
	"github.com/screenlog/movie-catalog-api/internal/domain/repository"
	"github.com/screenlog/movie-catalog-api/pkg/helpers"
)

// VerificationSender delivers the verification email carrying the
// single-use token. Implementations are best-effort.
type VerificationSender interface {
	SendVerification(ctx context.Context, email, token string) error
}

// AuthService implements registration, login, token issuance, and the
// email verification lifecycle.
type AuthService struct {
	Users           repository.UserRepository
	Tokens          *helpers.TokenManager
	Mailer          VerificationSender
	Logger          *logrus.Logger
	VerificationTTL time.Duration
}

func NewAuthService(users repository.UserRepository, tokens *helpers.TokenManager, mailer VerificationSender, logger *logrus.Logger, verificationTTL time.Duration) *AuthService {
	return &AuthService{
		Users:           users,
		Tokens:          tokens,
		Mailer:          mailer,
		Logger:          logger,
		VerificationTTL: verificationTTL,
	}
}

// Token is the bearer token issuance result.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates an unverified user with a fresh verification token and
// triggers the verification email. The email send is fire-and-forget:
// failures are logged, never surfaced.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*entity.User, error) {
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		s.Logger.WithField("email", email).Warn("email already registered")
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	token := uuid.NewString()
	expiry := time.Now().UTC().Add(s.VerificationTTL)

	u := &entity.User{
		Email:                   email,
		FirstName:               firstName,
		LastName:                lastName,
		HashedPassword:          hash,
		VerificationToken:       &token,
		VerificationTokenExpiry: &expiry,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// The unique index catches the race between the lookup above and
		// a concurrent registration.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.Logger.WithField("email", email).Info("user registered")

	s.sendVerification(ctx, u.Email, token)
	return u, nil
}

// Authenticate validates email/password and returns the user. Unknown
// email and wrong password both come back as ErrInvalidCredentials;
// only the logs distinguish them.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		s.Logger.WithField("email", email).Warn("user not found")
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.HashedPassword, password) {
		s.Logger.WithField("email", email).Warn("invalid password")
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueToken re-authenticates and mints a signed bearer token with the
// email as subject.
func (s *AuthService) IssueToken(ctx context.Context, email, password string) (Token, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return Token{}, err
	}
	access, _, err := s.Tokens.Generate(u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("email", email).Error("generate access token failed")
		return Token{}, err
	}
	return Token{AccessToken: access, TokenType: "bearer"}, nil
}

// ResolveUser verifies the bearer token and loads the user behind its
// subject. Any failure is ErrInvalidToken.
func (s *AuthService) ResolveUser(ctx context.Context, token string) (*entity.User, error) {
	email, err := s.Tokens.Parse(token)
	if err != nil {
		s.Logger.WithError(err).Warn("token parse failed")
		return nil, ErrInvalidToken
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		s.Logger.WithField("email", email).Warn("token subject no longer exists")
		return nil, ErrInvalidToken
	}
	return u, nil
}

// VerifyEmail redeems a verification token. Each failure mode is distinct:
// unknown token, already verified, expired (which also clears the token).
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*entity.User, error) {
	u, err := s.Users.GetByVerificationToken(ctx, token)
	if err != nil || u == nil {
		s.Logger.Warn("invalid or expired verification token")
		return nil, ErrInvalidToken
	}
	if u.IsVerified {
		s.Logger.WithField("email", u.Email).Warn("email already verified")
		return nil, ErrAlreadyVerified
	}
	if u.VerificationTokenExpiry == nil || time.Now().UTC().After(*u.VerificationTokenExpiry) {
		u.VerificationToken = nil
		u.VerificationTokenExpiry = nil
		if err := s.Users.Update(ctx, u); err != nil {
			return nil, err
		}
		s.Logger.WithField("email", u.Email).Warn("expired verification token")
		return nil, ErrTokenExpired
	}

	u.IsVerified = true
	u.VerificationToken = nil
	u.VerificationTokenExpiry = nil
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.Logger.WithField("email", u.Email).Info("email verified")
	return u, nil
}

// ResendVerification rotates the verification token and resends the email.
func (s *AuthService) ResendVerification(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if u.IsVerified {
		return nil, ErrAlreadyVerified
	}

	token := uuid.NewString()
	expiry := time.Now().UTC().Add(s.VerificationTTL)
	u.VerificationToken = &token
	u.VerificationTokenExpiry = &expiry
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.Logger.WithField("email", email).Info("verification token rotated")

	s.sendVerification(ctx, u.Email, token)
	return u, nil
}

func (s *AuthService) sendVerification(ctx context.Context, email, token string) {
	if s.Mailer == nil {
		return
	}
	if err := s.Mailer.SendVerification(ctx, email, token); err != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("failed to send verification email")
	}
}
