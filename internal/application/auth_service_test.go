package application

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenlog/movie-catalog-api/internal/infrastructure/memory"
	"github.com/screenlog/movie-catalog-api/pkg/helpers"
)

type sentMail struct {
	Email string
	Token string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeSender) SendVerification(_ context.Context, email, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{Email: email, Token: token})
	return nil
}

func (f *fakeSender) all() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.sent...)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newAuthFixture(t *testing.T) (*AuthService, *memory.UserRepository, *fakeSender) {
	t.Helper()
	users := memory.NewUserRepository()
	sender := &fakeSender{}
	tm := helpers.NewTokenManager("test-secret", 30*time.Minute)
	svc := NewAuthService(users, tm, sender, testLogger(), time.Hour)
	return svc, users, sender
}

func TestRegisterCreatesUnverifiedUserAndSendsEmail(t *testing.T) {
	svc, _, sender := newAuthFixture(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice@example.com", "s3cretpass", "Alice", "Smith")
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.False(t, u.IsVerified)
	require.NotNil(t, u.VerificationToken)
	require.NotNil(t, u.VerificationTokenExpiry)
	assert.True(t, u.VerificationTokenExpiry.After(time.Now()))
	assert.NotEqual(t, "s3cretpass", u.HashedPassword)

	sent := sender.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "alice@example.com", sent[0].Email)
	assert.Equal(t, *u.VerificationToken, sent[0].Token)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "s3cretpass", "Alice", "Smith")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice@example.com", "otherpass1", "Alice", "Jones")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "s3cretpass", "Alice", "Smith")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "alice@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrongpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cretpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueTokenAndResolveUser(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "s3cretpass", "Alice", "Smith")
	require.NoError(t, err)

	token, err := svc.IssueToken(ctx, "alice@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	require.NotEmpty(t, token.AccessToken)

	u, err := svc.ResolveUser(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)

	_, err = svc.ResolveUser(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice@example.com", "s3cretpass", "Alice", "Smith")
	require.NoError(t, err)
	token := *u.VerificationToken

	verified, err := svc.VerifyEmail(ctx, token)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Nil(t, verified.VerificationToken)
	assert.Nil(t, verified.VerificationTokenExpiry)

	// token is single-use
	_, err = svc.VerifyEmail(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyEmailAlreadyVerified(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice@example.com", "s3cretpass", "Alice", "Smith")
	require.NoError(t, err)
	token := *u.VerificationToken

	// verified user whose token was never cleared
	u.IsVerified = true
	require.NoError(t, users.Update(ctx, u))

	_, err = svc.VerifyEmail(ctx, token)
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerifyEmailExpiredTokenIsCleared(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice@example.com", "s3cretpass", "Alice", "Smith")
	require.NoError(t, err)
	token := *u.VerificationToken

	past := time.Now().UTC().Add(-time.Minute)
	u.VerificationTokenExpiry = &past
	require.NoError(t, users.Update(ctx, u))

	_, err = svc.VerifyEmail(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// the expired token was consumed
	_, err = svc.VerifyEmail(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResendVerificationRotatesToken(t *testing.T) {
	svc, _, sender := newAuthFixture(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice@example.com", "s3cretpass", "Alice", "Smith")
	require.NoError(t, err)
	first := *u.VerificationToken

	resent, err := svc.ResendVerification(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, resent.VerificationToken)
	assert.NotEqual(t, first, *resent.VerificationToken)

	sent := sender.all()
	require.Len(t, sent, 2)
	assert.Equal(t, *resent.VerificationToken, sent[1].Token)

	// the old token no longer verifies
	_, err = svc.VerifyEmail(ctx, first)
	assert.ErrorIs(t, err, ErrInvalidToken)

	verified, err := svc.VerifyEmail(ctx, *resent.VerificationToken)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
}

func TestResendVerificationErrors(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.ResendVerification(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	u, err := svc.Register(ctx, "alice@example.com", "s3cretpass", "Alice", "Smith")
	require.NoError(t, err)
	_, err = svc.VerifyEmail(ctx, *u.VerificationToken)
	require.NoError(t, err)

	_, err = svc.ResendVerification(ctx, "alice@example.com")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}
