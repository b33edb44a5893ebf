package mailer

import (
	"context"
	"time"

	"github.com/screenlog/movie-catalog-api/pkg/mailer/templates"
)

// Publisher is the subset of the queue publisher the mailer needs.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// VerificationQueue enqueues verification emails for the email worker.
// Sending is best-effort; callers treat publish failures as non-fatal.
type VerificationQueue struct {
	Pub       Publisher
	VerifyURL string // base URL; the token is appended as a query parameter
	ExpiresIn time.Duration
	Enabled   bool
}

func NewVerificationQueue(pub Publisher, verifyURL string, expiresIn time.Duration, enabled bool) *VerificationQueue {
	return &VerificationQueue{Pub: pub, VerifyURL: verifyURL, ExpiresIn: expiresIn, Enabled: enabled}
}

// SendVerification enqueues a verification email carrying the single-use token.
func (q *VerificationQueue) SendVerification(ctx context.Context, email, token string) error {
	if !q.Enabled || q.Pub == nil {
		return nil
	}
	link := q.VerifyURL + "?token=" + token
	job := EmailJob{
		To:       email,
		Template: templates.VerifyEmail,
		Data: map[string]any{
			"Email":     email,
			"VerifyURL": link,
			"ExpiresIn": q.ExpiresIn.String(),
		},
	}
	return q.Pub.PublishJSON(ctx, job)
}
