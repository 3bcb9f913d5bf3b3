// Package pipeline sequences the submission triage: challenge verification,
// heuristic classifiers, then notification. First disqualifying signal wins.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/tablecreole/contact-api/internal/models"
	"github.com/tablecreole/contact-api/internal/notify"
	"github.com/tablecreole/contact-api/internal/spamcheck"
	"github.com/tablecreole/contact-api/internal/verify"
)

// Outcome is the terminal state of one submission's triage.
type Outcome int

const (
	// Accepted means the submission passed every gate and the notifier
	// confirmed delivery.
	Accepted Outcome = iota
	// ChallengeFailed means human verification failed or was missing.
	ChallengeFailed
	// SpamRejected means a heuristic classifier flagged the submission.
	SpamRejected
	// NotifyFailed means the submission was accepted but the notifier
	// reported an error.
	NotifyFailed
)

// Result carries the outcome plus diagnostic detail for server-side logs.
type Result struct {
	Outcome Outcome
	Reason  string // classifier reason tag when SpamRejected
	Err     error  // notifier error when NotifyFailed
}

// Pipeline triages submissions. Rate limiting and schema validation happen
// upstream in the transport layer; by the time Process runs the submission
// is well-formed.
type Pipeline struct {
	verifier *verify.Verifier
	notifier notify.Notifier
	now      func() time.Time
}

// New creates a Pipeline with the given collaborators.
func New(verifier *verify.Verifier, notifier notify.Notifier) *Pipeline {
	return &Pipeline{
		verifier: verifier,
		notifier: notifier,
		now:      time.Now,
	}
}

// Process triages one submission. The submission is only read; the derived
// CleanSubmission is what reaches the notifier.
func (p *Pipeline) Process(ctx context.Context, sub *models.Submission) Result {
	if !p.verifier.Verify(ctx, sub.ChallengeToken) {
		return Result{Outcome: ChallengeFailed}
	}

	if verdict := spamcheck.Check(sub, p.now()); verdict.Spam {
		return Result{Outcome: SpamRejected, Reason: verdict.Reason}
	}

	clean := sub.Clean()
	if err := p.notifier.Send(ctx, clean, SubjectLine(clean)); err != nil {
		return Result{Outcome: NotifyFailed, Err: err}
	}
	return Result{Outcome: Accepted}
}

// SubjectLine builds the notification email subject for an accepted
// submission.
func SubjectLine(clean models.CleanSubmission) string {
	if clean.Booking {
		return fmt.Sprintf("Nouvelle réservation - %s - %s",
			models.ServiceTypeLabel(clean.ServiceType), clean.Name)
	}
	if clean.Subject != "" {
		return fmt.Sprintf("Nouvelle demande de contact - %s - %s",
			models.SubjectLabel(clean.Subject), clean.Name)
	}
	return fmt.Sprintf("Nouvelle demande de contact - %s", clean.Name)
}
