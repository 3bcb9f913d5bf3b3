package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablecreole/contact-api/internal/models"
	"github.com/tablecreole/contact-api/internal/verify"
)

// mockNotifier records calls; err, when set, is returned from Send.
type mockNotifier struct {
	calls   int
	last    models.CleanSubmission
	subject string
	err     error
}

func (m *mockNotifier) Send(_ context.Context, sub models.CleanSubmission, subject string) error {
	m.calls++
	m.last = sub
	m.subject = subject
	return m.err
}

var testNow = time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)

func newTestPipeline(v *verify.Verifier, n *mockNotifier) *Pipeline {
	p := New(v, n)
	p.now = func() time.Time { return testNow }
	return p
}

func bookingSubmission() *models.Submission {
	return &models.Submission{
		Name:         "Marie Dubois",
		Email:        "marie@example.com",
		Phone:        "0690123456",
		Date:         "2025-08-01",
		ServiceType:  "villa",
		Guests:       "5-8",
		RenderedAtMS: testNow.UnixMilli() - 10_000,
	}
}

func TestProcess_AcceptedBooking(t *testing.T) {
	n := &mockNotifier{}
	p := newTestPipeline(verify.New(""), n)

	res := p.Process(context.Background(), bookingSubmission())

	require.Equal(t, Accepted, res.Outcome)
	require.Equal(t, 1, n.calls, "notifier invoked exactly once")
	assert.Contains(t, n.subject, "Nouvelle réservation")
	assert.Contains(t, n.subject, "Chef en villa")
	assert.True(t, n.last.Booking)
}

func TestProcess_CleanSubmissionStripsMetadata(t *testing.T) {
	n := &mockNotifier{}
	p := newTestPipeline(verify.New(""), n)

	sub := bookingSubmission()
	sub.ChallengeToken = "tok-abc"
	res := p.Process(context.Background(), sub)
	require.Equal(t, Accepted, res.Outcome)

	// The notifier view must not carry anti-spam metadata.
	raw, err := json.Marshal(n.last)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "_honeypot")
	assert.NotContains(t, string(raw), "_timestamp")
	assert.NotContains(t, string(raw), "_challengeToken")
}

func TestProcess_SpamNeverReachesNotifier(t *testing.T) {
	n := &mockNotifier{}
	p := newTestPipeline(verify.New(""), n)

	sub := bookingSubmission()
	sub.Honeypot = "http://spam.biz"

	res := p.Process(context.Background(), sub)
	require.Equal(t, SpamRejected, res.Outcome)
	assert.Equal(t, "honeypot", res.Reason)
	assert.Zero(t, n.calls)
}

func TestProcess_ChallengeRunsBeforeClassifiers(t *testing.T) {
	n := &mockNotifier{}
	// Secret configured, no token supplied: fails without a network call.
	p := newTestPipeline(verify.New("secret-123"), n)

	// Even a honeypot-tripping submission reports ChallengeFailed first.
	sub := bookingSubmission()
	sub.Honeypot = "filled"

	res := p.Process(context.Background(), sub)
	require.Equal(t, ChallengeFailed, res.Outcome)
	assert.Zero(t, n.calls)
}

func TestProcess_ChallengeTokenAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	n := &mockNotifier{}
	p := newTestPipeline(verify.NewWithEndpoint("secret-123", srv.URL), n)

	sub := bookingSubmission()
	sub.ChallengeToken = "tok-abc"

	res := p.Process(context.Background(), sub)
	require.Equal(t, Accepted, res.Outcome)
	assert.Equal(t, 1, n.calls)
}

func TestProcess_NotifyFailure(t *testing.T) {
	n := &mockNotifier{err: errors.New("email API returned 503")}
	p := newTestPipeline(verify.New(""), n)

	res := p.Process(context.Background(), bookingSubmission())
	require.Equal(t, NotifyFailed, res.Outcome)
	assert.ErrorContains(t, res.Err, "503")
}

func TestSubjectLine(t *testing.T) {
	booking := bookingSubmission().Clean()
	assert.Equal(t, "Nouvelle réservation - Chef en villa - Marie Dubois", SubjectLine(booking))

	inquiry := models.CleanSubmission{Name: "Paul Martin", Subject: "menus"}
	assert.Equal(t, "Nouvelle demande de contact - Menus - Paul Martin", SubjectLine(inquiry))

	bare := models.CleanSubmission{Name: "Paul Martin"}
	assert.Equal(t, "Nouvelle demande de contact - Paul Martin", SubjectLine(bare))
}
