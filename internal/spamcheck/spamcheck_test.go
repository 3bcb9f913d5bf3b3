package spamcheck

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablecreole/contact-api/internal/models"
)

var now = time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)

// validSubmission returns a submission that passes every classifier.
func validSubmission() *models.Submission {
	return &models.Submission{
		Name:         "Marie Dubois",
		Email:        "marie@example.com",
		Phone:        "0690123456",
		Date:         "2025-08-01",
		ServiceType:  "villa",
		Guests:       "5-8",
		RenderedAtMS: now.UnixMilli() - 10_000,
	}
}

func TestCheck_ValidSubmissionPasses(t *testing.T) {
	res := Check(validSubmission(), now)
	require.False(t, res.Spam, "reason: %s", res.Reason)
}

func TestCheck_Honeypot(t *testing.T) {
	t.Run("filled value", func(t *testing.T) {
		sub := validSubmission()
		sub.Honeypot = "http://spam.biz"

		res := Check(sub, now)
		require.True(t, res.Spam)
		assert.Equal(t, ReasonHoneypot, res.Reason)
	})

	// Bots sometimes fill hidden fields with spaces; any non-empty value
	// counts, whitespace included.
	t.Run("whitespace-only value", func(t *testing.T) {
		sub := validSubmission()
		sub.Honeypot = "   "

		res := Check(sub, now)
		require.True(t, res.Spam)
		assert.Equal(t, ReasonHoneypot, res.Reason)
	})
}

func TestCheck_Timing(t *testing.T) {
	t.Run("one second is too fast", func(t *testing.T) {
		sub := validSubmission()
		sub.RenderedAtMS = now.UnixMilli() - 1000

		res := Check(sub, now)
		require.True(t, res.Spam)
		assert.Equal(t, ReasonTooFast, res.Reason)
	})

	t.Run("five seconds passes", func(t *testing.T) {
		sub := validSubmission()
		sub.RenderedAtMS = now.UnixMilli() - 5000

		res := Check(sub, now)
		assert.False(t, res.Spam)
	})

	t.Run("absent timestamp skips the check", func(t *testing.T) {
		sub := validSubmission()
		sub.RenderedAtMS = 0

		res := Check(sub, now)
		assert.False(t, res.Spam)
	})
}

func TestCheck_GibberishName(t *testing.T) {
	sub := validSubmission()
	sub.Name = "IYCCVrgAvxiKuqdvC"

	res := Check(sub, now)
	require.True(t, res.Spam)
	assert.Equal(t, ReasonGibberishName, res.Reason)
}

func TestLooksGibberish(t *testing.T) {
	gibberish := []string{
		"IYCCVrgAvxiKuqdvC",          // random case + consonant run
		"xKqWzvBnMp",                 // vowel starved
		"abcdefghijklmnopqrstuvwxyz", // single over-long token
		"bonjour szchrkvlt merci",    // consonant run in one token
	}
	for _, s := range gibberish {
		assert.True(t, looksGibberish(s), "expected gibberish: %q", s)
	}

	legitimate := []string{
		"Jean-Baptiste",
		"Marie Dubois",
		"Héloïse Lefèvre-Garnier",
		"Chrystelle",
		"je souhaite réserver un chef pour huit convives",
	}
	for _, s := range legitimate {
		assert.False(t, looksGibberish(s), "expected legitimate: %q", s)
	}
}

func TestCheck_GibberishSubjectAndMessage(t *testing.T) {
	sub := validSubmission()
	sub.Date, sub.ServiceType, sub.Guests = "", "", ""
	sub.Subject = "qWxKvZbTrNmPsd"

	res := Check(sub, now)
	require.True(t, res.Spam)
	assert.Equal(t, ReasonGibberishSubject, res.Reason)

	sub = validSubmission()
	sub.Message = "Bonjour XKQWZVBNMPXKQWZVBNMP merci"

	res = Check(sub, now)
	require.True(t, res.Spam)
	assert.Equal(t, ReasonGibberishMessage, res.Reason)
}

func TestCheck_EnumValidation(t *testing.T) {
	t.Run("known subject passes", func(t *testing.T) {
		sub := validSubmission()
		sub.Date, sub.ServiceType, sub.Guests = "", "", ""
		sub.Subject = "villa"

		res := Check(sub, now)
		assert.False(t, res.Spam)
	})

	t.Run("unknown subject is rejected", func(t *testing.T) {
		sub := validSubmission()
		sub.Date, sub.ServiceType, sub.Guests = "", "", ""
		sub.Subject = "xyz123"

		res := Check(sub, now)
		require.True(t, res.Spam)
		assert.Equal(t, ReasonInvalidSubject, res.Reason)
	})

	t.Run("unknown service type is rejected", func(t *testing.T) {
		sub := validSubmission()
		sub.ServiceType = "yacht"

		res := Check(sub, now)
		require.True(t, res.Spam)
		assert.Equal(t, ReasonInvalidServiceType, res.Reason)
	})
}

func TestCheck_SpamKeywordsInName(t *testing.T) {
	sub := validSubmission()
	sub.Name = "Best Casino Bonus"

	res := Check(sub, now)
	require.True(t, res.Spam)
	assert.Equal(t, ReasonKeywordsName, res.Reason)
}

func TestCheck_DisposableEmailDomain(t *testing.T) {
	sub := validSubmission()
	sub.Email = "bot@mailinator.com"

	res := Check(sub, now)
	require.True(t, res.Spam)
	assert.Equal(t, ReasonEmailDomain, res.Reason)

	sub.Email = "marie@gmail.com"
	res = Check(sub, now)
	assert.False(t, res.Spam)
}

func TestCheck_MessageContent(t *testing.T) {
	withMessage := func(msg string) *models.Submission {
		sub := validSubmission()
		sub.Message = msg
		return sub
	}

	t.Run("spam keywords", func(t *testing.T) {
		res := Check(withMessage("achetez du viagra pas cher"), now)
		require.True(t, res.Spam)
		assert.Equal(t, ReasonKeywordsMessage, res.Reason)
	})

	t.Run("bbcode markup", func(t *testing.T) {
		res := Check(withMessage("regardez [url=http://spam.biz]ici[/url]"), now)
		require.True(t, res.Spam)
		assert.Equal(t, ReasonSuspiciousPatterns, res.Reason)
	})

	t.Run("html anchor", func(t *testing.T) {
		res := Check(withMessage(`cliquez <a href="http://spam.biz">ici</a>`), now)
		require.True(t, res.Spam)
		assert.Equal(t, ReasonSuspiciousPatterns, res.Reason)
	})

	t.Run("script tag", func(t *testing.T) {
		res := Check(withMessage("bonjour < script > alert(1) merci"), now)
		require.True(t, res.Spam)
		assert.Equal(t, ReasonSuspiciousPatterns, res.Reason)
	})

	t.Run("two urls pass", func(t *testing.T) {
		res := Check(withMessage("voici mon site https://a.fr et https://b.fr merci"), now)
		assert.False(t, res.Spam, "reason: %s", res.Reason)
	})

	t.Run("three urls are too many", func(t *testing.T) {
		res := Check(withMessage("https://a.fr https://b.fr https://c.fr"), now)
		require.True(t, res.Spam)
		assert.Equal(t, ReasonTooManyURLs, res.Reason)
	})

	t.Run("more than three urls count as suspicious", func(t *testing.T) {
		res := Check(withMessage("https://a.fr https://b.fr https://c.fr https://d.fr"), now)
		require.True(t, res.Spam)
		assert.Equal(t, ReasonSuspiciousPatterns, res.Reason)
	})

	t.Run("over-long message", func(t *testing.T) {
		res := Check(withMessage(strings.Repeat("bonjour tout le monde ", 300)), now)
		require.True(t, res.Spam)
		assert.Equal(t, ReasonMessageTooLong, res.Reason)
	})

	t.Run("excessive caps", func(t *testing.T) {
		res := Check(withMessage(strings.Repeat("MERCI BEAUCOUP ", 10)), now)
		require.True(t, res.Spam)
		assert.Equal(t, ReasonExcessiveCaps, res.Reason)
	})

	t.Run("short caps message is fine", func(t *testing.T) {
		res := Check(withMessage("OK MERCI"), now)
		assert.False(t, res.Spam)
	})
}

/// Classifiers are pure: identical input, identical output, no hidden state.
func TestCheck_Idempotent(t *testing.T) {
	sub := validSubmission()
	sub.Honeypot = "filled"

	first := Check(sub, now)
	second := Check(sub, now)
	assert.Equal(t, first, second)

	clean := validSubmission()
	assert.Equal(t, Check(clean, now), Check(clean, now))
}
