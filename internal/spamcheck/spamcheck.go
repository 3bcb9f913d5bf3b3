// Package spamcheck contains the heuristic classifiers applied to contact
// form submissions. Every check is a pure function over the submission; the
// entry point runs them in a fixed priority order and stops at the first
// positive verdict.
package spamcheck

import (
	"strings"
	"time"
	"unicode"

	"github.com/tablecreole/contact-api/internal/models"
)

// Reason tags recorded when a submission is classified as spam. These show
// up in server logs only; callers never see them.
const (
	ReasonHoneypot           = "honeypot"
	ReasonTooFast            = "too_fast"
	ReasonGibberishName      = "gibberish_name"
	ReasonGibberishSubject   = "gibberish_subject"
	ReasonGibberishMessage   = "gibberish_message"
	ReasonInvalidSubject     = "invalid_subject"
	ReasonInvalidServiceType = "invalid_service_type"
	ReasonKeywordsName       = "spam_keywords_name"
	ReasonEmailDomain        = "spam_email_domain"
	ReasonKeywordsMessage    = "spam_keywords_message"
	ReasonSuspiciousPatterns = "suspicious_patterns"
	ReasonTooManyURLs        = "too_many_urls"
	ReasonMessageTooLong     = "message_too_long"
	ReasonExcessiveCaps      = "excessive_caps"
)

// minFillTime is the shortest plausible time for a human to fill the form.
const minFillTime = 3000 * time.Millisecond

// maxMessageLength is the classifier cap on message size. Longer messages
// are silently dropped rather than rejected with an error.
const maxMessageLength = 5000

// Result is the verdict of a classifier run.
type Result struct {
	Spam   bool
	Reason string
}

var clean = Result{}

func spam(reason string) Result {
	return Result{Spam: true, Reason: reason}
}

// Check runs every classifier against the submission in priority order and
// returns the first positive verdict. now is injected so the timing check
// stays deterministic under test.
func Check(sub *models.Submission, now time.Time) Result {
	if sub.Honeypot != "" {
		return spam(ReasonHoneypot)
	}

	if sub.RenderedAtMS != 0 {
		elapsed := time.Duration(now.UnixMilli()-sub.RenderedAtMS) * time.Millisecond
		if elapsed < minFillTime {
			return spam(ReasonTooFast)
		}
	}

	if looksGibberish(sub.Name) {
		return spam(ReasonGibberishName)
	}
	if sub.Subject != "" && looksGibberish(sub.Subject) {
		return spam(ReasonGibberishSubject)
	}
	if sub.Message != "" && looksGibberish(sub.Message) {
		return spam(ReasonGibberishMessage)
	}

	if sub.Subject != "" && !models.ValidSubject(sub.Subject) {
		return spam(ReasonInvalidSubject)
	}
	if sub.ServiceType != "" && !models.ValidServiceType(sub.ServiceType) {
		return spam(ReasonInvalidServiceType)
	}

	if containsSpamKeyword(sub.Name) {
		return spam(ReasonKeywordsName)
	}

	if blockedEmailDomain(sub.Email) {
		return spam(ReasonEmailDomain)
	}

	if sub.Message != "" {
		if containsSpamKeyword(sub.Message) {
			return spam(ReasonKeywordsMessage)
		}
		if hasSuspiciousPatterns(sub.Message) {
			return spam(ReasonSuspiciousPatterns)
		}
		if countURLs(sub.Message) > 2 {
			return spam(ReasonTooManyURLs)
		}
		if len([]rune(sub.Message)) > maxMessageLength {
			return spam(ReasonMessageTooLong)
		}
		if excessiveCaps(sub.Message) {
			return spam(ReasonExcessiveCaps)
		}
	}

	return clean
}

// blockedEmailDomain reports whether the domain part of email contains a
// known disposable-mail provider.
func blockedEmailDomain(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, blocked := range disposableDomains {
		if strings.Contains(domain, blocked) {
			return true
		}
	}
	return false
}

// containsSpamKeyword does a case-insensitive substring match against the
// spam keyword list.
func containsSpamKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range spamKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// excessiveCaps flags messages that are mostly uppercase. Short messages are
// exempt: "OK MERCI" is not shouting.
func excessiveCaps(message string) bool {
	runes := []rune(message)
	if len(runes) <= 50 {
		return false
	}
	upper := 0
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper)/float64(len(runes)) > 0.7
}
