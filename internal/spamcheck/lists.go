package spamcheck

import "regexp"

// Compiled once at package init and reused for every call, so the checks stay
// safe and cheap under concurrent requests.
var (
	// urlPattern counts link occurrences in message bodies.
	urlPattern = regexp.MustCompile(`https?://`)

	// bbcodePattern matches forum-style link markup ([url=...], [link]...).
	bbcodePattern = regexp.MustCompile(`(?i)\[/?(?:url|link)[=\]]`)

	// htmlPattern matches raw anchor or script tags pasted into the message.
	htmlPattern = regexp.MustCompile(`(?i)<\s*(?:a\s+href|/?\s*script)`)
)

// spamKeywords are matched case-insensitively as substrings against the name
// and message fields. Mostly pharma, finance and SEO solicitation terms seen
// in real traffic.
var spamKeywords = []string{
	"viagra",
	"cialis",
	"levitra",
	"casino",
	"crypto",
	"bitcoin",
	"forex",
	"payday loan",
	"backlink",
	"link building",
	"seo service",
	"seo expert",
	"guest post",
	"make money",
	"earn money",
	"work from home",
	"weight loss",
	"escort",
	"porn",
	"xxx",
}

// disposableDomains are substrings matched against the lower-cased domain of
// the submitted email address.
var disposableDomains = []string{
	"mailinator",
	"guerrillamail",
	"10minutemail",
	"tempmail",
	"temp-mail",
	"yopmail",
	"trashmail",
	"sharklasers",
	"getnada",
	"dispostable",
	"maildrop",
	"fakeinbox",
	"throwawaymail",
	"mohmal",
}

// countURLs returns the number of link occurrences in s.
func countURLs(s string) int {
	return len(urlPattern.FindAllStringIndex(s, -1))
}

// hasSuspiciousPatterns flags BBCode link markup, raw HTML anchor/script
// tags, or a message stuffed with more than 3 URLs.
func hasSuspiciousPatterns(message string) bool {
	if bbcodePattern.MatchString(message) {
		return true
	}
	if htmlPattern.MatchString(message) {
		return true
	}
	return countURLs(message) > 3
}
