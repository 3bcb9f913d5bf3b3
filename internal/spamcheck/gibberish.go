package spamcheck

import (
	"strings"
	"unicode"
)

// Gibberish detection flags machine-generated noise like "IYCCVrgAvxiKuqdvC"
// in name/subject/message fields. Four independent signals are applied per
// whitespace-delimited token; any single one is sufficient.
const (
	maxTokenLength      = 15   // real words rarely run longer unbroken
	minVowelRatio       = 0.15 // natural language keeps a higher vowel density
	maxCaseFlipRatio    = 0.4  // share of adjacent pairs flipping case
	maxConsonantRun     = 5    // consecutive consonants, case-insensitive
	vowelCheckMinLen    = 5    // vowel ratio applies to tokens of > this many letters
	caseFlipCheckMinLen = 6    // case-flip ratio applies to tokens longer than this
)

// vowels covers y and the accented vowels common in French text, so names
// like "Chrystelle" or "Héloïse" keep a sane profile.
const vowels = "aeiouyàâäéèêëîïôöùûü"

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, unicode.ToLower(r))
}

// looksGibberish reports whether any token of text trips one of the four
// gibberish signals. URL tokens are exempt: links are dense consonant soup
// by nature, and the URL-specific checks downstream handle them.
func looksGibberish(text string) bool {
	for _, token := range strings.Fields(text) {
		if isURLToken(token) {
			continue
		}
		if tokenLooksGibberish(token) {
			return true
		}
	}
	return false
}

func isURLToken(token string) bool {
	return strings.Contains(token, "://") || strings.HasPrefix(strings.ToLower(token), "www.")
}

func tokenLooksGibberish(token string) bool {
	runes := []rune(token)

	if len(runes) > maxTokenLength {
		return true
	}
	if vowelStarved(runes) {
		return true
	}
	if randomCase(runes) {
		return true
	}
	return hasConsonantRun(runes)
}

// vowelStarved flags tokens whose letters are almost all consonants.
func vowelStarved(runes []rune) bool {
	letters, vowelCount := 0, 0
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if isVowel(r) {
			vowelCount++
		}
	}
	if letters <= vowelCheckMinLen {
		return false
	}
	return float64(vowelCount)/float64(letters) < minVowelRatio
}

// randomCase flags "random-case" strings where upper/lower transitions occur
// in more than 40% of adjacent character pairs.
func randomCase(runes []rune) bool {
	if len(runes) <= caseFlipCheckMinLen {
		return false
	}
	flips := 0
	for i := 1; i < len(runes); i++ {
		a, b := runes[i-1], runes[i]
		if unicode.IsLetter(a) && unicode.IsLetter(b) && unicode.IsUpper(a) != unicode.IsUpper(b) {
			flips++
		}
	}
	return float64(flips)/float64(len(runes)-1) > maxCaseFlipRatio
}

// hasConsonantRun flags a run of 5 or more consecutive consonants anywhere in
// the token. Non-letters break the run, so "Jean-Baptiste" is safe.
func hasConsonantRun(runes []rune) bool {
	run := 0
	for _, r := range runes {
		if unicode.IsLetter(r) && !isVowel(r) {
			run++
			if run >= maxConsonantRun {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}
