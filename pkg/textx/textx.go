// Package textx provides small text utilities used across the project.
package textx

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	emailRe      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe      = regexp.MustCompile(`\+?\d[\d\s\-()]{7,}\d`)
	phoneJunk    = regexp.MustCompile(`[^0-9+]`)
)

// Normalize canonicalizes whitespace in extracted resume text: line endings
// become LF, runs of 3+ newlines collapse to exactly two, non-breaking spaces
// become plain spaces, and the result is trimmed. Idempotent; empty in, empty out.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(s)
}

// SanitizeText removes control characters except tab/newline/CR and trims spaces.
func SanitizeText(s string) string {
	// strip control chars outside tab/newline/carriage return
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// FindEmails returns the email addresses found in text, deduplicated in
// first-seen order.
func FindEmails(text string) []string {
	if text == "" {
		return nil
	}
	return dedupe(emailRe.FindAllString(text, -1))
}

// FindPhones returns phone numbers found in text, stripped down to digits and
// a leading plus, deduplicated in first-seen order.
func FindPhones(text string) []string {
	if text == "" {
		return nil
	}
	raw := phoneRe.FindAllString(text, -1)
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		out = append(out, phoneJunk.ReplaceAllString(p, ""))
	}
	return dedupe(out)
}

// TitleCase uppercases the first letter of every letter run and lowercases the
// rest, treating any non-letter as a boundary ("node.js" -> "Node.Js",
// "ci/cd" -> "Ci/Cd"). Skill labels are displayed in this form everywhere.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		}
	}
	return b.String()
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
