package domain

import (
	"regexp"
	"strings"
)

// Keyword is a user-defined term with an associated retrieval instruction.
// When the term occurs in a question, the instruction text is appended to
// the question to form an expansion query, and surfaced to the answer
// model as a domain-authoritative hint.
type Keyword struct {
	// ID is the unique identifier for the keyword record.
	ID string

	// UserID identifies the owning user.
	UserID string

	// Term is the word or phrase to detect in questions.
	Term string

	// Instruction is the text appended to the question for the
	// expansion query (e.g. the contract language the term refers to).
	Instruction string
}

// Valid reports whether the keyword carries a usable term.
// Records with empty terms are filtered at the boundary, never raised.
func (k Keyword) Valid() bool {
	return strings.TrimSpace(k.Term) != ""
}

// MatchKeywords returns the subsequence of keywords whose term occurs in
// text as a whole word, case-insensitively. A term matches only when it
// is bounded by non-word characters or string edges on both sides, so
// "BOD" never matches inside "ABODE". Input order is preserved and
// duplicate terms are kept; invalid records are silently dropped.
func MatchKeywords(text string, keywords []Keyword) []Keyword {
	if text == "" || len(keywords) == 0 {
		return nil
	}

	var matched []Keyword
	for _, kw := range keywords {
		if !kw.Valid() {
			continue
		}
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw.Term) + `\b`)
		if err != nil {
			continue
		}
		if pattern.MatchString(text) {
			matched = append(matched, kw)
		}
	}
	return matched
}
