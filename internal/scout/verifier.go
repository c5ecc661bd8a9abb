package scout

import (
	"regexp"
	"strings"
)

// Verdict classifies a candidate document against the identifier.
type Verdict int

// Verdict levels, weakest first.
const (
	VerdictNone Verdict = iota
	VerdictSimilar
	VerdictExact
)

// String returns the verdict name for logs and metrics labels.
func (v Verdict) String() string {
	switch v {
	case VerdictExact:
		return "exact"
	case VerdictSimilar:
		return "similar"
	default:
		return "none"
	}
}

const sdsPhrase = "safety data sheet"

// Verifier applies the lexical MSDS verification rules to extracted
// document text.
type Verifier struct {
	sds *regexp.Regexp
}

// NewVerifier compiles the shared "safety data sheet" phrase pattern.
func NewVerifier() *Verifier {
	return &Verifier{sds: wordPattern(sdsPhrase)}
}

// Verify classifies text against the identifier.
//
// Both the identifier (word-boundary anchored, case-insensitive) and the
// phrase "safety data sheet" present yields Exact. For free-text names only,
// the phrase plus at least one whitespace-delimited token of the name yields
// Similar. A CAS number never yields Similar: partial matches on a registry
// number are meaningless. Anything else is None.
func (v *Verifier) Verify(text string, id Identifier) Verdict {
	if text == "" || id.IsZero() {
		return VerdictNone
	}
	exact := wordPattern(id.Value())
	hasPhrase := v.sds.MatchString(text)
	if exact.MatchString(text) && hasPhrase {
		return VerdictExact
	}
	if !id.IsCAS() && hasPhrase && nameTokenPattern(id.Name).MatchString(text) {
		return VerdictSimilar
	}
	return VerdictNone
}

// wordPattern builds a case-insensitive, word-boundary-anchored pattern for
// the literal sequence.
func wordPattern(sequence string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(sequence) + `\b`)
}

// nameTokenPattern matches any individual whitespace-delimited token of the
// name, case-insensitively and without boundary anchors.
func nameTokenPattern(name string) *regexp.Regexp {
	tokens := strings.Fields(name)
	quoted := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		quoted = append(quoted, regexp.QuoteMeta(tok))
	}
	return regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))
}
