// Package scout implements the MSDS crawl-and-verify pipeline: budgeted
// frontier expansion, candidate classification, content verification, and
// report assembly.
package scout

import (
	"fmt"
	"regexp"
	"strings"
)

// casPattern matches CAS registry numbers such as "106-38-7".
var casPattern = regexp.MustCompile(`^\d{2,7}-\d{2}-\d$`)

// Identifier is the chemical being scouted. Exactly one of CAS or Name is
// set; it is immutable for the lifetime of a crawl run and doubles as the
// verification target and the stored-file naming key.
type Identifier struct {
	CAS  string
	Name string
}

// ParseIdentifier classifies a raw request string as a CAS number or a
// free-text substance name. Blank input yields the zero Identifier.
func ParseIdentifier(raw string) Identifier {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identifier{}
	}
	if casPattern.MatchString(raw) {
		return Identifier{CAS: raw}
	}
	return Identifier{Name: raw}
}

// IsZero reports whether no identifier was supplied.
func (id Identifier) IsZero() bool {
	return id.CAS == "" && id.Name == ""
}

// IsCAS reports whether the identifier is a CAS registry number.
func (id Identifier) IsCAS() bool {
	return id.CAS != ""
}

// Value returns whichever component is populated.
func (id Identifier) Value() string {
	if id.CAS != "" {
		return id.CAS
	}
	return id.Name
}

// Query builds the search-engine query for this identifier.
func (id Identifier) Query() string {
	return fmt.Sprintf("download msds of %s", id.Value())
}
