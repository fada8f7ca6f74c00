package domain

import "strings"

// Searchability flag values reported by the catalog listing.
const (
	SearchableYes = "Y"
	SearchableNo  = "N"
)

// CodeDescriptor describes one body of codified law in the catalog listing.
// Searchable is derived per listing (or served from cache), never stored.
type CodeDescriptor struct {
	Code          string `json:"code"`
	CodeName      string `json:"code_name"`
	CodeShortName string `json:"code_short_name"`
	Version       string `json:"version"`
	Searchable    string `json:"searchable"`
}

// boilerplate words stripped from full code names when no short name is
// configured. A cosmetic fallback, not a localization mechanism.
var shortNameStrip = []string{"Texas", "Code of", "Code"}

// ShortCodeName derives a short display name from a full code name by
// removing common boilerplate words and collapsing whitespace.
func ShortCodeName(fullName string) string {
	s := fullName
	for _, word := range shortNameStrip {
		s = strings.ReplaceAll(s, word, "")
	}
	return strings.Join(strings.Fields(s), " ")
}
