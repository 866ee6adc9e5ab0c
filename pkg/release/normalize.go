package release

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// yearSuffixRegex matches a trailing "(2005)" or "2005" disambiguator on
// show directory names.
var yearSuffixRegex = regexp.MustCompile(`\s*\(?\b(19|20)\d{2}\)?\s*$`)

// CleanTitle normalizes a show name for matching purposes.
// Lowercases, removes accents, punctuation and a trailing year, strips a
// leading article and collapses whitespace. Scene separators ('.', '_')
// become spaces.
func CleanTitle(title string) string {
	s := strings.ToLower(title)
	s = removeAccents(s)

	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "'", "")
	for _, sep := range []string{"-", ".", "_"} {
		s = strings.ReplaceAll(s, sep, " ")
	}
	s = yearSuffixRegex.ReplaceAllString(s, "")

	// Leading articles are stripped from each colon-separated part
	// ("Star Trek: The Next Generation").
	parts := strings.Split(s, ":")
	for i, part := range parts {
		parts[i] = stripLeadingArticle(part)
	}
	s = strings.Join(parts, " ")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

func stripLeadingArticle(s string) string {
	s = strings.TrimSpace(s)
	for _, art := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, art) {
			return strings.TrimPrefix(s, art)
		}
	}
	return s
}
