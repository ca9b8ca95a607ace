// Package names derives HTML attribute names from Go-style identifiers.
//
// Property identifiers are camel case (testArray, clipX, URLBar); attribute
// names are dash-separated lowercase (test-array, clip-x, url-bar). The
// derivation is deterministic and validated: an identifier that produces no
// dash (a single lowercase word) is rejected, because custom-element
// attributes bound by elemattr must be qualified names.
package names

import (
	"errors"
	"strings"
	"unicode"
)

// ErrNoSeparator is returned when an identifier yields no word boundary.
var ErrNoSeparator = errors.New("names: identifier has no word boundary")

// Kebab converts an identifier to its dash-separated lowercase attribute form.
//
// A dash is inserted before every run of capitals. When a capital run is
// followed by a lowercase letter, the run's last capital starts the next word
// and is separated on its own, so acronyms stay intact:
//
//	fooBarBazBing → foo-bar-baz-bing
//	ClipX         → clip-x
//	URLBar        → url-bar
//
// Doubled dashes are collapsed and a leading or trailing dash is stripped.
// Returns ErrNoSeparator if the result contains no dash (e.g. "foo").
func Kebab(identifier string) (string, error) {
	runes := []rune(identifier)
	var b strings.Builder

	for i := 0; i < len(runes); {
		if !unicode.IsUpper(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}

		// Maximal run of capitals starting at i.
		j := i
		for j < len(runes) && unicode.IsUpper(runes[j]) {
			j++
		}

		b.WriteRune('-')
		if j < len(runes) && unicode.IsLower(runes[j]) && j-i > 1 {
			// The run's final capital begins the following word.
			b.WriteString(string(runes[i : j-1]))
			b.WriteRune('-')
			b.WriteRune(runes[j-1])
		} else {
			b.WriteString(string(runes[i:j]))
		}
		i = j
	}

	out := strings.ToLower(b.String())
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	out = strings.Trim(out, "-")

	if !strings.Contains(out, "-") {
		return "", ErrNoSeparator
	}
	return out, nil
}
