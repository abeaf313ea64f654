// Package textutil provides text helpers for building output file names:
// sanitizing away filesystem-hostile characters, folding accented and
// typographic characters down to ASCII, and length-limited truncation that
// preserves a file extension.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	";", "",
	"#", "",
	"^", "",
	" ", "_",
	"\t", "_",
)

// SanitizeFileName makes name safe for use as a single path segment.
// Separators and shell-hostile punctuation become dashes or are dropped, and
// whitespace becomes underscores.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.Trim(fileNameReplacer.Replace(name), "_-")
}

// punctuationFolds maps typographic characters that NFD decomposition does
// not reduce onto ASCII stand-ins.
var punctuationFolds = map[rune]string{
	'ß': "ss",  // eszett
	'æ': "ae",
	'Æ': "AE",
	'ð': "d",
	'Ð': "D",
	'ø': "o",
	'Ø': "O",
	'ł': "l",
	'Ł': "L",
	'‐': "-",
	'–': "-",
	'—': "--",
	'‘': "'",
	'’': "'",
	'“': "\"",
	'”': "\"",
	'…': "...",
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ASCIIFold reduces s to ASCII: combining marks are stripped via NFD
// decomposition, known typographic characters are substituted, and anything
// still outside ASCII becomes an underscore.
func ASCIIFold(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		if sub, ok := punctuationFolds[r]; ok {
			b.WriteString(sub)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

// Truncate limits s to max bytes. When s ends with suffix, the suffix is
// removed before measuring and reattached afterwards so an extension is never
// cut in half.
func Truncate(s string, max int, suffix string) string {
	keep := ""
	if suffix != "" && strings.HasSuffix(s, suffix) {
		keep = suffix
		s = s[:len(s)-len(suffix)]
	}
	if len(s) > max {
		s = s[:max]
	}
	return s + keep
}
