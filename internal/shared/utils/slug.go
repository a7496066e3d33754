package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// GenerateSlug lowercases input, strips accents and collapses every run of
// other characters into a single hyphen.
// "Nguyễn Nhật Ánh" -> "nguyen-nhat-anh", "ada@example.com" -> "ada-example-com"
func GenerateSlug(input string) string {
	ascii := RemoveDiacritics(input)
	lower := strings.ToLower(ascii)
	return strings.Trim(nonSlugChars.ReplaceAllString(lower, "-"), "-")
}

// RemoveDiacritics drops combining marks ("é" -> "e"). "đ" has no
// decomposition and is mapped explicitly.
func RemoveDiacritics(input string) string {
	out, _, err := transform.String(accentFolder, input)
	if err != nil {
		out = input
	}
	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
}
