// Package markup recognizes the barcode directive syntax embedded in receipt
// text lines:
//
//	>BARCODE <TYPE> <DATA>><optional trailing text>
//
// A line that fails to parse or validate is not an error; it is simply not a
// barcode and must be printed as ordinary text by the caller.
package markup

import (
	"regexp"
	"strings"
)

// Directive is a parsed, validated barcode instruction extracted from a line.
type Directive struct {
	// Symbology is the TYPE token as written, uppercased (e.g. "EAN13", "UPC_A").
	Symbology string `json:"symbology"`
	// Payload is the barcode data.
	Payload string `json:"payload"`
	// Trailing is free text after the closing '>' and is printed on its own line.
	Trailing string `json:"trailing,omitempty"`
}

const prefix = ">BARCODE "

var (
	typePattern   = regexp.MustCompile(`^[A-Z0-9_-]+$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
	code39Pattern = regexp.MustCompile(`^[0-9A-Z .$/+%-]+$`)
)

// Parse extracts a barcode directive from a text line. The boolean result is
// false when the line is not a well-formed, valid directive; the caller must
// then treat the line as plain text.
func Parse(line string) (Directive, bool) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, prefix) {
		return Directive{}, false
	}
	rest := s[len(prefix):]

	// '>' terminates the directive; it is not legal in any symbology charset,
	// so the first occurrence is unambiguous.
	close := strings.IndexByte(rest, '>')
	if close < 0 {
		return Directive{}, false
	}
	head := rest[:close]
	trailing := rest[close+1:]

	typ, payload, found := strings.Cut(head, " ")
	if !found || typ == "" || payload == "" {
		return Directive{}, false
	}
	typ = strings.ToUpper(typ)
	if !typePattern.MatchString(typ) {
		return Directive{}, false
	}
	if !Validate(typ, payload) {
		return Directive{}, false
	}

	return Directive{Symbology: typ, Payload: payload, Trailing: trailing}, true
}

// Validate reports whether payload satisfies the length and charset rules of
// the given symbology. TYPE is matched case-insensitively; unknown symbologies
// get a permissive length-only rule.
func Validate(symbology, payload string) bool {
	switch Canonical(symbology) {
	case "EAN13":
		return len(payload) == 13 && digitsPattern.MatchString(payload)
	case "EAN8":
		return len(payload) == 8 && digitsPattern.MatchString(payload)
	case "UPCA":
		return len(payload) == 12 && digitsPattern.MatchString(payload)
	case "CODE39":
		return len(payload) <= 43 && code39Pattern.MatchString(payload)
	case "CODE128":
		return len(payload) > 0 && len(payload) <= 80
	default:
		return len(payload) > 0 && len(payload) <= 100
	}
}

// Canonical folds symbology aliases ("UPC-A", "UPC_A", "upca") to a single
// form used to pick validation rules and printer commands.
func Canonical(symbology string) string {
	s := strings.ToUpper(symbology)
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}
