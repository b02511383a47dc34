// Package langdef defines the Language Model: the immutable,
// validated description of a single localization (name, code,
// directionality, keyword vocabulary, digit characters, and diagnostic
// messages) that internal/tablebuild compiles into DFA tables.
package langdef

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Model is an immutable Language Model, created once per localization and
// shared by reference across concurrent lexers.
type Model struct {
	// Name is the language's full human-readable name, e.g. "English".
	Name string

	// Code is its short code, canonicalized through golang.org/x/text/language
	// (e.g. "en", "de", "fr"). Used as the key in a Language Scope Stack and
	// in the `!!<code>` directive.
	Code string

	// RTL is the directionality flag carried on the text format's first
	// line ('{' selects left-to-right, '}' selects right-to-left). A
	// right-to-left language has its visually-mirrored bracket pairs
	// swapped when its DFA table is built (§4.C.2).
	RTL bool

	Keywords KeywordSet
	Messages MessageSet
}

// CanonicalCode parses Code through golang.org/x/text/language and returns
// its canonical BCP 47 form. It is used by internal/langreg to compare
// codes case- and region-insensitively rather than by raw string equality.
func (m Model) CanonicalCode() (string, error) {
	tag, err := language.Parse(m.Code)
	if err != nil {
		return "", fmt.Errorf("langdef: invalid language code %q: %w", m.Code, err)
	}
	return tag.String(), nil
}

// reservedRunes are the single-byte characters §3 forbids inside any
// keyword or symbol string.
var reservedRunes = map[rune]bool{
	' ': true, '\t': true, '\n': true, '\r': true,
	'+': true, '-': true, '%': true, '*': true, '^': true, '/': true,
	'(': true, ')': true, '{': true, '}': true, '[': true, ']': true,
	'!': true, '=': true, '<': true, '>': true, '@': true, ':': true,
	'?': true, '.': true, ',': true, ';': true, '\\': true,
}

// maxDistinctCodePoints is the §3 invariant's ceiling on the number of
// distinct code points used across every keyword and symbol string,
// combined with the Digit Specification's own characters.
const maxDistinctCodePoints = 218

// Validate enforces the Digit Specification and Keyword Set invariants
// listed in §3: every keyword is unique, non-empty, free of reserved
// single-byte characters, and the combined keyword/symbol/digit character
// set fits within the 218-distinct-code-point budget. Digit characters are
// additionally required to share one UTF-8 byte length and be disjoint
// from the reserved characters; they may coincide with characters used in
// keywords or symbols.
func (m Model) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("langdef: empty language name")
	}
	if _, err := m.CanonicalCode(); err != nil {
		return err
	}

	all := m.Keywords.AllKeywords()
	seen := make(map[string]bool, len(all))
	for _, kw := range all {
		normalized := norm.NFC.String(kw)
		if normalized == "" {
			return fmt.Errorf("langdef: empty keyword/symbol string")
		}
		if seen[normalized] {
			return fmt.Errorf("langdef: duplicate keyword/symbol %q", kw)
		}
		seen[normalized] = true
		for _, r := range normalized {
			if reservedRunes[r] {
				return fmt.Errorf("langdef: keyword/symbol %q contains reserved character %q", kw, r)
			}
		}
	}

	keywordCodePoints := make(map[rune]bool)
	for _, kw := range all {
		for _, r := range norm.NFC.String(kw) {
			keywordCodePoints[r] = true
		}
	}

	if err := m.validateDigits(); err != nil {
		return err
	}

	combined := make(map[rune]bool, len(keywordCodePoints))
	for r := range keywordCodePoints {
		combined[r] = true
	}
	for _, r := range m.Keywords.Digits.All() {
		combined[r] = true
	}
	if len(combined) > maxDistinctCodePoints {
		return fmt.Errorf("langdef: keyword/symbol/digit set uses %d distinct code points, exceeds %d",
			len(combined), maxDistinctCodePoints)
	}
	return nil
}

// ErrMultiByteDigits is returned by Validate when a Digit Specification's
// characters are not all single-byte UTF-8. The source this spec was
// distilled from has a separate, slower table-encoding path for multi-byte
// digit characters (see lang-inner's multi_bytes/multi_bytes_long); §9
// leaves that path out of scope, so internal/tablebuild only ever builds
// the single-byte fast path and Validate rejects the rest up front.
var ErrMultiByteDigits = fmt.Errorf("langdef: multi-byte digit characters are not supported")

// validateDigits enforces §3's Digit Specification invariants: every
// character shares one UTF-8 byte length, is disjoint from reserved
// punctuation, and the 16/22 digit glyphs (not counting the three base
// prefixes) are mutually distinct. A base prefix is allowed to coincide
// with one of the digit glyphs it introduces — e.g. a hex-prefix byte 'x'
// or a binary-prefix byte 'b' that also happens to be a hex digit — since
// the two only ever matter in different DFA rows.
func (m Model) validateDigits() error {
	d := m.Keywords.Digits

	byteLen := -1
	checkByte := func(r rune) error {
		if reservedRunes[r] {
			return fmt.Errorf("langdef: digit character %q collides with a reserved character", r)
		}
		n := len(string(r))
		if byteLen == -1 {
			byteLen = n
		} else if n != byteLen {
			return fmt.Errorf("langdef: digit characters have mismatched UTF-8 byte lengths (%d vs %d)", byteLen, n)
		}
		return nil
	}

	if err := checkByte(d.BinPrefix()); err != nil {
		return err
	}
	if err := checkByte(d.HexPrefix()); err != nil {
		return err
	}
	if err := checkByte(d.OctPrefix()); err != nil {
		return err
	}

	digitRunes := d.digitRunes()
	seen := make(map[rune]bool, len(digitRunes))
	for _, r := range digitRunes {
		if seen[r] {
			return fmt.Errorf("langdef: digit character %q repeated in Digit Specification", r)
		}
		seen[r] = true
		if err := checkByte(r); err != nil {
			return err
		}
	}
	if byteLen > 1 {
		return ErrMultiByteDigits
	}
	return nil
}
