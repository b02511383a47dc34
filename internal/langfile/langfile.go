// Package langfile reads the canonical line-oriented text format a
// Language Model is authored in: one line of whitespace-separated tokens
// per fixed-shape field, in a fixed order, mirroring the field-by-field
// line consumption the original Rust `Deserialize` implementations used
// (no macro system here, so it's a plain line scanner instead).
package langfile

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/cwbudde/go-polylex/internal/langdef"
	"github.com/cwbudde/go-polylex/pkg/token"
)

// lineScanner walks a text file's lines one at a time, the same shape as
// the reference format's `Iterator<Item = &str>` field consumption.
type lineScanner struct {
	lines []string
	idx   int
}

func newLineScanner(text string) *lineScanner {
	return &lineScanner{lines: strings.Split(text, "\n")}
}

func (s *lineScanner) next() (string, bool) {
	if s.idx >= len(s.lines) {
		return "", false
	}
	l := strings.TrimRight(s.lines[s.idx], "\r")
	s.idx++
	return l, true
}

func (s *lineScanner) line(name string) (string, error) {
	l, ok := s.next()
	if !ok {
		return "", fmt.Errorf("langfile: expected %s line", name)
	}
	return l, nil
}

// fields reads one line and splits it on whitespace, requiring exactly n
// fields.
func (s *lineScanner) fields(name string, n int) ([]string, error) {
	l, err := s.line(name)
	if err != nil {
		return nil, err
	}
	fs := strings.Fields(l)
	if len(fs) != n {
		return nil, fmt.Errorf("langfile: %s line: want %d fields, got %d: %q", name, n, len(fs), l)
	}
	return fs, nil
}

func oneRune(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%q is not a single character", s)
	}
	return r, nil
}

// Parse decodes the canonical text format from already-UTF-8 text into a
// Language Model. It does not call Validate; callers that need the §3
// invariants enforced should call Model.Validate themselves, the same way
// internal/tablebuild.Build requires a pre-validated Model.
func Parse(text string) (langdef.Model, error) {
	s := newLineScanner(text)

	name, err := s.fields("name", 3)
	if err != nil {
		return langdef.Model{}, err
	}
	var rtl bool
	switch name[0] {
	case "{":
		rtl = false
	case "}":
		rtl = true
	default:
		return langdef.Model{}, fmt.Errorf("langfile: directionality marker %q != '{' | '}'", name[0])
	}

	digits, err := parseDigits(s)
	if err != nil {
		return langdef.Model{}, err
	}

	control, err := parseArray("control", s, token.NumControlKeywords)
	if err != nil {
		return langdef.Model{}, err
	}
	typeKw, err := parseArray("type", s, token.NumTypeKeywords)
	if err != nil {
		return langdef.Model{}, err
	}
	primitive, err := parseArray("primitive", s, token.NumPrimitiveKeywords)
	if err != nil {
		return langdef.Model{}, err
	}
	boolKw, err := parseArray("boolean", s, 2)
	if err != nil {
		return langdef.Model{}, err
	}
	manifest, err := parseArray("manifest", s, langdef.NumManifestKeywords)
	if err != nil {
		return langdef.Model{}, err
	}
	compile, err := parseArray("compile-messages", s, langdef.NumCompileKeywords)
	if err != nil {
		return langdef.Model{}, err
	}

	messages, err := parseMessages(s)
	if err != nil {
		return langdef.Model{}, err
	}

	// Warning groups are, per §6, "all currently empty" — zero lines to
	// read, for any of the five groups, mirroring the reference format's
	// own (0..0) range for each Warns field.

	if err := parseCLISection(s); err != nil {
		return langdef.Model{}, err
	}

	ks := langdef.KeywordSet{Digits: digits, Bool: [2]string{boolKw[0], boolKw[1]}}
	copy(ks.Control[:], control)
	copy(ks.Type[:], typeKw)
	copy(ks.Primitive[:], primitive)
	copy(ks.Manifest[:], manifest)
	copy(ks.CompileMessages[:], compile)

	return langdef.Model{
		Name:     name[1],
		Code:     name[2],
		RTL:      rtl,
		Keywords: ks,
		Messages: messages,
	}, nil
}

func parseArray(label string, s *lineScanner, n int) ([]string, error) {
	return s.fields(label, n)
}

func parseDigits(s *lineScanner) (langdef.Digits, error) {
	l, err := s.line("digit specification")
	if err != nil {
		return langdef.Digits{}, err
	}
	fs := strings.Fields(l)
	runes := make([]rune, len(fs))
	for i, f := range fs {
		r, err := oneRune(f)
		if err != nil {
			return langdef.Digits{}, fmt.Errorf("langfile: digit specification: %w", err)
		}
		runes[i] = r
	}
	switch len(runes) {
	case 19:
		var d [16]rune
		copy(d[:], runes[3:])
		return langdef.NewDigitsShort(runes[0], runes[1], runes[2], d), nil
	case 25:
		var d [22]rune
		copy(d[:], runes[3:])
		return langdef.NewDigitsLong(runes[0], runes[1], runes[2], d), nil
	default:
		return langdef.Digits{}, fmt.Errorf("langfile: digit specification must have 19 or 25 fields, got %d", len(runes))
	}
}

func parseMessages(s *lineScanner) (langdef.MessageSet, error) {
	var m langdef.MessageSet
	groups := []struct {
		label string
		dst   []string
	}{
		{"E00", m.E00[:]},
		{"E01", m.E01[:]},
		{"E02", m.E02[:]},
		{"E03", m.E03[:]},
		{"E04", m.E04[:]},
	}
	for _, g := range groups {
		for i := range g.dst {
			l, err := s.line(fmt.Sprintf("%s[%d]", g.label, i))
			if err != nil {
				return langdef.MessageSet{}, err
			}
			g.dst[i] = l
		}
	}
	return m, nil
}

// parseCLISection reads and discards the CLI description, the ten
// (command, help) line pairs, and the ten (long-flag short-flag-char,
// help) line pairs — see DESIGN.md decision #4.
func parseCLISection(s *lineScanner) error {
	if _, err := s.line("CLI description"); err != nil {
		return err
	}
	for i := 0; i < 10; i++ {
		if _, err := s.line(fmt.Sprintf("CLI command %d", i)); err != nil {
			return err
		}
		if _, err := s.line(fmt.Sprintf("CLI command %d help", i)); err != nil {
			return err
		}
	}
	for i := 0; i < 10; i++ {
		if _, err := s.fields(fmt.Sprintf("CLI flag %d", i), 2); err != nil {
			return err
		}
		if _, err := s.line(fmt.Sprintf("CLI flag %d help", i)); err != nil {
			return err
		}
	}
	return nil
}

// ParseFile reads a language definition file from disk, decoding it from
// UTF-8, UTF-16LE, or UTF-16BE (detected by BOM; a BOM-less file is read
// as UTF-8 when it is valid UTF-8 and byte-per-rune as Latin-1 otherwise),
// then parses it with Parse.
func ParseFile(path string) (langdef.Model, error) {
	text, err := detectAndDecodeFile(path)
	if err != nil {
		return langdef.Model{}, fmt.Errorf("langfile: %w", err)
	}
	m, err := Parse(text)
	if err != nil {
		return langdef.Model{}, fmt.Errorf("langfile: %s: %w", path, err)
	}
	return m, nil
}

// detectAndDecodeFile reads a file and detects its encoding from a
// leading Byte Order Mark, supporting UTF-8, UTF-16 LE, and UTF-16 BE; a
// file with no BOM is returned as-is when it is valid UTF-8, and otherwise
// decoded byte-per-rune as Latin-1.
func detectAndDecodeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return string(data[3:]), nil
	}
	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		return decodeUTF16(data, unicode.LittleEndian)
	}
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		return decodeUTF16(data, unicode.BigEndian)
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("failed to decode UTF-16: %w", err)
	}
	return strings.TrimPrefix(string(out), "﻿"), nil
}
