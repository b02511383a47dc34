package langdef

import (
	"fmt"
	"unicode/utf8"
)

// encodedRune caches a digit character's UTF-8 encoding alongside its
// source rune, so the hot path (SeparateDigits) never re-encodes.
type encodedRune struct {
	r      rune
	bytes  [4]byte
	length int
}

func encodeRune(r rune) encodedRune {
	var e encodedRune
	e.r = r
	e.length = utf8.EncodeRune(e.bytes[:], r)
	return e
}

func (e encodedRune) slice() []byte { return e.bytes[:e.length] }

// Digits is the Digit Specification: an ordered list of digit characters
// parameterizing how a language writes base-2/8/10/16 integer and float
// literals. It begins with three base-prefix characters (binary, hex,
// octal), followed by the 10 base-10 digits and the 6 extra hex digits,
// and — in the "Long" variant — 6 further uppercase hex variants.
type Digits struct {
	long bool
	bin  encodedRune
	hex  encodedRune
	oct  encodedRune
	// digits holds, in order: '0'..'9', then the 6 lowercase hex extras
	// (conventionally a..f), then — only when long is true — 6 uppercase
	// hex variants (conventionally A..F).
	digits []encodedRune
}

// NewDigitsShort builds the 19-character Digit Specification: 3 prefixes
// plus 16 digits (10 decimal + 6 hex extras).
func NewDigitsShort(binPrefix, hexPrefix, octPrefix rune, digits [16]rune) Digits {
	d := Digits{
		long: false,
		bin:  encodeRune(binPrefix),
		hex:  encodeRune(hexPrefix),
		oct:  encodeRune(octPrefix),
	}
	d.digits = make([]encodedRune, 16)
	for i, r := range digits {
		d.digits[i] = encodeRune(r)
	}
	return d
}

// NewDigitsLong builds the 25-character Digit Specification: 3 prefixes
// plus 22 digits (10 decimal + 6 lowercase hex extras + 6 uppercase hex
// variants).
func NewDigitsLong(binPrefix, hexPrefix, octPrefix rune, digits [22]rune) Digits {
	d := Digits{
		long: true,
		bin:  encodeRune(binPrefix),
		hex:  encodeRune(hexPrefix),
		oct:  encodeRune(octPrefix),
	}
	d.digits = make([]encodedRune, 22)
	for i, r := range digits {
		d.digits[i] = encodeRune(r)
	}
	return d
}

// IsLong reports whether this is the 25-character variant with uppercase
// hex digits.
func (d Digits) IsLong() bool { return d.long }

// BinPrefix, HexPrefix, OctPrefix return the three base-prefix characters.
func (d Digits) BinPrefix() rune { return d.bin.r }
func (d Digits) HexPrefix() rune { return d.hex.r }
func (d Digits) OctPrefix() rune { return d.oct.r }

// ByteLength returns the shared UTF-8 byte length of every digit character,
// including the prefixes (the validated invariant that makes this a single
// number meaningful to report).
func (d Digits) ByteLength() int { return d.bin.length }

// SingleBytePrefixes returns the three base-prefix bytes for a
// single-byte (ASCII) Digit Specification. ok is false if any prefix's
// encoding is longer than one byte — internal/tablebuild's fast path
// only handles that case (§4.C's digit-encoding algorithm, "short
// single-byte variant").
func (d Digits) SingleBytePrefixes() (bin, hex, oct byte, ok bool) {
	if d.bin.length != 1 || d.hex.length != 1 || d.oct.length != 1 {
		return 0, 0, 0, false
	}
	return d.bin.bytes[0], d.hex.bytes[0], d.oct.bytes[0], true
}

// SingleByteDigits returns the digit characters (10 decimal + 6 lowercase
// hex extras, plus 6 uppercase hex variants when IsLong) as raw bytes. ok
// is false if any digit character's encoding is longer than one byte.
func (d Digits) SingleByteDigits() (digits []byte, ok bool) {
	out := make([]byte, len(d.digits))
	for i, e := range d.digits {
		if e.length != 1 {
			return nil, false
		}
		out[i] = e.bytes[0]
	}
	return out, true
}

// runes returns the full flat list of every character in this
// specification: the 3 prefixes followed by the digit characters, in the
// canonical order described in §3 of the specification.
func (d Digits) runes() []encodedRune {
	out := make([]encodedRune, 0, 3+len(d.digits))
	out = append(out, d.bin, d.hex, d.oct)
	out = append(out, d.digits...)
	return out
}

// All returns every digit/prefix rune in this specification, in canonical
// order, for validation and code-point budgeting.
func (d Digits) All() []rune {
	rs := d.runes()
	out := make([]rune, len(rs))
	for i, e := range rs {
		out[i] = e.r
	}
	return out
}

// digitRunes returns just the digit glyphs (excluding the three base
// prefixes), in canonical order — the set §3 requires to be mutually
// distinct.
func (d Digits) digitRunes() []rune {
	out := make([]rune, len(d.digits))
	for i, e := range d.digits {
		out[i] = e.r
	}
	return out
}

// candidate pairs a digit value with its byte encoding, used by
// SeparateDigits.
type candidate struct {
	value int
	enc   encodedRune
}

// candidatesForBase returns the (value, encoding) pairs that can appear in
// a base-`base` literal, in the canonical digit order. For base 16 on a
// Long specification, both the lowercase and uppercase hex digit encodings
// are included, both mapping to the same value (10..15).
func (d Digits) candidatesForBase(base int) ([]candidate, error) {
	switch base {
	case 2, 8, 10, 16:
	default:
		return nil, fmt.Errorf("langdef: unsupported digit base %d", base)
	}
	n := base
	if base == 16 {
		n = 16 // the first 16 digits (0-9, a-f) regardless of variant
	}
	out := make([]candidate, 0, n+6)
	for i := 0; i < n; i++ {
		out = append(out, candidate{value: i, enc: d.digits[i]})
	}
	if base == 16 && d.long {
		for i := 0; i < 6; i++ {
			out = append(out, candidate{value: 10 + i, enc: d.digits[16+i]})
		}
	}
	return out, nil
}

// SeparateDigits converts matcher — a byte sequence already known to match
// a numeric literal in the given base, with any base prefix already
// stripped — into the sequence of digit values (0..base-1) it encodes.
//
// It repeatedly scans the base's candidate digit encodings for one whose
// bytes are a prefix of the remaining input, consumes that many bytes, and
// records the digit's value; failing to find a match before the input is
// exhausted is a structural invariant violation; it cannot happen for a
// matcher that a validated Language Model's own DFA accepted.
func (d Digits) SeparateDigits(base int, matcher []byte) ([]int, error) {
	candidates, err := d.candidatesForBase(base)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(matcher))
	for len(matcher) > 0 {
		matched := false
		for _, c := range candidates {
			w := c.enc.length
			if w <= len(matcher) && string(matcher[:w]) == string(c.enc.slice()) {
				out = append(out, c.value)
				matcher = matcher[w:]
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("langdef: unable to match digit bytes %x against base-%d digits", matcher, base)
		}
	}
	return out, nil
}
