package tablebuild

import (
	"fmt"

	"github.com/cwbudde/go-polylex/internal/langdef"
)

// Literal td subcodes (tt=1), per §4.E: 0 true, 1 false, 2 int-dec,
// 3 int-bin, 4 int-hex, 5 int-oct, 6 float. Boolean literals are wired by
// the keyword walk (keywords.go), not here.
const (
	tdIntDec = 2
	tdIntBin = 3
	tdIntHex = 4
	tdIntOct = 5
	tdFloat  = 6
)

// encodeDigits wires digit-literal recognition into the table, following
// §4.C's "short single-byte variant" algorithm: allocates rows for
// zero-seen (d0), integer (d), float (f), and prefix-seen/digit pairs for
// binary (b0/b), hex (h0/h), and octal (o0/o). Only single-byte Digit
// Specifications are supported (validated ahead of time by
// langdef.Model.Validate; see ErrMultiByteDigits).
func encodeDigits(b *builder, d langdef.Digits) error {
	binPrefix, hexPrefix, octPrefix, ok := d.SingleBytePrefixes()
	if !ok {
		return fmt.Errorf("tablebuild: digit prefixes are not single-byte")
	}
	digits, ok := d.SingleByteDigits()
	if !ok {
		return fmt.Errorf("tablebuild: digit characters are not single-byte")
	}
	if len(digits) < 16 {
		return fmt.Errorf("tablebuild: expected at least 16 digit characters, got %d", len(digits))
	}

	zero := digits[0]

	// d0: seen a single leading zero
	zeroRow := b.newRow()
	b.transition[0][zero] = uint16(zeroRow)
	b.tt[0][zero] = ttLiteral
	b.td[0][zero] = tdIntDec

	// d: seen one or more decimal digits
	digitRow := b.newRow()
	b.transition[zeroRow][zero] = uint16(digitRow)
	b.tt[zeroRow][zero] = ttLiteral
	b.td[zeroRow][zero] = tdIntDec
	for _, n := range digits[1:10] {
		b.transition[0][n] = uint16(digitRow)
		b.tt[0][n] = ttLiteral
		b.td[0][n] = tdIntDec

		b.transition[digitRow][n] = uint16(digitRow)
		b.tt[digitRow][n] = ttLiteral
		b.td[digitRow][n] = tdIntDec

		b.transition[zeroRow][n] = uint16(digitRow)
		b.tt[zeroRow][n] = ttLiteral
		b.td[zeroRow][n] = tdIntDec
	}
	b.transition[digitRow][zero] = uint16(digitRow)
	b.tt[digitRow][zero] = ttLiteral
	b.td[digitRow][zero] = tdIntDec

	// f: seen a decimal point, accumulating a float
	floatRow := b.newRow()
	b.transition[zeroRow]['.'] = uint16(floatRow)
	b.tt[zeroRow]['.'] = ttLiteral
	b.td[zeroRow]['.'] = tdFloat
	b.transition[digitRow]['.'] = uint16(floatRow)
	b.tt[digitRow]['.'] = ttLiteral
	b.td[digitRow]['.'] = tdFloat
	for _, n := range digits[0:10] {
		b.transition[floatRow][n] = uint16(floatRow)
		b.tt[floatRow][n] = ttLiteral
		b.td[floatRow][n] = tdFloat
	}

	// b0/b: binary prefix seen, then binary digits
	binInit := b.newRow()
	b.transition[zeroRow][binPrefix] = uint16(binInit)
	binRow := b.newRow()
	for _, n := range digits[0:2] {
		b.transition[binInit][n] = uint16(binRow)
		b.tt[binInit][n] = ttLiteral
		b.td[binInit][n] = tdIntBin
		b.transition[binRow][n] = uint16(binRow)
		b.tt[binRow][n] = ttLiteral
		b.td[binRow][n] = tdIntBin
	}

	// h0/h: hex prefix seen, then hex digits (0-9, a-f; A-F added below for
	// the Long variant)
	hexInit := b.newRow()
	b.transition[zeroRow][hexPrefix] = uint16(hexInit)
	hexRow := b.newRow()
	for _, n := range digits[0:16] {
		b.transition[hexInit][n] = uint16(hexRow)
		b.tt[hexInit][n] = ttLiteral
		b.td[hexInit][n] = tdIntHex
		b.transition[hexRow][n] = uint16(hexRow)
		b.tt[hexRow][n] = ttLiteral
		b.td[hexRow][n] = tdIntHex
	}
	if d.IsLong() {
		for _, n := range digits[16:22] {
			b.transition[hexInit][n] = uint16(hexRow)
			b.tt[hexInit][n] = ttLiteral
			b.td[hexInit][n] = tdIntHex
			b.transition[hexRow][n] = uint16(hexRow)
			b.tt[hexRow][n] = ttLiteral
			b.td[hexRow][n] = tdIntHex
		}
	}

	// o0/o: octal prefix seen, then octal digits
	octInit := b.newRow()
	b.transition[zeroRow][octPrefix] = uint16(octInit)
	octRow := b.newRow()
	for _, n := range digits[0:8] {
		b.transition[octInit][n] = uint16(octRow)
		b.tt[octInit][n] = ttLiteral
		b.td[octInit][n] = tdIntOct
		b.transition[octRow][n] = uint16(octRow)
		b.tt[octRow][n] = ttLiteral
		b.td[octRow][n] = tdIntOct
	}

	return nil
}
