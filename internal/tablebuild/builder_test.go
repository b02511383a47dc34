package tablebuild

import (
	"strconv"
	"testing"

	"github.com/cwbudde/go-polylex/internal/langdef"
)

// englishModel returns a realistic English Language Model: the control/
// type/primitive keyword arrays a developer would actually choose, and a
// digit specification whose prefixes deliberately coincide with hex digit
// glyphs (b is both the binary prefix and a hex digit; similarly the
// fixture keeps x/o disjoint from the hex alphabet to stay representative
// of the common case too).
func englishModel() langdef.Model {
	ks := langdef.KeywordSet{
		Digits: langdef.NewDigitsShort('b', 'x', 'o', [16]rune{
			'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
			'a', 'b', 'c', 'd', 'e', 'f',
		}),
		Control: [18]string{
			"set", "and", "or", "not", "if", "else", "match", "repeat",
			"for", "in", "to", "as", "while", "fn", "return", "continue",
			"break", "where",
		},
		Type: [9]string{
			"struct", "properties", "enum", "variants", "self", "Self",
			"extension", "extend", "const",
		},
		Primitive: [10]string{
			"int", "uint", "dint", "udint", "float", "bfloat", "str",
			"char", "list", "bool",
		},
		Bool: [2]string{"true", "false"},
	}
	for i := range ks.Manifest {
		ks.Manifest[i] = "m" + strconv.Itoa(i)
	}
	for i := range ks.CompileMessages {
		ks.CompileMessages[i] = "c" + strconv.Itoa(i)
	}

	return langdef.Model{
		Name:     "English",
		Code:     "en",
		RTL:      false,
		Keywords: ks,
	}
}

func TestBuildEnglishValidates(t *testing.T) {
	m := englishModel()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestBuildProducesAlignedTables(t *testing.T) {
	m := englishModel()
	tbl, err := Build(m)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(tbl.Transition) != len(tbl.TT) || len(tbl.TT) != len(tbl.TD) {
		t.Fatalf("table row counts diverge: transition=%d tt=%d td=%d",
			len(tbl.Transition), len(tbl.TT), len(tbl.TD))
	}
	if len(tbl.Transition) <= IdentRow {
		t.Fatalf("expected more than %d rows, got %d", IdentRow, len(tbl.Transition))
	}
}

func TestBuildKeywordsReachTerminalTT(t *testing.T) {
	m := englishModel()
	tbl, err := Build(m)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	walk := func(word string) (tt, td uint8) {
		row := 0
		for i, c := range []byte(word) {
			if i == len(word)-1 {
				return tbl.TT[row][c], tbl.TD[row][c]
			}
			row = int(tbl.Transition[row][c])
		}
		return 0, 0
	}

	if tt, td := walk("if"); tt != ttControlKwd || td != uint8(4) {
		t.Fatalf(`walk("if") = tt=%d td=%d, want tt=%d td=4`, tt, td, ttControlKwd)
	}
	if tt, td := walk("struct"); tt != ttTypeKwd || td != 0 {
		t.Fatalf(`walk("struct") = tt=%d td=%d, want tt=%d td=0`, tt, td, ttTypeKwd)
	}
	if tt, td := walk("int"); tt != ttPrimitiveKwd || td != 0 {
		t.Fatalf(`walk("int") = tt=%d td=%d, want tt=%d td=0`, tt, td, ttPrimitiveKwd)
	}
	if tt, td := walk("true"); tt != ttLiteral || td != 0 {
		t.Fatalf(`walk("true") = tt=%d td=%d, want tt=%d td=0`, tt, td, ttLiteral)
	}
	if tt, td := walk("false"); tt != ttLiteral || td != 1 {
		t.Fatalf(`walk("false") = tt=%d td=%d, want tt=%d td=1`, tt, td, ttLiteral)
	}
}

func TestBuildIdentifierFallback(t *testing.T) {
	m := englishModel()
	tbl, err := Build(m)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// "z" shares no prefix with any keyword; row 0 must classify it as an
	// identifier-continuation byte straight away.
	if tt := tbl.TT[0]['z']; tt != identifierTT {
		t.Fatalf("tt[0]['z'] = %d, want identifierTT=%d", tt, identifierTT)
	}
	next := tbl.Transition[0]['z']
	if next != IdentRow {
		t.Fatalf("transition[0]['z'] = %d, want IdentRow=%d", next, IdentRow)
	}
}

func TestBuildWhitespaceTerminates(t *testing.T) {
	m := englishModel()
	tbl, err := Build(m)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, w := range whitespaceBytes {
		if tbl.TT[0][w] != 0 || tbl.Transition[0][w] != 0 {
			t.Fatalf("byte %d: expected row 0 cleared, got tt=%d transition=%d",
				w, tbl.TT[0][w], tbl.Transition[0][w])
		}
	}
}

func TestBuildRTLMirrorsBrackets(t *testing.T) {
	ltr := englishModel()
	rtl := englishModel()
	rtl.RTL = true

	ltrTbl, err := Build(ltr)
	if err != nil {
		t.Fatalf("Build(ltr): %v", err)
	}
	rtlTbl, err := Build(rtl)
	if err != nil {
		t.Fatalf("Build(rtl): %v", err)
	}

	if rtlTbl.TD[0]['('] != ltrTbl.TD[0][')'] || rtlTbl.TD[0][')'] != ltrTbl.TD[0]['('] {
		t.Fatalf("RTL build did not swap ( ) td values")
	}
	if rtlTbl.TD[0]['['] != ltrTbl.TD[0][']'] || rtlTbl.TD[0][']'] != ltrTbl.TD[0]['['] {
		t.Fatalf("RTL build did not swap [ ] td values")
	}
}

func TestBuildDigitLiterals(t *testing.T) {
	m := englishModel()
	tbl, err := Build(m)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	step := func(row int, c byte) int {
		return int(tbl.Transition[row][c])
	}

	// "0xA" style path (lowercase only in this fixture): '0' -> zeroRow,
	// then 'x' -> hex-init row, then a hex digit loops in hexRow.
	zeroRow := step(0, '0')
	if tbl.TT[zeroRow] == [256]uint8{} {
		t.Fatalf("zero row not wired")
	}
	hexInit := step(zeroRow, 'x')
	if hexInit == 0 {
		t.Fatalf("hex prefix transition missing from zero row")
	}
	hexRow := step(hexInit, 'a')
	if tbl.TT[hexInit]['a'] != ttLiteral || tbl.TD[hexInit]['a'] != tdIntHex {
		t.Fatalf("hex digit after prefix not classified as int-hex")
	}
	if step(hexRow, 'f') == 0 && tbl.TT[hexRow]['f'] != ttLiteral {
		t.Fatalf("hex row does not continue accepting hex digits")
	}
}
