package tablebuild

// Token-type family codes, per §4.E's Token Model table.
const (
	ttLiteral      = 1
	ttOp           = 2
	ttCmp          = 3
	ttParen        = 4
	ttSet          = 5
	ttControlKwd   = 6
	ttTypeKwd      = 7
	ttPrimitiveKwd = 8
	// ttIdentifier (9) lives in identifier.go as identifierTT.
	ttNewline = 10
	ttComment = 255
)

// Op subcodes (tt=2), per §4.E.
const (
	opPlus = iota
	opMinus
	opMod
	opMult
	opDiv
	opPow
	opIncrement
	opDecrement
	opNot
	opColon
	opQMark
	opDot
	opComma
	opAt
	opArrowSingle
	opArrowDouble
)

// Cmp subcodes (tt=3), per §4.E.
const (
	cmpEq = iota
	cmpNE
	cmpLT
	cmpGT
	cmpLTE
	cmpGTE
)

// Paren subcodes (tt=4), per §4.E. Curly variants are out-of-band (emitted
// directly by the lexer on scope push/pop), so they never appear here.
const (
	parenLParen = iota
	parenRParen
	parenLSquare
	parenRSquare
)

// setBare is the td sentinel for a bare "=" (as opposed to a compound
// assignment, which uses 0..5 naming the compounded Op subcode).
const setBare = 255

// newlineImplicit/newlineExplicit are the td subcodes for tt=10.
const (
	newlineImplicit = iota
	newlineExplicit
)

// seed installs every language-independent token directly into row 0 and
// whatever intermediate rows its two-byte operators need: arithmetic
// operators (with their compound-assignment and doubled forms),
// comparisons, parentheses/brackets, comma/dot/colon/`@`/`?`, arrows, and
// the explicit-newline (`;`) token. `{`/`}`/whitespace are deliberately
// left zero here (and re-cleared at the end of Build) since the lexer's
// outer dispatch handles them directly, never through the DFA.
func seed(b *builder) {
	// single-byte terminals with no possible extension
	terminal(b, '(', ttParen, parenLParen)
	terminal(b, ')', ttParen, parenRParen)
	terminal(b, '[', ttParen, parenLSquare)
	terminal(b, ']', ttParen, parenRSquare)
	terminal(b, ',', ttOp, opComma)
	terminal(b, '.', ttOp, opDot)
	terminal(b, ':', ttOp, opColon)
	terminal(b, '?', ttOp, opQMark)
	terminal(b, '@', ttOp, opAt)
	terminal(b, ';', ttNewline, newlineExplicit)

	// operators that can stand alone, double, or take a compound "=":
	// +, -, %, *, /, ^
	operatorWithVariants(b, '+', opPlus, '+', opIncrement)
	operatorWithVariants(b, '-', opMinus, '-', opDecrement)
	operatorWithVariants(b, '%', opMod, 0, 0)
	operatorWithVariants(b, '*', opMult, 0, 0)
	operatorWithVariants(b, '/', opDiv, 0, 0)
	operatorWithVariants(b, '^', opPow, 0, 0)

	// ! alone is Not; !! is intercepted before the DFA by the lexer's
	// outer dispatch (language-switch directive), but != still reaches
	// the table as a comparison.
	notRow := b.newRow()
	b.transition[0]['!'] = uint16(notRow)
	b.tt[0]['!'] = ttOp
	b.td[0]['!'] = opNot
	b.tt[notRow]['='] = ttCmp
	b.td[notRow]['='] = cmpNE

	// = alone is a bare Set; == is Eq; => is ArrowDouble.
	eqRow := b.newRow()
	b.transition[0]['='] = uint16(eqRow)
	b.tt[0]['='] = ttSet
	b.td[0]['='] = setBare
	b.tt[eqRow]['='] = ttCmp
	b.td[eqRow]['='] = cmpEq
	b.tt[eqRow]['>'] = ttOp
	b.td[eqRow]['>'] = opArrowDouble

	// < alone is LT; <= is LTE.
	ltRow := b.newRow()
	b.transition[0]['<'] = uint16(ltRow)
	b.tt[0]['<'] = ttCmp
	b.td[0]['<'] = cmpLT
	b.tt[ltRow]['='] = ttCmp
	b.td[ltRow]['='] = cmpLTE

	// > alone is GT; >= is GTE.
	gtRow := b.newRow()
	b.transition[0]['>'] = uint16(gtRow)
	b.tt[0]['>'] = ttCmp
	b.td[0]['>'] = cmpGT
	b.tt[gtRow]['='] = ttCmp
	b.td[gtRow]['='] = cmpGTE

	// - alone is Minus/Decrement/compound (handled above); "->" is
	// ArrowSingle, layered onto the same intermediate row as "--"/"-=".
	minusRow := int(b.transition[0]['-'])
	b.tt[minusRow]['>'] = ttOp
	b.td[minusRow]['>'] = opArrowSingle
}

// terminal wires a single byte in row 0 directly to an accepting state
// with no further extension (next stays 0).
func terminal(b *builder, byte_ byte, tt, td uint8) {
	b.tt[0][byte_] = tt
	b.td[0][byte_] = td
}

// operatorWithVariants wires a row-0 byte that can appear bare (accepting
// immediately, via the td/tt set here) and also be extended: doubled (when
// doubledByte is non-zero; callers pass 0, 0 to skip the doubled form) or
// compounded with "=" into a Set. This mirrors §4.C/§4.D's
// fork behavior: row 0 carries both tt/td (bare accept) and a transition
// to an intermediate row (possible extension).
func operatorWithVariants(b *builder, byte_ byte, baseOp uint8, doubledByte byte, doubledOp uint8) {
	row := b.newRow()
	b.transition[0][byte_] = uint16(row)
	b.tt[0][byte_] = ttOp
	b.td[0][byte_] = baseOp

	b.tt[row]['='] = ttSet
	b.td[row]['='] = baseOp

	if doubledByte != 0 {
		b.tt[row][doubledByte] = ttOp
		b.td[row][doubledByte] = doubledOp
	}
}
