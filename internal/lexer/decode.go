package lexer

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/cwbudde/go-polylex/internal/langdef"
	"github.com/cwbudde/go-polylex/pkg/token"
)

// Token-type family codes a compiled DFA table produces, per §4.E. These
// mirror internal/tablebuild's private constants of the same values; both
// packages read them directly off the same table so there is nothing to
// import between them, only the same spec section to stay faithful to.
const (
	ttLiteral      = 1
	ttOp           = 2
	ttCmp          = 3
	ttParen        = 4
	ttSet          = 5
	ttControlKwd   = 6
	ttTypeKwd      = 7
	ttPrimitiveKwd = 8
	ttIdentifier   = 9
	ttNewline      = 10
	ttComment      = 255
)

// Literal td subcodes (tt=1).
const (
	tdBoolTrue  = 0
	tdBoolFalse = 1
	tdIntDec    = 2
	tdIntBin    = 3
	tdIntHex    = 4
	tdIntOct    = 5
	tdFloat     = 6
)

// Op td subcodes (tt=2).
const (
	tdOpPlus = iota
	tdOpMinus
	tdOpMod
	tdOpMult
	tdOpDiv
	tdOpPow
	tdOpIncrement
	tdOpDecrement
	tdOpNot
	tdOpColon
	tdOpQMark
	tdOpDot
	tdOpComma
	tdOpAt
	tdOpArrowSingle
	tdOpArrowDouble
)

// Cmp td subcodes (tt=3).
const (
	tdCmpEq = iota
	tdCmpNE
	tdCmpLT
	tdCmpGT
	tdCmpLTE
	tdCmpGTE
)

// Paren td subcodes (tt=4).
const (
	tdParenLParen = iota
	tdParenRParen
	tdParenLSquare
	tdParenRSquare
)

// tdSetBare is the td sentinel for a bare "=" (tt=5).
const tdSetBare = 255

// Newline td subcodes (tt=10).
const (
	tdNewlineImplicit = 0
	tdNewlineExplicit = 1
)

var opKindByTD = [6]token.OpKind{
	tdOpPlus: token.OpPlus, tdOpMinus: token.OpMinus, tdOpMod: token.OpMod,
	tdOpMult: token.OpMult, tdOpDiv: token.OpDiv, tdOpPow: token.OpPow,
}

// finalize converts a Pre-Token into its caller-facing Token, per §4.D's
// "Pre-Token → Token finalization" step: literals are folded (arbitrary
// precision for integers, split into digits through the given Language
// Model's Digit Specification; IEEE-754 for floats), operators/comparisons/
// sets/keywords decode their td subcode, identifiers keep the language code
// and bytes they were recognized with, and everything else passes through
// unchanged.
func finalize(pt preToken, m *langdef.Model) (token.Token, error) {
	tok := token.Token{Start: pt.Start, End: pt.End}
	val, err := decodeValue(pt, m)
	if err != nil {
		return token.Token{}, err
	}
	tok.Value = val
	return tok, nil
}

func decodeValue(pt preToken, m *langdef.Model) (token.Value, error) {
	switch pt.TT {
	case ttLiteral:
		return decodeLiteral(pt, m)
	case ttOp:
		return decodeOp(pt.TD)
	case ttCmp:
		return token.Cmp{Cmp: token.CmpKind(pt.TD)}, nil
	case ttParen:
		return decodeParen(pt.TD)
	case ttSet:
		if pt.TD == tdSetBare {
			return token.Set{Op: nil}, nil
		}
		op := opKindByTD[pt.TD]
		return token.Set{Op: &op}, nil
	case ttControlKwd:
		return token.Keyword{Keyword: token.ControlKeyword(pt.TD)}, nil
	case ttTypeKwd:
		return token.TypeKeyword{Keyword: token.TypeKeywordKind(pt.TD)}, nil
	case ttPrimitiveKwd:
		return token.PrimitiveKeyword{Keyword: token.PrimitiveKeywordKind(pt.TD)}, nil
	case ttIdentifier:
		return token.Identifier{Lang: pt.Lang, Name: pt.Bytes}, nil
	case ttNewline:
		return token.Newline{Explicit: pt.TD == tdNewlineExplicit}, nil
	case ttComment:
		return token.Comment{Lang: pt.Lang, Text: pt.Bytes}, nil
	default:
		return nil, fmt.Errorf("lexer: unrecognized token-type code %d", pt.TT)
	}
}

func decodeOp(td uint8) (token.Value, error) {
	switch td {
	case tdOpPlus, tdOpMinus, tdOpMod, tdOpMult, tdOpDiv, tdOpPow:
		return token.Op{Op: opKindByTD[td]}, nil
	case tdOpIncrement:
		return token.Increment{}, nil
	case tdOpDecrement:
		return token.Decrement{}, nil
	case tdOpNot:
		return token.Not{}, nil
	case tdOpColon:
		return token.Colon{}, nil
	case tdOpQMark:
		return token.QuestionMark{}, nil
	case tdOpDot:
		return token.Dot{}, nil
	case tdOpComma:
		return token.Comma{}, nil
	case tdOpAt:
		return token.At{}, nil
	case tdOpArrowSingle:
		return token.ArrowSingle{}, nil
	case tdOpArrowDouble:
		return token.ArrowDouble{}, nil
	default:
		return nil, fmt.Errorf("lexer: unrecognized op td %d", td)
	}
}

func decodeParen(td uint8) (token.Value, error) {
	switch td {
	case tdParenLParen:
		return token.LParen{}, nil
	case tdParenRParen:
		return token.RParen{}, nil
	case tdParenLSquare:
		return token.LParenSquare{}, nil
	case tdParenRSquare:
		return token.RParenSquare{}, nil
	default:
		return nil, fmt.Errorf("lexer: unrecognized paren td %d", td)
	}
}

func decodeLiteral(pt preToken, m *langdef.Model) (token.Value, error) {
	switch pt.TD {
	case tdBoolTrue:
		return token.Bool{Value: true}, nil
	case tdBoolFalse:
		return token.Bool{Value: false}, nil
	case tdIntDec:
		return decodeInt(pt.Bytes, 10, m)
	case tdIntBin:
		return decodeInt(stripPrefix(pt.Bytes, 2), 2, m)
	case tdIntHex:
		return decodeInt(stripPrefix(pt.Bytes, 2), 16, m)
	case tdIntOct:
		return decodeInt(stripPrefix(pt.Bytes, 2), 8, m)
	case tdFloat:
		f, err := strconv.ParseFloat(string(pt.Bytes), 64)
		if err != nil {
			return nil, fmt.Errorf("lexer: malformed float literal %q: %w", pt.Bytes, err)
		}
		return token.Float{Value: f}, nil
	default:
		return nil, fmt.Errorf("lexer: unrecognized literal td %d", pt.TD)
	}
}

// stripPrefix removes the leading "0<base-char>" two bytes a non-decimal
// integer literal carries (e.g. "0x" in "0x1A"), per §4.D.
func stripPrefix(b []byte, n int) []byte {
	if len(b) <= n {
		return nil
	}
	return b[n:]
}

func decodeInt(digitBytes []byte, base int, m *langdef.Model) (token.Value, error) {
	digits, err := m.Keywords.Digits.SeparateDigits(base, digitBytes)
	if err != nil {
		return nil, fmt.Errorf("lexer: %w", err)
	}
	value := new(big.Int)
	b := big.NewInt(int64(base))
	for _, d := range digits {
		value.Mul(value, b)
		value.Add(value, big.NewInt(int64(d)))
	}
	return token.Int{Value: value, Base: base}, nil
}
