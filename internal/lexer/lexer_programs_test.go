package lexer

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/go-polylex/internal/langdef"
	"github.com/cwbudde/go-polylex/pkg/token"
)

// englishLongModel is englishModel with a Long (25-character) Digit
// Specification, so hex literals can use either case for a..f — needed to
// exercise uppercase hex digits end to end.
func englishLongModel() langdef.Model {
	m := englishModel()
	m.Keywords.Digits = langdef.NewDigitsLong('b', 'x', 'o', [22]rune{
		'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
		'a', 'b', 'c', 'd', 'e', 'f',
		'A', 'B', 'C', 'D', 'E', 'F',
	})
	return m
}

func controlKeywordName(k token.ControlKeyword) string {
	names := [token.NumControlKeywords]string{
		"Set", "And", "Or", "Not", "If", "Else", "Match", "Repeat",
		"For", "In", "To", "As", "While", "Fn", "Return", "Continue",
		"Break", "Where",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return fmt.Sprintf("control(%d)", int(k))
	}
	return names[k]
}

// renderValue renders a token.Value as a compact, human-readable string for
// snapshot comparison — every field that distinguishes one token from
// another of the same kind is included, nothing else.
func renderValue(v token.Value) string {
	switch x := v.(type) {
	case token.Keyword:
		return fmt.Sprintf("Keyword(control.%s)", controlKeywordName(x.Keyword))
	case token.TypeKeyword:
		return fmt.Sprintf("TypeKeyword(%d)", int(x.Keyword))
	case token.PrimitiveKeyword:
		return fmt.Sprintf("PrimitiveKeyword(%d)", int(x.Keyword))
	case token.Identifier:
		return fmt.Sprintf("Identifier(%q,%q)", x.Lang, string(x.Name))
	case token.Int:
		return fmt.Sprintf("Int(%s,base=%d)", x.Value.String(), x.Base)
	case token.Float:
		return fmt.Sprintf("Float(%v)", x.Value)
	case token.Bool:
		return fmt.Sprintf("Bool(%v)", x.Value)
	case token.String:
		return fmt.Sprintf("String(%q)", string(x.Value))
	case token.Char:
		return fmt.Sprintf("Char(%q)", x.Value)
	case token.Comment:
		return fmt.Sprintf("Comment(%q,%q)", x.Lang, string(x.Text))
	case token.Op:
		return fmt.Sprintf("Op(%s)", x.Op)
	case token.Set:
		if x.Op == nil {
			return "Set(None)"
		}
		return fmt.Sprintf("Set(Some(%s))", *x.Op)
	case token.Cmp:
		return fmt.Sprintf("Cmp(%s)", x.Cmp)
	case token.Increment:
		return "Increment"
	case token.Decrement:
		return "Decrement"
	case token.Not:
		return "Not"
	case token.Colon:
		return "Colon"
	case token.QuestionMark:
		return "QuestionMark"
	case token.Dot:
		return "Dot"
	case token.Comma:
		return "Comma"
	case token.At:
		return "At"
	case token.ArrowSingle:
		return "ArrowSingle"
	case token.ArrowDouble:
		return "ArrowDouble"
	case token.LParen:
		return "LParen"
	case token.RParen:
		return "RParen"
	case token.LParenSquare:
		return "LParenSquare"
	case token.RParenSquare:
		return "RParenSquare"
	case token.LParenCurly:
		return "LParenCurly"
	case token.RParenCurly:
		return "RParenCurly"
	case token.Newline:
		return fmt.Sprintf("Newline(explicit=%v)", x.Explicit)
	default:
		return fmt.Sprintf("%T(%+v)", v, v)
	}
}

func renderTokens(toks []token.Token) string {
	out := ""
	for i, tok := range toks {
		if i > 0 {
			out += "\n"
		}
		out += renderValue(tok.Value)
	}
	return out
}

func snapshotLex(t *testing.T, name, src string) []token.Token {
	t.Helper()
	toks := mustLex(t, src)
	snaps.MatchSnapshot(t, name, renderTokens(toks))
	return toks
}

func TestS1Assignment(t *testing.T) {
	snapshotLex(t, "S1_assignment", "set my_var = 5")
}

func TestS2DecimalInts(t *testing.T) {
	snapshotLex(t, "S2_decimal_ints", "0 1 2 3 4 5 6 7 8 9 513 0839")
}

func TestS3BinaryInts(t *testing.T) {
	snapshotLex(t, "S3_binary_ints", "0b0 0b1 0b1011 0b01")
}

func TestS4HexInts(t *testing.T) {
	m := englishLongModel()
	c, err := Compile(m)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	l := New([]byte("0x0 0x1 0x2 0x3 0x4 0x5 0x6 0x7 0x8 0x9 0xA 0xB 0xC 0xD 0xE 0xF 0xA0b 0x0f3E"), c, nil)
	toks, err := l.Run()
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, l.Dump())
	}
	snaps.MatchSnapshot(t, "S4_hex_ints", renderTokens(toks))
}

func TestS5StringWithEscape(t *testing.T) {
	snapshotLex(t, "S5_string_escape", `"hello\nworld"`)
}

func TestS6LineComment(t *testing.T) {
	snapshotLex(t, "S6_line_comment", "\\\\ some comment\n123")
}

// TestS7ScopeLanguageRevert runs the `{ !!de ... }` scope scenario: the
// `!!de` directive inside the braces must resolve and the whole input must
// lex to keyword, LParenCurly, keyword, RParenCurly, keyword. It snapshots
// the stream and checks each token's kind. germanModel spells "set" the
// same way englishModel does and Keyword tokens carry no language code, so
// these assertions do not tell which language was active after the `}`.
func TestS7ScopeLanguageRevert(t *testing.T) {
	en := mustCompile(t)
	de, err := Compile(germanModel())
	if err != nil {
		t.Fatalf("Compile(german): %v", err)
	}
	reg := mapRegistry{"en": en, "de": de}

	toks, err := New([]byte("set {!!de set} set"), en, reg).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	snaps.MatchSnapshot(t, "S7_scope_language_revert", renderTokens(toks))

	want := []token.Kind{
		token.KindControlKeyword, // set (en)
		token.KindParen,          // {
		token.KindControlKeyword, // set (de, spelled "set" too — germanModel only changes index 4)
		token.KindParen,          // }
		token.KindControlKeyword, // set (en, reverted)
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind() != k {
			t.Errorf("token %d kind = %v, want %v", i, toks[i].Kind(), k)
		}
	}
	if _, ok := toks[1].Value.(token.LParenCurly); !ok {
		t.Errorf("token 1 = %T, want LParenCurly", toks[1].Value)
	}
	if _, ok := toks[3].Value.(token.RParenCurly); !ok {
		t.Errorf("token 3 = %T, want RParenCurly", toks[3].Value)
	}
}

func TestS8OperatorFamily(t *testing.T) {
	snapshotLex(t, "S8_operator_family", "+ ++ +=")
}

func TestS9IdentifierPlusIdentifier(t *testing.T) {
	snapshotLex(t, "S9_ident_plus_ident", "ident+ident")
}

// TestS10KeywordExtensionNotMatched exercises maximal munch the other way:
// "elsee" must not be recognized as the keyword "else" followed by a
// dangling "e" — it is one Identifier.
func TestS10KeywordExtensionNotMatched(t *testing.T) {
	toks := mustLex(t, "elsee")
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1: %+v", len(toks), toks)
	}
	id, ok := toks[0].Value.(token.Identifier)
	if !ok || string(id.Name) != "elsee" {
		t.Fatalf("got %+v, want Identifier{Name: \"elsee\"}", toks[0].Value)
	}
}

func TestS11UnmatchedCloseScopeIsE2(t *testing.T) {
	c := mustCompile(t)
	l := New([]byte("}"), c, nil)
	_, err := l.Run()
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %v (%T), want *Error", err, err)
	}
	if lexErr.Code != ErrScopeUnderflow {
		t.Errorf("Code = %v, want %v", lexErr.Code, ErrScopeUnderflow)
	}
}

func TestS12UnterminatedStringIsE0(t *testing.T) {
	c := mustCompile(t)
	l := New([]byte(`"unterminated`), c, nil)
	_, err := l.Run()
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %v (%T), want *Error", err, err)
	}
	if lexErr.Code != ErrStructural {
		t.Errorf("Code = %v, want %v", lexErr.Code, ErrStructural)
	}
}

// posLess reports whether a comes strictly before b in (line, column) order.
func posLess(a, b token.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}

// TestTokenSpansAreMonotonicAndContiguous is Testable Property 3: across a
// successful lex, each token's end does not exceed the next token's start,
// and every token but an EOF-implicit Newline spans a non-empty region.
func TestTokenSpansAreMonotonicAndContiguous(t *testing.T) {
	toks := mustLex(t, "set my_var = 5 + 0x1a\nif x return y")
	for i, tok := range toks {
		if _, ok := tok.Value.(token.Newline); ok && tok.Start == tok.End {
			continue // the implicit EOF newline is the one allowed empty span
		}
		if !posLess(tok.Start, tok.End) {
			t.Errorf("token %d (%v) has non-positive span: start=%v end=%v", i, tok.Value, tok.Start, tok.End)
		}
		if i+1 < len(toks) {
			next := toks[i+1]
			if posLess(next.Start, tok.End) {
				t.Errorf("token %d end (%v) overlaps token %d start (%v)", i, tok.End, i+1, next.Start)
			}
		}
	}
}

// TestLexingIsDeterministic is Testable Property 4: tokenizing the same
// byte sequence twice yields identical token lists.
func TestLexingIsDeterministic(t *testing.T) {
	src := "set my_var = 5\nif x return y\n0x1a 0b101 \"hello\\nworld\""
	first := mustLex(t, src)
	second := mustLex(t, src)
	if len(first) != len(second) {
		t.Fatalf("got %d tokens on first run, %d on second", len(first), len(second))
	}
	for i := range first {
		if renderValue(first[i].Value) != renderValue(second[i].Value) || first[i].Start != second[i].Start || first[i].End != second[i].End {
			t.Errorf("token %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
