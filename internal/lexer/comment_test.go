package lexer

import (
	"testing"

	"github.com/cwbudde/go-polylex/pkg/token"
)

func TestLexInlineComment(t *testing.T) {
	toks := mustLex(t, "x \\\\ comment text\ny")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3 (ident, comment, ident): %+v", len(toks), toks)
	}
	c, ok := toks[1].Value.(token.Comment)
	if !ok {
		t.Fatalf("token 1 = %T, want token.Comment", toks[1].Value)
	}
	if string(c.Text) != " comment text" {
		t.Errorf("got %q, want %q", c.Text, " comment text")
	}
}

// TestLexDocCommentMarker exercises the "doc comment" special case: a
// third consecutive backslash (or an immediate newline) opens an empty
// Comment with no accumulated content.
func TestLexDocCommentMarker(t *testing.T) {
	toks := mustLex(t, "\\\\\\ x")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2 (comment, ident): %+v", len(toks), toks)
	}
	c, ok := toks[0].Value.(token.Comment)
	if !ok {
		t.Fatalf("token 0 = %T, want token.Comment", toks[0].Value)
	}
	if len(c.Text) != 0 {
		t.Errorf("got %q, want empty", c.Text)
	}
}

func TestLexBlockComment(t *testing.T) {
	toks := mustLex(t, "x \\* block *\\ y")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %+v", len(toks), toks)
	}
	c, ok := toks[1].Value.(token.Comment)
	if !ok {
		t.Fatalf("token 1 = %T, want token.Comment", toks[1].Value)
	}
	if string(c.Text) != " block " {
		t.Errorf("got %q, want %q", c.Text, " block ")
	}
}

// TestLexUnterminatedBlockCommentIsE10 exercises the fix-not-reproduce
// decision recorded in DESIGN.md: any EOF before the block comment's `*\`
// closer is E10, never a silently truncated Comment.
func TestLexUnterminatedBlockCommentIsE10(t *testing.T) {
	c := mustCompile(t)
	l := New([]byte("\\* never closed"), c, nil)
	_, err := l.Run()
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %v (%T), want *Error", err, err)
	}
	if lexErr.Code != ErrUnterminatedComment {
		t.Errorf("Code = %v, want %v", lexErr.Code, ErrUnterminatedComment)
	}
}

func TestLexMalformedCommentOpenerIsE9(t *testing.T) {
	c := mustCompile(t)
	l := New([]byte("\\x"), c, nil)
	_, err := l.Run()
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %v (%T), want *Error", err, err)
	}
	if lexErr.Code != ErrMalformedComment {
		t.Errorf("Code = %v, want %v", lexErr.Code, ErrMalformedComment)
	}
}
