package lexer

import (
	"testing"

	"github.com/cwbudde/go-polylex/pkg/token"
)

func TestLexPositionsAcrossLines(t *testing.T) {
	toks := mustLex(t, "x\ny")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %+v", len(toks), toks)
	}

	if toks[0].Start != (token.Position{Line: 1, Column: 0}) {
		t.Errorf("x: Start = %v, want 1:0", toks[0].Start)
	}
	if toks[0].End != (token.Position{Line: 1, Column: 1}) {
		t.Errorf("x: End = %v, want 1:1", toks[0].End)
	}

	if toks[2].Start.Line != 2 || toks[2].Start.Column != 0 {
		t.Errorf("y: Start = %v, want line 2 column 0", toks[2].Start)
	}
}

// TestLexColumnResetsPerLine uses "xyz"/"qj" deliberately: neither is a
// prefix of any control/type/primitive/boolean keyword in englishModel, so
// the identifier commits via the plain row-0-to-IdentRow fallback path
// rather than the keyword-prefix alt/backtrack machinery also under test
// elsewhere (lexer_basic_test.go, comment_test.go).
func TestLexColumnResetsPerLine(t *testing.T) {
	toks := mustLex(t, "xyz\nqj")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %+v", len(toks), toks)
	}
	if toks[2].Start.Column != 0 {
		t.Errorf("qj: Start.Column = %d, want 0", toks[2].Start.Column)
	}
	if toks[2].End.Column != 2 {
		t.Errorf("qj: End.Column = %d, want 2", toks[2].End.Column)
	}
}
