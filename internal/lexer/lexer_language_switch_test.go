package lexer

import (
	"testing"

	"github.com/cwbudde/go-polylex/internal/langdef"
	"github.com/cwbudde/go-polylex/pkg/token"
)

// germanModel mirrors englishModel with German control keywords, enough to
// exercise a `!!de` language switch mid-source.
func germanModel() langdef.Model {
	m := englishModel()
	m.Name = "German"
	m.Code = "de"
	m.Keywords.Control[4] = "wenn" // if
	return m
}

// mapRegistry is a trivial in-memory Registry, standing in for
// internal/langreg in tests that only need lookup-by-code.
type mapRegistry map[string]*Compiled

func (r mapRegistry) Lookup(code string) (*Compiled, bool) {
	c, ok := r[code]
	return c, ok
}

func TestLexLanguageSwitch(t *testing.T) {
	en := mustCompile(t)
	de, err := Compile(germanModel())
	if err != nil {
		t.Fatalf("Compile(german): %v", err)
	}
	reg := mapRegistry{"en": en, "de": de}

	l := New([]byte("if x\n!!de\nwenn y"), en, reg)
	toks, err := l.Run()
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, l.Dump())
	}

	var keywordCount int
	for _, tok := range toks {
		if tok.Kind() == token.KindControlKeyword {
			keywordCount++
		}
	}
	if keywordCount != 2 {
		t.Fatalf("got %d control keywords, want 2 (one per language): %+v", keywordCount, toks)
	}
}

func TestLexUnknownLanguageIsE1(t *testing.T) {
	en := mustCompile(t)
	l := New([]byte("!!xx\n"), en, mapRegistry{})
	_, err := l.Run()
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %v (%T), want *Error", err, err)
	}
	if lexErr.Code != ErrUnknownLanguage {
		t.Errorf("Code = %v, want %v", lexErr.Code, ErrUnknownLanguage)
	}
}

func TestLexLanguageDirectiveWithNilRegistryIsE1(t *testing.T) {
	en := mustCompile(t)
	l := New([]byte("!!de\n"), en, nil)
	_, err := l.Run()
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %v (%T), want *Error", err, err)
	}
	if lexErr.Code != ErrUnknownLanguage {
		t.Errorf("Code = %v, want %v", lexErr.Code, ErrUnknownLanguage)
	}
}
