// Package lexer drives a compiled Language Model's DFA tables over a byte
// stream, producing a positioned token.Token sequence. It implements §4.D:
// a maximal-munch branch tree, out-of-band handling for strings/characters/
// comments/scope braces, and a language scope stack for the `!!` directive
// and `{`/`}` nesting.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/cwbudde/go-polylex/pkg/token"
)

// Option configures a Lexer at construction time, following the teacher's
// functional-options idiom (formerly LexerOption in the pre-localization
// lexer).
type Option func(*Lexer)

// WithInitialLanguage overrides the language a Lexer starts in; the default
// is whatever Compiled bundle is passed to New.
func WithInitialLanguage(c *Compiled) Option {
	return func(l *Lexer) { l.current = c }
}

// WithPreserveComments controls whether Comment tokens reach the output
// stream (true, the default) or are silently dropped as they are produced.
// Downstream consumers that want comments stripped can also call
// token.FilterComments after the fact; this option avoids allocating them
// in the first place.
func WithPreserveComments(preserve bool) Option {
	return func(l *Lexer) { l.preserveComments = preserve }
}

// WithMaxTokens bounds the number of tokens a Run will produce before
// failing with ErrStructural, guarding against unbounded input in a
// long-lived service that embeds this lexer. 0 (the default) means
// unbounded.
func WithMaxTokens(n int) Option {
	return func(l *Lexer) { l.maxTokens = n }
}

// Lexer drives one lex run over a fixed byte slice. It is not safe for
// concurrent use by multiple goroutines, but the Compiled bundles it reads
// (and the Registry it looks language switches up in) are immutable and
// safely shared across concurrently running Lexers (§5).
type Lexer struct {
	data []byte
	idx  int
	pos  token.Running

	tree    *branch
	current *Compiled
	scopes  []*Compiled

	registry         Registry
	preserveComments bool
	maxTokens        int

	out []preToken
}

// New creates a Lexer over src, starting in initial's language, resolving
// `!!<code>` directives through registry (nil is fine if the source never
// switches language).
func New(src []byte, initial *Compiled, registry Registry, opts ...Option) *Lexer {
	l := &Lexer{
		data:             src,
		pos:              token.NewRunning(),
		current:          initial,
		registry:         registry,
		preserveComments: true,
	}
	l.tree = newBranch(l.pos.Finish())
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dump renders the current branch tree, for diagnosing an unrecoverable
// lex error — the idiomatic substitute for the source's debug-assertions-
// gated stderr dump (SPEC_FULL.md §C.2).
func (l *Lexer) Dump() string {
	if l.tree == nil {
		return "<no branch>"
	}
	return l.tree.String()
}

func isTerminator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '{', '}', '\\', '"', '\'':
		return true
	default:
		return false
	}
}

// Run lexes the entire input and returns its token sequence, or the first
// error encountered (§7's taxonomy — always an *Error).
func (l *Lexer) Run() ([]token.Token, error) {
	for l.idx < len(l.data) {
		b := l.data[l.idx]
		l.idx++

		switch {
		case b == '!':
			if err := l.handleBang(); err != nil {
				return nil, err
			}
			continue
		case b == '{':
			l.pushScope()
			continue
		case b == '}':
			if err := l.popScope(); err != nil {
				return nil, err
			}
			continue
		case b == '\t' || b == '\n' || b == ' ':
			l.handleWhitespace(b)
			continue
		case b == '\\':
			if err := l.handleComment(); err != nil {
				return nil, err
			}
			continue
		case b == '"':
			if err := l.handleString(); err != nil {
				return nil, err
			}
			continue
		case b == '\'':
			if err := l.handleChar(); err != nil {
				return nil, err
			}
			continue
		default:
			if _, err := l.step(b); err != nil {
				return nil, err
			}
		}

		if err := l.munch(); err != nil {
			return nil, err
		}
	}

	rem, ok := l.tree.end()
	if !ok {
		return nil, &Error{Code: ErrEOFMidToken, Pos: l.pos.Finish(), Message: "input ended mid-token"}
	}
	l.out = append(l.out, rem...)
	if l.maxTokens > 0 && len(l.out) > l.maxTokens {
		return nil, &Error{Code: ErrStructural, Pos: l.pos.Finish(), Message: "token limit exceeded"}
	}

	if len(l.scopes) > 0 {
		return nil, &Error{Code: ErrScopeUnderflow, Pos: l.pos.Finish(),
			Message: fmt.Sprintf("%d unclosed scope(s) at EOF", len(l.scopes))}
	}

	return l.finalizeAll()
}

// munch drains ordinary (non-special) bytes into the branch tree for
// maximal-munch, one byte at a time, stopping as soon as either a token
// boundary commits (propEnd) or the next byte is a separator the outer
// dispatch must handle itself (§4.D's inner peek loop).
func (l *Lexer) munch() error {
	for l.idx < len(l.data) {
		t := l.data[l.idx]
		if isTerminator(t) {
			rem, ok := l.tree.end()
			if !ok {
				return &Error{Code: ErrEOFMidToken, Pos: l.pos.Finish(), Message: "separator encountered mid-token"}
			}
			l.out = append(l.out, rem...)
			l.tree.reset(l.pos.Finish())
			return nil
		}
		l.idx++
		res, err := l.step(t)
		if err != nil {
			return err
		}
		if res == propEnd {
			return nil
		}
	}
	return nil
}

// step advances the running position by byt and propagates it through the
// branch tree, committing or backtracking as needed.
func (l *Lexer) step(byt byte) (propResult, error) {
	l.pos.Advance(byt)
	end := l.pos.Finish()
	if l.maxTokens > 0 && len(l.out) >= l.maxTokens {
		return propError, &Error{Code: ErrStructural, Pos: end, Message: "token limit exceeded"}
	}
	res := l.tree.propagate(l.current, l.current.Model.Code, byt, end)
	switch res {
	case propEnd:
		l.out = append(l.out, l.tree.preceding...)
		l.tree.reset(end)
	case propError:
		if l.tree.alt != nil {
			l.tree = l.tree.alt
		} else {
			return res, &Error{Code: ErrStructural, Pos: end,
				Message: fmt.Sprintf("no accepting state for byte %#02x", byt)}
		}
	}
	return res, nil
}

func (l *Lexer) handleWhitespace(b byte) {
	from := l.pos.Finish()
	l.pos.Advance(b)
	at := l.pos.Finish()
	l.tree.reset(at)
	if b == '\n' {
		l.out = append(l.out, preToken{Start: from, End: at, TT: ttNewline, TD: tdNewlineImplicit, Lang: l.current.Model.Code})
	}
}

func (l *Lexer) pushScope() {
	l.pos.Advance('{')
	at := l.pos.Finish()
	l.out = append(l.out, preToken{Start: l.tree.start, End: at, TT: ttParen, TD: tdLParenCurlyMarker, Lang: l.current.Model.Code})
	l.scopes = append(l.scopes, l.current)
	l.tree.reset(at)
}

func (l *Lexer) popScope() error {
	l.pos.Advance('}')
	at := l.pos.Finish()
	if len(l.scopes) == 0 {
		return &Error{Code: ErrScopeUnderflow, Pos: at, Message: "unbalanced '}'"}
	}
	n := len(l.scopes) - 1
	l.current = l.scopes[n]
	l.scopes = l.scopes[:n]
	l.out = append(l.out, preToken{Start: l.tree.start, End: at, TT: ttParen, TD: tdRParenCurlyMarker, Lang: l.current.Model.Code})
	l.tree.reset(at)
	return nil
}

// handleBang implements the `!` dispatch row of §4.D's table: `!!<code>`
// switches language; any other follower (including whitespace, via the
// DFA's own Not/NotEqual alt-branch disambiguation) feeds `!` through the
// DFA like an ordinary byte and lets munch sort out Not vs "!=".
func (l *Lexer) handleBang() error {
	if l.idx < len(l.data) && l.data[l.idx] == '!' {
		l.idx++
		l.pos.Advance('!')
		var code []byte
		for l.idx < len(l.data) {
			c := l.data[l.idx]
			if c == '\n' || c == ';' || c == ' ' || c == '\t' {
				break
			}
			l.idx++
			l.pos.Advance(c)
			code = append(code, c)
		}
		if l.registry == nil {
			return &Error{Code: ErrUnknownLanguage, Pos: l.pos.Finish(), Message: fmt.Sprintf("no language registry configured (wanted %q)", code)}
		}
		compiled, ok := l.registry.Lookup(string(code))
		if !ok {
			return &Error{Code: ErrUnknownLanguage, Pos: l.pos.Finish(), Message: fmt.Sprintf("unknown language code %q", code)}
		}
		l.current = compiled
		l.tree.reset(l.pos.Finish())
		return nil
	}

	if _, err := l.step('!'); err != nil {
		return err
	}
	return l.munch()
}

// tdLParenCurlyMarker/tdRParenCurlyMarker are synthetic td values this
// package alone uses to carry LParenCurly/RParenCurly through the
// preToken→Token decode path; the DFA table never produces them (§4.E
// notes curly brackets are "out-of-band").
const (
	tdLParenCurlyMarker = 250
	tdRParenCurlyMarker = 251
)

// handleComment implements the `\` dispatch row: `\\` opens an inline
// comment running to end of line, `\*` opens a block comment closed by
// `*\`. A third consecutive backslash, or an immediate newline, yields an
// empty Comment (the source's "doc comment" convention — see SPEC_FULL.md
// §C.3).
func (l *Lexer) handleComment() error {
	l.pos.Advance('\\')
	start := l.tree.start
	if l.idx >= len(l.data) {
		return &Error{Code: ErrMalformedComment, Pos: l.pos.Finish(), Message: "'\\' at EOF"}
	}
	opener := l.data[l.idx]
	l.idx++
	l.pos.Advance(opener)

	switch opener {
	case '\\':
		return l.handleInlineComment(start)
	case '*':
		return l.handleBlockComment(start)
	default:
		return &Error{Code: ErrMalformedComment, Pos: l.pos.Finish(), Message: fmt.Sprintf("'\\' not followed by '\\' or '*' (got %#02x)", opener)}
	}
}

func (l *Lexer) handleInlineComment(start token.Position) error {
	var matched []byte
	if l.idx < len(l.data) {
		c := l.data[l.idx]
		switch c {
		case '\\':
			l.idx++
			l.pos.Advance(c)
		case '\n':
			l.idx++
			l.pos.Advance(c)
		default:
			l.idx++
			l.pos.Advance(c)
			matched = append(matched, c)
			for l.idx < len(l.data) {
				n := l.data[l.idx]
				l.idx++
				l.pos.Advance(n)
				if n == '\n' {
					break
				}
				matched = append(matched, n)
			}
		}
	}
	l.emitComment(start, matched)
	return nil
}

func (l *Lexer) handleBlockComment(start token.Position) error {
	var matched []byte
	closed := false
	for l.idx < len(l.data) {
		n := l.data[l.idx]
		l.idx++
		l.pos.Advance(n)
		matched = append(matched, n)
		if n == '*' {
			if l.idx >= len(l.data) {
				return &Error{Code: ErrUnterminatedComment, Pos: l.pos.Finish(), Message: "block comment unterminated at EOF"}
			}
			t := l.data[l.idx]
			l.idx++
			l.pos.Advance(t)
			if t == '\\' {
				matched = matched[:len(matched)-1]
				closed = true
				break
			}
			matched = append(matched, t)
		}
	}
	if !closed {
		return &Error{Code: ErrUnterminatedComment, Pos: l.pos.Finish(), Message: "block comment unterminated at EOF"}
	}
	l.emitComment(start, matched)
	return nil
}

func (l *Lexer) emitComment(start token.Position, content []byte) {
	at := l.pos.Finish()
	if l.preserveComments {
		l.out = append(l.out, preToken{Start: start, End: at, TT: ttComment, Bytes: content, Lang: l.current.Model.Code})
	}
	l.tree.reset(at)
}

// handleString implements the `"` dispatch row: accumulate bytes until an
// unescaped `"`, with `\n`/`\t`/`\r` escape short-hands and any other
// escaped byte (including `\\` and `\"`) copied through as its own decoded
// code point (§4.D).
func (l *Lexer) handleString() error {
	l.pos.Advance('"')
	start := l.tree.start
	var matched []byte
	closed := false
	for l.idx < len(l.data) {
		t := l.data[l.idx]
		l.idx++
		l.pos.Advance(t)
		if t == '"' {
			closed = true
			break
		}
		if t == '\\' {
			r, err := l.parseEscapedRune()
			if err != nil {
				return err
			}
			matched = appendEscapedRune(matched, r)
			continue
		}
		matched = append(matched, t)
	}
	if !closed {
		return &Error{Code: ErrStructural, Pos: l.pos.Finish(), Message: "unterminated string literal"}
	}
	at := l.pos.Finish()
	l.out = append(l.out, preToken{Start: start, End: at, TT: ttLiteral, TD: tdStringMarker, Bytes: matched, Lang: l.current.Model.Code})
	l.tree.reset(at)
	return nil
}

// tdStringMarker/tdCharMarker are synthetic td values carrying
// String/Char literals through the decode path; §4.E's numeric table only
// covers tt=1's numeric/boolean subcodes, since strings and chars are
// recognized out-of-band rather than through the DFA.
const (
	tdStringMarker = 252
	tdCharMarker   = 253
)

// handleChar implements the `'` dispatch row. Per spec.md's explicit prose
// ("accumulate exactly one UTF-8 code point (possibly through an escape)")
// this accepts the same `\n`/`\t`/`\r`/passthrough escapes as string
// literals — see DESIGN.md for why this departs from a literal port of the
// reference lexer, which does not special-case a leading backslash here.
func (l *Lexer) handleChar() error {
	l.pos.Advance('\'')
	start := l.tree.start
	if l.idx >= len(l.data) {
		return &Error{Code: ErrStructural, Pos: l.pos.Finish(), Message: "unterminated character literal"}
	}
	var r rune
	var err error
	if l.data[l.idx] == '\\' {
		l.idx++
		l.pos.Advance('\\')
		r, err = l.parseEscapedRune()
	} else {
		r, err = l.decodeRune()
	}
	if err != nil {
		return err
	}
	if l.idx >= len(l.data) || l.data[l.idx] != '\'' {
		return &Error{Code: ErrStructural, Pos: l.pos.Finish(), Message: "character literal not closed by '\\''"}
	}
	l.idx++
	l.pos.Advance('\'')
	at := l.pos.Finish()
	l.out = append(l.out, preToken{Start: start, End: at, TT: ttLiteral, TD: tdCharMarker, Bytes: []byte(string(r)), Lang: l.current.Model.Code})
	l.tree.reset(at)
	return nil
}

// decodeRune decodes one UTF-8 code point starting at l.idx, advancing the
// cursor and running position over every byte it consumes.
func (l *Lexer) decodeRune() (rune, error) {
	if l.idx >= len(l.data) {
		return 0, &Error{Code: ErrStructural, Pos: l.pos.Finish(), Message: "expected a character, found EOF"}
	}
	r, size := utf8.DecodeRune(l.data[l.idx:])
	if r == utf8.RuneError && size <= 1 {
		return 0, &Error{Code: ErrStructural, Pos: l.pos.Finish(), Message: "invalid UTF-8 encoding"}
	}
	for i := 0; i < size; i++ {
		l.pos.Advance(l.data[l.idx])
		l.idx++
	}
	return r, nil
}

// parseEscapedRune decodes the rune immediately following a consumed `\`
// and maps the three recognized short-hands (n, t, r) to their control
// bytes; every other rune — including `\` and `"`/`'` — passes through as
// itself.
func (l *Lexer) parseEscapedRune() (rune, error) {
	r, err := l.decodeRune()
	if err != nil {
		return 0, err
	}
	switch r {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	default:
		return r, nil
	}
}

func appendEscapedRune(buf []byte, r rune) []byte {
	var enc [utf8.UTFMax]byte
	n := utf8.EncodeRune(enc[:], r)
	return append(buf, enc[:n]...)
}

// finalizeAll decodes every accumulated Pre-Token into a caller-facing
// Token, skipping curly/string/char literals' synthetic markers that
// decode.go's generic switch does not special-case.
func (l *Lexer) finalizeAll() ([]token.Token, error) {
	out := make([]token.Token, 0, len(l.out))
	for _, pt := range l.out {
		var (
			tok token.Token
			err error
		)
		switch {
		case pt.TT == ttParen && pt.TD == tdLParenCurlyMarker:
			tok = token.Token{Start: pt.Start, End: pt.End, Value: token.LParenCurly{}}
		case pt.TT == ttParen && pt.TD == tdRParenCurlyMarker:
			tok = token.Token{Start: pt.Start, End: pt.End, Value: token.RParenCurly{}}
		case pt.TT == ttLiteral && pt.TD == tdStringMarker:
			tok = token.Token{Start: pt.Start, End: pt.End, Value: token.String{Value: pt.Bytes}}
		case pt.TT == ttLiteral && pt.TD == tdCharMarker:
			r, _ := utf8.DecodeRune(pt.Bytes)
			tok = token.Token{Start: pt.Start, End: pt.End, Value: token.Char{Value: r}}
		default:
			tok, err = finalize(pt, &l.current.Model)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	return out, nil
}
