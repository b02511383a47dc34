package lexer

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-polylex/pkg/token"
)

// preToken is the internal, not-yet-decoded record §3 calls a Pre-Token: a
// source span, the DFA's tt/td category codes, the raw matched bytes, and
// the language code active when it was recognized. finalize (decode.go)
// turns a slice of these into the caller-facing token.Token sequence once
// an entire lex run has completed.
type preToken struct {
	Start, End token.Position
	TT, TD     uint8
	Bytes      []byte
	Lang       string
}

// propResult mirrors the three-way outcome of stepping a branch one byte,
// per §4.D's DFA step: Continue (state advanced, token not yet decided),
// End (a token was committed, the branch is done), Error (dead end, no
// accepting state reached).
type propResult int

const (
	propContinue propResult = iota
	propEnd
	propError
)

// branch is the maximal-munch "branch tree" of §4.D/§9: the current DFA
// state for one candidate token, the Pre-Tokens accumulated before it
// began, and at most one pending alternative branch — the longest shorter
// match found earlier along the same bytes, kept in case the longer match
// dead-ends. Design Note §9 explicitly calls out that one level of
// alternative always suffices; alt itself may still carry a further alt of
// its own (a new, even-shorter alternative can be found while re-trying the
// byte against it), so the structure is modeled as a chain rather than
// hard-coding a depth of exactly one.
type branch struct {
	row       uint16
	start     token.Position
	matched   []byte
	preceding []preToken
	alt       *branch
}

func newBranch(start token.Position) *branch {
	return &branch{start: start}
}

// reset restarts the branch at the start state, with no accumulated bytes,
// preceding tokens, or alternative — called after a token boundary commits
// (§4.C step 8's "terminate, don't extend" behavior at whitespace/scope
// bytes, and after every successful Pre-Token emission).
func (b *branch) reset(start token.Position) {
	b.row = 0
	b.start = start
	b.matched = nil
	b.preceding = nil
	b.alt = nil
}

// newAlt replaces this branch's pending alternative with a fresh branch
// seeded with the just-accepted shorter token, continuing from the current
// position (§4.D step 5's "fork").
func (b *branch) newAlt(pt preToken, at token.Position) {
	preceding := make([]preToken, len(b.preceding)+1)
	copy(preceding, b.preceding)
	preceding[len(b.preceding)] = pt
	b.alt = &branch{start: at, preceding: preceding}
}

// propagate advances the branch by one byte, per §4.D's DFA step. c is the
// currently active compiled language; lang is its code, carried onto every
// Pre-Token produced. end is the source position immediately after byt.
func (b *branch) propagate(c *Compiled, lang string, byt byte, end token.Position) propResult {
	alternative := false
	if b.alt != nil {
		switch b.alt.propagate(c, lang, byt, end) {
		case propContinue:
		case propError:
			b.alt = b.alt.alt
		case propEnd:
			alternative = true
		}
	}

	b.matched = append(b.matched, byt)
	lastRow := b.row
	b.row = c.Transition.Element(b.row, byt)
	ttVal := c.TT.Element(lastRow, byt)

	if b.row == 0 {
		if ttVal == 0 {
			if alternative {
				*b = *b.alt
				return propEnd
			}
			return propError
		}
		b.preceding = append(b.preceding, preToken{
			Start: b.start, End: end, TT: ttVal, TD: c.TD.Element(lastRow, byt),
			Bytes: append([]byte(nil), b.matched...), Lang: lang,
		})
		return propEnd
	}

	if ttVal != 0 {
		b.newAlt(preToken{
			Start: b.start, End: end, TT: ttVal, TD: c.TD.Element(lastRow, byt),
			Bytes: append([]byte(nil), b.matched...), Lang: lang,
		}, end)
	}
	return propContinue
}

// end recursively consults the branch tree for a committable result: a
// branch in the start state has nothing pending and its preceding tokens
// are final; otherwise the branch is mid-token and only an alternative (a
// shorter match found earlier) can rescue it. Returns ok=false if no branch
// in the chain is at the start state — the E3 "EOF mid-token" case.
func (b *branch) end() (preceding []preToken, ok bool) {
	if b.row == 0 {
		return b.preceding, true
	}
	if b.alt != nil {
		return b.alt.end()
	}
	return nil, false
}

// String renders the branch chain for debugging (Lexer.Dump), one line per
// level, matching the spirit of a debug-assertions-only trace.
func (b *branch) String() string {
	var sb strings.Builder
	for cur, depth := b, 0; cur != nil; cur, depth = cur.alt, depth+1 {
		fmt.Fprintf(&sb, "%*srow=%d start=%s matched=%q preceding=%d\n",
			depth*2, "", cur.row, cur.start, cur.matched, len(cur.preceding))
	}
	return sb.String()
}
