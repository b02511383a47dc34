package lexer

import "github.com/cwbudde/go-polylex/pkg/token"

// Code is the 16-bit lex error taxonomy of §7: every lex failure is
// non-recoverable for the current run and carries exactly one of these.
type Code uint16

const (
	// ErrStructural (E0) is a DFA dead-end with no alternative branch, an
	// unterminated literal, or invalid UTF-8 inside a literal.
	ErrStructural Code = 0
	// ErrUnknownLanguage (E1) is a `!!` directive naming an unregistered
	// language code.
	ErrUnknownLanguage Code = 1
	// ErrScopeUnderflow (E2) is a `}` with an empty scope stack, or a `{`
	// scope still open at EOF.
	ErrScopeUnderflow Code = 2
	// ErrEOFMidToken (E3) is an EOF or separator the current branch tree
	// could not commit (no branch was in the start state).
	ErrEOFMidToken Code = 3
	// ErrMalformedComment (E9) is a `\` not followed by a legal comment
	// opener (`\` or `*`).
	ErrMalformedComment Code = 9
	// ErrUnterminatedComment (E10) is a block comment (`\*...*\`) that
	// reached EOF before its closer.
	ErrUnterminatedComment Code = 10
)

func (c Code) String() string {
	switch c {
	case ErrStructural:
		return "E0"
	case ErrUnknownLanguage:
		return "E1"
	case ErrScopeUnderflow:
		return "E2"
	case ErrEOFMidToken:
		return "E3"
	case ErrMalformedComment:
		return "E9"
	case ErrUnterminatedComment:
		return "E10"
	default:
		return "E?"
	}
}

// Error is a lex failure: a taxonomy code, the position it occurred at, and
// a human-readable detail string.
type Error struct {
	Code    Code
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return e.Code.String() + " at " + e.Pos.String() + ": " + e.Message
}
