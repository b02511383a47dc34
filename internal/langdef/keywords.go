package langdef

import "github.com/cwbudde/go-polylex/pkg/token"

// KeywordSet holds a Language Model's localized vocabulary: the Digit
// Specification, the six ordered keyword-group arrays named in §3 of the
// specification, and the symbol strings used for delimiters. Every array's
// ordinal position is semantically meaningful: index i of Control always
// names the same token.ControlKeyword across every language.
type KeywordSet struct {
	Digits Digits

	// Control has NumControlKeywords entries, ordered to match
	// token.ControlKeyword's iota sequence exactly.
	Control [token.NumControlKeywords]string

	// Type has NumTypeKeywords entries, ordered to match
	// token.TypeKeywordKind.
	Type [token.NumTypeKeywords]string

	// Primitive has NumPrimitiveKeywords entries, ordered to match
	// token.PrimitiveKeywordKind.
	Primitive [token.NumPrimitiveKeywords]string

	// Bool is [true-keyword, false-keyword].
	Bool [2]string

	// Manifest is a project/build vocabulary the lexer never consumes
	// directly (it parameterizes an external collaborator's messages);
	// carried here so the canonical text format round-trips losslessly.
	Manifest [NumManifestKeywords]string

	// CompileMessages is the localized vocabulary a build tool would use
	// to report progress ("Compiling", "Linking", ...); like Manifest it
	// passes through the lexer untouched.
	CompileMessages [NumCompileKeywords]string

	// Symbols holds the delimiter symbol strings (over and above the
	// language-independent operator/punctuation seed every DFA table
	// shares); see internal/tablebuild.
	Symbols []string
}

// NumManifestKeywords is the fixed size of the manifest keyword array (§3,
// §6).
const NumManifestKeywords = 27

// NumCompileKeywords is the fixed size of the compile-message keyword array
// (§3, §6).
const NumCompileKeywords = 9

// AllKeywords returns every keyword string across all six groups, in
// group order (control, type, primitive, boolean, manifest,
// compile-messages) and then within-group ordinal order. Used by Validate
// to check uniqueness and the 218-code-point budget.
func (ks KeywordSet) AllKeywords() []string {
	out := make([]string, 0,
		len(ks.Control)+len(ks.Type)+len(ks.Primitive)+len(ks.Bool)+
			len(ks.Manifest)+len(ks.CompileMessages)+len(ks.Symbols))
	out = append(out, ks.Control[:]...)
	out = append(out, ks.Type[:]...)
	out = append(out, ks.Primitive[:]...)
	out = append(out, ks.Bool[:]...)
	out = append(out, ks.Manifest[:]...)
	out = append(out, ks.CompileMessages[:]...)
	out = append(out, ks.Symbols...)
	return out
}

// LexicalKeywords returns only the four groups the DFA table builder walks
// (control, type, primitive, boolean) — the groups that actually gain rows
// in the compiled transition table. Manifest and CompileMessages are
// vocabulary for an external collaborator and never reach the lexer.
func (ks KeywordSet) LexicalKeywords() [4][]string {
	return [4][]string{
		ks.Control[:],
		ks.Type[:],
		ks.Primitive[:],
		ks.Bool[:],
	}
}
