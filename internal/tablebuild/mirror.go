package tablebuild

// mirrorBrackets swaps the token-data entries for "("/")" and "["/"]" in
// row 0, per §4.C step 2: a right-to-left language's grammar treats the
// visually-opening byte (still "(" or "[" in the source bytes) as the
// closing bracket, since brackets are visually mirrored in RTL scripts.
func mirrorBrackets(b *builder) {
	b.td[0]['('], b.td[0][')'] = b.td[0][')'], b.td[0]['(']
	b.td[0]['['], b.td[0][']'] = b.td[0][']'], b.td[0]['[']
}
