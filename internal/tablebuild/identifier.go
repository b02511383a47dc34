package tablebuild

// identifierTT is the tt code an identifier-continuation byte produces.
// §4.C step 3's prose names this code "7", but that collides with §4.E's
// authoritative Token Model table, where 7 is the type-keyword family and
// 9 is identifier; this package follows §4.E. Every row this package
// builds uses 9 for identifier continuation.
const identifierTT = 9

// identifierRow builds the synthetic identifier-continuation row described
// in §4.C step 3: for every byte with no explicit token-type in row 0, the
// identifier row transitions to itself (IdentRow) unless row 0 already
// has an explicit transition for that byte, and is marked as an
// identifier-continuation accept. Whitespace and scope-bracket bytes are
// excluded even though row 0 has no explicit tt for them yet, since they
// must always terminate a token.
//
// It returns the row's transition and tt arrays so the caller can install
// them at IdentRow and reuse them to backfill newly-allocated keyword
// rows (§4.C step 6) before row 0 itself is finalized.
func identifierRow(b *builder) (transition [256]uint16, tt [256]uint8) {
	for c := 0; c < 256; c++ {
		if b.tt[0][c] != 0 {
			continue
		}
		if b.transition[0][c] == 0 {
			transition[c] = IdentRow
		}
		tt[c] = identifierTT
	}
	for _, w := range whitespaceBytes {
		transition[w] = 0
		tt[w] = 0
	}
	return transition, tt
}
