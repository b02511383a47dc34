package tablebuild

import (
	"fmt"

	"github.com/cwbudde/go-polylex/internal/langdef"
)

// walkKeywords extends the transition table byte-by-byte from row 0 for
// every keyword in every lexical group (control, type, primitive,
// boolean), per §4.C step 5. For each non-terminal byte of a keyword: if
// no transition exists yet, a new row is allocated and initialized from
// the identifier row's tt array (so an unmatched continuation degrades to
// identifier recognition once merged with the identifier row's
// transitions in step 6); otherwise the walk follows the existing shared
// prefix. The terminal byte of each keyword sets its group's tt family and
// a plain ordinal td (§4.E), except for the boolean group, which is
// folded into the literal family (tt=1, td 0 true / 1 false) rather than
// being a keyword in its own right.
//
// It returns the indices of every newly-allocated row, for the caller to
// backfill with the identifier row's transitions once that row is final.
func walkKeywords(b *builder, ks langdef.KeywordSet, identTT [256]uint8) ([]int, error) {
	var newlyAllocated []int
	var firstErr error

	walk := func(words []string, tt uint8, literalTD bool) {
		for idx, word := range words {
			if word == "" {
				if firstErr == nil {
					firstErr = fmt.Errorf("tablebuild: empty keyword at index %d", idx)
				}
				continue
			}
			bytes := []byte(word)
			row := 0
			for i := 0; i < len(bytes)-1; i++ {
				c := bytes[i]
				if b.transition[row][c] == 0 {
					newRow := b.newRow()
					b.transition[row][c] = uint16(newRow)
					b.tt[newRow] = identTT
					newlyAllocated = append(newlyAllocated, newRow)
					row = newRow
				} else {
					row = int(b.transition[row][c])
				}
			}
			last := bytes[len(bytes)-1]
			if literalTD {
				b.tt[row][last] = ttLiteral
				b.td[row][last] = uint8(idx) // 0 true, 1 false
			} else {
				b.tt[row][last] = tt
				b.td[row][last] = uint8(idx)
			}
		}
	}

	walk(ks.Control[:], ttControlKwd, false)
	walk(ks.Type[:], ttTypeKwd, false)
	walk(ks.Primitive[:], ttPrimitiveKwd, false)
	walk(ks.Bool[:], 0, true)

	return newlyAllocated, firstErr
}
