// Package tablebuild compiles a validated langdef.Model into the three
// parallel raw DFA tables (transition, tt, td) that internal/table
// compresses and internal/lexer drives. Row 0 is always the DFA's start
// state; row 1 is always the synthetic identifier-continuation row.
package tablebuild

import (
	"fmt"

	"github.com/cwbudde/go-polylex/internal/langdef"
	"github.com/cwbudde/go-polylex/internal/table"
)

// IdentRow is the fixed row index of the identifier-continuation state
// (§4.C step 7).
const IdentRow = 1

// whitespaceBytes are cleared from row 0's tt/transition after every other
// step, so they terminate rather than extend a token (§4.C step 8).
var whitespaceBytes = [...]byte{9, 10, 32, 123, 125}

// Tables is the three-table output of Build: transition (next-state),
// tt (token-type), and td (token-data), as described in §4.C.
type Tables struct {
	Transition table.Raw[uint16]
	TT         table.Raw[uint8]
	TD         table.Raw[uint8]
}

// builder accumulates rows as it compiles a Language Model. Row 0 always
// exists from construction; all subsequent rows are appended in the order
// described in §4.C.
type builder struct {
	transition table.Raw[uint16]
	tt         table.Raw[uint8]
	td         table.Raw[uint8]
}

func newBuilder() *builder {
	b := &builder{}
	b.newRow() // row 0: the DFA's start state
	b.newRow() // row 1: reserved for IdentRow, installed later by Build
	return b
}

// newRow appends an all-zero row and returns its index.
func (b *builder) newRow() int {
	b.transition = append(b.transition, [256]uint16{})
	b.tt = append(b.tt, [256]uint8{})
	b.td = append(b.td, [256]uint8{})
	return len(b.transition) - 1
}

func (b *builder) numRows() int { return len(b.transition) }

func (b *builder) tables() Tables {
	return Tables{Transition: b.transition, TT: b.tt, TD: b.td}
}

// Build compiles a validated Language Model into its three raw DFA
// tables, following §4.C's algorithm in order:
//  1. load the language-independent seed table,
//  2. mirror brackets for a right-to-left language,
//  3. synthesize the identifier-continuation row,
//  4. encode digit literal recognition,
//  5. walk every keyword group, allocating rows as needed,
//  6. merge the identifier row into newly-allocated keyword rows,
//  7. install the identifier row at row 1 and finish row 0's fallback,
//  8. re-clear whitespace triggers in row 0.
func Build(m langdef.Model) (Tables, error) {
	b := newBuilder()
	seed(b)

	if m.RTL {
		mirrorBrackets(b)
	}

	identRow, identTT := identifierRow(b)

	if err := encodeDigits(b, m.Keywords.Digits); err != nil {
		return Tables{}, fmt.Errorf("tablebuild: digits: %w", err)
	}

	newlyAllocated, err := walkKeywords(b, m.Keywords, identTT)
	if err != nil {
		return Tables{}, fmt.Errorf("tablebuild: keywords: %w", err)
	}

	for _, row := range newlyAllocated {
		for c := 0; c < 256; c++ {
			if b.transition[row][c] == 0 {
				b.transition[row][c] = identRow[c]
			}
		}
	}

	// Install the identifier row at its fixed index, then update row 0 so
	// every byte with no explicit tt and no explicit transition falls
	// through to it.
	b.transition[IdentRow] = identRow
	b.tt[IdentRow] = identTT

	for c := 0; c < 256; c++ {
		if b.tt[0][c] == 0 {
			if b.transition[0][c] == 0 {
				b.transition[0][c] = IdentRow
			}
			b.tt[0][c] = identifierTT
		}
	}

	clearWhitespace(b, 0)

	return b.tables(), nil
}

func clearWhitespace(b *builder, row int) {
	for _, w := range whitespaceBytes {
		b.transition[row][w] = 0
		b.tt[row][w] = 0
		b.td[row][w] = 0
	}
}
