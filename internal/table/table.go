// Package table implements the Compressed Table: a sparse-DFA storage
// format that places each 256-wide row of a dense table into a single
// shared stream at the earliest non-colliding offset, then recovers
// per-cell values in O(1) via a per-cell row-origin marker.
package table

// Cell is the element type a table can hold: uint16 for the transition
// table, uint8 for the token-type and token-data tables (§4.C).
type Cell interface {
	~uint8 | ~uint16
}

// Raw is a dense DFA table: one 256-column row per DFA state.
type Raw[D Cell] [][256]D

// Compressed is a sparse-packed table: a single shared stream of cell
// values, a parallel per-cell row-origin marker (which row's byte a
// stream slot actually holds; 0 for a transparent zero-filled slot), and
// one offset per original row into the stream.
type Compressed[D Cell] struct {
	Stream  []D
	Origin  []uint16
	Offsets []uint32
}

// Element returns the original raw-table value at (row, col); it is 0 if
// row never wrote to that stream slot (either because its own cell there
// was zero, or because the slot belongs to a different row that happened
// to share the offset).
func (c *Compressed[D]) Element(row uint16, col uint8) D {
	idx := c.Offsets[row] + uint32(col)
	if c.Origin[idx] == row {
		return c.Stream[idx]
	}
	var zero D
	return zero
}

// Compress packs rows using the comb method: for each row in table order,
// find the earliest stream offset at which none of the row's non-zero
// cells collides with an already-placed non-zero cell, then merge the row
// into the stream at that offset. All-zero cells are transparent and never
// collide.
func Compress[D Cell](rows Raw[D]) *Compressed[D] {
	return compress(rows, rowOrder(len(rows)))
}

// CompressOptimal is Compress's build-time-only counterpart: it first
// sorts rows by descending zero-count (sparsest rows placed first), which
// tends to interleave rows more tightly than table order does, at the
// cost of no longer being a single left-to-right streaming pass. Not used
// by internal/lexer at run time — only by whatever builds a table ahead of
// time and wants to minimize its serialized size.
func CompressOptimal[D Cell](rows Raw[D]) *Compressed[D] {
	order := rowOrder(len(rows))
	zeroCount := func(i int) int {
		n := 0
		for _, v := range rows[i] {
			if v == 0 {
				n++
			}
		}
		return n
	}
	// stable sort by descending zero-count, ties broken by original order
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && zeroCount(order[j-1]) < zeroCount(order[j]); j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}
	return compress(rows, order)
}

func rowOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// compress runs the comb-placement algorithm, visiting rows in the given
// order but always recording each row's offset at its own (original) row
// index, so Element's self.Offsets[row] lookup is order-independent.
func compress[D Cell](rows Raw[D], order []int) *Compressed[D] {
	stream := make([]D, 0, len(rows)*8)
	origin := make([]uint16, 0, len(rows)*8)
	offsets := make([]uint32, len(rows))

	for _, rowIndex := range order {
		row := rows[rowIndex]
		offset := 0
	search:
		for offset < len(stream) {
			limit := 256
			if rem := len(stream) - offset; rem < limit {
				limit = rem
			}
			for p := 0; p < limit; p++ {
				if row[p] == 0 {
					continue
				}
				if stream[offset+p] != 0 {
					offset++
					continue search
				}
			}
			break
		}
		offsets[rowIndex] = uint32(offset)

		limit := 256
		if rem := len(stream) - offset; rem < limit {
			limit = rem
		}
		for p := 0; p < limit; p++ {
			if row[p] == 0 {
				continue
			}
			stream[offset+p] = row[p]
			origin[offset+p] = uint16(rowIndex)
		}
		for p := limit; p < 256; p++ {
			stream = append(stream, row[p])
			if row[p] == 0 {
				origin = append(origin, 0)
			} else {
				origin = append(origin, uint16(rowIndex))
			}
		}
	}

	return &Compressed[D]{Stream: stream, Origin: origin, Offsets: offsets}
}
