// Package tabledump gives a table.Compressed a JSON-shaped view: a
// Marshal/Unmarshal pair, gjson-backed spot-checking (read one cell of a
// large table without unmarshaling the whole thing), and an sjson-backed
// Mutate for tooling that wants to corrupt a single field and assert the
// result no longer decodes to the same table.
package tabledump

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/go-polylex/internal/table"
)

// Dump is the JSON-shaped mirror of a table.Compressed[D]: Stream is
// widened to uint64 so one Dump shape serves both the uint8 (tt/td) and
// uint16 (transition) tables without a second generic JSON type.
type Dump struct {
	Stream  []uint64 `json:"stream"`
	Origin  []uint16 `json:"origin"`
	Offsets []uint32 `json:"offsets"`
}

// Marshal renders a Compressed table as indented JSON.
func Marshal[D table.Cell](c *table.Compressed[D]) ([]byte, error) {
	d := Dump{
		Stream:  make([]uint64, len(c.Stream)),
		Origin:  c.Origin,
		Offsets: c.Offsets,
	}
	for i, v := range c.Stream {
		d.Stream[i] = uint64(v)
	}
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal parses a JSON dump into its widened Dump shape.
func Unmarshal(dumped []byte) (Dump, error) {
	var d Dump
	err := json.Unmarshal(dumped, &d)
	return d, err
}

// Get reads a single field out of a JSON dump by gjson path (e.g.
// "offsets.3" or "stream.#") without unmarshaling the whole document.
func Get(dumped []byte, path string) gjson.Result {
	return gjson.GetBytes(dumped, path)
}

// ElementAt recomputes table.Compressed.Element's (row, col) lookup
// directly against a JSON dump, as a from-scratch cross-check against the
// typed implementation rather than trusting Unmarshal-then-compare.
func ElementAt(dumped []byte, row, col int) (uint64, error) {
	offsetRes := gjson.GetBytes(dumped, fmt.Sprintf("offsets.%d", row))
	if !offsetRes.Exists() {
		return 0, fmt.Errorf("tabledump: row %d out of range", row)
	}
	idx := offsetRes.Int() + int64(col)

	originRes := gjson.GetBytes(dumped, fmt.Sprintf("origin.%d", idx))
	if !originRes.Exists() {
		return 0, fmt.Errorf("tabledump: stream index %d out of range", idx)
	}
	if originRes.Int() != int64(row) {
		return 0, nil
	}
	return gjson.GetBytes(dumped, fmt.Sprintf("stream.%d", idx)).Uint(), nil
}

// Mutate returns dumped with a single gjson-style path rewritten to
// value, via sjson — the corruption step a round-trip test uses to prove
// a tampered dump reads back differently.
func Mutate(dumped []byte, path string, value any) ([]byte, error) {
	return sjson.SetBytes(dumped, path, value)
}
