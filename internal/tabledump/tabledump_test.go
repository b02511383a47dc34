package tabledump

import (
	"strconv"
	"testing"

	"github.com/cwbudde/go-polylex/internal/table"
)

func smallRows() table.Raw[uint8] {
	rows := make(table.Raw[uint8], 3)
	rows[0]['a'] = 1
	rows[0]['b'] = 2
	rows[1]['a'] = 3
	rows[2]['z'] = 9
	return rows
}

func TestMarshalElementAtMatchesTypedElement(t *testing.T) {
	rows := smallRows()
	c := table.Compress(rows)

	dumped, err := Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	for row := 0; row < len(rows); row++ {
		for col := 0; col < 256; col++ {
			want := c.Element(uint16(row), uint8(col))
			got, err := ElementAt(dumped, row, col)
			if err != nil {
				t.Fatalf("ElementAt(%d,%d): %v", row, col, err)
			}
			if uint64(want) != got {
				t.Fatalf("row %d col %d: ElementAt=%d, want %d", row, col, got, want)
			}
		}
	}
}

func TestGetReadsOffsets(t *testing.T) {
	rows := smallRows()
	c := table.Compress(rows)
	dumped, err := Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	n := Get(dumped, "offsets.#").Int()
	if int(n) != len(rows) {
		t.Fatalf("offsets.# = %d, want %d", n, len(rows))
	}
}

func TestUnmarshalRoundTrip(t *testing.T) {
	rows := smallRows()
	c := table.Compress(rows)
	dumped, err := Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	d, err := Unmarshal(dumped)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(d.Offsets) != len(c.Offsets) || len(d.Stream) != len(c.Stream) {
		t.Fatalf("Unmarshal shape mismatch: %+v", d)
	}
}

func TestMutateChangesElement(t *testing.T) {
	rows := smallRows()
	c := table.Compress(rows)
	dumped, err := Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	offset := int(c.Offsets[0])
	idx := offset + int('a')
	before, err := ElementAt(dumped, 0, int('a'))
	if err != nil {
		t.Fatalf("ElementAt: %v", err)
	}

	mutated, err := Mutate(dumped, "stream."+strconv.Itoa(idx), before+100)
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	after, err := ElementAt(mutated, 0, int('a'))
	if err != nil {
		t.Fatalf("ElementAt after mutate: %v", err)
	}
	if after == before {
		t.Fatalf("Mutate did not change stream[%d]: still %d", idx, after)
	}
}
