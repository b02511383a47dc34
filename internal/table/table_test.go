package table

import (
	"bytes"
	"math/rand"
	"testing"
)

func randomRows(n int, seed int64) Raw[uint8] {
	rng := rand.New(rand.NewSource(seed))
	rows := make(Raw[uint8], n)
	for i := range rows {
		for c := 0; c < 256; c++ {
			if rng.Intn(10) == 0 {
				rows[i][c] = uint8(rng.Intn(256))
			}
		}
	}
	return rows
}

func TestCompressElementRoundTrip(t *testing.T) {
	rows := randomRows(64, 1)
	c := Compress(rows)
	for r := 0; r < len(rows); r++ {
		for col := 0; col < 256; col++ {
			want := rows[r][col]
			got := c.Element(uint16(r), uint8(col))
			if got != want {
				t.Fatalf("row %d col %d: Element()=%d, want %d", r, col, got, want)
			}
		}
	}
}

func TestCompressOptimalElementRoundTrip(t *testing.T) {
	rows := randomRows(64, 2)
	c := CompressOptimal(rows)
	for r := 0; r < len(rows); r++ {
		for col := 0; col < 256; col++ {
			want := rows[r][col]
			got := c.Element(uint16(r), uint8(col))
			if got != want {
				t.Fatalf("row %d col %d: Element()=%d, want %d", r, col, got, want)
			}
		}
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	rows := randomRows(16, 3)
	c := Compress(rows)

	var buf bytes.Buffer
	if err := Serialize(&buf, c); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := Deserialize[uint8](&buf)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !bytes.Equal(toBytes(c.Stream), toBytes(got.Stream)) {
		t.Fatalf("stream mismatch after round-trip")
	}
	if len(c.Origin) != len(got.Origin) || len(c.Offsets) != len(got.Offsets) {
		t.Fatalf("length mismatch after round-trip")
	}
	for i := range c.Origin {
		if c.Origin[i] != got.Origin[i] {
			t.Fatalf("origin[%d] mismatch: %d != %d", i, c.Origin[i], got.Origin[i])
		}
	}
	for i := range c.Offsets {
		if c.Offsets[i] != got.Offsets[i] {
			t.Fatalf("offsets[%d] mismatch: %d != %d", i, c.Offsets[i], got.Offsets[i])
		}
	}
}

func toBytes(s []uint8) []byte { return s }

func TestTransitionTableUint16(t *testing.T) {
	rows := make(Raw[uint16], 4)
	rows[0][5] = 1
	rows[1][5] = 2
	rows[2][9] = 300
	c := Compress(rows)
	if c.Element(2, 9) != 300 {
		t.Fatalf("expected 300, got %d", c.Element(2, 9))
	}
	if c.Element(3, 9) != 0 {
		t.Fatalf("expected zero for untouched row/col")
	}
}
