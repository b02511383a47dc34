package table

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Serialize writes c in the canonical bit-compatible format: three
// length-prefixed arrays (stream, origin, offsets), each a big-endian u32
// length followed by that many fixed-width elements. Stream elements are
// whatever width D is (16-bit for a transition table, 8-bit for tt/td);
// origin elements are always 16-bit; offsets are always 32-bit.
func Serialize[D Cell](w io.Writer, c *Compressed[D]) error {
	if err := writeArray(w, c.Stream); err != nil {
		return fmt.Errorf("table: serialize stream: %w", err)
	}
	if err := writeArray(w, c.Origin); err != nil {
		return fmt.Errorf("table: serialize origin: %w", err)
	}
	if err := writeArray(w, c.Offsets); err != nil {
		return fmt.Errorf("table: serialize offsets: %w", err)
	}
	return nil
}

func writeArray[T any](w io.Writer, vals []T) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(vals))); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, vals)
}

// Deserialize reads the inverse of Serialize, reconstructing a Compressed
// table of element type D.
func Deserialize[D Cell](r io.Reader) (*Compressed[D], error) {
	stream, err := readArray[D](r)
	if err != nil {
		return nil, fmt.Errorf("table: deserialize stream: %w", err)
	}
	origin, err := readArray[uint16](r)
	if err != nil {
		return nil, fmt.Errorf("table: deserialize origin: %w", err)
	}
	offsets, err := readArray[uint32](r)
	if err != nil {
		return nil, fmt.Errorf("table: deserialize offsets: %w", err)
	}
	return &Compressed[D]{Stream: stream, Origin: origin, Offsets: offsets}, nil
}

func readArray[T any](r io.Reader) ([]T, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	out := make([]T, n)
	if n == 0 {
		return out, nil
	}
	if err := binary.Read(r, binary.BigEndian, out); err != nil {
		return nil, err
	}
	return out, nil
}
