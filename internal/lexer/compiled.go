package lexer

import (
	"fmt"

	"github.com/cwbudde/go-polylex/internal/langdef"
	"github.com/cwbudde/go-polylex/internal/table"
	"github.com/cwbudde/go-polylex/internal/tablebuild"
)

// Compiled pairs a validated Language Model with its compressed DFA
// tables — the immutable, shared-by-reference bundle a Lexer drives (§3's
// "current (Language Model, compiled tables) pair").
type Compiled struct {
	Model      langdef.Model
	Transition *table.Compressed[uint16]
	TT         *table.Compressed[uint8]
	TD         *table.Compressed[uint8]
}

// Compile validates m and compiles it into a Compiled bundle: table
// construction (internal/tablebuild) followed by comb compression
// (internal/table). The result is immutable and safe to share across
// concurrently running Lexers (§5).
func Compile(m langdef.Model) (*Compiled, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("lexer: %w", err)
	}
	raw, err := tablebuild.Build(m)
	if err != nil {
		return nil, fmt.Errorf("lexer: %w", err)
	}
	return &Compiled{
		Model:      m,
		Transition: table.Compress[uint16](raw.Transition),
		TT:         table.Compress[uint8](raw.TT),
		TD:         table.Compress[uint8](raw.TD),
	}, nil
}

// Registry resolves a two-letter language code to its Compiled bundle, for
// the `!!<code>` in-language directive (internal/langreg implements this).
type Registry interface {
	Lookup(code string) (*Compiled, bool)
}
