// Package langreg is a registry of compiled Language Models, the
// "available set" §6's in-language `!!<code>` directive resolves against
// and §7's E1 diagnostic reports on when a directive names something
// outside it.
package langreg

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/maruel/natural"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cwbudde/go-polylex/internal/langdef"
	"github.com/cwbudde/go-polylex/internal/lexer"
	"github.com/cwbudde/go-polylex/pkg/token"
)

type entry struct {
	name     string
	code     string
	compiled *lexer.Compiled
}

// Registry is a concurrency-safe set of compiled Language Models, keyed
// by canonical BCP 47 code. It implements lexer.Registry directly, so a
// *Registry can be passed straight to lexer.New as its registry argument,
// the directive-switch lookup.
type Registry struct {
	mu      sync.RWMutex
	byCode  map[string]*entry
	byModel []*entry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{byCode: make(map[string]*entry)}
}

// Register validates and compiles m, then adds it under its canonical
// code. Registering the same code twice is an error — a registry models
// one Language Model per code, not a fallback chain.
func (r *Registry) Register(m langdef.Model) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("langreg: %w", err)
	}
	code, err := m.CanonicalCode()
	if err != nil {
		return fmt.Errorf("langreg: %w", err)
	}
	compiled, err := lexer.Compile(m)
	if err != nil {
		return fmt.Errorf("langreg: compiling %q: %w", code, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byCode[code]; exists {
		return fmt.Errorf("langreg: language code %q is already registered", code)
	}
	e := &entry{name: m.Name, code: code, compiled: compiled}
	r.byCode[code] = e
	r.byModel = append(r.byModel, e)
	return nil
}

// Lookup implements lexer.Registry: resolve a `!!<code>` directive's
// operand to a compiled Language Model. The operand is first canonicalized
// through golang.org/x/text/language so that `!!DE`, `!!de`, and `!!de-DE`
// all resolve the same registered entry; a code that fails to parse at all
// falls back to a raw-string lookup, so non-BCP-47 test codes still work.
func (r *Registry) Lookup(code string) (*lexer.Compiled, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if tag, err := language.Parse(code); err == nil {
		if e, ok := r.byCode[tag.String()]; ok {
			return e.compiled, true
		}
		if base, conf := tag.Base(); conf != language.No {
			if e, ok := r.byCode[base.String()]; ok {
				return e.compiled, true
			}
		}
	}
	e, ok := r.byCode[code]
	if !ok {
		return nil, false
	}
	return e.compiled, true
}

// Codes returns every registered language's canonical code, collated
// (golang.org/x/text/collate, English ordering) — the order an E1
// diagnostic's suggestion list presents codes in.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	codes := make([]string, 0, len(r.byModel))
	for _, e := range r.byModel {
		codes = append(codes, e.code)
	}
	r.mu.RUnlock()

	col := collate.New(language.English)
	col.SortStrings(codes)
	return codes
}

// Names returns every registered language's full name, naturally sorted
// (github.com/maruel/natural) so a name carrying an embedded number sorts
// the way a human reads it rather than purely lexicographically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.byModel))
	for _, e := range r.byModel {
		names = append(names, e.name)
	}
	r.mu.RUnlock()

	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
	return names
}

// Suggest renders every registered language as "Name (code)", codes
// collated and paired with their names, for an E1 diagnostic's "did you
// mean one of" list.
func (r *Registry) Suggest() string {
	r.mu.RLock()
	byCode := make(map[string]string, len(r.byModel))
	for _, e := range r.byModel {
		byCode[e.code] = e.name
	}
	r.mu.RUnlock()

	codes := r.Codes()
	pairs := make([]string, 0, len(codes))
	for _, c := range codes {
		pairs = append(pairs, fmt.Sprintf("%s (%s)", byCode[c], c))
	}
	return strings.Join(pairs, ", ")
}

// UnknownLanguageError builds the §7 E1 diagnostic for an unresolved
// `!!<code>` directive, appending a "did you mean" list drawn from this
// registry's current contents.
func (r *Registry) UnknownLanguageError(pos token.Position, code string) *lexer.Error {
	msg := fmt.Sprintf("unknown language code %q", code)
	if s := r.Suggest(); s != "" {
		msg += "; available: " + s
	}
	return &lexer.Error{Code: lexer.ErrUnknownLanguage, Pos: pos, Message: msg}
}
