package langfile

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/go-polylex/internal/langdef"
)

// yamlDigits is the YAML-friendly mirror of langdef.Digits, whose fields
// are unexported to keep its cached UTF-8 byte length private.
type yamlDigits struct {
	Long   bool     `yaml:"long"`
	Bin    string   `yaml:"bin"`
	Hex    string   `yaml:"hex"`
	Oct    string   `yaml:"oct"`
	Digits []string `yaml:"digits"`
}

type yamlKeywords struct {
	Digits          yamlDigits `yaml:"digits"`
	Control         []string   `yaml:"control"`
	Type            []string   `yaml:"type"`
	Primitive       []string   `yaml:"primitive"`
	Bool            []string   `yaml:"bool"`
	Manifest        []string   `yaml:"manifest"`
	CompileMessages []string   `yaml:"compile_messages"`
}

type yamlMessages struct {
	E00 []string `yaml:"e00"`
	E01 []string `yaml:"e01"`
	E02 []string `yaml:"e02"`
	E03 []string `yaml:"e03"`
	E04 []string `yaml:"e04"`
}

// yamlModel is a second, hand-editing-friendly shape for a Language
// Model, carrying the same fields Parse reads line-by-line from the
// canonical text format.
type yamlModel struct {
	Name     string       `yaml:"name"`
	Code     string       `yaml:"code"`
	RTL      bool         `yaml:"rtl"`
	Keywords yamlKeywords `yaml:"keywords"`
	Messages yamlMessages `yaml:"messages"`
}

// ParseYAML decodes a Language Model from YAML text.
func ParseYAML(data []byte) (langdef.Model, error) {
	var y yamlModel
	if err := yaml.Unmarshal(data, &y); err != nil {
		return langdef.Model{}, fmt.Errorf("langfile: yaml: %w", err)
	}
	return y.toModel()
}

// LoadYAML reads and parses a Language Model from a YAML file on disk.
func LoadYAML(path string) (langdef.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return langdef.Model{}, fmt.Errorf("langfile: %w", err)
	}
	m, err := ParseYAML(data)
	if err != nil {
		return langdef.Model{}, fmt.Errorf("langfile: %s: %w", path, err)
	}
	return m, nil
}

func (y yamlModel) toModel() (langdef.Model, error) {
	digits, err := y.Keywords.Digits.toDigits()
	if err != nil {
		return langdef.Model{}, err
	}

	ks := langdef.KeywordSet{Digits: digits}
	if err := copyFixed(ks.Control[:], y.Keywords.Control, "control"); err != nil {
		return langdef.Model{}, err
	}
	if err := copyFixed(ks.Type[:], y.Keywords.Type, "type"); err != nil {
		return langdef.Model{}, err
	}
	if err := copyFixed(ks.Primitive[:], y.Keywords.Primitive, "primitive"); err != nil {
		return langdef.Model{}, err
	}
	if err := copyFixed(ks.Bool[:], y.Keywords.Bool, "bool"); err != nil {
		return langdef.Model{}, err
	}
	if err := copyFixed(ks.Manifest[:], y.Keywords.Manifest, "manifest"); err != nil {
		return langdef.Model{}, err
	}
	if err := copyFixed(ks.CompileMessages[:], y.Keywords.CompileMessages, "compile_messages"); err != nil {
		return langdef.Model{}, err
	}

	messages, err := y.Messages.toMessageSet()
	if err != nil {
		return langdef.Model{}, err
	}

	return langdef.Model{
		Name:     y.Name,
		Code:     y.Code,
		RTL:      y.RTL,
		Keywords: ks,
		Messages: messages,
	}, nil
}

func (d yamlDigits) toDigits() (langdef.Digits, error) {
	bin, err := oneRune(d.Bin)
	if err != nil {
		return langdef.Digits{}, fmt.Errorf("langfile: yaml digits.bin: %w", err)
	}
	hex, err := oneRune(d.Hex)
	if err != nil {
		return langdef.Digits{}, fmt.Errorf("langfile: yaml digits.hex: %w", err)
	}
	oct, err := oneRune(d.Oct)
	if err != nil {
		return langdef.Digits{}, fmt.Errorf("langfile: yaml digits.oct: %w", err)
	}

	runes := make([]rune, len(d.Digits))
	for i, s := range d.Digits {
		r, err := oneRune(s)
		if err != nil {
			return langdef.Digits{}, fmt.Errorf("langfile: yaml digits.digits[%d]: %w", i, err)
		}
		runes[i] = r
	}

	if d.Long {
		if len(runes) != 22 {
			return langdef.Digits{}, fmt.Errorf("langfile: yaml long digit spec needs 22 digits, got %d", len(runes))
		}
		var arr [22]rune
		copy(arr[:], runes)
		return langdef.NewDigitsLong(bin, hex, oct, arr), nil
	}
	if len(runes) != 16 {
		return langdef.Digits{}, fmt.Errorf("langfile: yaml short digit spec needs 16 digits, got %d", len(runes))
	}
	var arr [16]rune
	copy(arr[:], runes)
	return langdef.NewDigitsShort(bin, hex, oct, arr), nil
}

func (y yamlMessages) toMessageSet() (langdef.MessageSet, error) {
	var m langdef.MessageSet
	if err := copyFixed(m.E00[:], y.E00, "e00"); err != nil {
		return m, err
	}
	if err := copyFixed(m.E01[:], y.E01, "e01"); err != nil {
		return m, err
	}
	if err := copyFixed(m.E02[:], y.E02, "e02"); err != nil {
		return m, err
	}
	if err := copyFixed(m.E03[:], y.E03, "e03"); err != nil {
		return m, err
	}
	if err := copyFixed(m.E04[:], y.E04, "e04"); err != nil {
		return m, err
	}
	return m, nil
}

func copyFixed(dst, src []string, label string) error {
	if len(src) != len(dst) {
		return fmt.Errorf("langfile: yaml keywords.%s: want %d entries, got %d", label, len(dst), len(src))
	}
	copy(dst, src)
	return nil
}
