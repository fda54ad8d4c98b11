package highlight

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/gnoswap-labs/formulafmt/internal/lexer"
)

// Theme assigns colors to token kinds. Colors are "#RRGGBB" strings.
type Theme struct {
	Function string   `yaml:"function"`
	FieldRef string   `yaml:"field_ref"`
	Operator string   `yaml:"operator"`
	Comma    string   `yaml:"comma"`
	Parens   []string `yaml:"parens"` // cycled by nesting depth
}

// DefaultTheme is the palette used for documentation pages.
var DefaultTheme = Theme{
	Function: "#0066CC", // blue
	FieldRef: "#22863A", // green
	Operator: "#D73A49", // red
	Comma:    "#DB2777", // pink
	Parens:   []string{"#6F42C1", "#0EA5E9"},
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// WithDefaults fills empty entries from DefaultTheme.
func (t Theme) WithDefaults() Theme {
	if t.Function == "" {
		t.Function = DefaultTheme.Function
	}
	if t.FieldRef == "" {
		t.FieldRef = DefaultTheme.FieldRef
	}
	if t.Operator == "" {
		t.Operator = DefaultTheme.Operator
	}
	if t.Comma == "" {
		t.Comma = DefaultTheme.Comma
	}
	if len(t.Parens) == 0 {
		t.Parens = append([]string(nil), DefaultTheme.Parens...)
	}
	return t
}

// Validate checks that every color is a #RRGGBB literal. Colors end up
// inside style attributes, so nothing else is allowed through.
func (t Theme) Validate() error {
	named := map[string]string{
		"function":  t.Function,
		"field_ref": t.FieldRef,
		"operator":  t.Operator,
		"comma":     t.Comma,
	}
	for name, c := range named {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("theme %s: invalid color %q", name, c)
		}
	}
	if len(t.Parens) == 0 {
		return fmt.Errorf("theme parens: palette is empty")
	}
	for i, c := range t.Parens {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("theme parens[%d]: invalid color %q", i, c)
		}
	}
	return nil
}

// colorFor returns the color of a token and whether it is colored at all.
func (t Theme) colorFor(tok lexer.Token) (string, bool, error) {
	switch tok.Kind {
	case lexer.Whitespace, lexer.Number, lexer.StringLiteral, lexer.Unknown:
		return "", false, nil
	case lexer.Function:
		return t.Function, true, nil
	case lexer.FieldRef:
		return t.FieldRef, true, nil
	case lexer.Operator:
		return t.Operator, true, nil
	case lexer.Comma:
		return t.Comma, true, nil
	case lexer.Parenthesis:
		return t.Parens[parenIndex(tok.Depth, len(t.Parens))], true, nil
	default:
		return "", false, fmt.Errorf("%w: %s", ErrUnknownKind, tok.Kind)
	}
}

func parenIndex(depth, n int) int {
	i := (depth - 1) % n
	if i < 0 {
		i += n
	}
	return i
}

func parseHex(c string) (r, g, b int, err error) {
	if !hexColor.MatchString(c) {
		return 0, 0, 0, fmt.Errorf("invalid color %q", c)
	}
	v, err := strconv.ParseUint(c[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, err
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), nil
}
