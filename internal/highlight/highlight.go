// Package highlight renders formula tokens with syntax coloring, either as
// an HTML fragment for documentation pages or as ANSI text for terminals.
package highlight

import (
	"errors"
	"html"
	"strings"

	"github.com/fatih/color"

	"github.com/gnoswap-labs/formulafmt/internal/lexer"
)

var ErrUnknownKind = errors.New("unknown token kind")

// Escape neutralizes &, <, >, " and ' for embedding in HTML.
func Escape(s string) string {
	return html.EscapeString(s)
}

// HTML renders tokens as inline-styled spans without a surrounding
// element. Every token's text is escaped; uncolored kinds are emitted as
// plain escaped text.
func HTML(tokens []lexer.Token, theme Theme) (string, error) {
	if err := theme.Validate(); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, tok := range tokens {
		c, colored, err := theme.colorFor(tok)
		if err != nil {
			return "", err
		}

		escaped := Escape(tok.Text)
		if !colored {
			sb.WriteString(escaped)
			continue
		}
		sb.WriteString(`<span style="color:`)
		sb.WriteString(c)
		sb.WriteString(`">`)
		sb.WriteString(escaped)
		sb.WriteString(`</span>`)
	}
	return sb.String(), nil
}

// Terminal renders tokens with 24-bit ANSI colors.
type Terminal struct {
	theme  Theme
	styles map[string]*color.Color
}

// NewTerminal prepares one color.Color per theme entry. When enabled is
// false output is plain text regardless of the terminal.
func NewTerminal(theme Theme, enabled bool) (*Terminal, error) {
	if err := theme.Validate(); err != nil {
		return nil, err
	}

	t := &Terminal{theme: theme, styles: make(map[string]*color.Color)}
	all := append([]string{theme.Function, theme.FieldRef, theme.Operator, theme.Comma}, theme.Parens...)
	for _, hex := range all {
		if _, ok := t.styles[hex]; ok {
			continue
		}
		r, g, b, err := parseHex(hex)
		if err != nil {
			return nil, err
		}
		style := color.RGB(r, g, b)
		if enabled {
			style.EnableColor()
		} else {
			style.DisableColor()
		}
		t.styles[hex] = style
	}
	return t, nil
}

func (t *Terminal) Render(tokens []lexer.Token) (string, error) {
	var sb strings.Builder
	for _, tok := range tokens {
		c, colored, err := t.theme.colorFor(tok)
		if err != nil {
			return "", err
		}
		if !colored {
			sb.WriteString(tok.Text)
			continue
		}
		sb.WriteString(t.styles[c].Sprint(tok.Text))
	}
	return sb.String(), nil
}
