// Package condense renders formulas in their canonical single-line form.
package condense

import (
	"strings"

	"github.com/gnoswap-labs/formulafmt/internal/lexer"
)

// Condense removes every whitespace token from formula. Whitespace inside
// string literals and field references is kept because it belongs to those
// tokens. Empty or all-whitespace input is returned unchanged.
func Condense(formula string) string {
	if strings.TrimSpace(formula) == "" {
		return formula
	}

	var sb strings.Builder
	sb.Grow(len(formula))
	for _, t := range lexer.Tokenize(formula) {
		if t.Kind != lexer.Whitespace {
			sb.WriteString(t.Text)
		}
	}
	return sb.String()
}

// Condenser condenses through an optional memo cache.
type Condenser struct {
	cache *Cache
}

// New returns a Condenser backed by cache. A nil cache disables memoization.
func New(cache *Cache) *Condenser {
	return &Condenser{cache: cache}
}

func (c *Condenser) Condense(formula string) string {
	if c == nil || c.cache == nil {
		return Condense(formula)
	}
	if condensed, ok := c.cache.Get(formula); ok {
		return condensed
	}
	condensed := Condense(formula)
	c.cache.Set(formula, condensed)
	return condensed
}
