// Package formula scans and re-renders spreadsheet-style formulas: field
// references, string and number literals, operators and nested function
// calls. It never evaluates a formula.
//
// Every rendering function is total. Condense and Format fall back to the
// input and Highlight falls back to the escaped input whenever rendering
// fails internally, so callers always get a usable string back.
//
// The package-level functions are stateless. Use a Service to memoize
// condensed output, pick a highlight theme, or log fallbacks:
//
//	svc, err := formula.New(formula.WithCacheSize(1024), formula.WithLogger(logger))
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(svc.Format(`IF({Status} = "Done", 1, 0)`))
package formula

import (
	"strings"

	"github.com/gnoswap-labs/formulafmt/internal/condense"
	"github.com/gnoswap-labs/formulafmt/internal/highlight"
	"github.com/gnoswap-labs/formulafmt/internal/lexer"
	"github.com/gnoswap-labs/formulafmt/internal/pretty"
)

type (
	Token = lexer.Token
	Kind  = lexer.Kind
	Theme = highlight.Theme
)

const (
	Function      = lexer.Function
	FieldRef      = lexer.FieldRef
	StringLiteral = lexer.StringLiteral
	Number        = lexer.Number
	Operator      = lexer.Operator
	Parenthesis   = lexer.Parenthesis
	Comma         = lexer.Comma
	Whitespace    = lexer.Whitespace
	Unknown       = lexer.Unknown
)

// DefaultTheme returns a copy of the documentation color scheme.
func DefaultTheme() Theme {
	return highlight.DefaultTheme.WithDefaults()
}

// Tokenize splits formula into tokens whose text concatenates back to
// formula exactly.
func Tokenize(formula string) []Token {
	return lexer.Tokenize(formula)
}

// Condense returns formula on one line with all insignificant whitespace
// removed.
func Condense(formula string) string {
	return condense.Condense(formula)
}

// Format returns formula laid out for reading, or formula itself if it
// cannot be laid out.
func Format(formula string) string {
	out, err := pretty.Format(formula)
	if err != nil {
		return formula
	}
	return out
}

// Highlight returns formula as an HTML fragment colored with the default
// theme.
func Highlight(formula string) string {
	if formula == "" {
		return ""
	}
	out, err := highlight.HTML(lexer.Tokenize(formula), highlight.DefaultTheme)
	if err != nil {
		return highlight.Escape(formula)
	}
	return out
}

// FieldRefs returns the names referenced by {…} field references, without
// the outer braces, in order of first appearance.
func FieldRefs(formula string) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, t := range lexer.Tokenize(formula) {
		if t.Kind != lexer.FieldRef {
			continue
		}
		name := strings.TrimPrefix(t.Text, "{")
		if strings.HasSuffix(name, "}") {
			name = name[:len(name)-1]
		}
		if !seen[name] {
			seen[name] = true
			refs = append(refs, name)
		}
	}
	return refs
}

// Functions returns the upper-cased names of the functions formula uses,
// in order of first appearance.
func Functions(formula string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, t := range lexer.Tokenize(formula) {
		if t.Kind != lexer.Function {
			continue
		}
		name := strings.ToUpper(t.Text)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
