// Package span locates structure inside formula text: matching
// parentheses, top-level argument boundaries and function calls.
//
// Every helper re-tokenizes the text it is given, so string literals and
// field references are opaque: a paren or comma inside them never counts.
package span

import (
	"github.com/gnoswap-labs/formulafmt/internal/lexer"
)

// FindMatchingParen returns the byte index of the ')' matching the '(' at
// openIndex. It reports false when openIndex is not an opening paren or the
// paren is never closed.
func FindMatchingParen(text string, openIndex int) (int, bool) {
	if openIndex < 0 || openIndex >= len(text) {
		return -1, false
	}

	tokens := lexer.Tokenize(text[openIndex:])
	if len(tokens) == 0 || !tokens[0].IsOpen() {
		return -1, false
	}

	depth := tokens[0].Depth
	offset := openIndex
	for _, t := range tokens {
		if t.IsClose() && t.Depth == depth {
			return offset, true
		}
		offset += len(t.Text)
	}
	return -1, false
}

// SplitTopLevelArguments splits a comma-separated argument list at the
// commas that are not nested inside parentheses. Each argument is trimmed of
// surrounding whitespace. Empty input yields no arguments, and a trailing
// comma does not produce a final empty argument.
func SplitTopLevelArguments(args string) []string {
	var (
		result  []string
		current []lexer.Token
		nesting int
	)

	for _, t := range lexer.Tokenize(args) {
		switch {
		case t.IsOpen():
			nesting++
		case t.IsClose():
			nesting--
		case t.Kind == lexer.Comma && nesting == 0:
			result = append(result, lexer.Join(trim(current)))
			current = current[:0]
			continue
		}
		current = append(current, t)
	}

	if len(current) > 0 {
		result = append(result, lexer.Join(trim(current)))
	}
	return result
}

// MaxParenDepth returns the deepest parenthesis nesting level in text.
func MaxParenDepth(text string) int {
	depth := 0
	for _, t := range lexer.Tokenize(text) {
		if t.IsOpen() && t.Depth > depth {
			depth = t.Depth
		}
	}
	return depth
}

// Call describes a function call found in formula text.
type Call struct {
	Name  string // the name as written
	Start int    // byte offset of the name
	Open  int    // byte offset of the opening paren
}

// FindCall returns the first NAME( pattern in text, where NAME is an
// identifier optionally followed by whitespace before the paren. When
// anchored is set, the name must be the very first token.
func FindCall(text string, anchored bool) (Call, bool) {
	tokens := lexer.Tokenize(text)

	offset := 0
	for i, t := range tokens {
		if t.IsIdent() {
			open := offset + len(t.Text)
			j := i + 1
			if j < len(tokens) && tokens[j].Kind == lexer.Whitespace {
				open += len(tokens[j].Text)
				j++
			}
			if j < len(tokens) && tokens[j].IsOpen() {
				return Call{Name: t.Text, Start: offset, Open: open}, true
			}
		}
		if anchored {
			break
		}
		offset += len(t.Text)
	}
	return Call{}, false
}

// HasCall reports whether text contains a function call anywhere.
func HasCall(text string) bool {
	_, ok := FindCall(text, false)
	return ok
}

// trim drops leading and trailing whitespace tokens.
func trim(tokens []lexer.Token) []lexer.Token {
	for len(tokens) > 0 && tokens[0].Kind == lexer.Whitespace {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].Kind == lexer.Whitespace {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}
