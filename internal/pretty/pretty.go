// Package pretty lays formulas out over several indented lines.
//
// Short formulas stay on one line. Longer or deeply nested ones are
// expanded call by call: each argument of an expanded call goes on its own
// line, one indent unit deeper than the call.
package pretty

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gnoswap-labs/formulafmt/internal/lexer"
	"github.com/gnoswap-labs/formulafmt/internal/span"
)

const (
	indentUnit = "  "

	// simpleWidth is the longest normalized formula kept on one line
	// regardless of nesting.
	simpleWidth = 80

	// callWidth is the longest compact NAME(args) rendering kept on one
	// line inside an expanded formula.
	callWidth = 50

	// maxLevel bounds recursion on pathological input.
	maxLevel = 256
)

var (
	ErrTooDeep = errors.New("formula nested too deeply")
	ErrBadSpan = errors.New("span outside formula text")
)

// alwaysExpand lists the calls that go multi-line whenever they have more
// than one argument.
var alwaysExpand = map[string]bool{
	"IF":     true,
	"SWITCH": true,
	"IFS":    true,
}

// Format returns formula laid out for reading. Simple formulas come back
// normalized on a single line. Empty or all-whitespace input is returned
// unchanged.
func Format(formula string) (string, error) {
	if strings.TrimSpace(formula) == "" {
		return formula, nil
	}

	normalized := Normalize(formula)
	if IsSimple(normalized) {
		return normalized, nil
	}
	return render(normalized, 0)
}

// Normalize collapses every whitespace token into one space and drops
// leading and trailing whitespace. Other tokens are copied verbatim.
func Normalize(formula string) string {
	var sb strings.Builder
	sb.Grow(len(formula))
	for _, t := range trim(lexer.Tokenize(formula)) {
		if t.Kind == lexer.Whitespace {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// IsSimple reports whether normalized text stays on a single line.
func IsSimple(text string) bool {
	if call, ok := span.FindCall(text, true); ok && alwaysExpand[strings.ToUpper(call.Name)] {
		if end, ok := span.FindMatchingParen(text, call.Open); ok {
			if len(span.SplitTopLevelArguments(text[call.Open+1:end])) > 1 {
				return false
			}
		}
	}

	if utf8.RuneCountInString(text) <= simpleWidth {
		return true
	}
	return span.MaxParenDepth(text) <= 1
}

func render(text string, level int) (string, error) {
	if level > maxLevel {
		return "", fmt.Errorf("%w: level %d", ErrTooDeep, level)
	}

	tokens := trim(lexer.Tokenize(text))
	if len(tokens) == 0 {
		return "", nil
	}
	text = lexer.Join(tokens)

	if len(tokens) == 1 && (tokens[0].Kind == lexer.StringLiteral || tokens[0].Kind == lexer.FieldRef) {
		return text, nil
	}

	if tokens[0].IsOpen() {
		if end, ok := span.FindMatchingParen(text, 0); ok {
			return renderParenthesized(text, end, level)
		}
	}

	call, ok := span.FindCall(text, true)
	if !ok {
		// an operator expression with a call further in, e.g. {a} * ROUND(...)
		call, ok = span.FindCall(text, false)
		if !ok {
			return text, nil
		}
		rest, err := render(text[call.Start:], level+1)
		if err != nil {
			return "", err
		}
		return text[:call.Start] + rest, nil
	}

	end, ok := span.FindMatchingParen(text, call.Open)
	if !ok {
		// unclosed call, leave it as written
		return text, nil
	}
	if end >= len(text) {
		return "", fmt.Errorf("%w: close %d in %d bytes", ErrBadSpan, end, len(text))
	}

	result, err := renderCall(call.Name, text[call.Open+1:end], level)
	if err != nil {
		return "", err
	}
	return appendSuffix(result, text[end+1:], level)
}

func renderParenthesized(text string, end, level int) (string, error) {
	if end >= len(text) {
		return "", fmt.Errorf("%w: close %d in %d bytes", ErrBadSpan, end, len(text))
	}

	if end < len(text)-1 {
		prefix, err := render(text[:end+1], level+1)
		if err != nil {
			return "", err
		}
		return appendSuffix(prefix, text[end+1:], level)
	}

	inner, err := render(text[1:end], level+1)
	if err != nil {
		return "", err
	}
	if !strings.Contains(inner, "\n") {
		return "(" + inner + ")", nil
	}

	lines := []string{"("}
	for _, line := range strings.Split(inner, "\n") {
		lines = append(lines, indentUnit+line)
	}
	lines = append(lines, ")")
	return strings.Join(lines, "\n"), nil
}

func renderCall(name, argsText string, level int) (string, error) {
	args := span.SplitTopLevelArguments(argsText)
	if len(args) == 0 {
		return name + "()", nil
	}

	compact := name + "(" + strings.Join(args, ", ") + ")"
	if !shouldExpand(name, args, compact) {
		return compact, nil
	}

	lines := []string{name + "("}
	for i, arg := range args {
		rendered, err := render(arg, level+1)
		if err != nil {
			return "", err
		}

		argLines := strings.Split(rendered, "\n")
		if i < len(args)-1 {
			argLines[len(argLines)-1] += ","
		}
		for _, line := range argLines {
			lines = append(lines, indentUnit+line)
		}
	}
	lines = append(lines, ")")
	return strings.Join(lines, "\n"), nil
}

func shouldExpand(name string, args []string, compact string) bool {
	if alwaysExpand[strings.ToUpper(name)] && len(args) > 1 {
		return true
	}
	for _, arg := range args {
		if span.HasCall(arg) {
			return true
		}
	}
	return utf8.RuneCountInString(compact) > callWidth
}

// appendSuffix attaches whatever follows a closing paren: on the same line
// when it renders as one line, otherwise starting on a new line.
func appendSuffix(result, suffix string, level int) (string, error) {
	if strings.TrimSpace(suffix) == "" {
		return result, nil
	}

	rendered, err := render(suffix, level+1)
	if err != nil {
		return "", err
	}
	if rendered == "" {
		return result, nil
	}
	if strings.Contains(rendered, "\n") {
		return result + "\n" + rendered, nil
	}
	return result + " " + rendered, nil
}

func trim(tokens []lexer.Token) []lexer.Token {
	for len(tokens) > 0 && tokens[0].Kind == lexer.Whitespace {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].Kind == lexer.Whitespace {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}
