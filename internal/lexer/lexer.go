package lexer

import (
	"unicode"
	"unicode/utf8"
)

// Lexer scans formula text into tokens. A Lexer is single use; call
// Tokenize for the common case.
type Lexer struct {
	input    string // the entire formula
	position int    // current byte offset into input
	depth    int    // running parenthesis depth
	tokens   []Token
}

// NewLexer returns a Lexer positioned at the start of input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		tokens: make([]Token, 0, len(input)/2+1),
	}
}

// Tokenize scans formula and returns its tokens. It never fails: input that
// does not fit any rule degrades into Unknown tokens.
func Tokenize(formula string) []Token {
	return NewLexer(formula).Tokenize()
}

// Tokenize processes the entire input. Rules are tried in priority order
// and the first match wins; the last rule always matches one character, so
// every iteration makes progress.
func (l *Lexer) Tokenize() []Token {
	for l.position < len(l.input) {
		switch {
		case l.lexWhitespace():
		case l.lexString():
		case l.lexFieldRef():
		case l.lexNumber():
		case l.lexOperator():
		case l.lexParen():
		case l.lexComma():
		case l.lexIdent():
		default:
			_, size := l.peek(0)
			l.emit(Unknown, l.position+size)
		}
	}
	return l.tokens
}

// peek decodes the rune offset bytes ahead of the current position.
func (l *Lexer) peek(offset int) (rune, int) {
	i := l.position + offset
	if i >= len(l.input) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(l.input[i:])
}

// emit appends input[position:end] as a token of the given kind and
// advances past it.
func (l *Lexer) emit(kind Kind, end int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: l.input[l.position:end]})
	l.position = end
}

func (l *Lexer) lexWhitespace() bool {
	end := l.position
	for end < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[end:])
		if !isSpace(r) {
			break
		}
		end += size
	}
	if end == l.position {
		return false
	}
	l.emit(Whitespace, end)
	return true
}

// lexString consumes a quoted literal. A backslash escapes the following
// character; an unterminated literal runs to the end of input.
func (l *Lexer) lexString() bool {
	quote := l.input[l.position]
	if quote != '"' && quote != '\'' {
		return false
	}

	end := l.position + 1
	for end < len(l.input) {
		c := l.input[end]
		if c == '\\' && end+1 < len(l.input) {
			_, size := utf8.DecodeRuneInString(l.input[end+1:])
			end += 1 + size
			continue
		}
		end++
		if c == quote {
			break
		}
	}
	l.emit(StringLiteral, end)
	return true
}

// lexFieldRef consumes {…} with brace counting so nested braces stay in
// one token; an unterminated reference runs to the end of input.
func (l *Lexer) lexFieldRef() bool {
	if l.input[l.position] != '{' {
		return false
	}

	end := l.position + 1
	braces := 1
	for end < len(l.input) && braces > 0 {
		switch l.input[end] {
		case '{':
			braces++
		case '}':
			braces--
		}
		end++
	}
	l.emit(FieldRef, end)
	return true
}

func (l *Lexer) lexNumber() bool {
	end := l.position
	if l.input[end] == '-' {
		if !l.signAllowed() {
			return false
		}
		end++
	}

	digits := scanDigits(l.input, end)
	if digits == end {
		return false
	}
	end = digits

	if end < len(l.input) && l.input[end] == '.' {
		end = scanDigits(l.input, end+1)
	}
	l.emit(Number, end)
	return true
}

// signAllowed reports whether a '-' at the current position starts a
// signed number: at the start of input, or after an opening paren, a comma
// or an operator. Anywhere else it is subtraction.
func (l *Lexer) signAllowed() bool {
	for i := len(l.tokens) - 1; i >= 0; i-- {
		t := l.tokens[i]
		switch t.Kind {
		case Whitespace:
			continue
		case Operator, Comma:
			return true
		case Parenthesis:
			return t.Text == "("
		default:
			return false
		}
	}
	return true
}

var twoCharOperators = map[string]bool{
	"!=": true,
	"<=": true,
	">=": true,
}

func (l *Lexer) lexOperator() bool {
	if l.position+2 <= len(l.input) && twoCharOperators[l.input[l.position:l.position+2]] {
		l.emit(Operator, l.position+2)
		return true
	}

	switch l.input[l.position] {
	case '=', '<', '>', '&', '+', '-', '*', '/':
		l.emit(Operator, l.position+1)
		return true
	}
	return false
}

func (l *Lexer) lexParen() bool {
	var depth int
	switch l.input[l.position] {
	case '(':
		l.depth++
		depth = l.depth
	case ')':
		depth = max(1, l.depth)
		l.depth = max(0, l.depth-1)
	default:
		return false
	}
	l.emit(Parenthesis, l.position+1)
	l.tokens[len(l.tokens)-1].Depth = depth
	return true
}

func (l *Lexer) lexComma() bool {
	if l.input[l.position] != ',' {
		return false
	}
	l.emit(Comma, l.position+1)
	return true
}

// lexIdent consumes a name and classifies it against the function set.
func (l *Lexer) lexIdent() bool {
	r, size := l.peek(0)
	if !isIdentStart(r) {
		return false
	}

	end := l.position + size
	for end < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[end:])
		if !isIdentChar(r) {
			break
		}
		end += size
	}

	kind := Unknown
	if IsFunctionName(l.input[l.position:end]) {
		kind = Function
	}
	l.emit(kind, end)
	return true
}

func scanDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r != utf8.RuneError && unicode.IsLetter(r))
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
