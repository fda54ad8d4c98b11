package lexer

import "fmt"

// Kind classifies a formula token. The set is closed.
type Kind int

const (
	Function Kind = iota
	FieldRef
	StringLiteral
	Number
	Operator
	Parenthesis
	Comma
	Whitespace
	Unknown
)

var kindNames = [...]string{
	Function:      "Function",
	FieldRef:      "FieldRef",
	StringLiteral: "StringLiteral",
	Number:        "Number",
	Operator:      "Operator",
	Parenthesis:   "Parenthesis",
	Comma:         "Comma",
	Whitespace:    "Whitespace",
	Unknown:       "Unknown",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= Function && k <= Unknown
}

// MarshalText lets kinds appear by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid token kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// Token is a single lexical unit of a formula.
//
// Text is the exact source slice; concatenating Text over a token sequence
// reproduces the input. Depth is the 1-indexed nesting level and is only set
// for Parenthesis tokens.
type Token struct {
	Kind  Kind   `json:"kind" yaml:"kind"`
	Text  string `json:"text" yaml:"text"`
	Depth int    `json:"depth,omitempty" yaml:"depth,omitempty"`
}

// IsOpen reports whether t is an opening parenthesis.
func (t Token) IsOpen() bool {
	return t.Kind == Parenthesis && t.Text == "("
}

// IsClose reports whether t is a closing parenthesis.
func (t Token) IsClose() bool {
	return t.Kind == Parenthesis && t.Text == ")"
}

// IsIdent reports whether t was produced by the identifier rule, i.e. it is
// a Function, or an Unknown token spelled like a name.
func (t Token) IsIdent() bool {
	switch t.Kind {
	case Function:
		return true
	case Unknown:
		return t.Text != "" && isIdentStart(firstRune(t.Text))
	default:
		return false
	}
}

// Join concatenates the text of tokens.
func Join(tokens []Token) string {
	n := 0
	for _, t := range tokens {
		n += len(t.Text)
	}
	buf := make([]byte, 0, n)
	for _, t := range tokens {
		buf = append(buf, t.Text...)
	}
	return string(buf)
}
