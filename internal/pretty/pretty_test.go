package pretty

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/formulafmt/internal/condense"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"collapse runs", "IF(  {a},   {b}  )", "IF( {a}, {b} )"},
		{"string content kept", `IF({a}, "hello   world")`, `IF({a}, "hello   world")`},
		{"field content kept", "LEN({field  name})", "LEN({field  name})"},
		{"newlines become spaces", "IF(\n\t{a},\n\t{b}\n)", "IF( {a}, {b} )"},
		{"trimmed", "  SUM(1)  \n", "SUM(1)"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestIsSimple(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"no args", "RECORD_ID()", true},
		{"field", "{field_name}", true},
		{"if with args", "IF({a}, {b}, {c})", false},
		{"if with one arg", "IF({a})", true},
		{"ifs", "IFS({a}, 1, {b}, 2)", false},
		{"switch lower case", "switch({a}, 1, 2)", false},
		{"space before paren", "IF ({a}, {b})", false},
		{"if not at start", "1 + IF({a}, {b}, {c})", true},
		{"long but flat", "SUM({Alpha Field Value}, {Beta Field Value}, {Gamma Field}, {Delta Field Value}, 1)", true},
		{"long and nested", "CONCATENATE({First Name}, \" \", {Last Name}, \" - \", DATETIME_FORMAT({Created}, 'MMM D, YYYY'))", false},
		{"exactly eighty", strings.Repeat("x", 76) + "(())", true},
		{"eighty one", strings.Repeat("x", 77) + "(())", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsSimple(tt.text))
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple call unchanged",
			input:    "RECORD_ID()",
			expected: "RECORD_ID()",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "   ",
		},
		{
			name:  "if always expands",
			input: "IF({a}, {b}, {c})",
			expected: `IF(
  {a},
  {b},
  {c}
)`,
		},
		{
			name:  "nested if",
			input: "IF({a}, IF({x}, {y}, {z}), {c})",
			expected: `IF(
  {a},
  IF(
    {x},
    {y},
    {z}
  ),
  {c}
)`,
		},
		{
			name:  "reformats existing layout",
			input: "IF(\n  {a},\n     {b}\n)",
			expected: `IF(
  {a},
  {b}
)`,
		},
		{
			name:  "lower case name kept",
			input: "if({a}, {b})",
			expected: `if(
  {a},
  {b}
)`,
		},
		{
			name:  "switch",
			input: "SWITCH({Status}, 'Open', 1, 'Closed', 2, 0)",
			expected: `SWITCH(
  {Status},
  'Open',
  1,
  'Closed',
  2,
  0
)`,
		},
		{
			name:  "short calls stay compact inside expansion",
			input: "IF({Amount} > 1000, ROUND({Amount} * 0.9, 2), IF({Amount} > 500, ROUND({Amount} * 0.95, 2), {Amount}))",
			expected: `IF(
  {Amount} > 1000,
  ROUND({Amount} * 0.9, 2),
  IF(
    {Amount} > 500,
    ROUND({Amount} * 0.95, 2),
    {Amount}
  )
)`,
		},
		{
			name:  "embedded call keeps prefix on first line",
			input: `{Unit Price} * {Quantity} * IF({Customer Type} = "Wholesale", 0.85, IF({Quantity} > 100, 0.9, 1))`,
			expected: `{Unit Price} * {Quantity} * IF(
  {Customer Type} = "Wholesale",
  0.85,
  IF(
    {Quantity} > 100,
    0.9,
    1
  )
)`,
		},
		{
			name:  "nested call forces expansion",
			input: `CONCATENATE({First Name}, " ", {Last Name}, " - ", DATETIME_FORMAT({Created}, 'MMM D, YYYY'))`,
			expected: `CONCATENATE(
  {First Name},
  " ",
  {Last Name},
  " - ",
  DATETIME_FORMAT({Created}, 'MMM D, YYYY')
)`,
		},
		{
			name:  "multi-line suffix starts a new line",
			input: "IF({a}, 1, 2) & IF({b}, 3, 4)",
			expected: `IF(
  {a},
  1,
  2
)
& IF(
  {b},
  3,
  4
)`,
		},
		{
			name:  "suffix after nested calls",
			input: `DATETIME_FORMAT(DATEADD(TODAY(), -7, 'days'), 'MMM D, YYYY') & " / " & DATETIME_FORMAT(NOW(), 'HH:mm')`,
			expected: `DATETIME_FORMAT(
  DATEADD(
    TODAY(),
    -7,
    'days'
  ),
  'MMM D, YYYY'
)
& " / " & DATETIME_FORMAT(
  NOW(),
  'HH:mm'
)`,
		},
		{
			name:  "calls without nesting stay compact",
			input: "IF(AND({Start Date}, {End Date}), DATETIME_DIFF({End Date}, {Start Date}, 'days'), BLANK())",
			expected: `IF(
  AND({Start Date}, {End Date}),
  DATETIME_DIFF({End Date}, {Start Date}, 'days'),
  BLANK()
)`,
		},
		{
			name:     "long flat call stays on one line",
			input:    "SUM({Alpha Field Value}, {Beta Field Value}, {Gamma Field}, {Delta Field Value}, 1)",
			expected: "SUM({Alpha Field Value}, {Beta Field Value}, {Gamma Field}, {Delta Field Value}, 1)",
		},
		{
			name:     "parenthesized short expression",
			input:    "(IF({a}, 1, 2)) & \"x\"",
			expected: "(IF({a}, 1, 2)) & \"x\"",
		},
		{
			name:     "arithmetic without calls",
			input:    "((({a} + {b}) * ({c} - {d})) / (({e} + {f}) * ({g} - {h}))) + (({i} + {j}) * ({k} - {l}))",
			expected: "((({a} + {b}) * ({c} - {d})) / (({e} + {f}) * ({g} - {h}))) + (({i} + {j}) * ({k} - {l}))",
		},
		{
			name:     "empty call",
			input:    "IF()",
			expected: "IF()",
		},
		{
			name:  "strings with parens and commas untouched",
			input: `IF({a}, "text with (parens) and, commas", {b})`,
			expected: `IF(
  {a},
  "text with (parens) and, commas",
  {b}
)`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Format(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRenderParenthesized(t *testing.T) {
	t.Parallel()
	got, err := render("(IF({a}, {b}, {c}))", 0)
	require.NoError(t, err)
	assert.Equal(t, "(\n  IF(\n    {a},\n    {b},\n    {c}\n  )\n)", got)

	got, err = render("(LEN({a}))", 0)
	require.NoError(t, err)
	assert.Equal(t, "(LEN({a}))", got)

	got, err = render("()", 0)
	require.NoError(t, err)
	assert.Equal(t, "()", got)
}

func TestRenderLiteralsUnchanged(t *testing.T) {
	t.Parallel()
	for _, text := range []string{`"IF(a, b)"`, "{IF(a, b)}", "'x'"} {
		got, err := render(text, 0)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	}
}

func TestRenderUnclosedCall(t *testing.T) {
	t.Parallel()
	got, err := render("IF({a}, LEN({b}", 0)
	require.NoError(t, err)
	assert.Equal(t, "IF({a}, LEN({b}", got)
}

func TestFormatTooDeep(t *testing.T) {
	t.Parallel()
	formula := strings.Repeat("LEN(", maxLevel+10) + "1" + strings.Repeat(")", maxLevel+10)

	_, err := Format(formula)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooDeep))
}

func TestFormatPreservesCondensedForm(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"IF({a}, {b}, {c})",
		"IF({a}, IF({x}, {y}, {z}), {c})",
		`{Unit Price} * {Quantity} * IF({Customer Type} = "Wholesale", 0.85, IF({Quantity} > 100, 0.9, 1))`,
		`DATETIME_FORMAT(DATEADD(TODAY(), -7, 'days'), 'MMM D, YYYY') & " / " & DATETIME_FORMAT(NOW(), 'HH:mm')`,
		"(IF({a}, {b}, {c})) * 2",
		"SWITCH({Status}, 'Open', 1, 'Closed', 2, 0)",
	}

	for _, input := range inputs {
		got, err := Format(input)
		require.NoError(t, err)
		assert.Equal(t, condense.Condense(input), condense.Condense(got), "input %q", input)
	}
}
