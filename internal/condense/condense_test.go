package condense

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCondense(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"multiline if", "IF(\n  {a},\n  {b}\n)", "IF({a},{b})"},
		{"string whitespace kept", `IF({a}, "hello   world", {b})`, `IF({a},"hello   world",{b})`},
		{"field whitespace kept", "LEN( {Field  Name} )", "LEN({Field  Name})"},
		{"operators", "{a} + 1 >= 2", "{a}+1>=2"},
		{"tabs and carriage returns", "SUM(\t1,\r\n2)", "SUM(1,2)"},
		{"already condensed", "IF({a},{b})", "IF({a},{b})"},
		{"empty", "", ""},
		{"whitespace only", "  \n\t", "  \n\t"},
		{"unterminated string", `LEN( "a  b`, `LEN("a  b`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Condense(tt.input))
		})
	}
}

func TestCondenseIdempotent(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"IF(\n  {a},\n  {b}\n)",
		`CONCATENATE({First}, " ", {Last})`,
		"DATEADD( TODAY() , -7 , 'days' )",
		"  (1 - -2) * {x y}  ",
		`"unterminated   `,
	}

	for _, input := range inputs {
		once := Condense(input)
		assert.Equal(t, once, Condense(once), "input %q", input)
	}
}

func TestCondenserUsesCache(t *testing.T) {
	t.Parallel()
	cache, err := NewCache(2)
	require.NoError(t, err)
	c := New(cache)

	assert.Equal(t, "SUM(1,2)", c.Condense("SUM(1, 2)"))
	assert.Equal(t, "SUM(1,2)", c.Condense("SUM(1, 2)"))

	hits, misses := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	c.Condense("A( 1 )")
	c.Condense("B( 2 )")
	assert.Equal(t, 2, cache.Len())

	// "SUM(1, 2)" was the least recently used entry.
	_, ok := cache.Get("SUM(1, 2)")
	assert.False(t, ok)

	cache.InvalidateAll()
	assert.Equal(t, 0, cache.Len())
	hits, misses = cache.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestCondenserWithoutCache(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "IF({a},{b})", New(nil).Condense("IF( {a}, {b} )"))

	var c *Condenser
	assert.Equal(t, "IF({a},{b})", c.Condense("IF( {a}, {b} )"))
}

func TestNewCacheRejectsInvalidSize(t *testing.T) {
	t.Parallel()
	_, err := NewCache(0)
	assert.Error(t, err)
}

func TestCondenserConcurrent(t *testing.T) {
	t.Parallel()
	cache, err := NewCache(DefaultCacheSize)
	require.NoError(t, err)
	c := New(cache)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				formula := fmt.Sprintf("SUM( %d , %d )", i, j%10)
				assert.Equal(t, fmt.Sprintf("SUM(%d,%d)", i, j%10), c.Condense(formula))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 160, cache.Len())
}
