package chroma_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/diffutils"
	"github.com/fwojciec/diffutils/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenizer(t *testing.T) *chroma.Tokenizer {
	t.Helper()

	tokenizer, err := chroma.NewTokenizer(chroma.StyleFromPalette(testPalette))
	require.NoError(t, err)
	return tokenizer
}

func joinTokens(tokens []diffutils.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}

func TestNewTokenizer_RequiresStyleFunc(t *testing.T) {
	t.Parallel()

	_, err := chroma.NewTokenizer(nil)

	require.Error(t, err)
}

func TestTokenizer_Tokenize(t *testing.T) {
	t.Parallel()

	t.Run("tokenizes Go code", func(t *testing.T) {
		t.Parallel()

		tokens := newTokenizer(t).Tokenize("go", `package main`)

		require.NotEmpty(t, tokens)
		assert.Equal(t, "package main", strings.TrimSuffix(joinTokens(tokens), "\n"))
		assert.Equal(t, "package", tokens[0].Text)
		assert.Equal(t, diffutils.Style{Foreground: "#ff00ff", Bold: true}, tokens[0].Style)
	})

	t.Run("returns nil for unsupported language", func(t *testing.T) {
		t.Parallel()

		tokens := newTokenizer(t).Tokenize("nonexistent-language-xyz", "some code")

		assert.Nil(t, tokens)
	})

	t.Run("handles empty source", func(t *testing.T) {
		t.Parallel()

		tokens := newTokenizer(t).Tokenize("go", "")

		assert.NotNil(t, tokens)
		assert.Empty(t, tokens)
	})
}

func TestTokenizer_HighlightHunk(t *testing.T) {
	t.Parallel()

	hunk := diffutils.Hunk{
		OldStart: 1, OldCount: 3, NewStart: 1, NewCount: 3,
		Lines: []diffutils.Line{
			{Kind: diffutils.LineContext, Text: "/* start of", OldNumber: 1, NewNumber: 1},
			{Kind: diffutils.LineRemoved, Text: "   old comment */", OldNumber: 2},
			{Kind: diffutils.LineAdded, Text: "   new comment */", NewNumber: 2},
			{Kind: diffutils.LineContext, Text: "var x = 1", OldNumber: 3, NewNumber: 3},
		},
	}

	t.Run("one entry per line", func(t *testing.T) {
		t.Parallel()

		lines := newTokenizer(t).HighlightHunk("go", hunk)

		require.Len(t, lines, len(hunk.Lines))
		for i, line := range hunk.Lines {
			assert.Equal(t, line.Text, joinTokens(lines[i]), "line %d", i)
		}
	})

	t.Run("comments span lines on both sides", func(t *testing.T) {
		t.Parallel()

		lines := newTokenizer(t).HighlightHunk("go", hunk)

		require.Len(t, lines, len(hunk.Lines))
		for _, i := range []int{1, 2} {
			require.NotEmpty(t, lines[i])
			for _, tok := range lines[i] {
				assert.Equal(t, "#888888", tok.Style.Foreground, "line %d token %q", i, tok.Text)
			}
		}
	})

	t.Run("nil for unsupported language", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, newTokenizer(t).HighlightHunk("nonexistent-language-xyz", hunk))
	})
}
