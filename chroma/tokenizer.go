// Package chroma provides syntax highlighting using the chroma library.
package chroma

import (
	"errors"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/diffutils"
)

// Compile-time interface verification.
var _ diffutils.Tokenizer = (*Tokenizer)(nil)

// Tokenizer extracts syntax tokens using chroma.
type Tokenizer struct {
	styleFunc StyleFunc
}

// NewTokenizer creates a new chroma-based tokenizer with the given style function.
func NewTokenizer(styleFunc StyleFunc) (*Tokenizer, error) {
	if styleFunc == nil {
		return nil, errors.New("chroma: styleFunc cannot be nil")
	}
	return &Tokenizer{styleFunc: styleFunc}, nil
}

// Tokenize splits source into styled tokens. It returns nil when language
// has no lexer and an empty slice for empty source.
func (t *Tokenizer) Tokenize(language, source string) []diffutils.Token {
	if source == "" {
		return []diffutils.Token{}
	}
	return t.tokenize(language, source)
}

func (t *Tokenizer) tokenize(language, source string) []diffutils.Token {
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}

	iterator, err := chromalib.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return nil
	}

	var tokens []diffutils.Token
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		tokens = append(tokens, diffutils.Token{Text: token.Value, Style: t.styleFunc(token.Type)})
	}
	return tokens
}

// HighlightHunk tokenizes the lines of h with full context on each side:
// the old side is the context and removed lines, the new side the context
// and added lines. Multi-line constructs such as block comments are styled
// correctly across lines. The result has one entry per line of h, in order;
// it is nil when language has no lexer.
func (t *Tokenizer) HighlightHunk(language string, h diffutils.Hunk) [][]diffutils.Token {
	if len(h.Lines) == 0 {
		return [][]diffutils.Token{}
	}

	result := make([][]diffutils.Token, len(h.Lines))
	for _, side := range []diffutils.LineKind{diffutils.LineRemoved, diffutils.LineAdded} {
		var idx []int
		var src strings.Builder
		for i, line := range h.Lines {
			if line.Kind != diffutils.LineContext && line.Kind != side {
				continue
			}
			idx = append(idx, i)
			src.WriteString(line.Text)
			src.WriteByte('\n')
		}
		if len(idx) == 0 {
			continue
		}

		tokens := t.tokenize(language, src.String())
		if tokens == nil {
			return nil
		}
		for n, lineTokens := range splitTokensByLine(tokens) {
			if n >= len(idx) {
				break
			}
			// Context lines appear on both sides; the new side wins.
			result[idx[n]] = lineTokens
		}
	}
	return result
}

// splitTokensByLine splits a flat token list at newlines, breaking tokens
// that span lines. Every newline ends a line, so text ending in "\n" yields
// no trailing empty line.
func splitTokensByLine(tokens []diffutils.Token) [][]diffutils.Token {
	var lines [][]diffutils.Token
	var current []diffutils.Token

	for _, tok := range tokens {
		rest := tok.Text
		for {
			before, after, found := strings.Cut(rest, "\n")
			if before != "" {
				current = append(current, diffutils.Token{Text: before, Style: tok.Style})
			}
			if !found {
				break
			}
			lines = append(lines, current)
			current = nil
			rest = after
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}
