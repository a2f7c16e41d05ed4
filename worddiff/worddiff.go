// Package worddiff highlights the changed words between a removed line and
// the added line that replaced it.
package worddiff

import (
	"regexp"
	"strings"

	"github.com/fwojciec/diffutils"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Compile-time interface verification.
var _ diffutils.WordDiffer = (*Differ)(nil)

// tokenPattern splits source text into identifiers, numbers, string
// literals, operator runs, punctuation, whitespace runs and single runes.
var tokenPattern = regexp.MustCompile(
	`[a-zA-Z_][a-zA-Z0-9_]*|` +
		`[0-9]+(?:\.[0-9]+)?|` +
		`"(?:\\.|[^"\\])*"?|'(?:\\.|[^'\\])*'?|` +
		`[+\-*/=<>!&|^%:]+|` +
		`[(){}\[\];,.]|` +
		`\s+|` +
		`.`,
)

// similarityThreshold is the minimum share of common tokens for word-level
// highlighting. Below it the lines are treated as complete replacements.
const similarityThreshold = 0.4

// maxTokens bounds the token alphabet so every token maps to a valid rune
// below the surrogate range.
const maxTokens = 0xD000

// Differ computes word-level diffs with diff-match-patch over token runes.
type Differ struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffer creates a new Differ instance.
func NewDiffer() *Differ {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &Differ{dmp: dmp}
}

// Tokenize splits s into tokens. Concatenating the tokens yields s.
func (d *Differ) Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	return tokenPattern.FindAllString(s, -1)
}

// Diff returns segments for both the old and new strings,
// marking which portions changed between them.
func (d *Differ) Diff(old, new string) (oldSegs, newSegs []diffutils.Segment) {
	switch {
	case old == "" && new == "":
		return nil, nil
	case old == "":
		return nil, []diffutils.Segment{{Text: new, Changed: true}}
	case new == "":
		return []diffutils.Segment{{Text: old, Changed: true}}, nil
	case old == new:
		seg := diffutils.Segment{Text: old}
		return []diffutils.Segment{seg}, []diffutils.Segment{seg}
	}

	replaced := func() ([]diffutils.Segment, []diffutils.Segment) {
		return []diffutils.Segment{{Text: old, Changed: true}},
			[]diffutils.Segment{{Text: new, Changed: true}}
	}

	oldTokens := d.Tokenize(old)
	newTokens := d.Tokenize(new)
	if !similarEnough(oldTokens, newTokens) {
		return replaced()
	}

	vocab := make(map[string]rune)
	var alphabet []string
	oldRunes, ok := toRunes(oldTokens, vocab, &alphabet)
	if !ok {
		return replaced()
	}
	newRunes, ok := toRunes(newTokens, vocab, &alphabet)
	if !ok {
		return replaced()
	}

	var ob, nb segmentBuilder
	for _, diff := range d.dmp.DiffMainRunes(oldRunes, newRunes, false) {
		var text strings.Builder
		for _, r := range diff.Text {
			text.WriteString(alphabet[r])
		}
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			ob.add(text.String(), false)
			nb.add(text.String(), false)
		case diffmatchpatch.DiffDelete:
			ob.add(text.String(), true)
		case diffmatchpatch.DiffInsert:
			nb.add(text.String(), true)
		}
	}

	return ob.segments(), nb.segments()
}

func toRunes(tokens []string, vocab map[string]rune, alphabet *[]string) ([]rune, bool) {
	runes := make([]rune, len(tokens))
	for i, tok := range tokens {
		r, ok := vocab[tok]
		if !ok {
			if len(*alphabet) >= maxTokens {
				return nil, false
			}
			r = rune(len(*alphabet))
			vocab[tok] = r
			*alphabet = append(*alphabet, tok)
		}
		runes[i] = r
	}
	return runes, true
}

// similarEnough reports whether the Dice coefficient of the two token
// multisets reaches similarityThreshold.
func similarEnough(oldTokens, newTokens []string) bool {
	if len(oldTokens) == 0 || len(newTokens) == 0 {
		return false
	}

	counts := make(map[string]int, len(oldTokens))
	for _, t := range oldTokens {
		counts[t]++
	}
	common := 0
	for _, t := range newTokens {
		if counts[t] > 0 {
			counts[t]--
			common++
		}
	}

	return float64(2*common)/float64(len(oldTokens)+len(newTokens)) >= similarityThreshold
}

// segmentBuilder merges adjacent runs with the same changed state.
type segmentBuilder struct {
	segs []diffutils.Segment
}

func (b *segmentBuilder) add(text string, changed bool) {
	if text == "" {
		return
	}
	if n := len(b.segs); n > 0 && b.segs[n-1].Changed == changed {
		b.segs[n-1].Text += text
		return
	}
	b.segs = append(b.segs, diffutils.Segment{Text: text, Changed: changed})
}

func (b *segmentBuilder) segments() []diffutils.Segment {
	return b.segs
}
