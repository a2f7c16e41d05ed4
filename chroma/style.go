package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/diffutils"
)

// StyleFunc maps chroma token types to diffutils styles.
type StyleFunc func(chromalib.TokenType) diffutils.Style

// StyleFromPalette maps chroma token categories onto palette colors.
func StyleFromPalette(p diffutils.Palette) StyleFunc {
	color := func(c diffutils.Color) diffutils.Style {
		return diffutils.Style{Foreground: string(c)}
	}
	bold := func(c diffutils.Color) diffutils.Style {
		return diffutils.Style{Foreground: string(c), Bold: true}
	}

	return func(tt chromalib.TokenType) diffutils.Style {
		switch {
		case tt == chromalib.KeywordType, tt == chromalib.NameClass:
			return bold(p.Type)
		case tt.InCategory(chromalib.Keyword):
			return bold(p.Keyword)
		case tt.InCategory(chromalib.Comment):
			return color(p.Comment)
		case tt.InSubCategory(chromalib.LiteralString):
			return color(p.String)
		case tt.InSubCategory(chromalib.LiteralNumber):
			return color(p.Number)
		case tt.InCategory(chromalib.Operator):
			return color(p.Operator)
		case tt == chromalib.NameFunction, tt == chromalib.NameFunctionMagic:
			return color(p.Function)
		case tt == chromalib.NameConstant, tt.InSubCategory(chromalib.NameBuiltin):
			return color(p.Constant)
		case tt == chromalib.Punctuation:
			return color(p.Punctuation)
		default:
			return diffutils.Style{}
		}
	}
}
