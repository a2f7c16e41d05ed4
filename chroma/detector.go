package chroma

import (
	"path"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/diffutils"
)

// Compile-time interface verification.
var _ diffutils.LanguageDetector = (*Detector)(nil)

// Detector detects programming languages from file paths using chroma.
type Detector struct{}

// NewDetector creates a new chroma-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFromPath returns the lexer name for path, or "" when no lexer
// matches. Only the base name is considered, so "a/" and "b/" prefixes and
// unified-diff names with directories work unchanged.
func (d *Detector) DetectFromPath(p string) string {
	if p == "" {
		return ""
	}
	name := path.Base(strings.ReplaceAll(p, `\`, "/"))
	if lexer := lexers.Match(name); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}

// DetectFile returns the language of a parsed file, preferring the
// destination path and falling back to the source for removed files.
func (d *Detector) DetectFile(f diffutils.FileData) string {
	if lang := d.DetectFromPath(f.Destination); lang != "" {
		return lang
	}
	return d.DetectFromPath(f.Source)
}
