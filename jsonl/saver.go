package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/diffutils"
)

// Compile-time interface verification.
var _ diffutils.DiffSaver = (*Saver)(nil)

// Saver writes FileData records as JSONL, one file per line.
type Saver struct{}

// NewSaver creates a new Saver.
func NewSaver() *Saver {
	return &Saver{}
}

// Save writes diff to path, replacing any existing file and creating parent
// directories if needed.
func (s *Saver) Save(path string, diff *diffutils.Diff) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := s.Write(f, diff); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write encodes every file in diff to w in order.
func (s *Saver) Write(w io.Writer, diff *diffutils.Diff) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)

	for i, f := range diff.Files {
		// Encode terminates each value with a newline.
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("file %d (%s): %w", i+1, f.Path(), err)
		}
	}

	return bw.Flush()
}
