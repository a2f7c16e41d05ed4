// Package jsonl exports parsed patches as JSONL and reads them back.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/diffutils"
)

// Compile-time interface verification.
var _ diffutils.DiffLoader = (*Loader)(nil)

// Loader reads FileData records from JSONL files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// maxLineSize is the maximum size for a single JSONL line (4MB).
// A line holds one whole file, hunks included.
const maxLineSize = 4 * 1024 * 1024

// Load reads a JSONL file and returns the Diff it describes.
func (l *Loader) Load(path string) (*diffutils.Diff, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return l.Read(f)
}

// Read decodes FileData records from r, skipping blank lines.
func (l *Loader) Read(r io.Reader) (*diffutils.Diff, error) {
	diff := &diffutils.Diff{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var fd diffutils.FileData
		if err := json.Unmarshal([]byte(line), &fd); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		diff.Files = append(diff.Files, fd)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return diff, nil
}
