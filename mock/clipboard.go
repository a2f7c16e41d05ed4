package mock

import "github.com/fwojciec/diffutils"

// Compile-time interface verification.
var _ diffutils.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of diffutils.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}
