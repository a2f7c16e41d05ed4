package mock

import "github.com/fwojciec/diffutils"

// Compile-time interface verification.
var (
	_ diffutils.DiffSaver  = (*DiffSaver)(nil)
	_ diffutils.DiffLoader = (*DiffLoader)(nil)
)

// DiffSaver is a mock implementation of diffutils.DiffSaver.
type DiffSaver struct {
	SaveFn func(path string, diff *diffutils.Diff) error
}

func (s *DiffSaver) Save(path string, diff *diffutils.Diff) error {
	return s.SaveFn(path, diff)
}

// DiffLoader is a mock implementation of diffutils.DiffLoader.
type DiffLoader struct {
	LoadFn func(path string) (*diffutils.Diff, error)
}

func (l *DiffLoader) Load(path string) (*diffutils.Diff, error) {
	return l.LoadFn(path)
}
