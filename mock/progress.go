package mock

import (
	"sync"

	"github.com/fwojciec/diffutils"
)

// Compile-time interface verification.
var _ diffutils.Progress = (*Progress)(nil)

// Progress is a mock implementation of diffutils.Progress that records
// every report. CanceledFn may be nil, meaning never canceled.
type Progress struct {
	CanceledFn func() bool

	mu      sync.Mutex
	reports [][2]int
}

func (p *Progress) Canceled() bool {
	if p.CanceledFn == nil {
		return false
	}
	return p.CanceledFn()
}

func (p *Progress) Report(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reports = append(p.reports, [2]int{done, total})
}

// Reports returns the (done, total) pairs received so far.
func (p *Progress) Reports() [][2]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][2]int(nil), p.reports...)
}
