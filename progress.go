package diffutils

import "context"

// Progress is the handle a long-running patch read reports through.
// Implementations must be safe to call from the goroutine doing the read.
type Progress interface {
	// Canceled reports whether the caller has asked the read to stop.
	Canceled() bool
	// Report records that done of total files have been processed.
	Report(done, total int)
}

// NopProgress is a Progress that is never canceled and ignores reports.
var NopProgress Progress = nopProgress{}

type nopProgress struct{}

func (nopProgress) Canceled() bool  { return false }
func (nopProgress) Report(_, _ int) {}

// ContextProgress returns a Progress canceled when ctx is done.
// If report is non-nil it receives every progress update.
func ContextProgress(ctx context.Context, report func(done, total int)) Progress {
	return &contextProgress{ctx: ctx, report: report}
}

type contextProgress struct {
	ctx    context.Context
	report func(done, total int)
}

func (p *contextProgress) Canceled() bool {
	return p.ctx.Err() != nil
}

func (p *contextProgress) Report(done, total int) {
	if p.report != nil {
		p.report(done, total)
	}
}

// Join returns a Progress canceled when either a or b is canceled and
// forwarding reports to both.
func Join(a, b Progress) Progress {
	return joined{a, b}
}

type joined [2]Progress

func (j joined) Canceled() bool {
	return j[0].Canceled() || j[1].Canceled()
}

func (j joined) Report(done, total int) {
	j[0].Report(done, total)
	j[1].Report(done, total)
}
