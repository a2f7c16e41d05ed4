// Package progressbar reports patch-reading progress on a terminal using
// schollz/progressbar.
package progressbar

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/diffutils"
	"github.com/schollz/progressbar/v3"
)

// Compile-time interface verification.
var _ diffutils.Progress = (*Progress)(nil)

// Progress is a diffutils.Progress that draws a bar to a writer and is
// canceled when its context is done.
type Progress struct {
	ctx context.Context
	bar *progressbar.ProgressBar
}

// New creates a Progress drawing to w. The bar starts with a length of one
// and takes its real length from the first report.
func New(ctx context.Context, w io.Writer, description string) *Progress {
	bar := progressbar.NewOptions(1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{Saucer: "#", SaucerPadding: " ", BarStart: "|", BarEnd: "|"}),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &Progress{ctx: ctx, bar: bar}
}

// Canceled reports whether the context is done.
func (p *Progress) Canceled() bool {
	return p.ctx.Err() != nil
}

// Report moves the bar to done of total files.
func (p *Progress) Report(done, total int) {
	if p.bar.GetMax() != total {
		p.bar.ChangeMax(total)
	}
	_ = p.bar.Set(done)
}

// Max returns the total the bar currently counts towards.
func (p *Progress) Max() int {
	return p.bar.GetMax()
}

// Finish completes and clears the bar.
func (p *Progress) Finish() error {
	return p.bar.Finish()
}
