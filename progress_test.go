package diffutils_test

import (
	"context"
	"testing"

	"github.com/fwojciec/diffutils"
	"github.com/fwojciec/diffutils/mock"
	"github.com/stretchr/testify/assert"
)

func TestNopProgress(t *testing.T) {
	t.Parallel()

	assert.False(t, diffutils.NopProgress.Canceled())
	diffutils.NopProgress.Report(1, 2)
}

func TestContextProgress(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var reports [][2]int
	p := diffutils.ContextProgress(ctx, func(done, total int) {
		reports = append(reports, [2]int{done, total})
	})

	assert.False(t, p.Canceled())
	p.Report(1, 3)
	cancel()
	assert.True(t, p.Canceled())
	assert.Equal(t, [][2]int{{1, 3}}, reports)
}

func TestContextProgress_NilCallback(t *testing.T) {
	t.Parallel()

	p := diffutils.ContextProgress(context.Background(), nil)

	p.Report(1, 1)
	assert.False(t, p.Canceled())
}

func TestJoin(t *testing.T) {
	t.Parallel()

	t.Run("forwards reports to both", func(t *testing.T) {
		t.Parallel()

		a, b := &mock.Progress{}, &mock.Progress{}

		diffutils.Join(a, b).Report(2, 5)

		assert.Equal(t, [][2]int{{2, 5}}, a.Reports())
		assert.Equal(t, [][2]int{{2, 5}}, b.Reports())
	})

	t.Run("canceled when either is", func(t *testing.T) {
		t.Parallel()

		canceled := &mock.Progress{CanceledFn: func() bool { return true }}
		running := &mock.Progress{}

		assert.True(t, diffutils.Join(canceled, running).Canceled())
		assert.True(t, diffutils.Join(running, canceled).Canceled())
		assert.False(t, diffutils.Join(running, running).Canceled())
	})
}
