package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"text/tabwriter"

	"github.com/fwojciec/diffutils"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoInput is returned when a command needs a patch but no file was named
// and nothing is piped on stdin.
var ErrNoInput = errors.New("no input: name a patch file or pipe one on stdin")

// ErrCheckFailed is returned by Check when the patch has problems.
var ErrCheckFailed = errors.New("check failed")

// ErrStdinRepeated is returned by Stat when stdin is named more than once.
var ErrStdinRepeated = errors.New("stdin can only be read once")

// App encapsulates the application logic for testing.
type App struct {
	Stdin  io.Reader // nil when stdin is a terminal
	Stdout io.Writer
	Stderr io.Writer

	Reader diffutils.PatchReader
	Viewer diffutils.Viewer
	Git    diffutils.GitRunner
	Saver  diffutils.DiffSaver
	Loader diffutils.DiffLoader
	Logger *zap.Logger

	// NewProgress creates the progress handle for one parse. When nil,
	// parses are only canceled by their context.
	NewProgress func(ctx context.Context, description string) diffutils.Progress
}

// View parses the patch at path, or stdin when path is empty, and displays it.
func (a *App) View(ctx context.Context, path string) error {
	diff, err := a.read(ctx, path)
	if err != nil {
		return err
	}
	return a.view(ctx, diff)
}

// ViewSaved displays a diff previously written by Export.
func (a *App) ViewSaved(ctx context.Context, path string) error {
	diff, err := a.Loader.Load(path)
	if err != nil {
		return err
	}
	return a.view(ctx, diff)
}

// Show displays the patch introduced by rev in the repository at repo.
func (a *App) Show(ctx context.Context, repo, rev string) error {
	out, err := a.Git.Show(ctx, repo, rev)
	if err != nil {
		return err
	}
	diff, err := a.parse(ctx, out, rev)
	if err != nil {
		return err
	}
	return a.view(ctx, diff)
}

// Diff displays the output of "git diff args..." in the repository at repo.
func (a *App) Diff(ctx context.Context, repo string, args []string) error {
	out, err := a.Git.Diff(ctx, repo, args...)
	if err != nil {
		return err
	}
	diff, err := a.parse(ctx, out, "git diff")
	if err != nil {
		return err
	}
	return a.view(ctx, diff)
}

func (a *App) view(ctx context.Context, diff *diffutils.Diff) error {
	if len(diff.Files) == 0 {
		return diffutils.ErrNoChanges
	}
	err := a.Viewer.View(ctx, diff)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Stat parses every path concurrently and prints line counts per file,
// followed by the totals.
func (a *App) Stat(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		paths = []string{""}
	}

	// Stdin is read here, once, so the workers never share the reader.
	var stdin string
	switch lo.CountBy(paths, isStdin) {
	case 0:
	case 1:
		text, err := a.load("")
		if err != nil {
			return err
		}
		stdin = text
	default:
		return ErrStdinRepeated
	}

	var (
		mu   sync.Mutex
		done int
	)
	overall, finish := a.progress(ctx, "stat")
	defer finish()

	diffs := make([]*diffutils.Diff, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			text := stdin
			if !isStdin(path) {
				var err error
				if text, err = a.load(path); err != nil {
					return err
				}
			}
			diff, err := a.parseWith(text, displayName(path), diffutils.ContextProgress(gctx, nil))
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(path), err)
			}
			diffs[i] = diff

			mu.Lock()
			done++
			overall.Report(done, len(paths))
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	files := lo.FlatMap(diffs, func(d *diffutils.Diff, _ int) []diffutils.FileData {
		return d.Files
	})

	tw := tabwriter.NewWriter(a.Stdout, 0, 0, 1, ' ', 0)
	for _, f := range files {
		added, removed := f.Stats()
		fmt.Fprintf(tw, "+%d\t-%d\t%s\n", added, removed, f.Path())
	}
	added := lo.SumBy(files, func(f diffutils.FileData) int {
		n, _ := f.Stats()
		return n
	})
	removed := lo.SumBy(files, func(f diffutils.FileData) int {
		_, n := f.Stats()
		return n
	})
	fmt.Fprintf(tw, "+%d\t-%d\t%d files changed\n", added, removed, len(files))
	return tw.Flush()
}

// Check parses the patch and validates every hunk. Problems are printed
// one per line and reported as ErrCheckFailed.
func (a *App) Check(ctx context.Context, path string) error {
	diff, err := a.read(ctx, path)

	var perr *diffutils.PatchError
	if errors.As(err, &perr) {
		for _, f := range perr.Failures {
			fmt.Fprintln(a.Stdout, f)
		}
		return fmt.Errorf("%w: %s could not be parsed", ErrCheckFailed, displayName(path))
	}
	if err != nil {
		return err
	}

	problems := diffutils.Validate(diff)
	for _, p := range problems {
		fmt.Fprintln(a.Stdout, p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %d problems", ErrCheckFailed, len(problems))
	}

	hunks := lo.SumBy(diff.Files, func(f diffutils.FileData) int { return len(f.Hunks) })
	fmt.Fprintf(a.Stdout, "ok: %d files, %d hunks\n", len(diff.Files), hunks)
	return nil
}

// Export parses the patch and saves it to out as JSON lines.
func (a *App) Export(ctx context.Context, path, out string) error {
	diff, err := a.read(ctx, path)
	if err != nil {
		return err
	}
	if err := a.Saver.Save(out, diff); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	a.logger().Info("exported", zap.String("path", out), zap.Int("files", len(diff.Files)))
	return nil
}

// Format parses the patch and prints it back, as a git patch or, when
// unified is set, as a plain unified diff.
func (a *App) Format(ctx context.Context, path string, unified bool) error {
	diff, err := a.read(ctx, path)
	if err != nil {
		return err
	}
	text := diffutils.FormatGit(diff)
	if unified {
		text = diffutils.FormatUnified(diff)
	}
	_, err = io.WriteString(a.Stdout, text)
	return err
}

// read loads the patch at path, or stdin when path is empty or "-", and
// parses it.
func (a *App) read(ctx context.Context, path string) (*diffutils.Diff, error) {
	text, err := a.load(path)
	if err != nil {
		return nil, err
	}
	return a.parse(ctx, text, displayName(path))
}

func (a *App) load(path string) (string, error) {
	var data []byte
	var err error
	switch {
	case !isStdin(path):
		data, err = os.ReadFile(path)
	case a.Stdin != nil:
		data, err = io.ReadAll(a.Stdin)
	default:
		return "", ErrNoInput
	}
	return string(data), err
}

// parse reads text with a progress handle for this one parse.
func (a *App) parse(ctx context.Context, text, description string) (*diffutils.Diff, error) {
	p, finish := a.progress(ctx, description)
	defer finish()
	return a.parseWith(text, description, p)
}

func (a *App) parseWith(text, description string, progress diffutils.Progress) (*diffutils.Diff, error) {
	diff, err := a.Reader.ReadPatchWithProgress(text, progress)
	if err != nil {
		a.logger().Warn("read failed", zap.String("input", description), zap.Error(err))
		return nil, err
	}
	a.logger().Debug("read", zap.String("input", description), zap.Int("files", len(diff.Files)))
	return diff, nil
}

// progress returns a handle canceled with ctx that also drives the
// NewProgress handle, if any, and a func that completes it.
func (a *App) progress(ctx context.Context, description string) (diffutils.Progress, func()) {
	p := diffutils.ContextProgress(ctx, nil)
	if a.NewProgress == nil {
		return p, func() {}
	}
	bar := a.NewProgress(ctx, description)
	finish := func() {
		if f, ok := bar.(interface{ Finish() error }); ok {
			_ = f.Finish()
		}
	}
	return diffutils.Join(p, bar), finish
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func isStdin(path string) bool {
	return path == "" || path == "-"
}

func displayName(path string) string {
	if isStdin(path) {
		return "stdin"
	}
	return path
}
