// Command diffutils reads unified and git patches and shows, checks, or
// exports what they change.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/diffutils"
	"github.com/fwojciec/diffutils/bubbletea"
	"github.com/fwojciec/diffutils/chroma"
	"github.com/fwojciec/diffutils/clipboard"
	"github.com/fwojciec/diffutils/fs"
	"github.com/fwojciec/diffutils/git"
	"github.com/fwojciec/diffutils/gitdiff"
	"github.com/fwojciec/diffutils/jsonl"
	"github.com/fwojciec/diffutils/lipgloss"
	"github.com/fwojciec/diffutils/patch"
	"github.com/fwojciec/diffutils/progressbar"
	"github.com/fwojciec/diffutils/worddiff"
	"github.com/fwojciec/diffutils/yaml"
	"github.com/fwojciec/diffutils/zap"
	zaplib "go.uber.org/zap"
)

// Globals are the flags shared by every command. Set flags override the
// config file.
type Globals struct {
	Config     string `help:"Config file. Defaults to ~/.config/diffutils/config.yaml." type:"path" placeholder:"PATH"`
	Engine     string `help:"Patch parser: native or gitdiff." placeholder:"NAME"`
	Theme      string `help:"Color theme: dark or light." placeholder:"NAME"`
	LogFile    string `help:"Append JSON logs to this file." type:"path" placeholder:"PATH"`
	Debug      bool   `help:"Include debug events in the log."`
	Cache      bool   `help:"Reuse earlier parses of identical patch text."`
	SideBySide bool   `short:"s" help:"Open the viewer in side-by-side layout."`
}

var cli struct {
	Globals

	View   ViewCmd   `cmd:"" default:"withargs" help:"Show a patch in the terminal viewer."`
	Stat   StatCmd   `cmd:"" help:"Print added and removed line counts per file."`
	Check  CheckCmd  `cmd:"" help:"Check that a patch parses and its hunks are consistent."`
	Export ExportCmd `cmd:"" help:"Write a parsed patch as JSON lines, one file per line."`
	Format FormatCmd `cmd:"" help:"Print a patch back in canonical form."`
	Show   ShowCmd   `cmd:"" help:"Show the patch of a git revision."`
	Diff   DiffCmd   `cmd:"" help:"Show the output of git diff."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("diffutils"),
		kong.Description("Read unified and git patches."),
		kong.ShortUsageOnError(),
	)

	cfg, err := loadConfig(cli.Globals)
	kctx.FatalIfErrorf(err)

	logger, err := zap.NewLogger(cfg.Log.File, cfg.Log.Debug)
	kctx.FatalIfErrorf(err)

	app, err := newApp(cfg, cli.SideBySide, logger)
	kctx.FatalIfErrorf(err)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	kctx.BindTo(ctx, (*context.Context)(nil))

	err = kctx.Run(app)
	cancel()
	_ = logger.Sync()
	kctx.FatalIfErrorf(err)
}

// loadConfig reads the config file and applies the flags on top of it.
func loadConfig(g Globals) (diffutils.Config, error) {
	var (
		cfg diffutils.Config
		err error
	)
	if g.Config != "" {
		cfg, err = yaml.Load(g.Config)
	} else {
		cfg, err = yaml.Global()
	}
	if err != nil {
		return cfg, err
	}

	if g.Engine != "" {
		cfg.Engine = g.Engine
	}
	if g.Theme != "" {
		cfg.Theme = g.Theme
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}
	if g.Debug {
		cfg.Log.Debug = true
	}
	if g.Cache {
		cfg.Cache = true
	}
	return cfg, nil
}

// newApp wires the production implementations selected by cfg.
func newApp(cfg diffutils.Config, sideBySide bool, logger *zaplib.Logger) (*App, error) {
	reader, err := newReader(cfg.Engine, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Cache {
		dir := filepath.Join(fs.DefaultCacheDir(), cfg.Engine)
		reader = fs.NewCachingReader(reader, dir, jsonl.NewSaver(), jsonl.NewLoader())
	}

	theme, err := lipgloss.ThemeByName(cfg.Theme)
	if err != nil {
		return nil, err
	}

	opts := []bubbletea.ModelOption{
		bubbletea.WithTheme(theme),
		bubbletea.WithSideBySide(sideBySide),
		bubbletea.WithClipboard(clipboard.Parse(cfg.Clipboard)),
	}
	if cfg.Syntax {
		tokenizer, err := chroma.NewTokenizer(chroma.StyleFromPalette(theme.Palette()))
		if err != nil {
			return nil, err
		}
		opts = append(opts,
			bubbletea.WithLanguageDetector(chroma.NewDetector()),
			bubbletea.WithTokenizer(tokenizer),
		)
	}
	if cfg.WordDiff {
		opts = append(opts, bubbletea.WithWordDiffer(worddiff.NewDiffer()))
	}

	app := &App{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Reader: reader,
		Viewer: bubbletea.NewViewer(opts...),
		Git:    git.NewRunner(),
		Saver:  jsonl.NewSaver(),
		Loader: jsonl.NewLoader(),
		Logger: logger,
	}
	app.NewProgress = func(ctx context.Context, description string) diffutils.Progress {
		return progressbar.New(ctx, app.Stderr, description)
	}
	if stdinPiped() {
		app.Stdin = os.Stdin
	}
	return app, nil
}

func newReader(engine string, logger *zaplib.Logger) (diffutils.PatchReader, error) {
	switch engine {
	case diffutils.EngineNative:
		return patch.NewReader(patch.WithLogger(logger)), nil
	case diffutils.EngineGitDiff:
		return gitdiff.NewParser(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", engine)
	}
}

// stdinPiped reports whether stdin is a pipe or file rather than a terminal.
func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
