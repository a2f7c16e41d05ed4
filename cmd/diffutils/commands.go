package main

import "context"

// ViewCmd opens a patch in the viewer. It is the default command, so
// "git diff | diffutils" works.
type ViewCmd struct {
	File  string `arg:"" optional:"" help:"Patch file. Reads stdin when omitted." type:"path"`
	Saved bool   `help:"FILE was written by export and is read as JSON lines."`
}

func (c *ViewCmd) Run(ctx context.Context, app *App) error {
	if c.Saved {
		return app.ViewSaved(ctx, c.File)
	}
	return app.View(ctx, c.File)
}

type StatCmd struct {
	Files []string `arg:"" optional:"" help:"Patch files, parsed concurrently. Reads stdin when omitted." type:"path"`
}

func (c *StatCmd) Run(ctx context.Context, app *App) error {
	return app.Stat(ctx, c.Files)
}

type CheckCmd struct {
	File string `arg:"" optional:"" help:"Patch file. Reads stdin when omitted." type:"path"`
}

func (c *CheckCmd) Run(ctx context.Context, app *App) error {
	return app.Check(ctx, c.File)
}

type ExportCmd struct {
	File   string `arg:"" optional:"" help:"Patch file. Reads stdin when omitted." type:"path"`
	Output string `short:"o" required:"" help:"JSON lines file to write." type:"path"`
}

func (c *ExportCmd) Run(ctx context.Context, app *App) error {
	return app.Export(ctx, c.File, c.Output)
}

type FormatCmd struct {
	File    string `arg:"" optional:"" help:"Patch file. Reads stdin when omitted." type:"path"`
	Unified bool   `short:"u" help:"Print plain unified headers instead of git headers."`
}

func (c *FormatCmd) Run(ctx context.Context, app *App) error {
	return app.Format(ctx, c.File, c.Unified)
}

type ShowCmd struct {
	Rev  string `arg:"" help:"Revision to show."`
	Repo string `short:"r" default:"." help:"Repository directory." type:"existingdir"`
}

func (c *ShowCmd) Run(ctx context.Context, app *App) error {
	return app.Show(ctx, c.Repo, c.Rev)
}

type DiffCmd struct {
	Args []string `arg:"" optional:"" passthrough:"" help:"Arguments passed to git diff."`
	Repo string   `short:"r" default:"." help:"Repository directory." type:"existingdir"`
}

func (c *DiffCmd) Run(ctx context.Context, app *App) error {
	return app.Diff(ctx, c.Repo, c.Args)
}
