// Package clipboard provides clipboard operations via the system clipboard
// or a user-chosen command.
package clipboard

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/diffutils"
)

// ErrUnavailable is returned when no clipboard utility is installed.
var ErrUnavailable = errors.New("no clipboard utility found")

// Compile-time interface verification.
var (
	_ diffutils.Clipboard = (*System)(nil)
	_ diffutils.Clipboard = (*Command)(nil)
)

// System implements Clipboard with whichever utility atotto/clipboard finds
// for the platform (pbcopy, xclip, xsel, wl-copy and others).
type System struct{}

// NewSystem returns the system clipboard.
func NewSystem() *System {
	return &System{}
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(content)
}

// Command implements Clipboard by piping content into an external command.
type Command struct {
	name string
	args []string
}

// NewCommand returns a Command that runs name with args.
func NewCommand(name string, args ...string) *Command {
	return &Command{name: name, args: args}
}

// Parse returns a Command for a command line such as
// "xclip -selection primary". An empty line yields the system clipboard.
func Parse(commandLine string) diffutils.Clipboard {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return NewSystem()
	}
	return NewCommand(fields[0], fields[1:]...)
}

// Copy runs the command with content on its stdin.
func (c *Command) Copy(content string) error {
	cmd := exec.Command(c.name, c.args...)
	cmd.Stdin = strings.NewReader(content)
	return cmd.Run()
}
