package clipboard_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	atotto "github.com/atotto/clipboard"
	"github.com/fwojciec/diffutils/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_Copy(t *testing.T) {
	t.Parallel()

	// tee stands in for a clipboard utility that stores stdin.
	if _, err := exec.LookPath("tee"); err != nil {
		t.Skip("tee not available, skipping clipboard test")
	}

	out := filepath.Join(t.TempDir(), "clipboard.txt")
	cb := clipboard.NewCommand("tee", out)
	testContent := "@@ -1 +1 @@\n-old\n+new\n"

	err := cb.Copy(testContent)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, testContent, string(data))
}

func TestCommand_CopyFailure(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}

	err := clipboard.NewCommand("false").Copy("content")

	require.Error(t, err)
}

func TestParse(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &clipboard.System{}, clipboard.Parse(""))
	assert.IsType(t, &clipboard.System{}, clipboard.Parse("   "))
	assert.Equal(t, clipboard.NewCommand("xclip", "-selection", "primary"), clipboard.Parse("xclip -selection primary"))
}

func TestSystem_Copy(t *testing.T) {
	t.Parallel()

	if atotto.Unsupported {
		err := clipboard.NewSystem().Copy("content")
		require.ErrorIs(t, err, clipboard.ErrUnavailable)
		return
	}

	testContent := "test clipboard content from diffutils"

	// A utility can be installed without a display to talk to.
	if err := clipboard.NewSystem().Copy(testContent); err != nil {
		t.Skipf("system clipboard not usable: %v", err)
	}

	got, err := atotto.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, testContent, got)
}
