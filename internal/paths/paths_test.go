package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, home, Expand("~"))
	assert.Equal(t, filepath.Join(home, "Music", "lib.xml"), Expand("~/Music/lib.xml"))
	assert.Equal(t, "/abs/path.xml", Expand("/abs/path.xml"))
	assert.Equal(t, "~other/x", Expand("~other/x"))
}

func TestDataDir(t *testing.T) {
	dir := DataDir()
	assert.Equal(t, "songmap", filepath.Base(dir))
	assert.True(t, filepath.IsAbs(dir) || dir == filepath.Join(os.TempDir(), "songmap"))
}
