package migrate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/songmap/internal/adapters/docstore"
	"github.com/agentstation/songmap/internal/cmd/application"
	driver "github.com/agentstation/songmap/internal/migrate"
	"github.com/agentstation/songmap/pkg/errors"
	"github.com/agentstation/songmap/pkg/logging"
	"github.com/agentstation/songmap/pkg/songs"
)

func seedStore(t *testing.T, path string, names ...string) {
	t.Helper()
	store, err := docstore.OpenJSON(path)
	require.NoError(t, err)
	for _, name := range names {
		s := songs.NewSong(name, "/old/"+name+".mp3")
		s.Artist = "Nina Simone"
		require.NoError(t, store.Insert(context.Background(), docstore.FromSong(s)))
	}
	require.NoError(t, store.Close())
}

func readStore(t *testing.T, path string) []*songs.Song {
	t.Helper()
	store, err := docstore.OpenJSON(path)
	require.NoError(t, err)
	r := docstore.NewReader("check", store)
	defer func() { _ = r.Close() }()

	var out []*songs.Song
	for s, err := range r.Songs(context.Background()) {
		require.NoError(t, err)
		out = append(out, s)
	}
	return out
}

func mockApp(stdout io.Writer) *application.Mock {
	return &application.Mock{
		OutputFormatFunc: func() string { return "json" },
		StdoutFunc:       func() io.Writer { return stdout },
	}
}

func TestMigrateCommand(t *testing.T) {
	logging.DisableLoggingForTest(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")
	seedStore(t, in, "Sinnerman", "Feeling Good")

	var stdout bytes.Buffer
	cmd := NewCommand(mockApp(&stdout))
	cmd.SetArgs([]string{"--json-read", "--json-read-path", in, "--json-write", "--json-write-path", out})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var result driver.Result
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Equal(t, driver.Result{Read: 2, Written: 2}, result)

	copied := readStore(t, out)
	require.Len(t, copied, 2)
	assert.Equal(t, "Sinnerman", copied[0].Name)
	assert.Equal(t, "Feeling Good", copied[1].Name)
}

func TestMigrateCommandNeedsWriter(t *testing.T) {
	logging.DisableLoggingForTest(t)
	in := filepath.Join(t.TempDir(), "in.json")

	cmd := NewCommand(mockApp(io.Discard))
	cmd.SetArgs([]string{"--json-read", "--json-read-path", in})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
	assert.Contains(t, err.Error(), "you need to specify one writer")
}

func TestFixLocationRequiresFolder(t *testing.T) {
	cmd := NewFixLocationCommand(mockApp(io.Discard))
	cmd.SetArgs([]string{"--json-read", "--json-write"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "folder")
}

func TestFixLocationKeepsUnmatchedLocations(t *testing.T) {
	logging.DisableLoggingForTest(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")
	seedStore(t, in, "Sinnerman")

	var stdout bytes.Buffer
	cmd := NewFixLocationCommand(mockApp(&stdout))
	cmd.SetArgs([]string{"--folder", t.TempDir(), "--json-read", "--json-read-path", in, "--json-write", "--json-write-path", out})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var result driver.Result
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Equal(t, driver.Result{Read: 1, Written: 1, Unlocated: 1}, result)

	copied := readStore(t, out)
	require.Len(t, copied, 1)
	assert.Equal(t, "/old/Sinnerman.mp3", copied[0].Location)
}
