package adapterflags

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/songmap/pkg/adapters"
	"github.com/agentstation/songmap/pkg/errors"
)

func testRegistry() *adapters.Registry {
	reg := adapters.NewRegistry()
	reg.Register(adapters.Descriptor{
		Name: "file-read",
		Type: adapters.TypeReader,
		Doc:  "Read from a file",
		Options: []adapters.Option{
			{Name: "path", Type: adapters.OptionString, Default: "/tmp/in.json"},
			{Name: "limit", Type: adapters.OptionInt, Default: 0},
		},
		NewReader: func(context.Context, adapters.Options) (adapters.Reader, error) { return nil, nil },
	})
	reg.Register(adapters.Descriptor{
		Name: "player-write",
		Type: adapters.TypeWriter,
		Doc:  "Write to the player",
		Options: []adapters.Option{
			{Name: "settle-delay", Type: adapters.OptionDuration, Default: 2 * time.Second},
			{Name: "threshold", Type: adapters.OptionFloat},
			{Name: "dry", Type: adapters.OptionBool, Default: false},
		},
		NewWriter: func(context.Context, adapters.Options) (adapters.Writer, error) { return nil, nil },
	})
	return reg
}

func bind(t *testing.T, config *viper.Viper, args ...string) *Set {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	set, err := BindRegistry(flags, config, testRegistry())
	require.NoError(t, err)
	require.NoError(t, flags.Parse(args))
	return set
}

func TestBindDefinesFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	_, err := BindRegistry(flags, nil, testRegistry())
	require.NoError(t, err)

	for _, name := range []string{"file-read", "file-read-path", "file-read-limit", "player-write", "player-write-settle-delay", "player-write-threshold", "player-write-dry"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
	assert.Equal(t, "/tmp/in.json", flags.Lookup("file-read-path").DefValue)
	assert.Equal(t, "2s", flags.Lookup("player-write-settle-delay").DefValue)
}

func TestBindRegistryByType(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	_, err := BindRegistry(flags, nil, testRegistry(), adapters.TypeReader)
	require.NoError(t, err)
	assert.NotNil(t, flags.Lookup("file-read"))
	assert.Nil(t, flags.Lookup("player-write"))
}

func TestSelectionFromFlags(t *testing.T) {
	set := bind(t, nil, "--file-read", "--file-read-limit", "5", "--player-write", "--player-write-settle-delay", "500ms", "--player-write-threshold", "0.9")

	sel, err := set.Selection()
	require.NoError(t, err)
	assert.Equal(t, []string{"file-read", "player-write"}, sel.Names)
	assert.Equal(t, adapters.Options{"limit": 5}, sel.Options["file-read"])
	assert.Equal(t, adapters.Options{"settle-delay": 500 * time.Millisecond, "threshold": 0.9}, sel.Options["player-write"])

	resolved, err := testRegistry().Resolve(sel)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/in.json", resolved.ReaderOptions.String("path"))
	assert.Equal(t, 5, resolved.ReaderOptions.Int("limit"))
	assert.Equal(t, 500*time.Millisecond, resolved.WriterOptions.Duration("settle-delay"))
}

func TestSelectionPrecedence(t *testing.T) {
	config := viper.New()
	config.Set(ConfigKey("file-read", "enabled"), true)
	config.Set(ConfigKey("file-read", "path"), "/from/config.json")
	config.Set(ConfigKey("file-read", "limit"), 7)

	set := bind(t, config, "--file-read-limit", "3")
	sel, err := set.Selection()
	require.NoError(t, err)

	assert.Equal(t, []string{"file-read"}, sel.Names)
	assert.Equal(t, "/from/config.json", sel.Options["file-read"]["path"])
	assert.Equal(t, 3, sel.Options["file-read"]["limit"])
}

func TestSelectionFlagDisablesConfig(t *testing.T) {
	config := viper.New()
	config.Set(ConfigKey("file-read", "enabled"), true)

	set := bind(t, config, "--file-read=false")
	sel, err := set.Selection()
	require.NoError(t, err)
	assert.Empty(t, sel.Names)
}

func TestSelectionMissingWriterIsConfigError(t *testing.T) {
	set := bind(t, nil, "--file-read")
	sel, err := set.Selection()
	require.NoError(t, err)

	_, err = testRegistry().Resolve(sel)
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestBindRejectsUntypedOption(t *testing.T) {
	d := adapters.Descriptor{
		Name:    "bad-read",
		Type:    adapters.TypeReader,
		Options: []adapters.Option{{Name: "path"}},
	}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	_, err := Bind(flags, nil, []adapters.Descriptor{d})

	var paramErr *errors.AdapterParameterError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "path", paramErr.Parameter)
}
