package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		patternType PatternType
		want        PatternType
		wantErr     bool
	}{
		{name: "glob", pattern: "*.mp3", patternType: Glob, want: Glob},
		{name: "regex", pattern: `^track\d+\.mp3$`, patternType: Regex, want: Regex},
		{name: "invalid regex", pattern: "[unclosed", patternType: Regex, wantErr: true},
		{name: "auto glob", pattern: "*.m4a", patternType: Auto, want: Glob},
		{name: "auto regex", pattern: `\.(mp3|m4a)$`, patternType: Auto, want: Regex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.patternType, tt.pattern, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Type())
			assert.Equal(t, tt.pattern, m.Pattern())
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		opts    *Options
		input   string
		want    bool
	}{
		{"glob hit", "*.mp3", nil, "song.mp3", true},
		{"glob miss", "*.mp3", nil, "song.flac", false},
		{"glob case sensitive", "*.mp3", nil, "SONG.MP3", false},
		{"glob case insensitive", "*.mp3", &Options{CaseInsensitive: true}, "SONG.MP3", true},
		{"glob full path without base name", "*.mp3", nil, "/music/a/song.mp3", false},
		{"glob base name", "*.mp3", &Options{BaseName: true}, "/music/a/song.mp3", true},
		{"regex", `\.(mp3|m4a)$`, nil, "/music/a/song.m4a", true},
		{"regex case insensitive", `\.mp3$`, &Options{CaseInsensitive: true}, "x.MP3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(Auto, tt.pattern, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.input))
		})
	}
}

func TestParseList(t *testing.T) {
	audio, err := ParseList("*.mp3, *.m4a,", &Options{CaseInsensitive: true, BaseName: true})
	require.NoError(t, err)
	assert.Len(t, audio, 2)
	assert.True(t, audio.Match("/x/y.MP3"))
	assert.True(t, audio.Match("/x/y.m4a"))
	assert.False(t, audio.Match("/x/y.flac"))

	_, err = ParseList(" , ", nil)
	assert.Error(t, err)

	_, err = ParseList("*.mp3,(unclosed", nil)
	assert.Error(t, err)
}

func TestPatternTypeString(t *testing.T) {
	assert.Equal(t, "glob", Glob.String())
	assert.Equal(t, "regex", Regex.String())
	assert.Equal(t, "auto", Auto.String())
	assert.Equal(t, "unknown", PatternType(9).String())
}
