package player

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/songmap/internal/deps"
	"github.com/agentstation/songmap/pkg/errors"
	"github.com/agentstation/songmap/pkg/songs"
)

// DefaultApp is the scriptable application driven by OSAScript.
const DefaultApp = "Music"

// osascriptDep is checked before the first script runs.
var osascriptDep = deps.Dependency{
	Name:          "osascript",
	DisplayName:   "AppleScript runner",
	CheckCommands: []string{"osascript"},
	InstallHint:   "the live player adapters need macOS",
}

// AppleScript error numbers.
const (
	errCantGet = "-1728"
	errCantSet = "-10006"
)

type propertyKind int

const (
	kindText propertyKind = iota
	kindNumber
	kindFile
	kindDate
)

// properties are the track properties OSAScript reads and writes.
var properties = map[string]propertyKind{
	"name":         kindText,
	"location":     kindFile,
	"artist":       kindText,
	"genre":        kindText,
	"bpm":          kindNumber,
	"played count": kindNumber,
	"rating":       kindNumber,
	"year":         kindNumber,
	"date added":   kindDate,
}

// runner executes one AppleScript program and returns its trimmed output.
type runner func(ctx context.Context, script string) (string, error)

// OSAScript drives the macOS Music application through osascript.
type OSAScript struct {
	app string
	run runner
}

// NewOSAScript creates a client for app ("Music" when empty).
func NewOSAScript(app string) (*OSAScript, error) {
	if app == "" {
		app = DefaultApp
	}
	if status := deps.Check(osascriptDep); !status.Available {
		return nil, errors.NewProcessError("locate osascript", "osascript", "", status.CheckError)
	}
	return &OSAScript{app: app, run: runOSAScript}, nil
}

func runOSAScript(ctx context.Context, script string) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	out := strings.TrimSpace(string(output))
	if err != nil {
		return out, classify(out, errors.NewProcessError("run script", "osascript -e "+script, out, err))
	}
	return out, nil
}

// classify maps AppleScript error numbers onto the field error sentinels.
func classify(output string, err error) error {
	switch {
	case strings.Contains(output, "("+errCantGet+")"):
		return fmt.Errorf("%w: %w", errors.ErrUnreadable, err)
	case strings.Contains(output, "("+errCantSet+")"):
		return fmt.Errorf("%w: %w", errors.ErrUnsupported, err)
	}
	return err
}

func (c *OSAScript) tell(ctx context.Context, body string) (string, error) {
	return c.run(ctx, fmt.Sprintf("tell application %s to %s", quote(c.app), body))
}

// Status returns the player state, e.g. "paused".
func (c *OSAScript) Status(ctx context.Context) (string, error) {
	return c.tell(ctx, "get player state as string")
}

// Jump starts playing the track at index of the library playlist.
func (c *OSAScript) Jump(ctx context.Context, index int) error {
	target := fmt.Sprintf("track %d", index)
	if index == -1 {
		target = "last track"
	}
	_, err := c.tell(ctx, "play "+target+" of library playlist 1")
	return err
}

// Next skips to the next track.
func (c *OSAScript) Next(ctx context.Context) error {
	_, err := c.tell(ctx, "next track")
	return err
}

// Play resumes playback.
func (c *OSAScript) Play(ctx context.Context) error {
	_, err := c.tell(ctx, "play")
	return err
}

// SetVolume sets the sound volume (0-100).
func (c *OSAScript) SetVolume(ctx context.Context, volume int) error {
	_, err := c.tell(ctx, fmt.Sprintf("set sound volume to %d", volume))
	return err
}

// CurrentIndex returns the index of the current track.
func (c *OSAScript) CurrentIndex(ctx context.Context) (int, error) {
	out, err := c.tell(ctx, "get index of current track")
	if err != nil {
		return 0, err
	}
	index, err := strconv.Atoi(out)
	if err != nil {
		return 0, errors.WrapParse("osascript", "", err)
	}
	return index, nil
}

// TrackKeys lists the properties TrackValue can read.
func (c *OSAScript) TrackKeys(context.Context) ([]string, error) {
	keys := make([]string, 0, len(properties))
	for _, f := range songs.Fields() {
		if property, ok := songs.PlayerProperty(f); ok {
			if _, known := properties[property]; known {
				keys = append(keys, property)
			}
		}
	}
	return keys, nil
}

// TrackValue reads one property of the current track.
func (c *OSAScript) TrackValue(ctx context.Context, key string) (any, error) {
	kind, ok := properties[key]
	if !ok {
		return nil, errors.NewFieldError("get", key, errors.ErrUnsupported)
	}

	var body string
	switch kind {
	case kindFile:
		body = "get POSIX path of (get location of current track)"
	case kindDate:
		body = fmt.Sprintf("get (get %s of current track) as «class isot» as string", key)
	default:
		body = fmt.Sprintf("get %s of current track", key)
	}

	out, err := c.tell(ctx, body)
	if err != nil {
		return nil, errors.NewFieldError("get", key, err)
	}
	if out == "missing value" {
		return nil, errors.NewFieldError("get", key, errors.ErrUnreadable)
	}
	if kind == kindNumber {
		n, err := strconv.Atoi(out)
		if err != nil {
			return nil, errors.NewFieldError("get", key, errors.WrapParse("osascript", "", err))
		}
		return n, nil
	}
	return out, nil
}

// SetTrackValue writes one property of the current track.
func (c *OSAScript) SetTrackValue(ctx context.Context, key string, value any) error {
	kind, ok := properties[key]
	if !ok || kind == kindDate {
		return errors.NewFieldError("set", key, errors.ErrUnsupported)
	}

	var literal string
	switch v := value.(type) {
	case string:
		literal = quote(v)
		if kind == kindFile {
			literal = "POSIX file " + literal
		}
	case int:
		literal = strconv.Itoa(v)
	case time.Time:
		return errors.NewFieldError("set", key, errors.ErrUnsupported)
	default:
		return errors.NewFieldError("set", key, errors.NewTypeError(key, "text or number", value))
	}

	if _, err := c.tell(ctx, fmt.Sprintf("set %s of current track to %s", key, literal)); err != nil {
		return errors.NewFieldError("set", key, err)
	}
	return nil
}

// Dismiss sends an escape key press to the frontmost window.
func (c *OSAScript) Dismiss(ctx context.Context) error {
	_, err := c.run(ctx, `tell application "System Events" to key code 53`)
	return err
}

// quote renders s as an AppleScript string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
