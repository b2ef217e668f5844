// Package matcher filters file names with glob or regex patterns. The tag
// scan uses it to pick audio files out of a music folder.
package matcher

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Auto attempts to detect the pattern type.
	Auto
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Matcher matches a single input against one compiled pattern.
type Matcher interface {
	Match(input string) bool
	Pattern() string
	Type() PatternType
}

// Options configures the matcher behavior.
type Options struct {
	// CaseInsensitive makes "*.MP3" and "*.mp3" equivalent.
	CaseInsensitive bool
	// BaseName matches against filepath.Base of the input.
	BaseName bool
}

type matcher struct {
	pattern         string
	patternType     PatternType
	compiled        *regexp.Regexp
	globPattern     string
	caseInsensitive bool
	baseName        bool
}

// New creates a Matcher for pattern.
func New(patternType PatternType, pattern string, opts *Options) (Matcher, error) {
	if opts == nil {
		opts = &Options{}
	}

	m := &matcher{
		pattern:         pattern,
		patternType:     patternType,
		caseInsensitive: opts.CaseInsensitive,
		baseName:        opts.BaseName,
	}
	if patternType == Auto {
		m.patternType = detectPatternType(pattern)
	}

	switch m.patternType {
	case Glob:
		m.globPattern = pattern
		if m.caseInsensitive {
			m.globPattern = strings.ToLower(pattern)
		}
		if _, err := filepath.Match(m.globPattern, ""); err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
	case Regex:
		expr := pattern
		if m.caseInsensitive && !strings.HasPrefix(expr, "(?i)") {
			expr = "(?i)" + expr
		}
		compiled, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		m.compiled = compiled
	default:
		return nil, fmt.Errorf("unsupported pattern type: %v", patternType)
	}
	return m, nil
}

// Match reports whether input matches.
func (m *matcher) Match(input string) bool {
	if m.baseName {
		input = filepath.Base(input)
	}
	switch m.patternType {
	case Glob:
		if m.caseInsensitive {
			input = strings.ToLower(input)
		}
		ok, _ := filepath.Match(m.globPattern, input)
		return ok
	case Regex:
		return m.compiled.MatchString(input)
	}
	return false
}

// Pattern returns the original pattern string.
func (m *matcher) Pattern() string {
	return m.pattern
}

// Type returns the resolved pattern type.
func (m *matcher) Type() PatternType {
	return m.patternType
}

// detectPatternType guesses regex when the pattern uses syntax glob lacks.
func detectPatternType(pattern string) PatternType {
	for _, indicator := range []string{"^", "$", "\\d", "\\w", "\\s", "(?", "{", "}", "+", "|", "("} {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	return Glob
}

// Any matches when at least one of its matchers does.
type Any []Matcher

// Match implements the any-of semantics.
func (a Any) Match(input string) bool {
	for _, m := range a {
		if m.Match(input) {
			return true
		}
	}
	return false
}

// ParseList builds an Any from a comma separated pattern list such as
// "*.mp3,*.m4a".
func ParseList(list string, opts *Options) (Any, error) {
	var out Any
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		m, err := New(Auto, p, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty pattern list %q", list)
	}
	return out, nil
}
