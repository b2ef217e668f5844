// Package deps checks that the external programs an adapter shells out to
// are installed.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Dependency is an external program an adapter needs.
type Dependency struct {
	Name          string
	DisplayName   string
	CheckCommands []string
	InstallHint   string
}

// Status is the result of checking one dependency.
type Status struct {
	Available  bool
	Path       string
	CheckError error
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// Check verifies if a dependency is available on the system.
// It tries all CheckCommands in order and returns the first one found.
func Check(dep Dependency) Status {
	for _, cmd := range dep.CheckCommands {
		path, err := lookPath(cmd)
		if err != nil {
			continue
		}
		return Status{Available: true, Path: path}
	}

	status := Status{}
	if len(dep.CheckCommands) > 0 {
		status.CheckError = fmt.Errorf("%s not found in PATH (tried: %s)", dep.DisplayName, strings.Join(dep.CheckCommands, ", "))
		if dep.InstallHint != "" {
			status.CheckError = fmt.Errorf("%w; %s", status.CheckError, dep.InstallHint)
		}
	}
	return status
}
