// Package all imports every adapter implementation so that each one
// registers itself with the default registry. Add a new adapter with one
// import line here.
package all

import (
	_ "github.com/agentstation/songmap/internal/adapters/docstore"
	_ "github.com/agentstation/songmap/internal/adapters/library"
	_ "github.com/agentstation/songmap/internal/adapters/player"
)
