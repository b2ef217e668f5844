package player

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"github.com/agentstation/songmap/pkg/constants"
	"github.com/agentstation/songmap/pkg/errors"
)

// SkipLog is the side file of player indexes that could not be reached.
// It holds a sorted JSON array of unique ints and grows across runs. It is
// an audit trail for the operator and is never read back during a run.
type SkipLog struct {
	path string
}

// NewSkipLog returns the skip log of adapter inside dir.
func NewSkipLog(dir, adapter string) *SkipLog {
	return &SkipLog{path: filepath.Join(dir, adapter+constants.SkippedFileSuffix)}
}

// Path returns the side file location.
func (l *SkipLog) Path() string {
	return l.path
}

// Indexes returns the recorded indexes. A missing file is empty.
func (l *SkipLog) Indexes() ([]int, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", l.path, err)
	}

	var indexes []int
	if err := json.Unmarshal(data, &indexes); err != nil {
		return nil, errors.WrapParse("json", l.path, err)
	}
	return indexes, nil
}

// Add records index. The file is rewritten without locking.
func (l *SkipLog) Add(index int) error {
	if err := os.MkdirAll(filepath.Dir(l.path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(l.path), err)
	}

	indexes, err := l.Indexes()
	if err != nil {
		return err
	}
	indexes = append(indexes, index)
	slices.Sort(indexes)
	indexes = slices.Compact(indexes)

	data, err := json.Marshal(indexes)
	if err != nil {
		return errors.WrapParse("json", l.path, err)
	}
	if err := os.WriteFile(l.path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", l.path, err)
	}
	return nil
}
