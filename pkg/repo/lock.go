package repo

import (
	"fmt"
	"os"
	"path/filepath"
)

// Lock acquires the repository-wide single-writer lock and returns a
// release function. Every mutating operation (stage, unstage, commit,
// checkout, branch creation) serializes on it; read-only operations and the
// write-once object store do not need it.
//
// The lock is an advisory .artemis/lock file created with O_EXCL. A crashed
// process can leave it behind; acquisition times out rather than blocking
// forever so the stale file is at least diagnosable.
func (r *Repo) Lock() (func(), error) {
	lockPath := filepath.Join(r.ArtemisDir, "lock")
	f, err := acquireLockFile(lockPath)
	if err != nil {
		return nil, fmt.Errorf("repository lock: %w", err)
	}
	f.Close()
	return func() { _ = os.Remove(lockPath) }, nil
}
