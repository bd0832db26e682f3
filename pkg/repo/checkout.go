package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/IdrisFallout/artemis-vcs/pkg/object"
)

// Checkout switches HEAD to the target and restores the target commit's
// tree into the working directory. The target is resolved as a branch name
// first, then as a literal commit hash (detached HEAD).
//
// The restore is staged: every blob is first written to a temp file next to
// its destination, and only after the whole set has been materialized are
// the temp files renamed into place. A failure part-way leaves the working
// tree as it was. Files present in the working tree but absent from the
// target tree are left untouched — checkout does not prune.
func (r *Repo) Checkout(target string) error {
	release, err := r.Lock()
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	defer release()

	targetHash, isBranch, err := r.resolveTarget(target)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	// An unborn branch has no tree to restore; just move HEAD.
	if targetHash != "" {
		commit, err := r.Store.ReadCommit(targetHash)
		if err != nil {
			return fmt.Errorf("checkout: read commit %s: %w", targetHash, err)
		}
		if err := r.restoreTree(commit.TreeHash, r.RootDir); err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
	}

	var headContent string
	if isBranch {
		headContent = "ref: refs/heads/" + target
	} else {
		headContent = string(targetHash)
	}
	if err := r.writeHead(headContent); err != nil {
		return fmt.Errorf("checkout: update HEAD: %w", err)
	}
	return nil
}

// writeHead atomically replaces .artemis/HEAD.
func (r *Repo) writeHead(content string) error {
	headPath := filepath.Join(r.ArtemisDir, "HEAD")
	tmp, err := os.CreateTemp(r.ArtemisDir, ".head-tmp-*")
	if err != nil {
		return fmt.Errorf("write HEAD: tmpfile: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write HEAD: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write HEAD: close: %w", err)
	}
	if err := os.Rename(tmpName, headPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write HEAD: rename: %w", err)
	}
	return nil
}

// restoreTree materializes every file of the given tree under destRoot in
// two phases: write all blobs to temp files, then rename them over their
// targets. Intermediate directories are created as needed.
func (r *Repo) restoreTree(treeHash object.Hash, destRoot string) error {
	tr, err := r.Store.ReadTree(treeHash)
	if err != nil {
		return fmt.Errorf("restore: read tree %s: %w", treeHash, err)
	}

	type pending struct {
		tmpName string
		dest    string
	}
	staged := make([]pending, 0, len(tr.Entries))
	cleanup := func() {
		for _, p := range staged {
			os.Remove(p.tmpName)
		}
	}

	// Phase 1: materialize everything beside its destination.
	for _, e := range tr.Entries {
		dest := filepath.Join(destRoot, filepath.FromSlash(e.Path))
		dir := filepath.Dir(dest)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			cleanup()
			return fmt.Errorf("restore: mkdir %q: %w", dir, err)
		}

		blob, err := r.Store.ReadBlob(e.BlobHash)
		if err != nil {
			cleanup()
			return fmt.Errorf("restore: read blob for %q: %w", e.Path, err)
		}

		tmp, err := os.CreateTemp(dir, ".artemis-restore-*")
		if err != nil {
			cleanup()
			return fmt.Errorf("restore: tmpfile for %q: %w", e.Path, err)
		}
		if _, err := tmp.Write(blob.Data); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			cleanup()
			return fmt.Errorf("restore: write %q: %w", e.Path, err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmp.Name())
			cleanup()
			return fmt.Errorf("restore: close %q: %w", e.Path, err)
		}
		if err := os.Chmod(tmp.Name(), 0o644); err != nil {
			os.Remove(tmp.Name())
			cleanup()
			return fmt.Errorf("restore: chmod %q: %w", e.Path, err)
		}
		staged = append(staged, pending{tmpName: tmp.Name(), dest: dest})
	}

	// Phase 2: swap into place.
	for _, p := range staged {
		if err := os.Rename(p.tmpName, p.dest); err != nil {
			cleanup()
			return fmt.Errorf("restore: rename into %q: %w", p.dest, err)
		}
	}
	return nil
}
