package repo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Clone copies the repository's object store and ref/HEAD state verbatim
// into destination/.artemis, then restores the working tree there from the
// resolved current commit. The staging index and lock file are deliberately
// not copied: a clone starts with a clean index.
func (r *Repo) Clone(destination string) (*Repo, error) {
	absDest, err := filepath.Abs(destination)
	if err != nil {
		return nil, fmt.Errorf("clone: resolve destination: %w", err)
	}
	destArtemis := filepath.Join(absDest, MarkerDir)
	if _, err := os.Stat(destArtemis); err == nil {
		return nil, fmt.Errorf("clone: repository already exists at %s", destArtemis)
	}
	if err := os.MkdirAll(absDest, 0o755); err != nil {
		return nil, fmt.Errorf("clone: create destination: %w", err)
	}

	// Objects and refs transfer as-is: content addressing guarantees the
	// copied store serves the copied refs.
	for _, sub := range []string{"objects", "refs"} {
		src := filepath.Join(r.ArtemisDir, sub)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := copyDir(src, filepath.Join(destArtemis, sub)); err != nil {
			return nil, fmt.Errorf("clone: copy %s: %w", sub, err)
		}
	}
	for _, name := range []string{"HEAD", "config", "description"} {
		src := filepath.Join(r.ArtemisDir, name)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := copyFile(src, filepath.Join(destArtemis, name), 0o644); err != nil {
			return nil, fmt.Errorf("clone: copy %s: %w", name, err)
		}
	}

	clone, err := Open(absDest)
	if err != nil {
		return nil, fmt.Errorf("clone: open destination: %w", err)
	}

	// Restore the working tree from the cloned HEAD, if any commits exist.
	tip, err := clone.ResolveRef("HEAD")
	if err == nil && tip != "" {
		commit, err := clone.Store.ReadCommit(tip)
		if err != nil {
			return nil, fmt.Errorf("clone: read HEAD commit: %w", err)
		}
		if err := clone.restoreTree(commit.TreeHash, clone.RootDir); err != nil {
			return nil, fmt.Errorf("clone: %w", err)
		}
	}

	return clone, nil
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, info.Mode())
		}
		return copyFile(path, target, info.Mode())
	})
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return nil
}
