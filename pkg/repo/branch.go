package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CreateBranch creates a new branch pointing at HEAD's current commit, or
// at nothing (an empty ref) when no commits exist yet. Returns
// ErrBranchExists if the name is taken — including when the existing branch
// is itself unborn.
func (r *Repo) CreateBranch(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("create branch: name is required")
	}

	release, err := r.Lock()
	if err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	defer release()

	// Branch starts where HEAD currently is; empty for a fresh repository.
	target, err := r.ResolveRef("HEAD")
	if err != nil {
		target = ""
	}

	refPath := filepath.Join(r.ArtemisDir, "refs", "heads", name)
	if err := os.MkdirAll(filepath.Dir(refPath), 0o755); err != nil {
		return fmt.Errorf("create branch %q: mkdir: %w", name, err)
	}

	// O_EXCL so an existing ref file — even an empty one — is a conflict.
	f, err := os.OpenFile(refPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("create branch %q: %w", name, ErrBranchExists)
		}
		return fmt.Errorf("create branch %q: %w", name, err)
	}

	if target != "" {
		if _, err := f.WriteString(string(target) + "\n"); err != nil {
			f.Close()
			os.Remove(refPath)
			return fmt.Errorf("create branch %q: write: %w", name, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("create branch %q: close: %w", name, err)
	}
	return nil
}

// ListBranches reads .artemis/refs/heads/ and returns the branch names
// sorted alphabetically.
func (r *Repo) ListBranches() ([]string, error) {
	headsDir := filepath.Join(r.ArtemisDir, "refs", "heads")

	entries, err := os.ReadDir(headsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list branches: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		// Skip in-flight lock files.
		if strings.HasSuffix(e.Name(), ".lock") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// CurrentBranch reads HEAD and returns the branch name if HEAD is a symbolic
// ref (e.g. "ref: refs/heads/main" → "main"). If HEAD is detached it
// returns "".
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}

	const prefix = "refs/heads/"
	if strings.HasPrefix(head, prefix) {
		return strings.TrimPrefix(head, prefix), nil
	}
	return "", nil
}
