package repo

import (
	"fmt"

	"github.com/IdrisFallout/artemis-vcs/pkg/object"
)

// BuildTree snapshots the staging area into a tree object and returns its
// hash. The tree is flat and canonical: entries are serialized sorted by
// path, so two staging sessions ending in the same path→content pairs
// produce the same tree hash no matter the order files were staged in.
// That canonicalization is what lets identical snapshots dedup across
// commits and branches.
func (r *Repo) BuildTree(s *Staging) (object.Hash, error) {
	tr := &object.TreeObj{Entries: make([]object.TreeEntry, 0, len(s.Entries))}
	for path, entry := range s.Entries {
		tr.Entries = append(tr.Entries, object.TreeEntry{
			Path:     path,
			BlobHash: entry.BlobHash,
		})
	}

	h, err := r.Store.WriteTree(tr)
	if err != nil {
		return "", fmt.Errorf("build tree: %w", err)
	}
	return h, nil
}

// TreeEntries reads a tree object and returns its path→hash mapping.
func (r *Repo) TreeEntries(h object.Hash) (map[string]object.Hash, error) {
	tr, err := r.Store.ReadTree(h)
	if err != nil {
		return nil, fmt.Errorf("tree entries %s: %w", h, err)
	}
	entries := make(map[string]object.Hash, len(tr.Entries))
	for _, e := range tr.Entries {
		entries[e.Path] = e.BlobHash
	}
	return entries, nil
}

// commitTreeEntries resolves a commit hash to its tree's path→hash mapping.
func (r *Repo) commitTreeEntries(commitHash object.Hash) (map[string]object.Hash, error) {
	c, err := r.Store.ReadCommit(commitHash)
	if err != nil {
		return nil, err
	}
	return r.TreeEntries(c.TreeHash)
}
