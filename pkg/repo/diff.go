package repo

import (
	"fmt"
	"sort"

	"github.com/IdrisFallout/artemis-vcs/pkg/object"
)

// DiffKind classifies what happened to a path between two snapshots.
type DiffKind int

const (
	DiffAdded    DiffKind = iota // present only in the second snapshot
	DiffDeleted                  // present only in the first snapshot
	DiffModified                 // present in both with different blob hashes
)

func (k DiffKind) String() string {
	switch k {
	case DiffAdded:
		return "added"
	case DiffDeleted:
		return "deleted"
	case DiffModified:
		return "modified"
	}
	return "unknown"
}

// DiffEntry records one changed path between two commit trees.
type DiffEntry struct {
	Path string
	Kind DiffKind
	// OldHash/NewHash carry the blob hashes involved; empty on the side the
	// path does not exist in.
	OldHash object.Hash
	NewHash object.Hash
}

// Diff compares the trees of two targets (branch names or commit hashes)
// and reports added, deleted, and modified paths, sorted by path. Paths
// whose hashes agree in both trees are omitted.
func (r *Repo) Diff(targetA, targetB string) ([]DiffEntry, error) {
	hashA, err := r.resolveCommitTarget(targetA)
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	hashB, err := r.resolveCommitTarget(targetB)
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}

	treeA, err := r.commitTreeEntries(hashA)
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	treeB, err := r.commitTreeEntries(hashB)
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}

	var entries []DiffEntry
	for path, oldHash := range treeA {
		newHash, inB := treeB[path]
		if !inB {
			entries = append(entries, DiffEntry{Path: path, Kind: DiffDeleted, OldHash: oldHash})
			continue
		}
		if oldHash != newHash {
			entries = append(entries, DiffEntry{Path: path, Kind: DiffModified, OldHash: oldHash, NewHash: newHash})
		}
	}
	for path, newHash := range treeB {
		if _, inA := treeA[path]; !inA {
			entries = append(entries, DiffEntry{Path: path, Kind: DiffAdded, NewHash: newHash})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

// resolveCommitTarget resolves a branch-or-hash target that must name an
// actual commit; an unborn branch is unresolvable for diff purposes.
func (r *Repo) resolveCommitTarget(target string) (object.Hash, error) {
	h, _, err := r.resolveTarget(target)
	if err != nil {
		return "", err
	}
	if h == "" {
		return "", fmt.Errorf("target %q has no commits: %w", target, ErrUnresolvableRef)
	}
	return h, nil
}
