package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/IdrisFallout/artemis-vcs/pkg/object"
)

// StatusReport is the three-way classification of (index, working tree,
// ignore predicate). A path can appear in both Staged and Modified: staged
// earlier, then changed on disk afterwards. Each list is sorted
// lexicographically.
type StatusReport struct {
	Staged    []string // every path present in the index
	Modified  []string // staged paths whose on-disk content hash differs
	Untracked []string // on disk, not ignored, not staged
}

// Status computes the working tree status for the repository.
//
//  1. Read the staging index.
//  2. Walk the working directory, skipping ignored paths.
//  3. Untracked: on disk but not staged.
//  4. Modified: staged, and the on-disk content now hashes differently
//     (a stat fast path skips hashing when size and nanosecond mtime still
//     match the staged entry).
func (r *Repo) Status() (*StatusReport, error) {
	stg, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	workFiles, err := r.walkWorkTree()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	report := &StatusReport{}

	for path := range stg.Entries {
		report.Staged = append(report.Staged, path)
	}

	for path := range workFiles {
		se, inStaging := stg.Entries[path]
		if !inStaging {
			report.Untracked = append(report.Untracked, path)
			continue
		}

		absPath := filepath.Join(r.RootDir, filepath.FromSlash(path))
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("status: stat %q: %w", path, err)
		}
		if stagingStatMatches(se, info) {
			continue
		}

		content, err := os.ReadFile(absPath)
		if err != nil {
			return nil, fmt.Errorf("status: read %q: %w", path, err)
		}
		if object.HashObject(object.TypeBlob, content) != se.BlobHash {
			report.Modified = append(report.Modified, path)
		}
	}

	sort.Strings(report.Staged)
	sort.Strings(report.Modified)
	sort.Strings(report.Untracked)
	return report, nil
}

// walkWorkTree collects all non-ignored regular files under the repository
// root, keyed by repo-relative slash path.
func (r *Repo) walkWorkTree() (map[string]bool, error) {
	workFiles := make(map[string]bool)
	err := filepath.WalkDir(r.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(r.RootDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if r.Ignore.IsIgnored(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if !d.IsDir() {
			workFiles[rel] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}
	return workFiles, nil
}

// statusRacyCleanWindow guards against edits landing within mtime
// resolution of the staging write: anything modified this recently is
// hashed rather than trusted.
const statusRacyCleanWindow = 2 * time.Second

func stagingStatMatches(se *StagingEntry, info os.FileInfo) bool {
	if se.Size != info.Size() {
		return false
	}
	mod := info.ModTime()
	if time.Since(mod) < statusRacyCleanWindow {
		return false
	}
	// Coarse filesystems report zero nanoseconds; same-second edits would
	// evade a stat-only comparison there.
	if mod.Nanosecond() == 0 {
		return false
	}
	return se.ModTime == mod.UnixNano()
}
