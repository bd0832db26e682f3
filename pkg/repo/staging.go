package repo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"

	"github.com/IdrisFallout/artemis-vcs/pkg/object"
)

// StagingEntry records the staged state of a single file.
type StagingEntry struct {
	Path     string      `json:"path"`
	BlobHash object.Hash `json:"blob_hash"`
	ModTime  int64       `json:"mod_time"` // unix nanoseconds
	Size     int64       `json:"size"`
}

// Staging holds the full staging area (index) for a repository.
type Staging struct {
	Entries map[string]*StagingEntry `json:"entries"`
}

// indexPath returns the filesystem path to the staging index file.
func (r *Repo) indexPath() string {
	return filepath.Join(r.ArtemisDir, "index")
}

// The index file starts with one "xxh3 <hex>" line checksumming the JSON
// payload that follows. Together with the temp+rename write this means a
// torn or corrupted index is detected on read instead of being half-parsed.
const indexChecksumPrefix = "xxh3 "

// ReadStaging loads the staging area from .artemis/index. A missing file
// yields an empty Staging (no error); a checksum mismatch is an error.
func (r *Repo) ReadStaging() (*Staging, error) {
	raw, err := os.ReadFile(r.indexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Staging{Entries: make(map[string]*StagingEntry)}, nil
		}
		return nil, fmt.Errorf("read staging: %w", err)
	}

	nl := bytes.IndexByte(raw, '\n')
	if nl < 0 || !bytes.HasPrefix(raw, []byte(indexChecksumPrefix)) {
		return nil, fmt.Errorf("read staging: missing checksum header")
	}
	wantSum := string(raw[len(indexChecksumPrefix):nl])
	payload := raw[nl+1:]
	if gotSum := indexChecksum(payload); gotSum != wantSum {
		return nil, fmt.Errorf("read staging: checksum mismatch (index corrupt): want %s, got %s", wantSum, gotSum)
	}

	var stg Staging
	if err := json.Unmarshal(payload, &stg); err != nil {
		return nil, fmt.Errorf("read staging: unmarshal: %w", err)
	}
	if stg.Entries == nil {
		stg.Entries = make(map[string]*StagingEntry)
	}
	return &stg, nil
}

// WriteStaging atomically writes the staging area to .artemis/index.
func (r *Repo) WriteStaging(s *Staging) error {
	payload, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("write staging: marshal: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(indexChecksumPrefix)
	buf.WriteString(indexChecksum(payload))
	buf.WriteByte('\n')
	buf.Write(payload)

	tmp, err := os.CreateTemp(r.ArtemisDir, ".index-tmp-*")
	if err != nil {
		return fmt.Errorf("write staging: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write staging: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write staging: close: %w", err)
	}

	if err := os.Rename(tmpName, r.indexPath()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write staging: rename: %w", err)
	}
	return nil
}

func indexChecksum(payload []byte) string {
	return fmt.Sprintf("%x", xxh3.Hash128(payload).Bytes())
}

// ClearStaging empties the index. Invoked after a successful commit.
func (r *Repo) ClearStaging() error {
	return r.WriteStaging(&Staging{Entries: make(map[string]*StagingEntry)})
}

// Add stages the given file paths. Per-path failures (missing file, ignored
// path) are reported as warnings and do not abort the batch; only
// infrastructure failures (object store or index I/O) return an error.
// Re-staging an unchanged path is a no-op; a changed path updates its hash.
func (r *Repo) Add(paths []string) ([]Warning, error) {
	release, err := r.Lock()
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}
	defer release()

	stg, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}

	var warnings []Warning
	changed := false

	for _, p := range paths {
		relPath, err := r.repoRelPath(p)
		if err != nil {
			warnings = append(warnings, Warning{Path: p, Err: err})
			continue
		}

		if r.Ignore.IsIgnored(relPath) {
			warnings = append(warnings, Warning{Path: relPath, Err: ErrIgnored})
			continue
		}

		absPath := filepath.Join(r.RootDir, filepath.FromSlash(relPath))
		info, err := os.Stat(absPath)
		if err != nil {
			if os.IsNotExist(err) {
				warnings = append(warnings, Warning{Path: relPath, Err: ErrFileNotFound})
			} else {
				warnings = append(warnings, Warning{Path: relPath, Err: err})
			}
			continue
		}
		if info.IsDir() {
			warnings = append(warnings, Warning{Path: relPath, Err: fmt.Errorf("is a directory")})
			continue
		}

		content, err := os.ReadFile(absPath)
		if err != nil {
			warnings = append(warnings, Warning{Path: relPath, Err: err})
			continue
		}

		blobHash, err := r.Store.WriteBlob(&object.Blob{Data: content})
		if err != nil {
			return warnings, fmt.Errorf("add: write blob %q: %w", relPath, err)
		}

		stg.Entries[relPath] = &StagingEntry{
			Path:     relPath,
			BlobHash: blobHash,
			ModTime:  info.ModTime().UnixNano(),
			Size:     info.Size(),
		}
		changed = true
	}

	if changed {
		if err := r.WriteStaging(stg); err != nil {
			return warnings, fmt.Errorf("add: %w", err)
		}
	}
	return warnings, nil
}

// Remove unstages the given paths. Paths without an index entry produce a
// warning, not a failure. When cached is false the working-tree copy of each
// removed path is deleted as well; deletion failures are warnings and do not
// roll the unstage back.
func (r *Repo) Remove(paths []string, cached bool) ([]Warning, error) {
	release, err := r.Lock()
	if err != nil {
		return nil, fmt.Errorf("rm: %w", err)
	}
	defer release()

	stg, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("rm: %w", err)
	}

	var warnings []Warning
	changed := false

	for _, p := range paths {
		relPath, err := r.repoRelPath(p)
		if err != nil {
			warnings = append(warnings, Warning{Path: p, Err: err})
			continue
		}

		if _, ok := stg.Entries[relPath]; !ok {
			warnings = append(warnings, Warning{Path: relPath, Err: ErrNotStaged})
			continue
		}
		delete(stg.Entries, relPath)
		changed = true

		if !cached {
			absPath := filepath.Join(r.RootDir, filepath.FromSlash(relPath))
			if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
				warnings = append(warnings, Warning{Path: relPath, Err: fmt.Errorf("delete working copy: %w", err)})
			}
		}
	}

	if changed {
		if err := r.WriteStaging(stg); err != nil {
			return warnings, fmt.Errorf("rm: %w", err)
		}
	}
	return warnings, nil
}
