package repo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAddStagesFile(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, "a.txt", "hello")
	stageFiles(t, r, "a.txt")

	stg, err := r.ReadStaging()
	if err != nil {
		t.Fatalf("ReadStaging: %v", err)
	}
	entry, ok := stg.Entries["a.txt"]
	if !ok {
		t.Fatal("a.txt missing from index")
	}
	if entry.Size != int64(len("hello")) {
		t.Errorf("entry size: got %d, want %d", entry.Size, len("hello"))
	}
	if !r.Store.Has(entry.BlobHash) {
		t.Error("staged blob not present in object store")
	}
}

func TestAddUpdatesChangedFile(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, "a.txt", "v1")
	stageFiles(t, r, "a.txt")

	stg, _ := r.ReadStaging()
	oldHash := stg.Entries["a.txt"].BlobHash

	writeWorkFile(t, r, "a.txt", "v2")
	stageFiles(t, r, "a.txt")

	stg, _ = r.ReadStaging()
	if stg.Entries["a.txt"].BlobHash == oldHash {
		t.Error("re-staging a changed file kept the old blob hash")
	}
	if len(stg.Entries) != 1 {
		t.Errorf("index entries: got %d, want 1", len(stg.Entries))
	}
}

func TestAddMissingFileIsWarning(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, "real.txt", "content")

	warnings, err := r.Add([]string{
		filepath.Join(r.RootDir, "missing.txt"),
		filepath.Join(r.RootDir, "real.txt"),
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings: got %d, want 1 (%v)", len(warnings), warnings)
	}
	if !errors.Is(warnings[0].Err, ErrFileNotFound) {
		t.Errorf("warning error: got %v, want ErrFileNotFound", warnings[0].Err)
	}

	// The batch continued: the real file is staged.
	stg, _ := r.ReadStaging()
	if _, ok := stg.Entries["real.txt"]; !ok {
		t.Error("real.txt not staged after batch with a missing sibling")
	}
}

func TestAddIgnoredFileIsWarning(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, ".artemisignore", "*.log\n")
	// Matcher reads the ignore file at Open time; reopen to pick it up.
	reopened, err := Open(r.RootDir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	writeWorkFile(t, reopened, "debug.log", "noise")

	warnings, err := reopened.Add([]string{filepath.Join(reopened.RootDir, "debug.log")})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(warnings) != 1 || !errors.Is(warnings[0].Err, ErrIgnored) {
		t.Fatalf("warnings: got %v, want one ErrIgnored", warnings)
	}

	stg, _ := reopened.ReadStaging()
	if len(stg.Entries) != 0 {
		t.Error("ignored file ended up in the index")
	}
}

func TestAddDirectoryIsWarning(t *testing.T) {
	r := initTestRepo(t)
	if err := os.MkdirAll(filepath.Join(r.RootDir, "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	warnings, err := r.Add([]string{filepath.Join(r.RootDir, "subdir")})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings: got %v, want one", warnings)
	}
}

func TestRemoveCached(t *testing.T) {
	r := initTestRepo(t)
	abs := writeWorkFile(t, r, "a.txt", "keep me")
	stageFiles(t, r, "a.txt")

	warnings, err := r.Remove([]string{abs}, true)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings: %v", warnings)
	}

	stg, _ := r.ReadStaging()
	if _, ok := stg.Entries["a.txt"]; ok {
		t.Error("a.txt still in index after Remove")
	}
	if _, err := os.Stat(abs); err != nil {
		t.Errorf("cached removal deleted the working copy: %v", err)
	}
}

func TestRemoveDeletesWorkingCopy(t *testing.T) {
	r := initTestRepo(t)
	abs := writeWorkFile(t, r, "a.txt", "goodbye")
	stageFiles(t, r, "a.txt")

	if _, err := r.Remove([]string{abs}, false); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(abs); !os.IsNotExist(err) {
		t.Errorf("working copy survived non-cached removal: %v", err)
	}
}

func TestRemoveUnstagedIsWarning(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, "a.txt", "never staged")

	warnings, err := r.Remove([]string{filepath.Join(r.RootDir, "a.txt")}, true)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(warnings) != 1 || !errors.Is(warnings[0].Err, ErrNotStaged) {
		t.Fatalf("warnings: got %v, want one ErrNotStaged", warnings)
	}
}

func TestReadStagingMissingIndex(t *testing.T) {
	r := initTestRepo(t)
	stg, err := r.ReadStaging()
	if err != nil {
		t.Fatalf("ReadStaging with no index: %v", err)
	}
	if len(stg.Entries) != 0 {
		t.Errorf("fresh staging entries: got %d, want 0", len(stg.Entries))
	}
}

func TestReadStagingDetectsCorruption(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, "a.txt", "content")
	stageFiles(t, r, "a.txt")

	raw, err := os.ReadFile(r.indexPath())
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	// Flip a byte in the JSON payload without touching the checksum line.
	corrupted := strings.Replace(string(raw), "a.txt", "b.txt", 1)
	if corrupted == string(raw) {
		t.Fatal("corruption edit did not apply")
	}
	if err := os.WriteFile(r.indexPath(), []byte(corrupted), 0o644); err != nil {
		t.Fatalf("write corrupted index: %v", err)
	}

	if _, err := r.ReadStaging(); err == nil {
		t.Error("corrupted index read succeeded")
	}
}
