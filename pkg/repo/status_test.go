package repo

import (
	"reflect"
	"testing"
)

func TestStatusCleanRepository(t *testing.T) {
	r := initTestRepo(t)
	report, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(report.Staged)+len(report.Modified)+len(report.Untracked) != 0 {
		t.Errorf("fresh repo not clean: %+v", report)
	}
}

func TestStatusClassification(t *testing.T) {
	r := initTestRepo(t)

	// a.txt: never staged. b.txt: staged, then changed on disk.
	writeWorkFile(t, r, "a.txt", "untracked")
	writeWorkFile(t, r, "b.txt", "original")
	stageFiles(t, r, "b.txt")
	writeWorkFile(t, r, "b.txt", "modified")

	report, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	if !reflect.DeepEqual(report.Untracked, []string{"a.txt"}) {
		t.Errorf("Untracked: got %v, want [a.txt]", report.Untracked)
	}
	if !reflect.DeepEqual(report.Staged, []string{"b.txt"}) {
		t.Errorf("Staged: got %v, want [b.txt]", report.Staged)
	}
	if !reflect.DeepEqual(report.Modified, []string{"b.txt"}) {
		t.Errorf("Modified: got %v, want [b.txt]", report.Modified)
	}
}

// An edit that keeps the byte length must still be caught: status cannot
// trust a size-only comparison.
func TestStatusDetectsSameSizeEdit(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, "f.txt", "y")
	stageFiles(t, r, "f.txt")
	writeWorkFile(t, r, "f.txt", "z")

	report, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !reflect.DeepEqual(report.Modified, []string{"f.txt"}) {
		t.Errorf("Modified: got %v, want [f.txt]", report.Modified)
	}
}

func TestStatusUnchangedStagedFileIsNotModified(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, "f.txt", "stable")
	stageFiles(t, r, "f.txt")

	report, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(report.Modified) != 0 {
		t.Errorf("unchanged file reported modified: %v", report.Modified)
	}
	if !reflect.DeepEqual(report.Staged, []string{"f.txt"}) {
		t.Errorf("Staged: got %v, want [f.txt]", report.Staged)
	}
}

func TestStatusSkipsIgnoredPaths(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, ".artemisignore", "*.log\nbuild/\n")
	reopened, err := Open(r.RootDir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	writeWorkFile(t, reopened, "debug.log", "noise")
	writeWorkFile(t, reopened, "build/out.bin", "artifact")
	writeWorkFile(t, reopened, "src.txt", "real")

	report, err := reopened.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !reflect.DeepEqual(report.Untracked, []string{".artemisignore", "src.txt"}) {
		t.Errorf("Untracked: got %v, want [.artemisignore src.txt]", report.Untracked)
	}
}

func TestStatusAfterCommitIsClean(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, "a.txt", "content")
	stageFiles(t, r, "a.txt")
	mustCommit(t, r, "snapshot")

	report, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(report.Staged) != 0 || len(report.Modified) != 0 {
		t.Errorf("post-commit status not clean: %+v", report)
	}
	// The committed file is on disk but no longer in the index, so it shows
	// as untracked under this index-only tracking model.
	if !reflect.DeepEqual(report.Untracked, []string{"a.txt"}) {
		t.Errorf("Untracked: got %v, want [a.txt]", report.Untracked)
	}
}
