package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCommitAdvancesBranchAndClearsIndex(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, "a.txt", "hello")
	stageFiles(t, r, "a.txt")

	h := mustCommit(t, r, "initial")

	tip, err := r.ResolveRef("HEAD")
	if err != nil {
		t.Fatalf("ResolveRef: %v", err)
	}
	if tip != h {
		t.Errorf("branch tip: got %s, want %s", tip, h)
	}

	stg, err := r.ReadStaging()
	if err != nil {
		t.Fatalf("ReadStaging: %v", err)
	}
	if len(stg.Entries) != 0 {
		t.Errorf("index not cleared after commit: %d entries", len(stg.Entries))
	}

	c, err := r.Store.ReadCommit(h)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	if c.Parent != "" {
		t.Errorf("first commit parent: got %q, want empty", c.Parent)
	}
	if c.Message != "initial" || c.Author != "tester" {
		t.Errorf("commit fields: message=%q author=%q", c.Message, c.Author)
	}
}

func TestCommitParentChain(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, "a.txt", "v1")
	stageFiles(t, r, "a.txt")
	first := mustCommit(t, r, "one")

	writeWorkFile(t, r, "a.txt", "v2")
	stageFiles(t, r, "a.txt")
	second := mustCommit(t, r, "two")

	c, err := r.Store.ReadCommit(second)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	if c.Parent != first {
		t.Errorf("second commit parent: got %s, want %s", c.Parent, first)
	}
}

func TestCommitNothingStaged(t *testing.T) {
	r := initTestRepo(t)
	_, err := r.Commit("empty", "tester")
	if !errors.Is(err, ErrNothingStaged) {
		t.Errorf("empty commit: got %v, want ErrNothingStaged", err)
	}

	// The failed commit must leave the branch untouched.
	tip, err := r.ResolveRef("HEAD")
	if err != nil {
		t.Fatalf("ResolveRef: %v", err)
	}
	if tip != "" {
		t.Errorf("branch moved despite failed commit: %s", tip)
	}
}

func TestLogNewestFirst(t *testing.T) {
	r := initTestRepo(t)
	hashes := make([]string, 0, 3)
	for _, msg := range []string{"one", "two", "three"} {
		writeWorkFile(t, r, "a.txt", msg)
		stageFiles(t, r, "a.txt")
		hashes = append(hashes, string(mustCommit(t, r, msg)))
	}

	entries, err := r.Log()
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("log entries: got %d, want 3", len(entries))
	}
	for i, want := range []string{"three", "two", "one"} {
		if entries[i].Commit.Message != want {
			t.Errorf("entry %d: got %q, want %q", i, entries[i].Commit.Message, want)
		}
	}
	if string(entries[0].Hash) != hashes[2] {
		t.Errorf("newest entry hash: got %s, want %s", entries[0].Hash, hashes[2])
	}
}

func TestLogEmptyRepository(t *testing.T) {
	r := initTestRepo(t)
	entries, err := r.Log()
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("log on fresh repo: got %d entries, want 0", len(entries))
	}
}

// An unreadable HEAD must surface as an error, not masquerade as an empty
// history.
func TestLogUnreadableHead(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, "a.txt", "content")
	stageFiles(t, r, "a.txt")
	mustCommit(t, r, "one")

	if err := os.Remove(filepath.Join(r.ArtemisDir, "HEAD")); err != nil {
		t.Fatalf("remove HEAD: %v", err)
	}
	if _, err := r.Log(); err == nil {
		t.Error("Log with missing HEAD succeeded")
	}
}

func TestCommitWithSigner(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, "a.txt", "signed content")
	stageFiles(t, r, "a.txt")

	var signedPayload []byte
	h, err := r.CommitWithSigner("signed", "tester", func(payload []byte) (string, error) {
		signedPayload = payload
		return "sshsig-v1:test:AAAA:BBBB", nil
	})
	if err != nil {
		t.Fatalf("CommitWithSigner: %v", err)
	}
	if len(signedPayload) == 0 {
		t.Fatal("signer never received a payload")
	}

	c, err := r.Store.ReadCommit(h)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	if c.Signature != "sshsig-v1:test:AAAA:BBBB" {
		t.Errorf("signature not persisted: %q", c.Signature)
	}
}

func TestCommitSignerFailureAborts(t *testing.T) {
	r := initTestRepo(t)
	writeWorkFile(t, r, "a.txt", "content")
	stageFiles(t, r, "a.txt")

	_, err := r.CommitWithSigner("x", "tester", func([]byte) (string, error) {
		return "", errors.New("no key")
	})
	if err == nil {
		t.Fatal("commit succeeded despite signer failure")
	}

	tip, _ := r.ResolveRef("HEAD")
	if tip != "" {
		t.Errorf("branch moved despite signer failure: %s", tip)
	}
	stg, _ := r.ReadStaging()
	if len(stg.Entries) != 1 {
		t.Errorf("index cleared despite signer failure: %d entries", len(stg.Entries))
	}
}
