package object

import (
	"bytes"
	"testing"
)

func TestMarshalTreeCanonicalOrder(t *testing.T) {
	a := &TreeObj{Entries: []TreeEntry{
		{Path: "b.txt", BlobHash: HashBytes([]byte("2"))},
		{Path: "a.txt", BlobHash: HashBytes([]byte("1"))},
		{Path: "dir/c.txt", BlobHash: HashBytes([]byte("3"))},
	}}
	b := &TreeObj{Entries: []TreeEntry{
		{Path: "dir/c.txt", BlobHash: HashBytes([]byte("3"))},
		{Path: "a.txt", BlobHash: HashBytes([]byte("1"))},
		{Path: "b.txt", BlobHash: HashBytes([]byte("2"))},
	}}

	if !bytes.Equal(MarshalTree(a), MarshalTree(b)) {
		t.Error("trees with identical path→hash pairs should serialize identically")
	}
	if HashObject(TypeTree, MarshalTree(a)) != HashObject(TypeTree, MarshalTree(b)) {
		t.Error("entry order changed the tree hash")
	}
}

func TestTreeRoundTrip(t *testing.T) {
	tr := &TreeObj{Entries: []TreeEntry{
		{Path: "a.txt", BlobHash: HashBytes([]byte("1"))},
		{Path: "name with spaces.txt", BlobHash: HashBytes([]byte("2"))},
	}}

	parsed, err := UnmarshalTree(MarshalTree(tr))
	if err != nil {
		t.Fatalf("UnmarshalTree: %v", err)
	}
	if len(parsed.Entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(parsed.Entries))
	}
	if parsed.Entries[1].Path != "name with spaces.txt" {
		t.Errorf("path with spaces mangled: %q", parsed.Entries[1].Path)
	}
	if parsed.Entries[0].BlobHash != tr.Entries[0].BlobHash {
		t.Errorf("blob hash mangled: %q", parsed.Entries[0].BlobHash)
	}
}

func TestEmptyTreeRoundTrip(t *testing.T) {
	parsed, err := UnmarshalTree(MarshalTree(&TreeObj{}))
	if err != nil {
		t.Fatalf("UnmarshalTree: %v", err)
	}
	if len(parsed.Entries) != 0 {
		t.Errorf("empty tree produced %d entries", len(parsed.Entries))
	}
}

func TestCommitRoundTrip(t *testing.T) {
	c := &CommitObj{
		TreeHash:  HashBytes([]byte("tree")),
		Parent:    HashBytes([]byte("parent")),
		Author:    "alice",
		Timestamp: 1700000000,
		Message:   "initial commit\n\nwith a body",
	}

	parsed, err := UnmarshalCommit(MarshalCommit(c))
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if parsed.TreeHash != c.TreeHash || parsed.Parent != c.Parent {
		t.Error("tree/parent hash mangled")
	}
	if parsed.Author != c.Author || parsed.Timestamp != c.Timestamp {
		t.Error("author/timestamp mangled")
	}
	if parsed.Message != c.Message {
		t.Errorf("message: got %q, want %q", parsed.Message, c.Message)
	}
}

func TestRootCommitHasNoParentHeader(t *testing.T) {
	c := &CommitObj{
		TreeHash:  HashBytes([]byte("tree")),
		Author:    "alice",
		Timestamp: 1,
		Message:   "root",
	}
	parsed, err := UnmarshalCommit(MarshalCommit(c))
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if parsed.Parent != "" {
		t.Errorf("root commit parent: got %q, want empty", parsed.Parent)
	}
}

// Commits with identical messages must still hash apart when tree, parent,
// or timestamp differ.
func TestCommitHashNotMessageOnly(t *testing.T) {
	base := &CommitObj{
		TreeHash:  HashBytes([]byte("tree-1")),
		Author:    "alice",
		Timestamp: 100,
		Message:   "same message",
	}
	differentTree := &CommitObj{
		TreeHash:  HashBytes([]byte("tree-2")),
		Author:    "alice",
		Timestamp: 100,
		Message:   "same message",
	}
	differentTime := &CommitObj{
		TreeHash:  HashBytes([]byte("tree-1")),
		Author:    "alice",
		Timestamp: 101,
		Message:   "same message",
	}

	h := func(c *CommitObj) Hash { return HashObject(TypeCommit, MarshalCommit(c)) }
	if h(base) == h(differentTree) {
		t.Error("commits with different trees hashed identically")
	}
	if h(base) == h(differentTime) {
		t.Error("commits with different timestamps hashed identically")
	}
}

func TestCommitSigningPayloadExcludesSignature(t *testing.T) {
	c := &CommitObj{
		TreeHash:  HashBytes([]byte("tree")),
		Author:    "alice",
		Timestamp: 1,
		Message:   "signed",
	}
	unsigned := CommitSigningPayload(c)
	c.Signature = "sshsig-v1:ssh-ed25519:AAAA:BBBB"
	signed := CommitSigningPayload(c)

	if !bytes.Equal(unsigned, signed) {
		t.Error("signing payload must not cover the signature itself")
	}
	if bytes.Equal(signed, MarshalCommit(c)) {
		t.Error("serialized signed commit should include the signature header")
	}
}
