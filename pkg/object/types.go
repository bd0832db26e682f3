package object

// Hash is a 64-character hex-encoded SHA-256 digest.
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// TreeEntry maps one repo-relative path to the blob recorded for it.
type TreeEntry struct {
	Path     string
	BlobHash Hash
}

// TreeObj is a full working-tree snapshot: a flat, path-sorted list of
// entries. Two snapshots with the same path→hash pairs serialize to
// byte-identical objects.
type TreeObj struct {
	Entries []TreeEntry // sorted by Path
}

// CommitObj represents a commit pointing to a tree with metadata.
// Parent is empty for the root commit.
type CommitObj struct {
	TreeHash  Hash
	Parent    Hash
	Author    string
	Timestamp int64
	Signature string
	Message   string
}
