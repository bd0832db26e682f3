package repo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IdrisFallout/artemis-vcs/pkg/object"
)

// CommitSigner signs canonical commit payload bytes and returns an encoded
// signature string to be persisted in CommitObj.Signature.
type CommitSigner func(payload []byte) (string, error)

// Commit creates a new commit from the current staging area.
//
//  1. Read staging; fail with ErrNothingStaged if empty.
//  2. Build a canonical tree from the staging entries.
//  3. Resolve HEAD for the parent commit hash (absent on the first commit).
//  4. Write the commit object.
//  5. Update the current branch ref (CAS against the old tip), or HEAD
//     itself when detached.
//  6. Clear the staging area.
func (r *Repo) Commit(message, author string) (object.Hash, error) {
	return r.CommitWithSigner(message, author, nil)
}

// CommitWithSigner creates a new commit and signs it when signer is provided.
func (r *Repo) CommitWithSigner(message, author string, signer CommitSigner) (object.Hash, error) {
	release, err := r.Lock()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	defer release()

	stg, err := r.ReadStaging()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	if len(stg.Entries) == 0 {
		return "", fmt.Errorf("commit: %w", ErrNothingStaged)
	}

	treeHash, err := r.BuildTree(stg)
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	// Parent is whatever HEAD resolves to; empty for the first commit on an
	// unborn branch.
	var parent object.Hash
	if h, err := r.ResolveRef("HEAD"); err == nil {
		parent = h
	}

	commitObj := &object.CommitObj{
		TreeHash:  treeHash,
		Parent:    parent,
		Author:    author,
		Timestamp: time.Now().Unix(),
		Message:   message,
	}
	if signer != nil {
		signature, err := signer(object.CommitSigningPayload(commitObj))
		if err != nil {
			return "", fmt.Errorf("commit: sign commit: %w", err)
		}
		commitObj.Signature = signature
	}

	commitHash, err := r.Store.WriteCommit(commitObj)
	if err != nil {
		return "", fmt.Errorf("commit: write commit: %w", err)
	}

	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("commit: read HEAD: %w", err)
	}

	if strings.HasPrefix(head, "refs/") {
		if err := r.UpdateRefCAS(head, commitHash, parent); err != nil {
			return "", fmt.Errorf("commit: update ref %q: %w", head, err)
		}
	} else {
		// Detached HEAD: advance it directly.
		if err := r.writeHead(string(commitHash)); err != nil {
			return "", fmt.Errorf("commit: update detached HEAD: %w", err)
		}
	}

	if err := r.ClearStaging(); err != nil {
		return "", fmt.Errorf("commit: clear staging: %w", err)
	}

	return commitHash, nil
}

// LogEntry pairs a commit with its own hash for display.
type LogEntry struct {
	Hash   object.Hash
	Commit *object.CommitObj
}

// Log walks the commit history from the current HEAD tip, following parent
// pointers to the root, newest first. A repository with no commits (unborn
// HEAD) yields an empty slice; an unreadable HEAD is an error, not an empty
// history. The walk is finite: it stops at the first commit without a
// parent.
func (r *Repo) Log() ([]LogEntry, error) {
	tip, err := r.ResolveRef("HEAD")
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	if tip == "" {
		return nil, nil
	}
	return r.LogFrom(tip)
}

// LogFrom walks history starting at the given commit hash.
func (r *Repo) LogFrom(start object.Hash) ([]LogEntry, error) {
	var entries []LogEntry
	current := start

	for current != "" {
		c, err := r.Store.ReadCommit(current)
		if err != nil {
			if errors.Is(err, object.ErrObjectNotFound) && len(entries) > 0 {
				// Truncated history (e.g. partial clone): stop at the gap.
				break
			}
			return nil, fmt.Errorf("log: read commit %s: %w", current, err)
		}
		entries = append(entries, LogEntry{Hash: current, Commit: c})
		current = c.Parent
	}

	return entries, nil
}
