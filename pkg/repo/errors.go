package repo

import "errors"

// Stable error kinds surfaced by repository operations. Callers classify
// with errors.Is; every kind prints as a recognizable message and none
// escapes as a crash.
var (
	// ErrNotARepository means no .artemis directory was found at or above
	// the requested path.
	ErrNotARepository = errors.New("not an artemis repository")

	// ErrFileNotFound means a stage target does not exist on disk.
	ErrFileNotFound = errors.New("file does not exist")

	// ErrIgnored means a stage target matched the ignore predicate. It is
	// non-fatal: batch staging skips the path and continues.
	ErrIgnored = errors.New("path is ignored")

	// ErrNotStaged means an unstage target had no index entry. Non-fatal.
	ErrNotStaged = errors.New("path is not staged")

	// ErrNothingStaged means commit was attempted with an empty index.
	ErrNothingStaged = errors.New("nothing staged for commit")

	// ErrBranchExists means branch creation hit an existing name.
	ErrBranchExists = errors.New("branch already exists")

	// ErrUnresolvableRef means a checkout/diff target is neither a known
	// branch nor a readable commit hash.
	ErrUnresolvableRef = errors.New("unresolvable reference")

	// ErrRefCASMismatch means a guarded ref update found the ref pointing
	// somewhere other than expected.
	ErrRefCASMismatch = errors.New("ref compare-and-swap mismatch")
)

// Warning is a per-path, non-fatal failure from a batch operation
// (stage/unstage). The batch continues past it.
type Warning struct {
	Path string
	Err  error
}

func (w Warning) String() string {
	return w.Path + ": " + w.Err.Error()
}
