package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/IdrisFallout/artemis-vcs/pkg/ignore"
	"github.com/IdrisFallout/artemis-vcs/pkg/object"
)

// MarkerDir is the repository metadata directory name.
const MarkerDir = ".artemis"

// Repo is an opened artemis repository. All repository state hangs off this
// handle; there is no process-wide current-repository singleton.
type Repo struct {
	RootDir    string           // working directory root
	ArtemisDir string           // .artemis/ directory
	Store      *object.Store    // content-addressed object store
	Ignore     ignore.Predicate // path exclusion predicate
}

// Init creates a new artemis repository at path: the .artemis/ directory
// with objects/, refs/heads/, a HEAD pointing at an unborn main branch, an
// empty main ref, the INI config, and a description file. Returns an error
// if a .artemis/ directory already exists.
func Init(path string) (*Repo, error) {
	artemisDir := filepath.Join(path, MarkerDir)

	if _, err := os.Stat(artemisDir); err == nil {
		return nil, fmt.Errorf("init: repository already exists at %s", artemisDir)
	}

	dirs := []string{
		filepath.Join(artemisDir, "objects"),
		filepath.Join(artemisDir, "refs", "heads"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	headPath := filepath.Join(artemisDir, "HEAD")
	if err := os.WriteFile(headPath, []byte("ref: refs/heads/"+DefaultBranch+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("init: write HEAD: %w", err)
	}

	// The default branch exists from the start but is unborn (empty ref).
	mainRef := filepath.Join(artemisDir, "refs", "heads", DefaultBranch)
	if err := os.WriteFile(mainRef, nil, 0o644); err != nil {
		return nil, fmt.Errorf("init: write %s ref: %w", DefaultBranch, err)
	}

	if err := writeDefaultConfig(artemisDir); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	descPath := filepath.Join(artemisDir, "description")
	desc := "Unnamed repository; edit this file to name the repository.\n"
	if err := os.WriteFile(descPath, []byte(desc), 0o644); err != nil {
		return nil, fmt.Errorf("init: write description: %w", err)
	}

	return &Repo{
		RootDir:    path,
		ArtemisDir: artemisDir,
		Store:      object.NewStore(artemisDir),
		Ignore:     ignore.NewMatcher(path),
	}, nil
}

// Open searches upward from path for a .artemis/ directory and opens the
// repository. Returns ErrNotARepository if none is found.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		artemisDir := filepath.Join(cur, MarkerDir)
		info, err := os.Stat(artemisDir)
		if err == nil && info.IsDir() {
			return &Repo{
				RootDir:    cur,
				ArtemisDir: artemisDir,
				Store:      object.NewStore(artemisDir),
				Ignore:     ignore.NewMatcher(cur),
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open %s: %w", abs, ErrNotARepository)
		}
		cur = parent
	}
}

// repoRelPath converts a path (absolute, or relative to CWD) into a
// slash-separated path relative to the repository root. Paths already
// outside the repo are treated as repo-relative as given.
func (r *Repo) repoRelPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(r.RootDir, p)
		if err != nil {
			return "", fmt.Errorf("cannot make %q relative to %q: %w", p, r.RootDir, err)
		}
		return filepath.ToSlash(rel), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return filepath.ToSlash(filepath.Clean(p)), nil
	}

	abs := filepath.Join(cwd, p)
	rel, err := filepath.Rel(r.RootDir, abs)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(p)), nil
	}
	if len(rel) >= 2 && rel[:2] == ".." {
		return filepath.ToSlash(filepath.Clean(p)), nil
	}
	return filepath.ToSlash(rel), nil
}
