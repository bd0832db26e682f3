// Package ignore compiles .artemisignore glob patterns into a path
// predicate. It is deliberately isolated from the repository engine: the
// engine only sees the Predicate interface, so matcher behavior can be
// tested (and swapped) independently.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Predicate reports whether a repo-relative, slash-separated path should be
// excluded from staging and status.
type Predicate interface {
	IsIgnored(path string) bool
}

// Matcher is the .artemisignore-backed Predicate implementation.
type Matcher struct {
	patterns []pattern
}

type pattern struct {
	glob     string
	negated  bool
	dirOnly  bool
	hasSlash bool // pattern contains a slash, so match against the full path
	regex    *regexp.Regexp
}

// IgnoreFile is the per-repository ignore file name.
const IgnoreFile = ".artemisignore"

// NewMatcher builds a Matcher for the given repository root. The repository
// metadata directories .artemis/ and .git/ are always ignored. If an
// .artemisignore file exists in repoRoot its patterns are parsed and applied
// in order; the last matching pattern wins, so negations ("!keep.log") can
// re-include paths.
func NewMatcher(repoRoot string) *Matcher {
	m := &Matcher{}

	m.patterns = append(m.patterns,
		pattern{glob: ".artemis", dirOnly: true},
		pattern{glob: ".git", dirOnly: true},
	)

	f, err := os.Open(filepath.Join(repoRoot, IgnoreFile))
	if err != nil {
		return m
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if p := parseLine(scanner.Text()); p != nil {
			m.patterns = append(m.patterns, *p)
		}
	}
	return m
}

// parseLine parses a single ignore-file line. Returns nil for blanks and
// comments.
func parseLine(line string) *pattern {
	line = strings.TrimRight(line, " \t")
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	p := &pattern{}

	if strings.HasPrefix(line, "!") {
		p.negated = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimRight(line, "/")
	}

	p.hasSlash = strings.Contains(line, "/")
	p.glob = line
	if strings.Contains(line, "**") {
		if re, err := regexp.Compile(globToRegex(line)); err == nil {
			p.regex = re
		}
	}
	return p
}

// IsIgnored reports whether the path matches the compiled patterns. The path
// must use forward slashes and be relative to the repository root.
func (m *Matcher) IsIgnored(path string) bool {
	path = filepath.ToSlash(path)

	ignored := false
	for i := range m.patterns {
		if m.patterns[i].matches(path) {
			ignored = !m.patterns[i].negated
		}
	}
	return ignored
}

// matches checks whether path matches this pattern.
func (p *pattern) matches(path string) bool {
	// Dir-only patterns match the directory itself and everything under it.
	if p.dirOnly {
		return path == p.glob || strings.HasPrefix(path, p.glob+"/")
	}

	if p.hasSlash {
		return p.match(path)
	}

	// Slash-free patterns match any path component's base name.
	return p.match(filepath.Base(path))
}

func (p *pattern) match(target string) bool {
	if p.regex != nil {
		return p.regex.MatchString(target)
	}
	matched, _ := filepath.Match(p.glob, target)
	return matched
}

// globToRegex translates a glob containing ** into an anchored regular
// expression. * and ? never cross a path separator; **/ matches zero or
// more whole segments.
func globToRegex(glob string) string {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(glob); i++ {
		ch := glob[i]
		if ch == '*' {
			if i+1 < len(glob) && glob[i+1] == '*' {
				if i+2 < len(glob) && glob[i+2] == '/' {
					b.WriteString("(?:.*/)?")
					i += 2
				} else {
					b.WriteString(".*")
					i++
				}
				continue
			}
			b.WriteString("[^/]*")
			continue
		}
		if ch == '?' {
			b.WriteString("[^/]")
			continue
		}
		if strings.ContainsRune(`.+()|[]{}^$\\`, rune(ch)) {
			b.WriteByte('\\')
		}
		b.WriteByte(ch)
	}
	b.WriteString("$")
	return b.String()
}
