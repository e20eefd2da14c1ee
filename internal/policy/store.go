package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"intentguard/internal/logging"
	"intentguard/internal/pathutil"
)

const (
	intentsRelPath = ".orchestration/active_intents.yaml"
	ignoreRelPath  = ".intentignore"
)

// Store is the single reader and writer of the workspace intent file.
// It deliberately holds no cached state: every public method re-reads
// from disk, because a human may edit the file while the agent session
// is running (spec §9, "Filesystem as ground truth, no caching").
type Store struct{}

// NewStore constructs a Store. It carries no configuration: all paths
// are derived from the workspace argument passed to each call.
func NewStore() *Store {
	return &Store{}
}

// LoadIntents reads and parses the workspace's intent file. A missing
// file is not an error — it yields an empty slice, so a fresh workspace
// with no declared intents is a valid (if unauthorized-for-writes)
// starting state.
func (s *Store) LoadIntents(workspace string) ([]Intent, error) {
	path := filepath.Join(workspace, intentsRelPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("policy: read %s: %w", path, err)
	}

	var f intentFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedIntents, path, err)
	}
	return f.ActiveIntents, nil
}

// FindIntent returns the intent with the given id, or nil if absent.
func (s *Store) FindIntent(workspace, id string) (*Intent, error) {
	intents, err := s.LoadIntents(workspace)
	if err != nil {
		return nil, err
	}
	for i := range intents {
		if intents[i].ID == id {
			return &intents[i], nil
		}
	}
	return nil, nil
}

// UpdateIntentStatus rewrites the intent file with the named intent's
// status (and updated_at) changed. The rewrite is whole-document: the
// header is preserved as a literal prelude, but any freeform comments
// elsewhere in the file are discarded (see SPEC_FULL.md Open Question 2).
func (s *Store) UpdateIntentStatus(workspace, id string, status Status) error {
	intents, err := s.LoadIntents(workspace)
	if err != nil {
		return err
	}

	found := false
	for i := range intents {
		if intents[i].ID == id {
			intents[i].Status = status
			intents[i].UpdatedAt = time.Now().UTC()
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownIntent, id)
	}

	body, err := yaml.Marshal(intentFile{ActiveIntents: intents})
	if err != nil {
		return fmt.Errorf("policy: marshal: %w", err)
	}

	path := filepath.Join(workspace, intentsRelPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("policy: mkdir: %w", err)
	}

	out := append([]byte(fileHeader), body...)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("policy: write %s: %w", path, err)
	}

	logging.Debugf(logging.CategoryPolicy, "updated intent %s -> %s", id, status)
	return nil
}

// IsFileInScope reports whether absPath is covered by any pattern in
// intent.OwnedScope. Patterns are interpreted relative to the workspace
// root (never an arbitrary cwd) using glob semantics where "*" matches
// a single path segment and "**" matches any number of segments,
// including dotfiles.
func (s *Store) IsFileInScope(workspace string, intent *Intent, absPath string) bool {
	rel := toScopeRelative(workspace, absPath)
	for _, pattern := range intent.OwnedScope {
		if matchGlob(pattern, rel) {
			return true
		}
	}
	return false
}

// IsFileIgnored reports whether absPath matches any pattern in the
// workspace's .intentignore file. Blank lines and "#"-prefixed comment
// lines are skipped.
func (s *Store) IsFileIgnored(workspace, absPath string) bool {
	patterns, err := s.loadIgnorePatterns(workspace)
	if err != nil {
		// A missing or unreadable ignore file means nothing is ignored.
		return false
	}

	rel := toScopeRelative(workspace, absPath)
	for _, pattern := range patterns {
		if matchGlob(pattern, rel) {
			return true
		}
	}
	return false
}

func (s *Store) loadIgnorePatterns(workspace string) ([]string, error) {
	path := filepath.Join(workspace, ignoreRelPath)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

// toScopeRelative converts an absolute path to a POSIX-separated,
// workspace-relative path. Paths outside the workspace are returned
// as-is (POSIX-normalized), which simply means they will not match any
// workspace-relative scope pattern. Shared with vcs.Probe.ToRelativePath
// via pathutil so the two never drift apart.
func toScopeRelative(workspace, absPath string) string {
	return pathutil.RelativeSlash(workspace, absPath)
}

// matchGlob implements the spec's glob semantics over doublestar, which
// natively treats "**" as matching any number of path segments (including
// zero) and "*" as matching within a single segment — exactly the
// contract spec §4.A requires.
func matchGlob(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, path)
	if err != nil {
		return false
	}
	return ok
}
