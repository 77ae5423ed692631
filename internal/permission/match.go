package permission

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// toPath maps a dotted permission node or pattern to a slash path so
// doublestar can match it segment by segment.
func toPath(node string) string {
	return strings.ReplaceAll(node, ".", "/")
}

// Match reports whether the dotted pattern matches node.
func Match(pattern, node string) bool {
	ok, err := doublestar.Match(toPath(strings.ToLower(pattern)), toPath(strings.ToLower(node)))
	return err == nil && ok
}

func matchAny(patterns []string, node string) bool {
	for _, p := range patterns {
		if Match(p, node) {
			return true
		}
	}
	return false
}

// evaluate applies a group's entries to node. Denies ("-" prefix) win over
// grants. decided is false when no entry matches.
func evaluate(entries []string, node string) (allowed, decided bool) {
	for _, e := range entries {
		if strings.HasPrefix(e, "-") && Match(e[1:], node) {
			return false, true
		}
	}
	for _, e := range entries {
		if !strings.HasPrefix(e, "-") && Match(e, node) {
			return true, true
		}
	}
	return false, false
}

// ErrInvalidPattern is returned for patterns that cannot be stored.
var ErrInvalidPattern = errors.New("invalid permission pattern")

func validatePattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("%w: empty", ErrInvalidPattern)
	}
	if strings.Contains(pattern, "/") || !doublestar.ValidatePattern(toPath(pattern)) {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}
	return nil
}
