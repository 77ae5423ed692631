package command

import "strings"

// Visibility controls who may see and use a node.
type Visibility int

const (
	VisibilityAll Visibility = iota
	VisibilityPermission
	VisibilityOps
	VisibilityNone
)

func (v Visibility) String() string {
	switch v {
	case VisibilityAll:
		return "all"
	case VisibilityPermission:
		return "permission"
	case VisibilityOps:
		return "ops"
	case VisibilityNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseVisibility parses a visibility name (case-insensitive).
func ParseVisibility(s string) (Visibility, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return VisibilityAll, true
	case "permission":
		return VisibilityPermission, true
	case "ops", "op":
		return VisibilityOps, true
	case "none":
		return VisibilityNone, true
	}
	return VisibilityAll, false
}

// Policy resolves opaque permission tokens.
type Policy interface {
	// Resolve reports whether sender holds the permission.
	Resolve(sender Sender, permission string) bool
	// Describe returns the display form of the permission.
	Describe(permission string) string
}

// Gate is a node's visibility plus its optional permission token.
type Gate struct {
	Visibility Visibility
	Permission string
}

// VisibleTo reports whether sender may see and use the gated node. It has no
// side effects, so listings can call it per node. A PERMISSION gate with no
// token is open; with no policy it falls back to operator status.
func (g Gate) VisibleTo(sender Sender, policy Policy) bool {
	switch g.Visibility {
	case VisibilityAll:
		return true
	case VisibilityPermission:
		if g.Permission == "" {
			return true
		}
		if policy == nil {
			return sender.IsOperator()
		}
		return policy.Resolve(sender, g.Permission)
	case VisibilityOps:
		return sender.IsOperator()
	default:
		return false
	}
}

// Describe returns the display form of the gate's permission, or "" when
// none is set.
func (g Gate) Describe(policy Policy) string {
	if g.Permission == "" {
		return ""
	}
	if policy == nil {
		return g.Permission
	}
	return policy.Describe(g.Permission)
}
