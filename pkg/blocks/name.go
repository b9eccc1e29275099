// name.go defines the namespaced block type name.
package blocks

import "strings"

// DefaultNamespace is implied by block names written without a namespace.
const DefaultNamespace = "core"

// freeformName is the printable type of content outside any delimiter.
var freeformName = BlockName{Namespace: DefaultNamespace, Name: "freeform"}

// BlockName is a fully-qualified block type such as core/paragraph.
// The zero value stands for freeform content.
type BlockName struct {
	Namespace string
	Name      string
}

// ParseBlockName parses "name" or "namespace/name", validating both segments
// against the delimiter grammar.
func ParseBlockName(s string) (BlockName, bool) {
	ns, name, qualified := strings.Cut(s, "/")
	if !qualified {
		ns, name = DefaultNamespace, s
	}
	if !validNameSegment(ns) || !validNameSegment(name) {
		return BlockName{}, false
	}
	return BlockName{Namespace: ns, Name: name}, true
}

// queryName normalizes a bare or qualified query without validating it.
func queryName(query string) BlockName {
	if ns, name, ok := strings.Cut(query, "/"); ok {
		return BlockName{Namespace: ns, Name: name}
	}
	return BlockName{Namespace: DefaultNamespace, Name: query}
}

// IsZero reports whether n stands for freeform content.
func (n BlockName) IsZero() bool {
	return n.Name == ""
}

// Matches reports whether n equals a bare ("paragraph") or qualified
// ("core/paragraph") query.
func (n BlockName) Matches(query string) bool {
	if n.IsZero() || query == "" {
		return false
	}
	return n == queryName(query)
}

// String returns the fully-qualified name, or "" for freeform content.
func (n BlockName) String() string {
	if n.IsZero() {
		return ""
	}
	return n.Namespace + "/" + n.Name
}

// SerializedName is the name as written in a delimiter: the core namespace
// is left implicit.
func (n BlockName) SerializedName() string {
	if n.Namespace == DefaultNamespace {
		return n.Name
	}
	return n.String()
}

func isNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-'
}

// validNameSegment accepts lowercase alphanumerics with single internal dashes.
func validNameSegment(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' || strings.Contains(s, "--") {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNameByte(s[i]) {
			return false
		}
	}
	return true
}
