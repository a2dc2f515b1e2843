// Package target resolves symbolic build-target names to canonical,
// namespace-qualified identifiers (UIDs).
//
// A UID is the target name prepended by a `.`-separated namespace prefix
// which is unique per project, e.g. "myproj.tool". A UID that arrives with
// a leading separator is "rooted": it is already fully qualified and is
// never re-prefixed.
package target

import "strings"

// Separator joins namespace segments in a target UID.
const Separator = "."

// Registry maps target UIDs to executable paths. Paths are relative to the
// project's base directory unless absolute, and may contain the
// multi-configuration placeholder understood by the locate package.
//
// The registry is generated by the build system and is read-only here.
type Registry map[string]string

// ResolveUID maps a target name to its UID by qualifying it with the given
// namespace prefix.
//
// The full prefix is tried first; on a miss the prefix is cut down to its
// portion before the first separator and retried. A single-segment prefix
// is tried once before giving up. A miss is not an error: the name is
// returned unchanged.
func ResolveUID(name, prefix string, reg Registry) string {
	if name == "" {
		return ""
	}
	// Rooted names are already fully qualified.
	if strings.HasPrefix(name, Separator) {
		return name
	}
	if prefix == "" || len(reg) == 0 {
		return name
	}
	for {
		uid := prefix + Separator + name
		if _, ok := reg[uid]; ok {
			return uid
		}
		head, _, found := strings.Cut(prefix, Separator)
		if !found {
			break
		}
		prefix = head
	}
	return name
}

// IsTarget reports whether name resolves to a known target in the registry.
func IsTarget(name, prefix string, reg Registry) bool {
	uid := ResolveUID(name, prefix, reg)
	if uid == "" || len(reg) == 0 {
		return false
	}
	// A rooted UID may still match an unrooted registry key.
	return ParseUID(uid).In(reg)
}

// UID is a parsed target identifier. The wire format is a plain string
// with an optional leading separator marking a rooted name; UID makes
// that distinction explicit instead of sniffing string prefixes at every
// use site.
type UID struct {
	Rooted bool
	Key    string // identifier without the leading separator
}

// ParseUID parses the wire representation of a target identifier.
func ParseUID(s string) UID {
	if strings.HasPrefix(s, Separator) {
		return UID{Rooted: true, Key: s[len(Separator):]}
	}
	return UID{Key: s}
}

// String renders the UID back to its wire representation.
func (u UID) String() string {
	if u.Rooted {
		return Separator + u.Key
	}
	return u.Key
}

// In reports whether the UID's key exists in the registry.
func (u UID) In(reg Registry) bool {
	_, ok := reg[u.Key]
	return ok
}

// Path returns the registered executable path for the UID.
func (u UID) Path(reg Registry) (string, bool) {
	p, ok := reg[u.Key]
	return p, ok
}
