// Package sigmap implements the deduplicated (key-prefix, signature)
// collector used to assemble a transaction's signature map. Prefixes start
// as short as possible and are only as long as needed to stay unique
// among the signers currently in the map; inserting a colliding key
// retroactively extends earlier conflicting entries.
package sigmap

import "fmt"

// Entry is one (key_prefix, raw_signature) pair as it appears on the wire.
type Entry struct {
	PublicKey []byte // full public key this entry was derived from
	Prefix    []byte // shortest prefix unique within the map, may grow
	Signature []byte
}

// Map collects entries in insertion order, as required for the
// prefix-extension rule to have a well-defined "earlier" entry to extend.
type Map struct {
	entries []*Entry
	byKey   map[string]*Entry
}

// New returns an empty signature map.
func New() *Map {
	return &Map{byKey: make(map[string]*Entry)}
}

// Add inserts a (publicKey, signature) pair over one body-bytes blob. It
// is an error to add the same full public key twice (no duplicate full
// public keys, per spec.md §3).
func (m *Map) Add(publicKey, signature []byte) error {
	key := string(publicKey)
	if _, exists := m.byKey[key]; exists {
		return fmt.Errorf("sigmap: duplicate signer for public key %x", publicKey)
	}

	e := &Entry{
		PublicKey: append([]byte(nil), publicKey...),
		Signature: append([]byte(nil), signature...),
	}
	m.entries = append(m.entries, e)
	m.byKey[key] = e

	m.reassignPrefixes()
	return nil
}

// reassignPrefixes recomputes, for every entry, the shortest prefix length
// that is unique among all current entries' public keys, growing any
// entry (old or new) whose current prefix now collides with another.
func (m *Map) reassignPrefixes() {
	for _, e := range m.entries {
		n := 1
		for n <= len(e.PublicKey) {
			if m.countWithPrefix(e.PublicKey[:n], e) == 0 {
				break
			}
			n++
		}
		if n > len(e.PublicKey) {
			n = len(e.PublicKey)
		}
		e.Prefix = e.PublicKey[:n]
	}
}

// countWithPrefix returns how many entries other than self share the
// given prefix of their public key.
func (m *Map) countWithPrefix(prefix []byte, self *Entry) int {
	count := 0
	for _, o := range m.entries {
		if o == self {
			continue
		}
		if len(o.PublicKey) >= len(prefix) && string(o.PublicKey[:len(prefix)]) == string(prefix) {
			count++
		}
	}
	return count
}

// Entries returns the map's entries in insertion order. Callers must not
// mutate the returned slice's elements.
func (m *Map) Entries() []*Entry {
	return m.entries
}

// Len returns the number of distinct signers in the map.
func (m *Map) Len() int { return len(m.entries) }

// Find returns the entry whose prefix matches the leading bytes of
// publicKey, or nil if no signer in the map corresponds to it.
func (m *Map) Find(publicKey []byte) *Entry {
	for _, e := range m.entries {
		if len(publicKey) >= len(e.Prefix) && string(publicKey[:len(e.Prefix)]) == string(e.Prefix) {
			return e
		}
	}
	return nil
}
