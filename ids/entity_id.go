// Package ids implements the entity identifier model: a (shard, realm, num)
// triple shared by every addressable entity kind, plus optional alias
// bytes, with text parse/format and an attached checksum suffix.
package ids

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// entityID is the shared (shard, realm, num [, alias]) layout embedded by
// every kind-specific identifier type below. Components are non-negative;
// alias is mutually exclusive with a nonzero Num on the wire (the
// serializer picks alias when present, per spec.md §3).
type entityID struct {
	Shard uint64
	Realm uint64
	Num   uint64
	Alias []byte // raw alias bytes, or a 20-byte EVM-style address
}

func (e entityID) text() string {
	return fmt.Sprintf("%d.%d.%d", e.Shard, e.Realm, e.Num)
}

func (e entityID) hasAlias() bool { return len(e.Alias) > 0 }

// parseEntityID parses "shard.realm.num" or "shard.realm.num-csum" or the
// alias form "shard.realm.<hex>". The checksum suffix, if present, is
// returned separately and is not required to validate (validation is the
// caller's job via WithChecksum, since it is network-specific).
func parseEntityID(s string) (entityID, string, error) {
	base, checksum, _ := strings.Cut(s, "-")
	if checksum != "" && len(checksum) != 5 {
		return entityID{}, "", fmt.Errorf("ids: checksum suffix must be 5 letters, got %q", checksum)
	}
	parts := strings.SplitN(base, ".", 3)
	if len(parts) != 3 {
		return entityID{}, "", fmt.Errorf("ids: %q is not of the form shard.realm.num", s)
	}
	shard, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return entityID{}, "", fmt.Errorf("ids: bad shard in %q: %w", s, err)
	}
	realm, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return entityID{}, "", fmt.Errorf("ids: bad realm in %q: %w", s, err)
	}

	// Alias form: "0.0.<hex>" where the last component is not a plain
	// decimal number.
	if num, err := strconv.ParseUint(parts[2], 10, 64); err == nil {
		return entityID{Shard: shard, Realm: realm, Num: num}, checksum, nil
	}
	alias, err := hex.DecodeString(strings.TrimPrefix(parts[2], "0x"))
	if err != nil {
		return entityID{}, "", fmt.Errorf("ids: bad num/alias in %q: %w", s, err)
	}
	return entityID{Shard: shard, Realm: realm, Alias: alias}, checksum, nil
}

// Checksum computes the 5-letter checksum for id against ledgerID: each
// decimal digit of shard, realm and num (concatenated without dots)
// contributes its value times its 1-based position, the ledger id bytes
// are added, and letter i is (sum + 7*i) mod 16 in the alphabet a-p.
func Checksum(ledgerID []byte, shard, realm, num uint64) string {
	const alphabet = "abcdefghijklmnop"
	digits := fmt.Sprintf("%d%d%d", shard, realm, num)
	var sum, weight int
	for i, r := range digits {
		weight = i + 1
		sum += int(r-'0') * weight
	}
	for _, b := range ledgerID {
		sum += int(b)
	}
	out := make([]byte, 5)
	for i := range out {
		out[i] = alphabet[(sum+i*7)%len(alphabet)]
	}
	return string(out)
}

// withChecksum returns "shard.realm.num-csum" for the given ledger id.
func (e entityID) withChecksum(ledgerID []byte) string {
	return fmt.Sprintf("%s-%s", e.text(), Checksum(ledgerID, e.Shard, e.Realm, e.Num))
}
