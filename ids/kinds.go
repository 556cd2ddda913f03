package ids

import "github.com/hashnet-labs/hedera-core-sdk/wire"

// Each kind below is nominally distinct (prevents category confusion
// between e.g. an AccountID and a TokenID that happen to share numbers)
// despite sharing entityID's layout, per spec.md §3.

type AccountID struct{ entityID }
type ContractID struct{ entityID }
type FileID struct{ entityID }
type TokenID struct{ entityID }
type TopicID struct{ entityID }
type ScheduleID struct{ entityID }

// NewAccountID builds an id from its numeric components.
func NewAccountID(shard, realm, num uint64) AccountID {
	return AccountID{entityID{Shard: shard, Realm: realm, Num: num}}
}

func NewContractID(shard, realm, num uint64) ContractID {
	return ContractID{entityID{Shard: shard, Realm: realm, Num: num}}
}

func NewFileID(shard, realm, num uint64) FileID {
	return FileID{entityID{Shard: shard, Realm: realm, Num: num}}
}

func NewTokenID(shard, realm, num uint64) TokenID {
	return TokenID{entityID{Shard: shard, Realm: realm, Num: num}}
}

func NewTopicID(shard, realm, num uint64) TopicID {
	return TopicID{entityID{Shard: shard, Realm: realm, Num: num}}
}

func NewScheduleID(shard, realm, num uint64) ScheduleID {
	return ScheduleID{entityID{Shard: shard, Realm: realm, Num: num}}
}

// AccountIDFromAlias builds an account id addressed purely by alias bytes
// (e.g. an EVM address), with Num left at zero; the wire encoder picks the
// alias representation whenever one is present.
func AccountIDFromAlias(shard, realm uint64, alias []byte) AccountID {
	return AccountID{entityID{Shard: shard, Realm: realm, Alias: append([]byte(nil), alias...)}}
}

func ParseAccountID(s string) (AccountID, error) {
	e, _, err := parseEntityID(s)
	return AccountID{e}, err
}

func ParseContractID(s string) (ContractID, error) {
	e, _, err := parseEntityID(s)
	return ContractID{e}, err
}

func ParseFileID(s string) (FileID, error) {
	e, _, err := parseEntityID(s)
	return FileID{e}, err
}

func ParseTokenID(s string) (TokenID, error) {
	e, _, err := parseEntityID(s)
	return TokenID{e}, err
}

func ParseTopicID(s string) (TopicID, error) {
	e, _, err := parseEntityID(s)
	return TopicID{e}, err
}

func ParseScheduleID(s string) (ScheduleID, error) {
	e, _, err := parseEntityID(s)
	return ScheduleID{e}, err
}

func (a AccountID) String() string  { return a.entityID.text() }
func (c ContractID) String() string { return c.entityID.text() }
func (f FileID) String() string     { return f.entityID.text() }
func (t TokenID) String() string    { return t.entityID.text() }
func (t TopicID) String() string    { return t.entityID.text() }
func (s ScheduleID) String() string { return s.entityID.text() }

// WithChecksum formats the id with its trailing "-csum" suffix computed
// against ledgerID. Serialization (wire form) never includes a checksum;
// it is a display-only affordance, per spec.md §6.
func (a AccountID) WithChecksum(ledgerID []byte) string {
	return a.entityID.withChecksum(ledgerID)
}

func (a AccountID) HasAlias() bool { return a.entityID.hasAlias() }
func (a AccountID) Equal(o AccountID) bool {
	return a.Shard == o.Shard && a.Realm == o.Realm && a.Num == o.Num &&
		string(a.Alias) == string(o.Alias)
}

// WriteTo encodes id into w under field, picking the alias wire form when
// an alias is present (mutually exclusive with a nonzero num on the wire,
// per spec.md §3's serializer tie-break rule).
func (a AccountID) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	inner.WriteVarint(1, a.Shard)
	inner.WriteVarint(2, a.Realm)
	if a.hasAlias() {
		inner.WriteBytes(4, a.Alias)
	} else {
		inner.WriteVarint(3, a.Num)
	}
	w.WriteNested(field, inner)
}

func (f FileID) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	inner.WriteVarint(1, f.Shard)
	inner.WriteVarint(2, f.Realm)
	inner.WriteVarint(3, f.Num)
	w.WriteNested(field, inner)
}

func (c ContractID) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	inner.WriteVarint(1, c.Shard)
	inner.WriteVarint(2, c.Realm)
	inner.WriteVarint(3, c.Num)
	w.WriteNested(field, inner)
}

func (t TokenID) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	inner.WriteVarint(1, t.Shard)
	inner.WriteVarint(2, t.Realm)
	inner.WriteVarint(3, t.Num)
	w.WriteNested(field, inner)
}

func (t TopicID) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	inner.WriteVarint(1, t.Shard)
	inner.WriteVarint(2, t.Realm)
	inner.WriteVarint(3, t.Num)
	w.WriteNested(field, inner)
}

func (s ScheduleID) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	inner.WriteVarint(1, s.Shard)
	inner.WriteVarint(2, s.Realm)
	inner.WriteVarint(3, s.Num)
	w.WriteNested(field, inner)
}

func (t TopicID) Equal(o TopicID) bool {
	return t.Shard == o.Shard && t.Realm == o.Realm && t.Num == o.Num
}

func (s ScheduleID) Equal(o ScheduleID) bool {
	return s.Shard == o.Shard && s.Realm == o.Realm && s.Num == o.Num
}
