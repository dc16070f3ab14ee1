package schema

import (
	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
)

// RawIntKeyedMap decodes a cbor.Value::Map whose keys are small unsigned
// integers into a lookup by key, preserving the first value seen for a
// repeated key and reporting which keys were present. It is the low-level
// substrate struct-like domain types (TransactionWitnessSet) are built
// on: Go cannot express a
// struct({field: schema, ...}) combinator generically over heterogeneous
// per-field target types without reflection, so types with a fixed, known
// field set decode each field by hand against this lookup, the same way a
// hand-walked map decode works.
type RawIntKeyedMap struct {
	values map[uint64]cbor.Value
	order  []uint64
}

// DecodeIntKeyedMap reads v as a CBOR map with uint keys.
func DecodeIntKeyedMap(v cbor.Value) (RawIntKeyedMap, error) {
	if v.Kind() != cbor.MajorMap {
		return RawIntKeyedMap{}, cbor.Newf(cbor.InvalidVariant, "expected map, got %v", v.Kind())
	}
	m := RawIntKeyedMap{values: map[uint64]cbor.Value{}}
	for _, p := range v.AsMap() {
		if p.Key.Kind() != cbor.MajorUint {
			return RawIntKeyedMap{}, cbor.Newf(cbor.InvalidVariant, "expected uint map key, got %v", p.Key.Kind())
		}
		k := p.Key.AsBigInt().Uint64()
		if _, seen := m.values[k]; !seen {
			m.order = append(m.order, k)
			m.values[k] = p.Value
		}
	}
	return m, nil
}

// Get returns the value at key and whether it was present.
func (m RawIntKeyedMap) Get(key uint64) (cbor.Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// IntKeyedMapBuilder accumulates key/value entries in insertion order for
// the inverse of DecodeIntKeyedMap.
type IntKeyedMapBuilder struct {
	pairs []cbor.Pair
}

// Put appends key: value to the builder, in the order Put is called.
func (b *IntKeyedMapBuilder) Put(key uint64, value cbor.Value) {
	b.pairs = append(b.pairs, cbor.Pair{Key: cbor.UintFromU64(key), Value: value})
}

// Build returns the accumulated entries as a cbor.Value map.
func (b *IntKeyedMapBuilder) Build() cbor.Value {
	return cbor.Map(b.pairs...)
}
