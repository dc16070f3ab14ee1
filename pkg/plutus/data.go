// Package plutus implements the Plutus Data algebraic type and its CBOR
// subcodec: a separate recursive shape from the generic cbor.Value tree,
// with its own constructor-index tagging convention.
package plutus

import (
	"math/big"
)

// Kind identifies which of the five Data variants a value holds.
type Kind int

const (
	KindConstr Kind = iota
	KindMap
	KindList
	KindInt
	KindByteArray
)

// MapEntry is one key/value entry of a Data map, in declaration order.
type MapEntry struct {
	Key   Data
	Value Data
}

// Data is the Plutus Data recursive sum type: Constr, Map, List, Int, or
// ByteArray. Exactly one of the typed accessors applies to a given value,
// selected by Kind().
type Data struct {
	kind Kind

	constrIndex  uint64
	constrFields []Data

	mapEntries []MapEntry
	list       []Data
	intVal     big.Int
	bytes      []byte
}

// Kind reports which Data variant v holds.
func (v Data) Kind() Kind { return v.kind }

// Constr constructs a constructor-application Data value.
func Constr(index uint64, fields ...Data) Data {
	return Data{kind: KindConstr, constrIndex: index, constrFields: fields}
}

// AsConstr returns the constructor index and fields of a Constr Data value.
func (v Data) AsConstr() (uint64, []Data) { return v.constrIndex, v.constrFields }

// Map constructs a Plutus map Data value from ordered entries.
func Map(entries ...MapEntry) Data {
	return Data{kind: KindMap, mapEntries: entries}
}

// AsMap returns the ordered entries of a Map Data value.
func (v Data) AsMap() []MapEntry { return v.mapEntries }

// List constructs a Plutus list Data value.
func List(items ...Data) Data {
	return Data{kind: KindList, list: items}
}

// AsList returns the ordered items of a List Data value.
func (v Data) AsList() []Data { return v.list }

// Int constructs an arbitrary-precision integer Data value.
func Int(n *big.Int) Data {
	d := Data{kind: KindInt}
	d.intVal.Set(n)
	return d
}

// AsInt returns the integer value of an Int Data value.
func (v Data) AsInt() *big.Int { return new(big.Int).Set(&v.intVal) }

// ByteArray constructs a byte-array Data value.
func ByteArray(b []byte) Data {
	return Data{kind: KindByteArray, bytes: append([]byte(nil), b...)}
}

// AsByteArray returns the raw bytes of a ByteArray Data value.
func (v Data) AsByteArray() []byte { return v.bytes }

// Equal reports whether a and b describe the same Plutus Data value.
func Equal(a, b Data) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindConstr:
		if a.constrIndex != b.constrIndex || len(a.constrFields) != len(b.constrFields) {
			return false
		}
		for i := range a.constrFields {
			if !Equal(a.constrFields[i], b.constrFields[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.mapEntries) != len(b.mapEntries) {
			return false
		}
		for i := range a.mapEntries {
			if !Equal(a.mapEntries[i].Key, b.mapEntries[i].Key) || !Equal(a.mapEntries[i].Value, b.mapEntries[i].Value) {
				return false
			}
		}
		return true
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindInt:
		return a.intVal.Cmp(&b.intVal) == 0
	case KindByteArray:
		return string(a.bytes) == string(b.bytes)
	default:
		return false
	}
}
