// Package cbor implements a self-describing CBOR (RFC 8949) value tree plus
// a matching reader and writer, with the option surface Cardano's ledger
// wire format needs: canonical vs. CML-compatible encoding, indefinite
// forms, half/single/double float handling, and bignum folding for tags 2
// and 3. It is the generic substrate the typed-schema layer in pkg/schema
// and the Plutus Data subcodec in pkg/plutus are both built on.
package cbor

import (
	"math/big"
)

// Major identifies one of the eight CBOR major types.
type Major byte

const (
	MajorUint Major = iota
	MajorNint
	MajorBytes
	MajorText
	MajorArray
	MajorMap
	MajorTag
	MajorSimpleFloat
)

// Simple enumerates the well-known major-7 simple values. Unassigned simple
// values (0..19, 32..255) decode as a Simple carrying their raw code.
type Simple byte

const (
	SimpleFalse     Simple = 20
	SimpleTrue      Simple = 21
	SimpleNull      Simple = 22
	SimpleUndefined Simple = 23
)

// Tag numbers with Cardano-specific meaning at the generic codec layer.
const (
	TagBignumPositive = 2
	TagBignumNegative = 3
	TagSet            = 258
)

// Value is the tagged union at the center of the generic codec: every shape
// CBOR can describe is one of these variants. It is recursive through Array,
// Map and Tag.
//
// Exactly one of the typed accessors is meaningful for a given Value; which
// one is determined by Kind().
type Value struct {
	kind Major

	uintVal big.Int // Uint: the value itself. Nint: n such that wire encodes -1-n.
	bytes   []byte   // Bytes, Text (raw UTF-8 bytes), or the raw byte payload of a Simple/Float's source width is not stored here.
	chunked bool     // Bytes/Text/Array/Map: true if this value was read in indefinite-length form.

	array []Value       // Array
	pairs []Pair         // Map, order as seen on the wire

	tagNum uint64
	inner  *Value // Tag

	simple    Simple // MajorSimpleFloat, simple sub-case
	isSimple  bool   // true if this major-7 value is Simple rather than Float
	floatVal  float64
}

// Pair is one key/value entry of a Map, in wire order.
type Pair struct {
	Key   Value
	Value Value
}

// Kind reports which major-type family this Value belongs to.
func (v Value) Kind() Major { return v.kind }

// Uint constructs an unsigned-integer Value. n must be >= 0.
func Uint(n *big.Int) Value {
	v := Value{kind: MajorUint}
	v.uintVal.Set(n)
	return v
}

// UintFromU64 constructs an unsigned-integer Value from a native uint64.
func UintFromU64(n uint64) Value {
	v := Value{kind: MajorUint}
	v.uintVal.SetUint64(n)
	return v
}

// Nint constructs a negative-integer Value representing the wire value
// -1-n. n must be >= 0 (it is the "n" in CBOR's major-type-1 encoding, not
// the represented negative number itself).
func Nint(n *big.Int) Value {
	v := Value{kind: MajorNint}
	v.uintVal.Set(n)
	return v
}

// NintFromI64 constructs a negative-integer Value from a native negative
// int64, or panics if x >= 0.
func NintFromI64(x int64) Value {
	if x >= 0 {
		panic("cbor: Nint requires a negative value")
	}
	v := Value{kind: MajorNint}
	v.uintVal.SetInt64(-1 - x)
	return v
}

// AsBigInt returns the signed arbitrary-precision integer represented by a
// Uint or Nint Value.
func (v Value) AsBigInt() *big.Int {
	switch v.kind {
	case MajorUint:
		return new(big.Int).Set(&v.uintVal)
	case MajorNint:
		n := new(big.Int).Set(&v.uintVal)
		n.Add(n, big.NewInt(1))
		return n.Neg(n)
	default:
		return nil
	}
}

// Bytes constructs a byte-string Value.
func Bytes(b []byte) Value {
	return Value{kind: MajorBytes, bytes: append([]byte(nil), b...)}
}

// BytesIndefinite constructs a byte-string Value flagged as having been
// read from indefinite-length chunks. The writer does not consult the flag:
// byte strings are always written definite-length.
func BytesIndefinite(b []byte) Value {
	return Value{kind: MajorBytes, bytes: append([]byte(nil), b...), chunked: true}
}

// AsBytes returns the raw bytes of a Bytes Value.
func (v Value) AsBytes() []byte { return v.bytes }

// Text constructs a UTF-8 text-string Value. Callers are responsible for
// passing valid UTF-8; the reader enforces this on decode.
func Text(s string) Value {
	return Value{kind: MajorText, bytes: []byte(s)}
}

// TextIndefinite is the indefinite-chunked counterpart of Text.
func TextIndefinite(s string) Value {
	return Value{kind: MajorText, bytes: []byte(s), chunked: true}
}

// AsText returns the string content of a Text Value.
func (v Value) AsText() string { return string(v.bytes) }

// IsChunked reports whether a Bytes, Text, Array or Map Value was read in
// indefinite-length form (or built with BytesIndefinite/TextIndefinite).
// The writer does not consult it; the options alone decide the wire form.
func (v Value) IsChunked() bool { return v.chunked }

// Array constructs an array Value.
func Array(items ...Value) Value {
	return Value{kind: MajorArray, array: items}
}

// AsArray returns the ordered child values of an Array Value.
func (v Value) AsArray() []Value { return v.array }

// Map constructs a map Value from ordered pairs, preserving wire order;
// duplicate keys are permitted at this layer (decode does not dedupe).
func Map(pairs ...Pair) Value {
	return Value{kind: MajorMap, pairs: pairs}
}

// AsMap returns the ordered key/value pairs of a Map Value.
func (v Value) AsMap() []Pair { return v.pairs }

// Tag wraps inner in a CBOR tag. Tags 2 and 3 are folded into Uint/Nint by
// the reader and therefore never appear as a Tag Value on decode output,
// though a caller may still construct one by hand: the writer emits it as-is
// when inner is a byte string and refuses it with InvalidTagPayload otherwise.
func Tag(tagNum uint64, inner Value) Value {
	return Value{kind: MajorTag, tagNum: tagNum, inner: &inner}
}

// TagNumber returns the tag number of a Tag Value.
func (v Value) TagNumber() uint64 { return v.tagNum }

// TagInner returns the wrapped value of a Tag Value.
func (v Value) TagInner() Value { return *v.inner }

// SimpleValue constructs a major-7 simple value.
func SimpleValue(s Simple) Value {
	return Value{kind: MajorSimpleFloat, simple: s, isSimple: true}
}

// Bool constructs the canonical true/false simple values.
func Bool(b bool) Value {
	if b {
		return SimpleValue(SimpleTrue)
	}
	return SimpleValue(SimpleFalse)
}

// Null constructs the CBOR null simple value.
func Null() Value { return SimpleValue(SimpleNull) }

// Undefined constructs the CBOR undefined simple value.
func Undefined() Value { return SimpleValue(SimpleUndefined) }

// AsSimple returns the simple-value code of a MajorSimpleFloat Value that is
// not a Float (IsFloat() is false).
func (v Value) AsSimple() Simple { return v.simple }

// IsFloat reports whether a MajorSimpleFloat Value carries a float rather
// than a simple value.
func (v Value) IsFloat() bool { return v.kind == MajorSimpleFloat && !v.isSimple }

// Float constructs a floating-point Value. All floats are stored widened to
// float64; the writer chooses the wire width per CodecOptions.
func Float(f float64) Value {
	return Value{kind: MajorSimpleFloat, floatVal: f}
}

// AsFloat returns the float64 value of a Float Value.
func (v Value) AsFloat() float64 { return v.floatVal }

// Equal reports whether a and b describe the same CBOR item, ignoring
// wire-level presentation details that do not change meaning: the chunked
// flag on Bytes/Text, and map/array emptiness aside, values must match
// structurally and in order. Floats are compared with ==, so +0 and -0 are
// equal and a NaN is never equal to anything, itself included.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case MajorUint, MajorNint:
		return a.uintVal.Cmp(&b.uintVal) == 0
	case MajorBytes, MajorText:
		return string(a.bytes) == string(b.bytes)
	case MajorArray:
		if len(a.array) != len(b.array) {
			return false
		}
		for i := range a.array {
			if !Equal(a.array[i], b.array[i]) {
				return false
			}
		}
		return true
	case MajorMap:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for i := range a.pairs {
			if !Equal(a.pairs[i].Key, b.pairs[i].Key) || !Equal(a.pairs[i].Value, b.pairs[i].Value) {
				return false
			}
		}
		return true
	case MajorTag:
		return a.tagNum == b.tagNum && Equal(*a.inner, *b.inner)
	case MajorSimpleFloat:
		if a.isSimple != b.isSimple {
			return false
		}
		if a.isSimple {
			return a.simple == b.simple
		}
		return a.floatVal == b.floatVal
	default:
		return false
	}
}
