// Package schema implements the transformation-combinator layer that lifts
// cbor.Value trees into validated, strongly typed domain values and back.
// Every combinator here returns a Schema value: a decode/encode function
// pair plus nothing else, so schemas compose by ordinary function
// composition rather than by any runtime registry.
package schema

import (
	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
)

// Schema is a codec pair between a Source representation (almost always
// cbor.Value, sometimes []byte or string at the edges of the stack) and a
// Target domain type. Decode may fail on malformed or out-of-range Source
// values; Encode may fail when Target cannot be represented under the
// current constraints (see Filter, Tag).
type Schema[Source, Target any] struct {
	Decode func(Source) (Target, error)
	Encode func(Target) (Source, error)
}

// Compose chains two schemas that share a middle type, in the same way
// function composition chains two functions: Compose(ab, bc).Decode first
// runs ab.Decode then bc.Decode; Encode runs in the reverse order.
func Compose[A, B, C any](ab Schema[A, B], bc Schema[B, C]) Schema[A, C] {
	return Schema[A, C]{
		Decode: func(a A) (C, error) {
			var zero C
			b, err := ab.Decode(a)
			if err != nil {
				return zero, err
			}
			c, err := bc.Decode(b)
			if err != nil {
				return zero, err
			}
			return c, nil
		},
		Encode: func(c C) (A, error) {
			var zero A
			b, err := bc.Encode(c)
			if err != nil {
				return zero, err
			}
			a, err := ab.Encode(b)
			if err != nil {
				return zero, err
			}
			return a, nil
		},
	}
}

// TransformOrFail lifts a pair of fallible functions into a Schema directly.
func TransformOrFail[A, B any](decode func(A) (B, error), encode func(B) (A, error)) Schema[A, B] {
	return Schema[A, B]{Decode: decode, Encode: encode}
}

// Identity is the schema that passes its value through unchanged.
func Identity[A any]() Schema[A, A] {
	return Schema[A, A]{
		Decode: func(a A) (A, error) { return a, nil },
		Encode: func(a A) (A, error) { return a, nil },
	}
}

// Brand marks s as producing a nominally distinct domain type. It performs
// no runtime transformation: in Go, the nominal distinction Brand provides
// in a dynamically typed source language is already given by Target being a
// distinct named Go type (e.g. type PolicyId [28]byte). Brand exists so call
// sites can read as a direct translation of the combinator pipeline.
func Brand[A any](s Schema[cbor.Value, A]) Schema[cbor.Value, A] { return s }

// Filter refines s, rejecting any Target value for which pred is false with
// an InvariantViolation carrying msg. It applies symmetrically: a value
// that fails pred is rejected by both Decode and Encode.
func Filter[A any](s Schema[cbor.Value, A], pred func(A) bool, msg string) Schema[cbor.Value, A] {
	return Schema[cbor.Value, A]{
		Decode: func(v cbor.Value) (A, error) {
			a, err := s.Decode(v)
			if err != nil {
				var zero A
				return zero, err
			}
			if !pred(a) {
				var zero A
				return zero, cbor.Newf(cbor.InvariantViolation, "%s", msg)
			}
			return a, nil
		},
		Encode: func(a A) (cbor.Value, error) {
			if !pred(a) {
				return cbor.Value{}, cbor.Newf(cbor.InvariantViolation, "%s", msg)
			}
			return s.Encode(a)
		},
	}
}

// Tag produces a schema matching a cbor.Value::Tag node with the given tag
// number, delegating the wrapped value to inner.
func Tag[A any](tagNum uint64, inner Schema[cbor.Value, A]) Schema[cbor.Value, A] {
	return Schema[cbor.Value, A]{
		Decode: func(v cbor.Value) (A, error) {
			var zero A
			if v.Kind() != cbor.MajorTag || v.TagNumber() != tagNum {
				return zero, cbor.Newf(cbor.InvalidTagPayload, "expected tag %d, got kind %v", tagNum, v.Kind())
			}
			return inner.Decode(v.TagInner())
		},
		Encode: func(a A) (cbor.Value, error) {
			innerV, err := inner.Encode(a)
			if err != nil {
				return cbor.Value{}, err
			}
			return cbor.Tag(tagNum, innerV), nil
		},
	}
}

// Union tries each variant in order on decode, returning the first success;
// on encode it likewise tries each variant, relying on each variant's own
// logic (typically a type switch or discriminator check) to fail fast for
// values it does not own.
func Union[A any](variants ...Schema[cbor.Value, A]) Schema[cbor.Value, A] {
	return Schema[cbor.Value, A]{
		Decode: func(v cbor.Value) (A, error) {
			var zero A
			var lastErr error
			for _, variant := range variants {
				a, err := variant.Decode(v)
				if err == nil {
					return a, nil
				}
				lastErr = err
			}
			return zero, cbor.Wrap(cbor.InvalidVariant, lastErr, "no union variant matched")
		},
		Encode: func(a A) (cbor.Value, error) {
			var lastErr error
			for _, variant := range variants {
				v, err := variant.Encode(a)
				if err == nil {
					return v, nil
				}
				lastErr = err
			}
			return cbor.Value{}, cbor.Wrap(cbor.InvalidVariant, lastErr, "no union variant could encode value")
		},
	}
}

// Tuple decodes a cbor.Value::Array of exactly arity elements via decode,
// and encodes back into an array via encode. Go's type system cannot
// express a variadic-arity heterogeneous tuple generically, so callers
// supply the per-field packing/unpacking themselves; Tuple supplies the
// shared array-shape and length validation.
func Tuple[A any](arity int, decode func([]cbor.Value) (A, error), encode func(A) ([]cbor.Value, error)) Schema[cbor.Value, A] {
	return Schema[cbor.Value, A]{
		Decode: func(v cbor.Value) (A, error) {
			var zero A
			if v.Kind() != cbor.MajorArray {
				return zero, cbor.Newf(cbor.InvalidVariant, "expected array for tuple, got %v", v.Kind())
			}
			items := v.AsArray()
			if len(items) != arity {
				return zero, cbor.Newf(cbor.OutOfRange, "tuple expected %d elements, got %d", arity, len(items))
			}
			return decode(items)
		},
		Encode: func(a A) (cbor.Value, error) {
			items, err := encode(a)
			if err != nil {
				return cbor.Value{}, err
			}
			if len(items) != arity {
				return cbor.Value{}, cbor.Newf(cbor.EncoderRefusal, "tuple encoder produced %d elements, want %d", len(items), arity)
			}
			return cbor.Array(items...), nil
		},
	}
}

// Array applies item to every element of a cbor.Value::Array, in order.
func Array[A any](item Schema[cbor.Value, A]) Schema[cbor.Value, []A] {
	return Schema[cbor.Value, []A]{
		Decode: func(v cbor.Value) ([]A, error) {
			if v.Kind() != cbor.MajorArray {
				return nil, cbor.Newf(cbor.InvalidVariant, "expected array, got %v", v.Kind())
			}
			items := v.AsArray()
			out := make([]A, len(items))
			for i, it := range items {
				a, err := item.Decode(it)
				if err != nil {
					return nil, cbor.Wrap(cbor.InvalidVariant, err, "array element %d", i)
				}
				out[i] = a
			}
			return out, nil
		},
		Encode: func(as []A) (cbor.Value, error) {
			items := make([]cbor.Value, len(as))
			for i, a := range as {
				v, err := item.Encode(a)
				if err != nil {
					return cbor.Value{}, cbor.Wrap(cbor.EncoderRefusal, err, "array element %d", i)
				}
				items[i] = v
			}
			return cbor.Array(items...), nil
		},
	}
}

// KV is one ordered key/value entry of a Map schema's image, mirroring
// cbor.Pair's wire-order preservation and tolerance of duplicate keys.
type KV[K, V any] struct {
	Key   K
	Value V
}

// Map applies key/value to every pair of a cbor.Value::Map, preserving wire
// order (it returns a slice of KV, not a Go map, so duplicate keys and
// ordering survive a decode/encode round trip).
func Map[K, V any](key Schema[cbor.Value, K], value Schema[cbor.Value, V]) Schema[cbor.Value, []KV[K, V]] {
	return Schema[cbor.Value, []KV[K, V]]{
		Decode: func(v cbor.Value) ([]KV[K, V], error) {
			if v.Kind() != cbor.MajorMap {
				return nil, cbor.Newf(cbor.InvalidVariant, "expected map, got %v", v.Kind())
			}
			pairs := v.AsMap()
			out := make([]KV[K, V], len(pairs))
			for i, p := range pairs {
				k, err := key.Decode(p.Key)
				if err != nil {
					return nil, cbor.Wrap(cbor.InvalidVariant, err, "map key %d", i)
				}
				val, err := value.Decode(p.Value)
				if err != nil {
					return nil, cbor.Wrap(cbor.InvalidVariant, err, "map value %d", i)
				}
				out[i] = KV[K, V]{Key: k, Value: val}
			}
			return out, nil
		},
		Encode: func(kvs []KV[K, V]) (cbor.Value, error) {
			pairs := make([]cbor.Pair, len(kvs))
			for i, kv := range kvs {
				k, err := key.Encode(kv.Key)
				if err != nil {
					return cbor.Value{}, cbor.Wrap(cbor.EncoderRefusal, err, "map key %d", i)
				}
				val, err := value.Encode(kv.Value)
				if err != nil {
					return cbor.Value{}, cbor.Wrap(cbor.EncoderRefusal, err, "map value %d", i)
				}
				pairs[i] = cbor.Pair{Key: k, Value: val}
			}
			return cbor.Map(pairs...), nil
		},
	}
}

// Literal constructs a schema whose only valid Source encoding is wire, and
// whose only valid Target value is value. Decode compares the input against
// wire with cbor.Equal; Encode compares the input against value with eq
// (A has no built-in comparable form in general, so callers supply one,
// typically == for a Go value).
func Literal[A any](value A, wire cbor.Value, eq func(A, A) bool) Schema[cbor.Value, A] {
	return Schema[cbor.Value, A]{
		Decode: func(v cbor.Value) (A, error) {
			var zero A
			if !cbor.Equal(v, wire) {
				return zero, cbor.Newf(cbor.InvalidVariant, "value does not match expected literal")
			}
			return value, nil
		},
		Encode: func(a A) (cbor.Value, error) {
			if !eq(a, value) {
				return cbor.Value{}, cbor.Newf(cbor.EncoderRefusal, "value does not match expected literal")
			}
			return wire, nil
		},
	}
}

// NullOr wraps s so that a CBOR null decodes to (zero, false) and any other
// value decodes through s to (a, true); encoding false always produces
// null.
func NullOr[A any](s Schema[cbor.Value, A]) Schema[cbor.Value, Option[A]] {
	return Schema[cbor.Value, Option[A]]{
		Decode: func(v cbor.Value) (Option[A], error) {
			if v.Kind() == cbor.MajorSimpleFloat && !v.IsFloat() && v.AsSimple() == cbor.SimpleNull {
				return Option[A]{}, nil
			}
			a, err := s.Decode(v)
			if err != nil {
				return Option[A]{}, err
			}
			return Option[A]{Value: a, Present: true}, nil
		},
		Encode: func(o Option[A]) (cbor.Value, error) {
			if !o.Present {
				return cbor.Null(), nil
			}
			return s.Encode(o.Value)
		},
	}
}

// Option is the decoded form of an optional or nullable schema value.
type Option[A any] struct {
	Value   A
	Present bool
}

// Some wraps a present value.
func Some[A any](a A) Option[A] { return Option[A]{Value: a, Present: true} }

// None is the absent Option value.
func None[A any]() Option[A] { return Option[A]{} }

// Optional behaves like NullOr but is intended for struct-field absence
// (the key missing entirely) rather than a literal null on the wire; the
// distinction is enforced by the caller (see RawIntKeyedMap.Get and
// IntKeyedMapBuilder), not by this schema itself, which only handles the
// present case.
func Optional[A any](s Schema[cbor.Value, A]) Schema[cbor.Value, Option[A]] {
	return Schema[cbor.Value, Option[A]]{
		Decode: func(v cbor.Value) (Option[A], error) {
			a, err := s.Decode(v)
			if err != nil {
				return Option[A]{}, err
			}
			return Some(a), nil
		},
		Encode: func(o Option[A]) (cbor.Value, error) {
			if !o.Present {
				return cbor.Value{}, cbor.Newf(cbor.EncoderRefusal, "cannot encode an absent optional value directly")
			}
			return s.Encode(o.Value)
		},
	}
}
