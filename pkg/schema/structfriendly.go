package schema

import (
	fxcbor "github.com/fxamacker/cbor/v2"

	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
)

// structFriendlyEncMode and structFriendlyDecMode pin the fxamacker/cbor
// behavior StructFriendly relies on: shortest-form bignum conversion on
// encode (matching the rest of this toolkit's minimal-encoding default) and
// pointer bignums on decode (so a struct field of type *big.Int round-trips
// values above 2^64 without truncation).
var (
	structFriendlyEncMode, _ = fxcbor.EncOptions{
		BigIntConvert: fxcbor.BigIntConvertShortest,
		Sort:          fxcbor.SortNone,
	}.EncMode()
	structFriendlyDecMode, _ = fxcbor.DecOptions{
		BigIntDec: fxcbor.BigIntDecodePointer,
	}.DecMode()
)

// StructFriendly builds a schema for a Go struct type T entirely from its
// `cbor:"..."` field tags via reflection, using fxamacker/cbor. It is the
// escape hatch for leaf types whose CBOR shape is a straightforward
// struct-to-array or struct-to-map mapping (toarray/keyasint tags) and
// gains nothing from being hand-composed out of the lower-level
// combinators in this package.
func StructFriendly[T any]() Schema[cbor.Value, T] {
	return Schema[cbor.Value, T]{
		Decode: func(v cbor.Value) (T, error) {
			var out T
			raw, err := cbor.Encode(v, cbor.CanonicalOptions())
			if err != nil {
				return out, cbor.Wrap(cbor.InvalidVariant, err, "re-encoding value for struct-friendly decode")
			}
			if err := structFriendlyDecMode.Unmarshal(raw, &out); err != nil {
				return out, cbor.Wrap(cbor.InvalidVariant, err, "struct-friendly decode")
			}
			return out, nil
		},
		Encode: func(t T) (cbor.Value, error) {
			raw, err := structFriendlyEncMode.Marshal(t)
			if err != nil {
				return cbor.Value{}, cbor.Wrap(cbor.EncoderRefusal, err, "struct-friendly encode")
			}
			v, err := cbor.Decode(raw, cbor.CanonicalOptions())
			if err != nil {
				return cbor.Value{}, cbor.Wrap(cbor.EncoderRefusal, err, "re-decoding struct-friendly output")
			}
			return v, nil
		},
	}
}
