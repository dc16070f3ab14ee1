package schema

import (
	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
)

// cborBytesSchema is the []byte <-> cbor.Value schema shared by FromBytes,
// FromCBORBytes and FromCBORHex: raw bytes become a single top-level
// cbor.Value under opts, and back.
func cborBytesSchema(opts cbor.Options) Schema[[]byte, cbor.Value] {
	return Schema[[]byte, cbor.Value]{
		Decode: func(b []byte) (cbor.Value, error) {
			return cbor.Decode(b, opts)
		},
		Encode: func(v cbor.Value) ([]byte, error) {
			return cbor.Encode(v, opts)
		},
	}
}

// FromBytes composes inner (a cbor.Value <-> T schema) with the raw-bytes
// <-> cbor.Value codec under opts, yielding a []byte <-> T schema.
func FromBytes[T any](inner Schema[cbor.Value, T], opts cbor.Options) Schema[[]byte, T] {
	return Compose(cborBytesSchema(opts), inner)
}

// FromCBORBytes is an alias for FromBytes, named to mirror FromCBORHex
// below: both describe a full []byte/string <-> cbor.Value <-> T pipeline.
func FromCBORBytes[T any](inner Schema[cbor.Value, T], opts cbor.Options) Schema[[]byte, T] {
	return FromBytes(inner, opts)
}

// FromCBORHex composes FromHex with FromCBORBytes, yielding a hex-string
// <-> T schema: hex -> bytes -> cbor.Value -> T.
func FromCBORHex[T any](inner Schema[cbor.Value, T], opts cbor.Options) Schema[string, T] {
	return Compose(FromHex, FromCBORBytes(inner, opts))
}
