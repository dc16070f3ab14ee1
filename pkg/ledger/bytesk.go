package ledger

import (
	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
	"github.com/cardano-cbor/ledgercodec/pkg/schema"
)

// cborValueAsBytes is the cbor.Value <-> []byte schema every branded and
// length-bounded byte type below is built from.
var cborValueAsBytes = schema.Schema[cbor.Value, []byte]{
	Decode: func(v cbor.Value) ([]byte, error) {
		if v.Kind() != cbor.MajorBytes {
			return nil, cbor.Newf(cbor.InvalidVariant, "expected a byte string, got %v", v.Kind())
		}
		return v.AsBytes(), nil
	},
	Encode: func(b []byte) (cbor.Value, error) {
		return cbor.Bytes(b), nil
	},
}

// BytesKSchema returns the schema for a fixed-length byte string of exactly
// k bytes.
func BytesKSchema(k int) schema.Schema[cbor.Value, []byte] {
	return schema.Filter(cborValueAsBytes, func(b []byte) bool {
		return len(b) == k
	}, "byte string must be exactly that fixed length")
}

// AssetNameSchema is a variable-length byte string of at most 32 bytes.
var AssetNameSchema = schema.Filter(cborValueAsBytes, func(b []byte) bool {
	return len(b) <= 32
}, "AssetName must be at most 32 bytes")

// PolicyId is a 28-byte script hash identifying a minting policy.
type PolicyId [28]byte

// String renders the policy ID as lowercase hex.
func (p PolicyId) String() string { return Blake2b224(p).String() }

// PolicyIdSchema is the branded schema for PolicyId.
var PolicyIdSchema = schema.Brand(schema.TransformOrFail(
	func(v cbor.Value) (PolicyId, error) {
		b, err := BytesKSchema(28).Decode(v)
		if err != nil {
			return PolicyId{}, cbor.Wrap(cbor.OutOfRange, err, "PolicyId")
		}
		var p PolicyId
		copy(p[:], b)
		return p, nil
	},
	func(p PolicyId) (cbor.Value, error) {
		return cbor.Bytes(p[:]), nil
	},
))

// ScriptHash is a 28-byte script hash, nominally distinct from PolicyId at
// use sites even though both share the same wire shape.
type ScriptHash [28]byte

// String renders the script hash as lowercase hex.
func (s ScriptHash) String() string { return Blake2b224(s).String() }

// ScriptHashSchema is the branded schema for ScriptHash.
var ScriptHashSchema = schema.Brand(schema.TransformOrFail(
	func(v cbor.Value) (ScriptHash, error) {
		b, err := BytesKSchema(28).Decode(v)
		if err != nil {
			return ScriptHash{}, cbor.Wrap(cbor.OutOfRange, err, "ScriptHash")
		}
		var s ScriptHash
		copy(s[:], b)
		return s, nil
	},
	func(s ScriptHash) (cbor.Value, error) {
		return cbor.Bytes(s[:]), nil
	},
))
